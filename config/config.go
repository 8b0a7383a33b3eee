package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
		Mongo struct {
			Url string `mapstructure:"URL"`
		}
	}

	ROOM struct {
		TTLMinutes      int `mapstructure:"TTL_MINUTES"`
		DefaultCapacity int `mapstructure:"DEFAULT_CAPACITY"`
		CleanupInterval int `mapstructure:"CLEANUP_INTERVAL_SECONDS"`
	}

	WORKER struct {
		Num int `mapstructure:"NUM"`
	}
}

var Conf *AppConfig

// EmptyRoomTTL is how long an empty room survives before the cleanup sweep
// may delete it.
func (c *AppConfig) EmptyRoomTTL() time.Duration {
	return time.Duration(c.ROOM.TTLMinutes) * time.Minute
}

func (c *AppConfig) CleanupInterval() time.Duration {
	return time.Duration(c.ROOM.CleanupInterval) * time.Second
}

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CHATAPP")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("ROOM.TTL_MINUTES", 5)
	viper.SetDefault("ROOM.DEFAULT_CAPACITY", 10)
	viper.SetDefault("ROOM.CLEANUP_INTERVAL_SECONDS", 60)
	viper.SetDefault("WORKER.NUM", 5)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
