package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/config"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	"github.com/sidhu69/live-room-chat/internal/queue"
	"github.com/sidhu69/live-room-chat/internal/routers"
	room_service "github.com/sidhu69/live-room-chat/internal/use-case/room-case"
	"github.com/sidhu69/live-room-chat/internal/websocket"
	"github.com/sidhu69/live-room-chat/internal/worker"
	"github.com/sidhu69/live-room-chat/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	notify := notifier.NewRedisNotifier(appState.Redis)

	wsHub := websocket.NewHub()
	log.Info().Msg("Websocket hub initialized")

	relay := websocket.NewRelay(wsHub, notify)
	if err := relay.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start change-feed relay")
	}
	log.Info().Msg("Change-feed relay started")

	r := routers.NewRouter(appState, wsHub, notify)

	roomService := room_service.NewRoomService(appState, notify)

	workerPool := worker.NewWorkerPool(appState.Redis, config.Conf.WORKER.Num, roomService)
	workerPool.Start(ctx)

	scheduler := worker.NewCleanupScheduler(queue.NewProducer(appState.Redis), config.Conf.CleanupInterval())
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	} else {
		log.Info().Msg("Server exited gracefully")
	}

	relay.Stop()
	wsHub.Close()
	workerPool.Wait()
}
