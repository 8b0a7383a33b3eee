package room_repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/state"
	"gorm.io/gorm"
)

type RoomRepo struct {
	AppState *state.AppState
}

func NewRoomRepo(appState *state.AppState) RoomRepoContract {
	return &RoomRepo{
		AppState: appState,
	}
}

func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(room).Error; err != nil {
		log.Error().Err(err).Msg("failed to insert room")
		return app_error.Dependency("failed to create room", "db-error")
	}
	return nil
}

func (r *RoomRepo) CodeExists(ctx context.Context, code string) (bool, *app_error.AppError) {
	var count int64
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.Room{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, app_error.Dependency("failed to check room code", "db-error")
	}
	return count > 0, nil
}

func (r *RoomRepo) FindByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError) {
	var room entity.Room
	if err := r.AppState.DB.WithContext(ctx).Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("room not found or invalid code", "code")
		}
		log.Error().Err(err).Str("code", code).Msg("failed to fetch room by code")
		return nil, app_error.Dependency("failed to fetch room", "db-error")
	}
	return &room, nil
}

func (r *RoomRepo) FindByID(ctx context.Context, roomID string) (*entity.Room, *app_error.AppError) {
	var room entity.Room
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("room not found", "room_id")
		}
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to fetch room")
		return nil, app_error.Dependency("failed to fetch room", "db-error")
	}
	return &room, nil
}

func (r *RoomRepo) ListPublic(ctx context.Context) ([]entity.Room, *app_error.AppError) {
	var rooms []entity.Room
	err := r.AppState.DB.WithContext(ctx).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, app_error.Dependency("failed to list rooms", "db-error")
	}
	return rooms, nil
}

func (r *RoomRepo) TouchActivity(ctx context.Context, roomID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.Room{}).
		Where("id = ?", roomID).
		Update("last_activity", time.Now()).Error
	if err != nil {
		return app_error.Dependency("failed to update room activity", "db-error")
	}
	return nil
}

func (r *RoomRepo) FindMembership(ctx context.Context, roomID, userID string) (*entity.RoomMember, *app_error.AppError) {
	var member entity.RoomMember
	err := r.AppState.DB.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Str("user_id", userID).Msg("failed to fetch membership")
		return nil, app_error.Dependency("failed to fetch membership", "db-error")
	}
	return &member, nil
}

func (r *RoomRepo) AddMember(ctx context.Context, roomID, userID string) (bool, *app_error.AppError) {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var member entity.RoomMember
	err := tx.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return false, app_error.Dependency("failed to fetch membership", "db-error")
	}

	if found && member.IsActive {
		tx.Rollback()
		return true, nil
	}

	// Capacity-guarded counter bump. The conditional UPDATE locks the room
	// row, so concurrent joins serialize here and cannot overshoot
	// max_members.
	res := tx.Model(&entity.Room{}).
		Where("id = ? AND active_members < max_members", roomID).
		Updates(map[string]any{
			"active_members": gorm.Expr("active_members + 1"),
			"last_activity":  time.Now(),
		})
	if res.Error != nil {
		tx.Rollback()
		return false, app_error.Dependency("failed to update member count", "db-error")
	}
	if res.RowsAffected == 0 {
		// Either the room vanished or it is full; look to tell them apart.
		var count int64
		tx.Model(&entity.Room{}).Where("id = ?", roomID).Count(&count)
		tx.Rollback()
		if count == 0 {
			return false, app_error.NotFound("room not found", "room_id")
		}
		return false, app_error.Capacity("room is at maximum capacity")
	}

	if found {
		err = tx.Model(&entity.RoomMember{}).Where("id = ?", member.ID).Update("is_active", true).Error
	} else {
		err = tx.Create(&entity.RoomMember{
			RoomID:   roomID,
			UserID:   userID,
			IsActive: true,
			JoinedAt: time.Now(),
		}).Error
	}
	if err != nil {
		tx.Rollback()
		log.Error().Err(err).Str("room_id", roomID).Str("user_id", userID).Msg("failed to write membership")
		return false, app_error.Dependency("failed to join room", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return false, app_error.Dependency("failed to commit join", "db-error")
	}
	return false, nil
}

func (r *RoomRepo) RemoveMember(ctx context.Context, roomID, userID string) (bool, bool, *app_error.AppError) {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	res := tx.Model(&entity.RoomMember{}).
		Where("room_id = ? AND user_id = ? AND is_active = ?", roomID, userID, true).
		Update("is_active", false)
	if res.Error != nil {
		tx.Rollback()
		return false, false, app_error.Dependency("failed to leave room", "db-error")
	}
	if res.RowsAffected == 0 {
		// Already inactive or never a member: silent no-op.
		tx.Rollback()
		return false, false, nil
	}

	err := tx.Model(&entity.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]any{
			"active_members": gorm.Expr("active_members - 1"),
			"last_activity":  time.Now(),
		}).Error
	if err != nil {
		tx.Rollback()
		return false, false, app_error.Dependency("failed to update member count", "db-error")
	}

	// Count and delete share the transaction with the counter update above,
	// so a concurrent join blocks on the room row until this commits.
	var remaining int64
	if err := tx.Model(&entity.RoomMember{}).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Count(&remaining).Error; err != nil {
		tx.Rollback()
		return false, false, app_error.Dependency("failed to count members", "db-error")
	}

	roomDeleted := false
	if remaining == 0 {
		if err := tx.Where("room_id = ?", roomID).Delete(&entity.RoomMember{}).Error; err != nil {
			tx.Rollback()
			return false, false, app_error.Dependency("failed to delete memberships", "db-error")
		}
		if err := tx.Where("id = ?", roomID).Delete(&entity.Room{}).Error; err != nil {
			tx.Rollback()
			return false, false, app_error.Dependency("failed to delete room", "db-error")
		}
		roomDeleted = true
	}

	if err := tx.Commit().Error; err != nil {
		return false, false, app_error.Dependency("failed to commit leave", "db-error")
	}
	return true, roomDeleted, nil
}

func (r *RoomRepo) FindExpired(ctx context.Context, cutoff time.Time) ([]entity.Room, *app_error.AppError) {
	var rooms []entity.Room
	err := r.AppState.DB.WithContext(ctx).
		Where("active_members = 0 AND last_activity < ?", cutoff).
		Find(&rooms).Error
	if err != nil {
		return nil, app_error.Dependency("failed to find expired rooms", "db-error")
	}
	return rooms, nil
}

func (r *RoomRepo) DeleteEmptyRooms(ctx context.Context, roomIDs []string) ([]string, *app_error.AppError) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	// Emptiness re-checked inside the transaction: a room joined since the
	// sweep selected it keeps its rows and survives.
	var deletable []string
	if err := tx.Model(&entity.Room{}).
		Where("id IN ? AND active_members = 0", roomIDs).
		Pluck("id", &deletable).Error; err != nil {
		tx.Rollback()
		return nil, app_error.Dependency("failed to re-check rooms", "db-error")
	}
	if len(deletable) == 0 {
		tx.Rollback()
		return nil, nil
	}

	if err := tx.Where("room_id IN ?", deletable).Delete(&entity.RoomMember{}).Error; err != nil {
		tx.Rollback()
		return nil, app_error.Dependency("failed to delete memberships", "db-error")
	}

	if err := tx.Where("id IN ? AND active_members = 0", deletable).Delete(&entity.Room{}).Error; err != nil {
		tx.Rollback()
		return nil, app_error.Dependency("failed to delete rooms", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, app_error.Dependency("failed to commit cleanup", "db-error")
	}
	return deletable, nil
}
