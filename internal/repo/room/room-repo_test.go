package room_repo

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sidhu69/live-room-chat/internal/entity"
	"github.com/sidhu69/live-room-chat/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) (RoomRepoContract, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	require.NoError(t, db.AutoMigrate(&entity.Room{}, &entity.RoomMember{}))

	repo := NewRoomRepo(&state.AppState{DB: db})
	return repo, db
}

var codeSeq int64

func seedRoom(t *testing.T, db *gorm.DB, maxMembers int) *entity.Room {
	t.Helper()

	room := &entity.Room{
		ID:           uuid.New(),
		Name:         "general",
		Code:         fmt.Sprintf("%06d", atomic.AddInt64(&codeSeq, 1)),
		IsPublic:     true,
		CreatorID:    "creator-1",
		MaxMembers:   maxMembers,
		LastActivity: time.Now(),
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func TestAddMember_NewMember(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	already, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")

	require.Nil(t, appErr)
	assert.False(t, already, "First join should not report already-member")

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.Equal(t, 1, fresh.ActiveMembers, "Counter should track the new member")

	var member entity.RoomMember
	require.NoError(t, db.First(&member, "room_id = ? AND user_id = ?", room.ID.String(), "user-1").Error)
	assert.True(t, member.IsActive)
}

func TestAddMember_Idempotent(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	_, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)

	already, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)
	assert.True(t, already, "Second join should be a no-op")

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.Equal(t, 1, fresh.ActiveMembers, "Counter must not double-count")

	var count int64
	require.NoError(t, db.Model(&entity.RoomMember{}).
		Where("room_id = ? AND user_id = ?", room.ID.String(), "user-1").
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "Only one membership row per (room, user)")
}

func TestAddMember_ReactivatesInactiveRow(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	require.NoError(t, db.Create(&entity.RoomMember{
		RoomID:   room.ID.String(),
		UserID:   "user-1",
		IsActive: false,
		JoinedAt: time.Now().Add(-time.Hour),
	}).Error)

	already, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")

	require.Nil(t, appErr)
	assert.False(t, already, "Re-join after leaving counts as a fresh join")

	var member entity.RoomMember
	require.NoError(t, db.First(&member, "room_id = ? AND user_id = ?", room.ID.String(), "user-1").Error)
	assert.True(t, member.IsActive, "Existing row should be reactivated, not duplicated")

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.Equal(t, 1, fresh.ActiveMembers)
}

func TestAddMember_RoomFull(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 2)

	for i := 0; i < 2; i++ {
		_, appErr := repo.AddMember(ctx, room.ID.String(), fmt.Sprintf("user-%d", i))
		require.Nil(t, appErr)
	}

	already, appErr := repo.AddMember(ctx, room.ID.String(), "user-late")

	require.NotNil(t, appErr, "Join beyond capacity should fail")
	assert.False(t, already)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "capacity", appErr.Field)

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.Equal(t, 2, fresh.ActiveMembers, "Counter must never exceed max_members")
}

func TestAddMember_RoomNotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	_, appErr := repo.AddMember(context.Background(), uuid.New().String(), "user-1")

	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestRemoveMember_LastLeaverDeletesRoom(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	_, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)

	left, roomDeleted, appErr := repo.RemoveMember(ctx, room.ID.String(), "user-1")

	require.Nil(t, appErr)
	assert.True(t, left)
	assert.True(t, roomDeleted, "Room should be cascade-deleted when the last member leaves")

	var roomCount, memberCount int64
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", room.ID.String()).Count(&roomCount).Error)
	require.NoError(t, db.Model(&entity.RoomMember{}).Where("room_id = ?", room.ID.String()).Count(&memberCount).Error)
	assert.Zero(t, roomCount, "Room row should be gone")
	assert.Zero(t, memberCount, "Membership rows should be gone with the room")
}

func TestRemoveMember_OthersRemain(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	_, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)
	_, appErr = repo.AddMember(ctx, room.ID.String(), "user-2")
	require.Nil(t, appErr)

	left, roomDeleted, appErr := repo.RemoveMember(ctx, room.ID.String(), "user-1")

	require.Nil(t, appErr)
	assert.True(t, left)
	assert.False(t, roomDeleted, "Room with remaining members must survive")

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.Equal(t, 1, fresh.ActiveMembers)

	var member entity.RoomMember
	require.NoError(t, db.First(&member, "room_id = ? AND user_id = ?", room.ID.String(), "user-1").Error)
	assert.False(t, member.IsActive, "Leaving deactivates the row instead of deleting it")
}

func TestRemoveMember_NoopWhenNotMember(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	left, roomDeleted, appErr := repo.RemoveMember(ctx, room.ID.String(), "stranger")

	require.Nil(t, appErr, "Leaving a room you never joined is not an error")
	assert.False(t, left)
	assert.False(t, roomDeleted)
}

func TestRemoveMember_NoopWhenAlreadyInactive(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	room := seedRoom(t, db, 10)

	_, appErr := repo.AddMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)
	_, appErr = repo.AddMember(ctx, room.ID.String(), "user-2")
	require.Nil(t, appErr)

	left, _, appErr := repo.RemoveMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)
	require.True(t, left)

	// Second leave must not decrement the counter again.
	left, _, appErr = repo.RemoveMember(ctx, room.ID.String(), "user-1")
	require.Nil(t, appErr)
	assert.False(t, left)

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.Equal(t, 1, fresh.ActiveMembers)
}

func TestFindMembership_NilWhenAbsent(t *testing.T) {
	repo, db := setupRepo(t)
	room := seedRoom(t, db, 10)

	member, appErr := repo.FindMembership(context.Background(), room.ID.String(), "nobody")

	require.Nil(t, appErr)
	assert.Nil(t, member)
}

func TestFindByCode_NotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	_, appErr := repo.FindByCode(context.Background(), "000000")

	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestFindExpired_And_DeleteEmptyRooms(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	stale := seedRoom(t, db, 10)
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", stale.ID.String()).
		Update("last_activity", time.Now().Add(-time.Hour)).Error)

	recent := seedRoom(t, db, 10)

	occupied := seedRoom(t, db, 10)
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", occupied.ID.String()).
		Update("last_activity", time.Now().Add(-time.Hour)).Error)
	_, appErr := repo.AddMember(ctx, occupied.ID.String(), "user-1")
	require.Nil(t, appErr)

	expired, appErr := repo.FindExpired(ctx, time.Now().Add(-5*time.Minute))
	require.Nil(t, appErr)

	require.Len(t, expired, 1, "Only the stale empty room is expired")
	assert.Equal(t, stale.ID, expired[0].ID)

	deleted, appErr := repo.DeleteEmptyRooms(ctx, []string{stale.ID.String()})
	require.Nil(t, appErr)
	assert.Equal(t, []string{stale.ID.String()}, deleted, "Sweep reports the rooms it removed")

	var count int64
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", stale.ID.String()).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", recent.ID.String()).Count(&count).Error)
	assert.Equal(t, int64(1), count, "Fresh room must survive the sweep")
}

func TestDeleteEmptyRooms_SkipsLateJoins(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	room := seedRoom(t, db, 10)
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", room.ID.String()).
		Update("last_activity", time.Now().Add(-time.Hour)).Error)

	// The sweep selected the room, then someone joined before the delete ran.
	_, appErr := repo.AddMember(ctx, room.ID.String(), "late-user")
	require.Nil(t, appErr)

	deleted, appErr := repo.DeleteEmptyRooms(ctx, []string{room.ID.String()})
	require.Nil(t, appErr)
	assert.Empty(t, deleted, "The spared room must not be reported as deleted")

	var roomCount, memberCount int64
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", room.ID.String()).Count(&roomCount).Error)
	require.NoError(t, db.Model(&entity.RoomMember{}).Where("room_id = ?", room.ID.String()).Count(&memberCount).Error)
	assert.Equal(t, int64(1), roomCount, "Occupied room must not be deleted")
	assert.Equal(t, int64(1), memberCount, "Its membership rows must be kept")
}

func TestTouchActivity(t *testing.T) {
	repo, db := setupRepo(t)
	room := seedRoom(t, db, 10)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&entity.Room{}).Where("id = ?", room.ID.String()).
		Update("last_activity", old).Error)

	require.Nil(t, repo.TouchActivity(context.Background(), room.ID.String()))

	var fresh entity.Room
	require.NoError(t, db.First(&fresh, "id = ?", room.ID.String()).Error)
	assert.True(t, fresh.LastActivity.After(old), "last_activity should move forward")
}
