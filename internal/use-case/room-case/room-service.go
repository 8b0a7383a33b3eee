package room_service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/config"
	"github.com/sidhu69/live-room-chat/internal/dtos/room_dto"
	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	message_repo "github.com/sidhu69/live-room-chat/internal/repo/message"
	rank_repo "github.com/sidhu69/live-room-chat/internal/repo/rank"
	room_repo "github.com/sidhu69/live-room-chat/internal/repo/room"
	user_repo "github.com/sidhu69/live-room-chat/internal/repo/user"
	"github.com/sidhu69/live-room-chat/internal/utils"
	"github.com/sidhu69/live-room-chat/state"
)

const maxCodeAttempts = 10

type RoomService struct {
	AppState *state.AppState
	Rooms    room_repo.RoomRepoContract
	Messages message_repo.MessageRepoContract
	Users    user_repo.UserRepoContract
	Rank     rank_repo.RankRepoContract
	Notify   notifier.Notifier

	EmptyRoomTTL    time.Duration
	DefaultCapacity int
}

func NewRoomService(appState *state.AppState, notify notifier.Notifier) RoomServiceContract {
	return &RoomService{
		AppState:        appState,
		Rooms:           room_repo.NewRoomRepo(appState),
		Messages:        message_repo.NewMessageRepo(appState),
		Users:           user_repo.NewUserRepo(appState),
		Rank:            rank_repo.NewRankRepo(appState),
		Notify:          notify,
		EmptyRoomTTL:    config.Conf.EmptyRoomTTL(),
		DefaultCapacity: config.Conf.ROOM.DefaultCapacity,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, req room_dto.CreateRoomRequest, creatorID string) (*room_dto.RoomResponse, *app_error.AppError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, app_error.Validation("room name is required", "name")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	code, appErr := s.generateUniqueCode(ctx)
	if appErr != nil {
		return nil, appErr
	}

	room := &entity.Room{
		ID:            uuid.New(),
		Name:          name,
		Code:          code,
		IsPublic:      isPublic,
		CreatorID:     creatorID,
		ActiveMembers: 0,
		MaxMembers:    s.DefaultCapacity,
		LastActivity:  time.Now(),
	}

	if appErr := s.Rooms.Create(ctx, room); appErr != nil {
		return nil, appErr
	}

	// The creator joins through the same path as everyone else. A failure
	// here is logged but does not undo the room insert; the room exists with
	// zero counted members until the creator re-joins (accepted
	// inconsistency).
	if _, appErr := s.Rooms.AddMember(ctx, room.ID.String(), creatorID); appErr != nil {
		log.Error().Str("room_id", room.ID.String()).Str("user_id", creatorID).
			Msgf("creator membership insert failed: %s", appErr.Message)
	}

	fresh, appErr := s.Rooms.FindByID(ctx, room.ID.String())
	if appErr != nil {
		fresh = room
	}

	resp := room_dto.NewRoomResponse(fresh)
	s.publishRoomEvent(ctx, notifier.OpInsert, resp)

	log.Info().Str("room_id", resp.ID).Str("code", resp.Code).Msg("room created")
	return &resp, nil
}

func (s *RoomService) JoinRoom(ctx context.Context, code, userID string) (*room_dto.JoinRoomResponse, *app_error.AppError) {
	room, appErr := s.Rooms.FindByCode(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	// Fast reject; the transactional guard in AddMember re-checks under the
	// row lock.
	if room.ActiveMembers >= room.MaxMembers {
		return nil, app_error.Capacity("room is at maximum capacity")
	}

	already, appErr := s.Rooms.AddMember(ctx, room.ID.String(), userID)
	if appErr != nil {
		return nil, appErr
	}

	if already {
		return &room_dto.JoinRoomResponse{
			AlreadyMember: true,
			Room:          room_dto.NewRoomResponse(room),
		}, nil
	}

	fresh, appErr := s.Rooms.FindByID(ctx, room.ID.String())
	if appErr != nil {
		fresh = room
	}

	resp := room_dto.NewRoomResponse(fresh)
	s.publishRoomEvent(ctx, notifier.OpUpdate, resp)

	log.Info().Str("room_id", resp.ID).Str("user_id", userID).Msg("user joined room")
	return &room_dto.JoinRoomResponse{
		AlreadyMember: false,
		Room:          resp,
	}, nil
}

func (s *RoomService) LeaveRoom(ctx context.Context, roomID, userID string) *app_error.AppError {
	left, roomDeleted, appErr := s.Rooms.RemoveMember(ctx, roomID, userID)
	if appErr != nil {
		return appErr
	}

	if !left {
		// Not an active member; leaving a room you are not in is a no-op.
		return nil
	}

	if roomDeleted {
		// Message deletion is best effort: the room row is already gone and
		// orphaned messages are invisible to clients.
		if appErr := s.Messages.DeleteByRoom(ctx, roomID); appErr != nil {
			log.Error().Str("room_id", roomID).Msgf("failed to delete messages of emptied room: %s", appErr.Message)
		}
		s.publishRoomEvent(ctx, notifier.OpDelete, room_dto.RoomResponse{ID: roomID})
		log.Info().Str("room_id", roomID).Msg("deleted empty room")
		return nil
	}

	if fresh, appErr := s.Rooms.FindByID(ctx, roomID); appErr == nil {
		s.publishRoomEvent(ctx, notifier.OpUpdate, room_dto.NewRoomResponse(fresh))
	}

	log.Info().Str("room_id", roomID).Str("user_id", userID).Msg("user left room")
	return nil
}

func (s *RoomService) CleanupExpiredRooms(ctx context.Context) (*room_dto.CleanupResponse, *app_error.AppError) {
	cutoff := time.Now().Add(-s.EmptyRoomTTL)

	expired, appErr := s.Rooms.FindExpired(ctx, cutoff)
	if appErr != nil {
		return nil, appErr
	}

	if len(expired) == 0 {
		return &room_dto.CleanupResponse{CleanedCount: 0, CleanedRooms: []room_dto.CleanedRoom{}}, nil
	}

	ids := make([]string, len(expired))
	byID := make(map[string]entity.Room, len(expired))
	for i, room := range expired {
		ids[i] = room.ID.String()
		byID[ids[i]] = room
	}

	// Only rooms the delete transaction actually removed get their messages
	// purged, a DELETE event, and a spot in the report. A room joined
	// between selection and deletion stays fully intact.
	deleted, appErr := s.Rooms.DeleteEmptyRooms(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}

	cleaned := make([]room_dto.CleanedRoom, 0, len(deleted))
	for _, roomID := range deleted {
		if appErr := s.Messages.DeleteByRoom(ctx, roomID); appErr != nil {
			log.Error().Str("room_id", roomID).Msgf("cleanup: failed to delete messages: %s", appErr.Message)
		}
		s.publishRoomEvent(ctx, notifier.OpDelete, room_dto.RoomResponse{ID: roomID})
		room := byID[roomID]
		cleaned = append(cleaned, room_dto.CleanedRoom{
			ID:   roomID,
			Name: room.Name,
			Code: room.Code,
		})
	}

	log.Info().Int("count", len(cleaned)).Msg("cleaned up expired rooms")
	return &room_dto.CleanupResponse{
		CleanedCount: len(cleaned),
		CleanedRooms: cleaned,
	}, nil
}

func (s *RoomService) ListPublicRooms(ctx context.Context) ([]room_dto.RoomResponse, *app_error.AppError) {
	rooms, appErr := s.Rooms.ListPublic(ctx)
	if appErr != nil {
		return nil, appErr
	}

	resp := make([]room_dto.RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = room_dto.NewRoomResponse(&rooms[i])
	}
	return resp, nil
}

func (s *RoomService) SendMessage(ctx context.Context, roomID, senderID, content string) (*room_dto.MessageResponse, *app_error.AppError) {
	if _, appErr := s.Rooms.FindByID(ctx, roomID); appErr != nil {
		return nil, appErr
	}

	member, appErr := s.Rooms.FindMembership(ctx, roomID, senderID)
	if appErr != nil {
		return nil, appErr
	}
	if member == nil || !member.IsActive {
		return nil, app_error.NewAppError(http.StatusForbidden, "you are not a member of this room", "membership")
	}

	msgID, appErr := s.Messages.Insert(ctx, roomID, senderID, content)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := s.Rooms.TouchActivity(ctx, roomID); appErr != nil {
		log.Error().Str("room_id", roomID).Msgf("failed to touch room activity: %s", appErr.Message)
	}
	if appErr := s.Rank.IncrMessageCount(ctx, senderID); appErr != nil {
		log.Error().Str("user_id", senderID).Msgf("failed to bump leaderboard: %s", appErr.Message)
	}

	resp := &room_dto.MessageResponse{
		MessageID: msgID.Hex(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	s.publishMessageEvent(ctx, roomID, resp)
	return resp, nil
}

func (s *RoomService) GetMessages(ctx context.Context, req room_dto.GetMessagesRequest, roomID string) (*room_dto.GetMessagesResponse, *app_error.AppError) {
	if _, appErr := s.Rooms.FindByID(ctx, roomID); appErr != nil {
		return nil, appErr
	}

	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	messages, appErr := s.Messages.ListByRoom(ctx, roomID, limit, req.BeforeID)
	if appErr != nil {
		return nil, appErr
	}

	resp := &room_dto.GetMessagesResponse{
		RoomID:   roomID,
		Messages: make([]room_dto.MessageResponse, len(messages)),
	}
	for i, msg := range messages {
		resp.Messages[i] = room_dto.MessageResponse{
			MessageID: msg.ID.Hex(),
			RoomID:    msg.RoomID,
			SenderID:  msg.SenderID,
			Content:   msg.Content,
			CreatedAt: msg.CreateAt,
		}
	}
	return resp, nil
}

func (s *RoomService) Ranking(ctx context.Context, limit int) ([]room_dto.RankEntry, *app_error.AppError) {
	entries, appErr := s.Rank.Top(ctx, limit)
	if appErr != nil {
		return nil, appErr
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}

	users, appErr := s.Users.FindByIDs(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	resp := make([]room_dto.RankEntry, len(entries))
	for i, e := range entries {
		resp[i] = room_dto.RankEntry{
			UserID:   e.UserID,
			Username: names[e.UserID],
			Score:    e.Score,
		}
	}
	return resp, nil
}

// Realtime propagation is out-of-band and at-least-once; a publish failure
// never fails the request that caused it.

func (s *RoomService) publishRoomEvent(ctx context.Context, op string, room room_dto.RoomResponse) {
	data, err := json.Marshal(room)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal room event")
		return
	}
	ev := notifier.Event{
		Table:  "rooms",
		Op:     op,
		RoomID: room.ID,
		Data:   data,
		At:     time.Now(),
	}
	if err := s.Notify.Publish(ctx, notifier.TopicRooms, ev); err != nil {
		log.Error().Err(err).Str("room_id", room.ID).Msg("failed to publish room event")
	}
}

func (s *RoomService) publishMessageEvent(ctx context.Context, roomID string, msg *room_dto.MessageResponse) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal message event")
		return
	}
	ev := notifier.Event{
		Table:  "messages",
		Op:     notifier.OpInsert,
		RoomID: roomID,
		Data:   data,
		At:     time.Now(),
	}
	if err := s.Notify.Publish(ctx, notifier.MessageTopic(roomID), ev); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to publish message event")
	}
}

func (s *RoomService) generateUniqueCode(ctx context.Context) (string, *app_error.AppError) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.GenerateRoomCode()
		if err != nil {
			return "", app_error.Dependency("failed to generate room code", "codegen")
		}

		exists, appErr := s.Rooms.CodeExists(ctx, code)
		if appErr != nil {
			return "", appErr
		}
		if !exists {
			return code, nil
		}
		log.Warn().Str("code", code).Int("attempt", attempt+1).Msg("room code collision, retrying")
	}
	return "", app_error.Dependency("failed to generate a unique room code", "codegen")
}
