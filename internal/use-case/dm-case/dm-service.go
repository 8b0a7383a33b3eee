package dm_service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/dtos/dm_dto"
	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/internal/notifier"
	contact_repo "github.com/sidhu69/live-room-chat/internal/repo/contact"
	dm_repo "github.com/sidhu69/live-room-chat/internal/repo/dm"
	user_repo "github.com/sidhu69/live-room-chat/internal/repo/user"
	"github.com/sidhu69/live-room-chat/state"
)

// A requester may send exactly one message while the request is pending;
// further messages have to wait for the addressee to accept.
const pendingMessageAllowance = 1

type DMService struct {
	AppState *state.AppState
	Contacts contact_repo.ContactRepoContract
	Messages dm_repo.DMRepoContract
	Users    user_repo.UserRepoContract
	Notify   notifier.Notifier
}

func NewDMService(appState *state.AppState, notify notifier.Notifier) DMServiceContract {
	return &DMService{
		AppState: appState,
		Contacts: contact_repo.NewContactRepo(appState),
		Messages: dm_repo.NewDMRepo(appState),
		Users:    user_repo.NewUserRepo(appState),
		Notify:   notify,
	}
}

func (s *DMService) SendFriendRequest(ctx context.Context, requesterID, addresseeID string) (*dm_dto.ContactResponse, *app_error.AppError) {
	if requesterID == addresseeID {
		return nil, app_error.Validation("cannot send a friend request to yourself", "user_id")
	}

	addressee, appErr := s.Users.FindByID(ctx, addresseeID)
	if appErr != nil {
		return nil, appErr
	}

	existing, appErr := s.Contacts.FindBetween(ctx, requesterID, addresseeID)
	if appErr != nil {
		return nil, appErr
	}
	if existing != nil {
		switch existing.Status {
		case entity.ContactAccepted:
			return nil, app_error.NewAppError(http.StatusConflict, "you are already connected with this user", "user_id")
		case entity.ContactPending:
			return nil, app_error.NewAppError(http.StatusConflict, "a friend request is already pending between you", "user_id")
		default:
			return nil, app_error.NewAppError(http.StatusConflict, "a previous friend request between you was rejected", "user_id")
		}
	}

	contact, appErr := s.Contacts.Create(ctx, requesterID, addresseeID)
	if appErr != nil {
		return nil, appErr
	}

	requester, appErr := s.Users.FindByID(ctx, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	// Addressee sees the incoming request in realtime.
	s.publishContactEvent(ctx, notifier.OpInsert, addresseeID,
		dm_dto.NewContactResponse(contact, addresseeID, requester.Username))

	resp := dm_dto.NewContactResponse(contact, requesterID, addressee.Username)
	log.Info().Str("requester_id", requesterID).Str("addressee_id", addresseeID).Msg("friend request sent")
	return &resp, nil
}

func (s *DMService) RespondToRequest(ctx context.Context, userID string, contactID int64, status string) (*dm_dto.ContactResponse, *app_error.AppError) {
	contact, appErr := s.Contacts.FindByID(ctx, contactID)
	if appErr != nil {
		return nil, appErr
	}

	if contact.AddresseeID != userID {
		return nil, app_error.NewAppError(http.StatusForbidden, "only the addressee can respond to a friend request", "contact_id")
	}
	if contact.Status != entity.ContactPending {
		return nil, app_error.NewAppError(http.StatusConflict, "this friend request has already been resolved", "contact_id")
	}

	if appErr := s.Contacts.UpdateStatus(ctx, contactID, status); appErr != nil {
		return nil, appErr
	}
	contact.Status = status

	addressee, appErr := s.Users.FindByID(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	// Requester learns the outcome in realtime.
	s.publishContactEvent(ctx, notifier.OpUpdate, contact.RequesterID,
		dm_dto.NewContactResponse(contact, contact.RequesterID, addressee.Username))

	requester, appErr := s.Users.FindByID(ctx, contact.RequesterID)
	if appErr != nil {
		return nil, appErr
	}

	resp := dm_dto.NewContactResponse(contact, userID, requester.Username)
	log.Info().Int64("contact_id", contactID).Str("status", status).Msg("friend request resolved")
	return &resp, nil
}

func (s *DMService) ListContacts(ctx context.Context, userID string) ([]dm_dto.ContactResponse, *app_error.AppError) {
	contacts, appErr := s.Contacts.ListByStatus(ctx, userID, entity.ContactAccepted)
	if appErr != nil {
		return nil, appErr
	}
	return s.renderContacts(ctx, userID, contacts)
}

func (s *DMService) ListPendingRequests(ctx context.Context, userID string) ([]dm_dto.ContactResponse, *app_error.AppError) {
	contacts, appErr := s.Contacts.ListIncomingPending(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	return s.renderContacts(ctx, userID, contacts)
}

func (s *DMService) SendDirectMessage(ctx context.Context, senderID, recipientID, content string) (*dm_dto.DirectMessageResponse, *app_error.AppError) {
	if senderID == recipientID {
		return nil, app_error.Validation("cannot message yourself", "user_id")
	}

	contact, appErr := s.Contacts.FindBetween(ctx, senderID, recipientID)
	if appErr != nil {
		return nil, appErr
	}
	if contact == nil || contact.Status == entity.ContactRejected {
		return nil, app_error.NewAppError(http.StatusForbidden, "you are not connected with this user", "user_id")
	}

	if contact.Status == entity.ContactPending {
		if contact.RequesterID != senderID {
			return nil, app_error.NewAppError(http.StatusForbidden, "accept the friend request to start messaging", "user_id")
		}
		sent, appErr := s.Messages.CountBySender(ctx, senderID, recipientID)
		if appErr != nil {
			return nil, appErr
		}
		if sent >= pendingMessageAllowance {
			return nil, app_error.NewAppError(http.StatusForbidden,
				"Wait for the user to accept your friend request to send more messages", "user_id")
		}
	}

	msgID, appErr := s.Messages.Insert(ctx, senderID, recipientID, content)
	if appErr != nil {
		return nil, appErr
	}

	resp := &dm_dto.DirectMessageResponse{
		MessageID:   msgID.Hex(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now(),
	}

	s.publishDirectMessageEvent(ctx, notifier.OpInsert, recipientID, resp)
	return resp, nil
}

func (s *DMService) GetConversation(ctx context.Context, userID, otherID string, req dm_dto.GetDirectMessagesRequest) (*dm_dto.ConversationResponse, *app_error.AppError) {
	contact, appErr := s.Contacts.FindBetween(ctx, userID, otherID)
	if appErr != nil {
		return nil, appErr
	}
	if contact == nil {
		return nil, app_error.NewAppError(http.StatusForbidden, "you are not connected with this user", "user_id")
	}

	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	messages, appErr := s.Messages.ListConversation(ctx, userID, otherID, limit, req.BeforeID)
	if appErr != nil {
		return nil, appErr
	}

	// Opening the conversation reads it; the sender gets a receipt.
	stamped, appErr := s.Messages.MarkRead(ctx, userID, otherID)
	if appErr != nil {
		log.Error().Str("user_id", userID).Msgf("failed to mark direct messages read: %s", appErr.Message)
	} else if stamped > 0 {
		s.publishReadReceipt(ctx, otherID, userID, stamped)
	}

	resp := &dm_dto.ConversationResponse{
		UserID:   otherID,
		Messages: make([]dm_dto.DirectMessageResponse, len(messages)),
	}
	for i, msg := range messages {
		resp.Messages[i] = dm_dto.DirectMessageResponse{
			MessageID:   msg.ID.Hex(),
			SenderID:    msg.SenderID,
			RecipientID: msg.RecipientID,
			Content:     msg.Content,
			ReadAt:      msg.ReadAt,
			CreatedAt:   msg.CreateAt,
		}
	}
	return resp, nil
}

func (s *DMService) renderContacts(ctx context.Context, userID string, contacts []entity.Contact) ([]dm_dto.ContactResponse, *app_error.AppError) {
	ids := make([]string, 0, len(contacts))
	for _, c := range contacts {
		if c.RequesterID == userID {
			ids = append(ids, c.AddresseeID)
		} else {
			ids = append(ids, c.RequesterID)
		}
	}

	users, appErr := s.Users.FindByIDs(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	resp := make([]dm_dto.ContactResponse, len(contacts))
	for i := range contacts {
		resp[i] = dm_dto.NewContactResponse(&contacts[i], userID, names[ids[i]])
	}
	return resp, nil
}

// Contact and direct-message events ride the per-user topic; a publish
// failure never fails the request that caused it.

func (s *DMService) publishContactEvent(ctx context.Context, op, targetUserID string, contact dm_dto.ContactResponse) {
	data, err := json.Marshal(contact)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal contact event")
		return
	}
	ev := notifier.Event{
		Table:  "contacts",
		Op:     op,
		UserID: targetUserID,
		Data:   data,
		At:     time.Now(),
	}
	if err := s.Notify.Publish(ctx, notifier.UserTopic(targetUserID), ev); err != nil {
		log.Error().Err(err).Str("user_id", targetUserID).Msg("failed to publish contact event")
	}
}

func (s *DMService) publishDirectMessageEvent(ctx context.Context, op, targetUserID string, msg *dm_dto.DirectMessageResponse) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal direct message event")
		return
	}
	ev := notifier.Event{
		Table:  "direct_messages",
		Op:     op,
		UserID: targetUserID,
		Data:   data,
		At:     time.Now(),
	}
	if err := s.Notify.Publish(ctx, notifier.UserTopic(targetUserID), ev); err != nil {
		log.Error().Err(err).Str("user_id", targetUserID).Msg("failed to publish direct message event")
	}
}

func (s *DMService) publishReadReceipt(ctx context.Context, senderID, readerID string, count int64) {
	data, err := json.Marshal(map[string]any{
		"reader_id": readerID,
		"count":     count,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal read receipt")
		return
	}
	ev := notifier.Event{
		Table:  "direct_messages",
		Op:     notifier.OpUpdate,
		UserID: senderID,
		Data:   data,
		At:     time.Now(),
	}
	if err := s.Notify.Publish(ctx, notifier.UserTopic(senderID), ev); err != nil {
		log.Error().Err(err).Str("user_id", senderID).Msg("failed to publish read receipt")
	}
}
