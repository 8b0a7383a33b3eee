package contact_repo

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/state"
	"gorm.io/gorm"
)

type ContactRepo struct {
	AppState *state.AppState
}

func NewContactRepo(appState *state.AppState) ContactRepoContract {
	return &ContactRepo{
		AppState: appState,
	}
}

func (r *ContactRepo) Create(ctx context.Context, requesterID, addresseeID string) (*entity.Contact, *app_error.AppError) {
	contact := entity.Contact{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      entity.ContactPending,
	}
	if err := r.AppState.DB.WithContext(ctx).Create(&contact).Error; err != nil {
		log.Error().Err(err).Str("requester_id", requesterID).Str("addressee_id", addresseeID).Msg("failed to create contact")
		return nil, app_error.Dependency("failed to create contact", "db-error")
	}
	return &contact, nil
}

func (r *ContactRepo) FindByID(ctx context.Context, contactID int64) (*entity.Contact, *app_error.AppError) {
	var contact entity.Contact
	if err := r.AppState.DB.WithContext(ctx).First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("contact not found", "contact_id")
		}
		return nil, app_error.Dependency("failed to fetch contact", "db-error")
	}
	return &contact, nil
}

func (r *ContactRepo) FindBetween(ctx context.Context, userA, userB string) (*entity.Contact, *app_error.AppError) {
	var contact entity.Contact
	err := r.AppState.DB.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, app_error.Dependency("failed to fetch contact", "db-error")
	}
	return &contact, nil
}

func (r *ContactRepo) UpdateStatus(ctx context.Context, contactID int64, status string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.Contact{}).
		Where("id = ?", contactID).
		Update("status", status).Error
	if err != nil {
		log.Error().Err(err).Int64("contact_id", contactID).Msg("failed to update contact status")
		return app_error.Dependency("failed to update contact", "db-error")
	}
	return nil
}

func (r *ContactRepo) ListByStatus(ctx context.Context, userID, status string) ([]entity.Contact, *app_error.AppError) {
	var contacts []entity.Contact
	err := r.AppState.DB.WithContext(ctx).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?", userID, userID, status).
		Order("updated_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, app_error.Dependency("failed to list contacts", "db-error")
	}
	return contacts, nil
}

func (r *ContactRepo) ListIncomingPending(ctx context.Context, userID string) ([]entity.Contact, *app_error.AppError) {
	var contacts []entity.Contact
	err := r.AppState.DB.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, entity.ContactPending).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, app_error.Dependency("failed to list pending requests", "db-error")
	}
	return contacts, nil
}
