package contact_repo

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
)

type ContactRepoContract interface {
	Create(ctx context.Context, requesterID, addresseeID string) (*entity.Contact, *app_error.AppError)
	FindByID(ctx context.Context, contactID int64) (*entity.Contact, *app_error.AppError)

	// FindBetween returns the edge between the two users in either
	// direction, or (nil, nil) when none exists.
	FindBetween(ctx context.Context, userA, userB string) (*entity.Contact, *app_error.AppError)

	UpdateStatus(ctx context.Context, contactID int64, status string) *app_error.AppError

	// ListByStatus lists edges with the given status that touch the user
	// on either side.
	ListByStatus(ctx context.Context, userID, status string) ([]entity.Contact, *app_error.AppError)

	// ListIncomingPending lists pending requests addressed to the user.
	ListIncomingPending(ctx context.Context, userID string) ([]entity.Contact, *app_error.AppError)
}
