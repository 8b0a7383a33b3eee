package room_repo

import (
	"context"
	"time"

	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
)

type RoomRepoContract interface {
	Create(ctx context.Context, room *entity.Room) *app_error.AppError
	CodeExists(ctx context.Context, code string) (bool, *app_error.AppError)
	FindByCode(ctx context.Context, code string) (*entity.Room, *app_error.AppError)
	FindByID(ctx context.Context, roomID string) (*entity.Room, *app_error.AppError)
	ListPublic(ctx context.Context) ([]entity.Room, *app_error.AppError)
	TouchActivity(ctx context.Context, roomID string) *app_error.AppError

	// FindMembership returns (nil, nil) when no row exists for the pair.
	FindMembership(ctx context.Context, roomID, userID string) (*entity.RoomMember, *app_error.AppError)

	// AddMember activates a membership for (roomID, userID): it reactivates an
	// inactive row or inserts a new one, and bumps the active-member counter
	// under a capacity guard, all in one transaction. Returns already=true and
	// does nothing when the caller is an active member.
	AddMember(ctx context.Context, roomID, userID string) (already bool, appErr *app_error.AppError)

	// RemoveMember deactivates the caller's membership if it is active. A
	// missing or inactive row is a silent no-op (left=false). When the last
	// active member leaves, the room and its membership rows are deleted in
	// the same transaction and roomDeleted is true.
	RemoveMember(ctx context.Context, roomID, userID string) (left bool, roomDeleted bool, appErr *app_error.AppError)

	// FindExpired lists rooms with no active members whose last activity is
	// older than the cutoff.
	FindExpired(ctx context.Context, cutoff time.Time) ([]entity.Room, *app_error.AppError)

	// DeleteEmptyRooms bulk-deletes the given rooms and their memberships,
	// re-checking emptiness so a late join is never destroyed. It returns
	// the ids of the rooms it actually deleted; callers must not assume
	// every requested id was removed.
	DeleteEmptyRooms(ctx context.Context, roomIDs []string) ([]string, *app_error.AppError)
}
