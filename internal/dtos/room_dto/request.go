package room_dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=80"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

type JoinRoomRequest struct {
	Code string `json:"code" validate:"required,roomcode"`
}

type LeaveRoomRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type GetMessagesRequest struct {
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=100"`
	BeforeID *string `json:"before_id,omitempty"`
}

var roomCodeRegex = regexp.MustCompile(`^\d{6}$`)

// RoomCodeValidator accepts exactly six digits, the shape GenerateRoomCode
// produces.
func RoomCodeValidator(fl validator.FieldLevel) bool {
	return roomCodeRegex.MatchString(fl.Field().String())
}
