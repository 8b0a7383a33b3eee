package dm_dto

type SendFriendRequestRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type RespondContactRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type SendDirectMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type GetDirectMessagesRequest struct {
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=100"`
	BeforeID *string `json:"before_id,omitempty"`
}
