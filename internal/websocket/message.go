package websocket

// Event types pushed to connected clients.
const (
	TypeRoomCreated   = "room_created"
	TypeRoomUpdated   = "room_updated"
	TypeRoomDeleted   = "room_deleted"
	TypeNewMessage    = "new_message"
	TypeUserStatus    = "user_status"
	TypeDirectMessage = "direct_message"
	TypeContactUpdate = "contact_update"
)

type OutgoingMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
