package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants used for the client-server protocol
const (
	// Client to server messages
	MessageTypeCreateRoom    MessageType = "create_room"
	MessageTypeJoinRoom      MessageType = "join_room"
	MessageTypeLeaveRoom     MessageType = "leave_room"
	MessageTypeStartGame     MessageType = "start_game"
	MessageTypeAction        MessageType = "action"
	MessageTypeConfirmResult MessageType = "confirm_result"

	// Server to client messages
	MessageTypeRoomJoined    MessageType = "room_joined"
	MessageTypePlayerJoined  MessageType = "player_joined"
	MessageTypePlayerLeft    MessageType = "player_left"
	MessageTypeGameStarted   MessageType = "game_started"
	MessageTypeGameUpdate    MessageType = "game_update"
	MessageTypeHandResult    MessageType = "hand_result"
	MessageTypePlayerTimeout MessageType = "player_timeout"
	MessageTypeError         MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
