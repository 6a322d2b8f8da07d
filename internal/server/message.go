package server

import (
	"encoding/json"
	"time"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	PlayerName string `json:"playerName"`
}

type JoinRoomData struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
	Seq    uint64 `json:"seq"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomJoinedData struct {
	RoomCode string      `json:"roomCode"`
	PlayerID string      `json:"playerId"`
	Players  []LobbySeat `json:"players"`
}

type LobbySeat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Chips int    `json:"chips"`
}

type PlayerJoinedData struct {
	Player LobbySeat `json:"player"`
}

type PlayerLeftData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type PlayerTimeoutData struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
}
