package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/roomcode"
)

// RoomManager is the registry of live rooms, keyed by join code.
type RoomManager struct {
	logger *log.Logger
	cfg    TableSettings
	clock  quartz.Clock

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRoomManager creates an empty registry. Rooms created through it
// share the table settings and clock.
func NewRoomManager(logger *log.Logger, cfg TableSettings, clock quartz.Clock) *RoomManager {
	return &RoomManager{
		logger: logger.WithPrefix("rooms"),
		cfg:    cfg,
		clock:  clock,
		rooms:  make(map[string]*Room),
	}
}

// Create makes a new room under a fresh join code.
func (m *RoomManager) Create() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Codes are six characters from a 31-symbol alphabet; collisions
	// among live rooms are rare but possible.
	code := roomcode.Generate()
	for m.rooms[code] != nil {
		code = roomcode.Generate()
	}

	room := NewRoom(code, m.cfg, m.logger, m.clock, m.remove)
	m.rooms[code] = room
	m.logger.Info("room created", "room", code, "total", len(m.rooms))
	return room
}

// Get looks up a room by join code, normalizing hand-typed input.
func (m *RoomManager) Get(code string) *Room {
	code = roomcode.Normalize(code)
	if err := roomcode.Validate(code); err != nil {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// Count returns the number of live rooms.
func (m *RoomManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// remove drops an emptied room from the registry.
func (m *RoomManager) remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[code]; ok {
		delete(m.rooms, code)
		m.logger.Info("room closed", "room", code, "total", len(m.rooms))
	}
}
