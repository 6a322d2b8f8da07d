package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

// sender is the outbound half of a client connection. Connections
// implement it; tests substitute a recorder.
type sender interface {
	SendMessage(msg *Message) error
}

// Room is one table and its connected players. All table access is
// funneled through a single event goroutine, so the game engine needs
// no locking of its own. Handler methods post closures to the event
// channel and return immediately.
type Room struct {
	code   string
	logger *log.Logger
	cfg    TableSettings

	table *game.Table
	timer *game.ActionTimer

	events chan func()
	done   chan struct{}
	once   sync.Once

	// members maps player IDs to their connections. Only the event
	// goroutine touches it.
	members map[string]sender
	names   map[string]string

	// onEmpty is called after the last member leaves.
	onEmpty func(code string)
}

// NewRoom creates a room and starts its event loop.
func NewRoom(code string, cfg TableSettings, logger *log.Logger, clock quartz.Clock, onEmpty func(code string)) *Room {
	logger = logger.WithPrefix("room").With("room", code)

	r := &Room{
		code:    code,
		logger:  logger,
		cfg:     cfg,
		table:   game.NewTable(logger, randutil.NewFromTime(), cfg.SmallBlind, cfg.BigBlind, cfg.MaxPlayers),
		timer:   game.NewActionTimer(clock, time.Duration(cfg.ActionTimeoutSeconds)*time.Second),
		events:  make(chan func(), 64),
		done:    make(chan struct{}),
		members: make(map[string]sender),
		names:   make(map[string]string),
		onEmpty: onEmpty,
	}
	go r.run()
	return r
}

// Code returns the room's join code.
func (r *Room) Code() string {
	return r.code
}

func (r *Room) run() {
	for {
		select {
		case event := <-r.events:
			event()
		case <-r.done:
			return
		}
	}
}

// do posts an event to the room's loop. Events posted after close are
// dropped.
func (r *Room) do(event func()) {
	select {
	case r.events <- event:
	case <-r.done:
	}
}

// close stops the event loop and the action timer.
func (r *Room) close() {
	r.once.Do(func() {
		r.timer.Cancel()
		close(r.done)
	})
}

// Join seats a player and sends them the room state. Returns the new
// player's ID via the room_joined message.
func (r *Room) Join(conn sender, playerName string) {
	r.do(func() {
		playerID := uuid.NewString()
		if err := r.table.AddPlayer(playerID, playerName, r.cfg.BuyIn); err != nil {
			r.sendError(conn, "join_failed", err.Error())
			return
		}

		r.members[playerID] = conn
		r.names[playerID] = playerName
		r.logger.Info("player joined", "player", playerID, "name", playerName)

		if c, ok := conn.(*Connection); ok {
			c.SetPlayer(playerID)
			c.SetRoom(r)
		}

		seats := make([]LobbySeat, 0, len(r.table.Players()))
		for _, p := range r.table.Players() {
			seats = append(seats, LobbySeat{ID: p.ID, Name: p.Name, Chips: p.Chips})
		}
		r.send(conn, MessageTypeRoomJoined, RoomJoinedData{
			RoomCode: r.code,
			PlayerID: playerID,
			Players:  seats,
		})

		joined := LobbySeat{ID: playerID, Name: playerName, Chips: r.cfg.BuyIn}
		for id, member := range r.members {
			if id != playerID {
				r.send(member, MessageTypePlayerJoined, PlayerJoinedData{Player: joined})
			}
		}

		// Players joining mid-hand spectate until the next deal.
		if r.table.Hand() != nil {
			r.sendUpdate(playerID)
		}
	})
}

// StartGame deals the first hand.
func (r *Room) StartGame(playerID string) {
	r.do(func() {
		conn := r.members[playerID]
		if conn == nil {
			return
		}

		if err := r.table.StartHand(); err != nil {
			r.sendError(conn, "start_failed", err.Error())
			return
		}

		r.broadcastType(MessageTypeGameStarted)
		r.broadcast()
		r.rearmTimer()
	})
}

// Action applies a player action against the hand's current sequence
// number.
func (r *Room) Action(playerID string, data ActionData) {
	r.do(func() {
		conn := r.members[playerID]
		if conn == nil {
			return
		}

		action, ok := game.ParseAction(data.Action)
		if !ok {
			r.sendError(conn, "invalid_action", "unknown action "+data.Action)
			return
		}

		if err := r.table.ApplyAction(playerID, action, data.Amount, data.Seq); err != nil {
			r.sendError(conn, "action_rejected", err.Error())
			return
		}

		r.afterMutation()
	})
}

// Confirm acknowledges the last hand result for one player.
func (r *Room) Confirm(playerID string) {
	r.do(func() {
		conn := r.members[playerID]
		if conn == nil {
			return
		}

		started, err := r.table.ConfirmResult(playerID)
		if err != nil {
			r.sendError(conn, "confirm_rejected", err.Error())
			return
		}

		if started {
			r.broadcastType(MessageTypeGameStarted)
			r.afterMutation()
			return
		}

		// Show everyone who the next hand is still waiting on.
		r.broadcast()
	})
}

// Leave removes a player: their live hand folds and, if the table was
// holding for their confirmation, the barrier releases without them.
func (r *Room) Leave(playerID string) {
	r.do(func() {
		if _, ok := r.members[playerID]; !ok {
			return
		}
		r.dropMember(playerID)
	})
}

func (r *Room) dropMember(playerID string) {
	name := r.names[playerID]
	delete(r.members, playerID)
	delete(r.names, playerID)

	handNum := r.table.HandNum()
	r.table.OnDisconnect(playerID)
	r.logger.Info("player left", "player", playerID, "name", name)

	for _, member := range r.members {
		r.send(member, MessageTypePlayerLeft, PlayerLeftData{PlayerID: playerID, Name: name})
	}

	if len(r.members) == 0 {
		if r.onEmpty != nil {
			r.onEmpty(r.code)
		}
		r.close()
		return
	}

	if r.table.Hand() != nil {
		if r.table.HandNum() > handNum {
			// The departure released the confirmation barrier.
			r.broadcastType(MessageTypeGameStarted)
		}
		r.afterMutation()
	}
}

// afterMutation broadcasts the new state and keeps the action timer in
// step with the seat to act.
func (r *Room) afterMutation() {
	hand := r.table.Hand()
	if hand != nil && hand.Complete() {
		result := resultView(hand.Results)
		for _, member := range r.members {
			r.send(member, MessageTypeHandResult, result)
		}
	}
	r.broadcast()
	r.rearmTimer()
}

// rearmTimer arms the auto-fold timer for the seat to act, binding it
// to the hand's current sequence number. Anything that changes the
// sequence before the fire invalidates it.
func (r *Room) rearmTimer() {
	hand := r.table.Hand()
	if hand == nil || r.table.AwaitingConfirmation() || hand.Complete() || hand.ToAct < 0 {
		r.timer.Cancel()
		return
	}

	r.timer.Arm(hand.Seq, func(seq uint64) {
		r.do(func() {
			h := r.table.Hand()
			if h == nil || h.ToAct < 0 {
				return
			}
			playerID := h.Players[h.ToAct].ID
			if !r.table.TimeoutFold(seq) {
				return
			}
			for _, member := range r.members {
				r.send(member, MessageTypePlayerTimeout, PlayerTimeoutData{
					PlayerID: playerID,
					Action:   game.Fold.String(),
				})
			}
			r.afterMutation()
		})
	})
}

// broadcast sends each member their own projection of the game state.
func (r *Room) broadcast() {
	for playerID := range r.members {
		r.sendUpdate(playerID)
	}
}

func (r *Room) sendUpdate(playerID string) {
	view := ProjectGame(r.code, r.table, playerID)
	if view == nil {
		return
	}
	r.send(r.members[playerID], MessageTypeGameUpdate, view)
}

func (r *Room) broadcastType(messageType MessageType) {
	for _, member := range r.members {
		r.send(member, messageType, struct{}{})
	}
}

func (r *Room) send(conn sender, messageType MessageType, data interface{}) {
	if conn == nil {
		return
	}
	msg, err := NewMessage(messageType, data)
	if err != nil {
		r.logger.Error("failed to encode message", "type", messageType, "error", err)
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		r.logger.Debug("failed to send message", "type", messageType, "error", err)
	}
}

func (r *Room) sendError(conn sender, code, message string) {
	r.send(conn, MessageTypeError, ErrorData{Code: code, Message: message})
}
