// File: game/messages.go
package game

import (
	"github.com/lguibr/bollywood"
	"golang.org/x/net/websocket"
)

// --- WebSocket messages (client <-> server) ---

// ClientCommand is the single envelope clients send. Type selects the action.
type ClientCommand struct {
	Type       string      `json:"type"` // "hello", "input", "start", "pause", "reset", "difficulty"
	Input      *InputState `json:"input,omitempty"`
	Difficulty string      `json:"difficulty,omitempty"`
	PlayerID   string      `json:"playerId,omitempty"`
	PlayerName string      `json:"playerName,omitempty"`
}

// WelcomeMessage is sent once after subscribing.
type WelcomeMessage struct {
	MessageType  string   `json:"messageType"` // "welcome"
	Difficulties []string `json:"difficulties"`
	WinningScore int      `json:"winningScore"`
}

// StateMessage streams one snapshot per tick.
type StateMessage struct {
	MessageType string   `json:"messageType"` // "state"
	State       Snapshot `json:"state"`
}

// HitMessage signals a paddle contact for sound/UI effects.
type HitMessage struct {
	MessageType string `json:"messageType"` // "paddleHit"
	Side        int    `json:"side"`
}

// GameOverMessage signals the end of the match.
type GameOverMessage struct {
	MessageType string `json:"messageType"` // "gameOver"
	Winner      int    `json:"winner"`
	ScoreTop    int    `json:"scoreTop"`
	ScoreBottom int    `json:"scoreBottom"`
	DurationMs  int64  `json:"durationMs"`
}

// --- Actor messages (internal) ---

// GameTick signals the GameActor to advance the simulation one step.
type GameTick struct{}

// ClientMessage carries one decoded command from the connection read loop.
type ClientMessage struct {
	Command ClientCommand
}

// serveDueMsg is posted by the deferred scoring-delay timer. Epoch is the
// match epoch the timer was scheduled under.
type serveDueMsg struct {
	Epoch uint64
}

// --- RoomManagerActor messages ---

// OpenRoom asks the RoomManager to spawn a GameActor for a new connection.
// Sent via Ask; the reply is RoomAssigned.
type OpenRoom struct {
	WsConn *websocket.Conn
}

// RoomAssigned is the RoomManager's reply with the new room's PID.
type RoomAssigned struct {
	RoomPID *bollywood.PID
}

// CloseRoom tells the RoomManager a connection ended and its room should stop.
type CloseRoom struct {
	RoomPID *bollywood.PID
}

// GetRoomListRequest asks for the active rooms (used by the HTTP surface via Ask).
type GetRoomListRequest struct{}

// RoomListResponse lists the PIDs of active rooms.
type RoomListResponse struct {
	Rooms []string
}
