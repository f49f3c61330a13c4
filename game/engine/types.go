package engine

import (
	"github.com/castlebay/boardwalk/game/board"
	"github.com/castlebay/boardwalk/protocol"
)

// StartingMoney is every player's balance on joining a game.
const StartingMoney = 1500

// Player is one seat in a session. Its ID is the owning connection's id;
// the row stays in the session even if that connection goes away. JSON
// tags follow the wire contract (JoinGameSuccess carries the full object).
type Player struct {
	ID              string   `json:"Id"`
	Name            string   `json:"Name"`
	Position        int      `json:"Position"`
	Money           int      `json:"Money"`
	OwnedProperties []string `json:"OwnedProperties"`
	CurrentProperty string   `json:"CurrentProperty"`
}

// GameState is the full session snapshot broadcast in GameStateUpdate.
// It references the session's live players and board, so it must be
// marshaled while the session lock is held.
type GameState struct {
	GameID             string      `json:"GameId"`
	Players            []*Player   `json:"Players"`
	CurrentPlayerIndex int         `json:"CurrentPlayerIndex"`
	Started            bool        `json:"Started"`
	Board              board.Board `json:"Board"`
}

// RentForm is the ShowRentForm payload: the space landed on and the name
// of the player rent is owed to.
type RentForm struct {
	Property  *board.Space `json:"Property"`
	OwnerName string       `json:"OwnerName"`
}

// Event is one outbound envelope produced by a command handler. A zero
// Target means broadcast to every connection in the session.
type Event struct {
	Target  string
	Type    string
	Payload any
}

// IsBroadcast reports whether the event goes to the whole session.
func (e Event) IsBroadcast() bool {
	return e.Target == ""
}

// Broadcast builds a session-wide event.
func Broadcast(msgType string, payload any) Event {
	return Event{Type: msgType, Payload: payload}
}

// Unicast builds an event for a single connection.
func Unicast(target, msgType string, payload any) Event {
	return Event{Target: target, Type: msgType, Payload: payload}
}

// Result reports what a command did. Applied is false when the game rules
// silently ignored the command; Reason says why, for logs and tests only.
// No error ever goes out on the wire. Events may be non-empty even for an
// ignored command: a failed purchase still advances the turn and
// broadcasts state.
type Result struct {
	Applied bool
	Reason  string
	Events  []Event
}

func ignored(reason string) Result {
	return Result{Reason: reason}
}

func applied(events ...Event) Result {
	return Result{Applied: true, Events: events}
}

func logLine(text string) Event {
	return Broadcast(protocol.TypeServerLog, protocol.ServerLogPayload{Text: text})
}
