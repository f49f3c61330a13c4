package protocol

import (
	"encoding/json"
	"fmt"
)

// Inbound command type tags.
const (
	TypeJoinGame    = "JoinGame"
	TypeStartGame   = "StartGame"
	TypeRollDice    = "RollDice"
	TypeBuyProperty = "BuyProperty"
	TypePayRent     = "PayRent"
	TypeEndGame     = "EndGame"
)

// Outbound event type tags.
const (
	TypeJoinGameSuccess = "JoinGameSuccess"
	TypeGameStateUpdate = "GameStateUpdate"
	TypeShowBuyForm     = "ShowBuyForm"
	TypeShowRentForm    = "ShowRentForm"
	TypeServerLog       = "ServerLog"
	TypeDiceRolled      = "DiceRolled"
	TypeGameEnded       = "GameEnded"
)

var inboundTypes = map[string]bool{
	TypeJoinGame:    true,
	TypeStartGame:   true,
	TypeRollDice:    true,
	TypeBuyProperty: true,
	TypePayRent:     true,
	TypeEndGame:     true,
}

// KnownCommand reports whether t is a recognized inbound command tag.
// Envelopes with unknown tags are logged and dropped without closing the
// connection.
func KnownCommand(t string) bool {
	return inboundTypes[t]
}

// Envelope is the tagged message unit exchanged over the wire.
type Envelope struct {
	GameID string          `json:"GameId"`
	Type   string          `json:"Type"`
	Data   json.RawMessage `json:"Data,omitempty"`
}

// NewEnvelope builds an envelope with the payload marshaled into Data.
func NewEnvelope(gameID, msgType string, payload any) (*Envelope, error) {
	env := &Envelope{GameID: gameID, Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}
		env.Data = data
	}
	return env, nil
}

// DecodeEnvelope parses a frame body into an envelope. A parse failure is
// not fatal to the connection; callers log it and keep reading.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("envelope missing type tag")
	}
	return &env, nil
}

// DecodeData unmarshals the envelope payload into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("malformed %s payload: %w", e.Type, err)
	}
	return nil
}

// JoinGamePayload carries the display name for a JoinGame command.
type JoinGamePayload struct {
	Name string `json:"Name"`
}

// BuyPropertyPayload names the space a player wants to purchase.
type BuyPropertyPayload struct {
	PropertyName string `json:"PropertyName"`
}

// PayRentPayload names the space rent is owed on and the amount due.
type PayRentPayload struct {
	PropertyName string `json:"PropertyName"`
	RentPrice    int    `json:"RentPrice"`
}

// ServerLogPayload is a human-readable line for the client's activity log.
type ServerLogPayload struct {
	Text string `json:"Text"`
}

// DiceRolledPayload carries the dice sum, unicast to the roller only.
type DiceRolledPayload struct {
	Value int `json:"Value"`
}

// GameEndedPayload announces the winner when a game ends.
type GameEndedPayload struct {
	WinnerID    string `json:"WinnerId"`
	WinnerName  string `json:"WinnerName"`
	WinnerMoney int    `json:"WinnerMoney"`
}
