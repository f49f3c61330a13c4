package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/castlebay/boardwalk/game/board"
	"github.com/castlebay/boardwalk/protocol"
)

// Session is the authoritative state for one match. The registry creates
// one per game id and it lives for the process lifetime.
//
// The embedded mutex serializes command handling: callers lock around the
// whole handle-then-dispatch sequence, including the early returns for
// pending buy/rent resolutions.
type Session struct {
	sync.Mutex

	GameID             string
	Players            []*Player
	CurrentPlayerIndex int
	Ready              map[string]struct{}
	Started            bool
	Board              board.Board

	// Roller supplies the two dice. Overridable for deterministic games
	// and tests; defaults to two independent uniform rolls.
	Roller func() (int, int)
}

// RollTwoDice returns two independent uniform integers in [1,6].
func RollTwoDice() (int, int) {
	return rand.IntN(6) + 1, rand.IntN(6) + 1
}

// NewSession creates an empty lobby for the given game id with a fresh
// copy of the board.
func NewSession(gameID string) *Session {
	return NewSessionWithBoard(gameID, board.New())
}

// NewSessionWithBoard creates a lobby over a caller-supplied board layout.
func NewSessionWithBoard(gameID string, b board.Board) *Session {
	return &Session{
		GameID: gameID,
		Ready:  make(map[string]struct{}),
		Board:  b,
		Roller: RollTwoDice,
	}
}

// State returns the broadcast snapshot. The caller must hold the session
// lock until the snapshot has been marshaled.
func (s *Session) State() *GameState {
	return &GameState{
		GameID:             s.GameID,
		Players:            s.Players,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Started:            s.Started,
		Board:              s.Board,
	}
}

func (s *Session) findPlayer(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) currentPlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex]
}

func (s *Session) advanceTurn() {
	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
}

// HandleJoin seats a new player at position 0 with the starting balance.
// Valid only while the session is in the lobby.
func (s *Session) HandleJoin(connID, name string) Result {
	if s.Started {
		return ignored("game already started")
	}
	if s.findPlayer(connID) != nil {
		return ignored("connection already joined")
	}

	p := &Player{
		ID:              connID,
		Name:            name,
		Money:           StartingMoney,
		OwnedProperties: []string{},
		CurrentProperty: s.Board.SpaceAt(0).Name,
	}
	s.Players = append(s.Players, p)

	return applied(
		Unicast(connID, protocol.TypeJoinGameSuccess, p),
		Broadcast(protocol.TypeGameStateUpdate, s.State()),
	)
}

// HandleStart records the caller's readiness. When every joined player has
// signaled, the session transitions to started with the first joiner as
// current player. Below quorum nothing is broadcast.
func (s *Session) HandleStart(connID string) Result {
	if s.Started {
		return ignored("game already started")
	}
	if s.findPlayer(connID) == nil {
		return ignored("connection has not joined")
	}
	if _, ok := s.Ready[connID]; ok {
		return ignored("already signaled start")
	}

	s.Ready[connID] = struct{}{}
	if len(s.Ready) < len(s.Players) {
		return Result{Applied: true}
	}

	s.Started = true
	s.CurrentPlayerIndex = 0
	return applied(Broadcast(protocol.TypeGameStateUpdate, s.State()))
}

// HandleRoll resolves a dice roll for the current player: move, then the
// landed space decides between card effects, a pending rent payment, a
// pending purchase offer, or a plain turn handoff.
func (s *Session) HandleRoll(connID string) Result {
	if !s.Started {
		return ignored("game not started")
	}
	mover := s.currentPlayer()
	if mover == nil || mover.ID != connID {
		return ignored("not this connection's turn")
	}

	d1, d2 := s.Roller()
	sum := d1 + d2

	// Only the roller sees the raw dice value; everyone else learns the
	// outcome from the log line and the state update.
	events := []Event{
		Unicast(connID, protocol.TypeDiceRolled, protocol.DiceRolledPayload{Value: sum}),
	}

	mover.Position = (mover.Position + sum) % board.Size
	space := s.Board.SpaceAt(mover.Position)
	mover.CurrentProperty = space.Name

	events = append(events, logLine(fmt.Sprintf("%s rolled a %d and moved to %s", mover.Name, sum, space.Name)))

	switch {
	case space.IsChance:
		events = append(events, logLine(drawCard(chanceDeck).Apply(mover)))

	case space.IsCommunityChest:
		events = append(events, logLine(drawCard(communityChestDeck).Apply(mover)))

	case space.IsOwned && space.OwnedByPlayerID != mover.ID:
		// Turn stays with the mover until their PayRent arrives.
		ownerName := ""
		if owner := s.findPlayer(space.OwnedByPlayerID); owner != nil {
			ownerName = owner.Name
		}
		events = append(events, Unicast(connID, protocol.TypeShowRentForm, &RentForm{
			Property:  space,
			OwnerName: ownerName,
		}))
		return applied(events...)

	case !space.IsOwned && space.Purchasable() && mover.Money >= space.PurchasePrice:
		// Turn stays with the mover until their BuyProperty arrives, and
		// no state is broadcast yet.
		events = append(events, Unicast(connID, protocol.TypeShowBuyForm, space))
		return applied(events...)
	}

	s.advanceTurn()
	events = append(events, Broadcast(protocol.TypeGameStateUpdate, s.State()))
	return applied(events...)
}

// HandleBuy attempts the purchase and then hands the turn on. An
// unaffordable, unknown, or already-owned property fails silently, but the
// turn still advances and state is still broadcast. Clients learn the
// purchase failed only by its absence from the update.
func (s *Session) HandleBuy(connID, propertyName string) Result {
	if !s.Started {
		return ignored("game not started")
	}
	buyer := s.findPlayer(connID)
	if buyer == nil {
		return ignored("connection has not joined")
	}

	res := Result{Applied: true}
	space := s.Board.FindByName(propertyName)
	switch {
	case space == nil:
		res = ignored(fmt.Sprintf("unknown property %q", propertyName))
	case !space.Purchasable():
		res = ignored(fmt.Sprintf("%s cannot be purchased", space.Name))
	case space.IsOwned:
		res = ignored(fmt.Sprintf("%s is already owned", space.Name))
	case buyer.Money < space.PurchasePrice:
		res = ignored(fmt.Sprintf("%s cannot afford %s", buyer.Name, space.Name))
	default:
		buyer.Money -= space.PurchasePrice
		space.IsOwned = true
		space.OwnedByPlayerID = buyer.ID
		buyer.OwnedProperties = append(buyer.OwnedProperties, space.Name)
		res.Events = append(res.Events, logLine(fmt.Sprintf("%s bought %s for $%d", buyer.Name, space.Name, space.PurchasePrice)))
	}

	s.advanceTurn()
	res.Events = append(res.Events, Broadcast(protocol.TypeGameStateUpdate, s.State()))
	return res
}

// HandlePayRent transfers the claimed rent from the caller to the space's
// recorded owner. There is no affordability check; balances go negative.
// Like HandleBuy, the turn advances whether or not the transfer happened.
func (s *Session) HandlePayRent(connID, propertyName string, rentPrice int) Result {
	if !s.Started {
		return ignored("game not started")
	}
	payer := s.findPlayer(connID)
	if payer == nil {
		return ignored("connection has not joined")
	}

	res := Result{Applied: true}
	space := s.Board.FindByName(propertyName)
	var owner *Player
	if space != nil && space.IsOwned {
		owner = s.findPlayer(space.OwnedByPlayerID)
	}
	switch {
	case space == nil:
		res = ignored(fmt.Sprintf("unknown property %q", propertyName))
	case owner == nil:
		res = ignored(fmt.Sprintf("%s has no recorded owner", propertyName))
	case owner.ID == payer.ID:
		res = ignored(fmt.Sprintf("%s owns %s", payer.Name, propertyName))
	default:
		payer.Money -= rentPrice
		owner.Money += rentPrice
		res.Events = append(res.Events, logLine(fmt.Sprintf("%s paid $%d rent to %s for %s", payer.Name, rentPrice, owner.Name, space.Name)))
	}

	s.advanceTurn()
	res.Events = append(res.Events, Broadcast(protocol.TypeGameStateUpdate, s.State()))
	return res
}

// HandleEnd stops play and announces the single richest player; money ties
// break toward the earlier joiner. Players and board ownership survive so
// the session can be started again, but a new round needs a fresh quorum.
func (s *Session) HandleEnd(connID string) Result {
	if len(s.Players) == 0 {
		return ignored("no players in session")
	}

	s.Started = false
	s.Ready = make(map[string]struct{})

	winner := s.Players[0]
	for _, p := range s.Players[1:] {
		if p.Money > winner.Money {
			winner = p
		}
	}

	return applied(Broadcast(protocol.TypeGameEnded, protocol.GameEndedPayload{
		WinnerID:    winner.ID,
		WinnerName:  winner.Name,
		WinnerMoney: winner.Money,
	}))
}
