package engine

import (
	"fmt"
	"math/rand/v2"
)

// CardKind tags the two card variants.
type CardKind int

const (
	ChanceCard CardKind = iota
	CommunityChestCard
)

// Card is a drawable card effect: chance credits the drawer, community
// chest debits them. Amount is signed (a debit is negative).
type Card struct {
	Kind   CardKind
	Text   string
	Amount int
}

// Apply adjusts the player's balance and returns the log line broadcast to
// the session. Balances may go negative; the game has no bankruptcy rule.
func (c Card) Apply(p *Player) string {
	p.Money += c.Amount
	return fmt.Sprintf("%s %s", p.Name, c.Text)
}

// Each deck currently holds a single card, so the uniform draw is
// effectively deterministic. The decks exist so more cards can be added
// without touching the drawing or resolution code.
var (
	chanceDeck = []Card{
		{Kind: ChanceCard, Amount: 100, Text: "drew a Chance card: bank pays you $100"},
	}
	communityChestDeck = []Card{
		{Kind: CommunityChestCard, Amount: -50, Text: "drew a Community Chest card: pay hospital fees of $50"},
	}
)

func drawCard(deck []Card) Card {
	return deck[rand.IntN(len(deck))]
}
