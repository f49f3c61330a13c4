package board

import (
	"encoding/json"
	"fmt"

	_ "embed"
)

// Size is the number of spaces on the board. Player positions are always
// in [0, Size).
const Size = 40

//go:embed spaces.json
var embeddedSpaces []byte

// Space is one board position. JSON tags follow the wire contract: the
// full space object is the payload of ShowBuyForm and part of every
// GameStateUpdate.
type Space struct {
	Name             string `json:"Name"`
	PurchasePrice    int    `json:"PurchasePrice"`
	RentPrice        int    `json:"RentPrice"`
	IsChance         bool   `json:"IsChance"`
	IsCommunityChest bool   `json:"IsCommunityChest"`
	IsOwned          bool   `json:"IsOwned"`
	OwnedByPlayerID  string `json:"OwnedByPlayerId"`
}

// Purchasable reports whether the space can be bought at all.
func (s *Space) Purchasable() bool {
	return s.PurchasePrice > 0 && !s.IsChance && !s.IsCommunityChest
}

// Board is an ordered sequence of spaces, index = position.
type Board []*Space

// spaceDef is the storage schema for board layout files.
type spaceDef struct {
	Name  string `json:"name"`
	Type  string `json:"type"` // "property", "chance", "chest", or "" for plain spaces
	Price int    `json:"price"`
	Rent  int    `json:"rent"`
}

var defaultDefs []spaceDef

func init() {
	if err := json.Unmarshal(embeddedSpaces, &defaultDefs); err != nil {
		panic(fmt.Sprintf("board: embedded spaces.json is invalid: %v", err))
	}
	if len(defaultDefs) != Size {
		panic(fmt.Sprintf("board: embedded layout has %d spaces, want %d", len(defaultDefs), Size))
	}
}

// New returns a fresh board built from the embedded default layout.
// Ownership starts cleared; the caller owns the returned copy.
func New() Board {
	b, err := fromDefs(defaultDefs)
	if err != nil {
		// The embedded layout is validated in init.
		panic(err)
	}
	return b
}

// Parse builds a board from a layout file in the storage schema. Used for
// operator-supplied board files and by the validation tool.
func Parse(data []byte) (Board, error) {
	var defs []spaceDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse board layout: %w", err)
	}
	return fromDefs(defs)
}

func fromDefs(defs []spaceDef) (Board, error) {
	if len(defs) != Size {
		return nil, fmt.Errorf("board layout has %d spaces, want %d", len(defs), Size)
	}

	b := make(Board, 0, Size)
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("space %d has no name", i)
		}
		space := &Space{Name: def.Name}
		switch def.Type {
		case "property":
			if def.Price <= 0 || def.Rent < 0 {
				return nil, fmt.Errorf("space %d (%s) has invalid prices", i, def.Name)
			}
			space.PurchasePrice = def.Price
			space.RentPrice = def.Rent
		case "chance":
			space.IsChance = true
		case "chest":
			space.IsCommunityChest = true
		case "":
			// Plain space: GO, Jail, Free Parking, taxes. Nothing to do.
		default:
			return nil, fmt.Errorf("space %d (%s) has unknown type %q", i, def.Name, def.Type)
		}
		b = append(b, space)
	}
	return b, nil
}

// SpaceAt returns the space at pos, or nil when pos is out of range.
func (b Board) SpaceAt(pos int) *Space {
	if pos < 0 || pos >= len(b) {
		return nil
	}
	return b[pos]
}

// FindByName returns the first space with the given name, or nil. Card
// spaces share names; purchasable spaces are unique so the buy and rent
// paths always resolve a single space.
func (b Board) FindByName(name string) *Space {
	for _, space := range b {
		if space.Name == name {
			return space
		}
	}
	return nil
}
