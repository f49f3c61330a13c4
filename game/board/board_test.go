package board

import (
	"encoding/json"
	"testing"
)

func TestNewBoardShape(t *testing.T) {
	b := New()

	if len(b) != Size {
		t.Fatalf("Expected %d spaces, got %d", Size, len(b))
	}

	if b[0].Name != "GO" {
		t.Errorf("Expected space 0 to be GO, got %q", b[0].Name)
	}
	if b[39].Name != "Boardwalk" {
		t.Errorf("Expected space 39 to be Boardwalk, got %q", b[39].Name)
	}

	for i, space := range b {
		if space.IsOwned || space.OwnedByPlayerID != "" {
			t.Errorf("Space %d (%s) should start unowned", i, space.Name)
		}
		if space.IsChance && space.IsCommunityChest {
			t.Errorf("Space %d (%s) cannot be both chance and chest", i, space.Name)
		}
	}
}

func TestNewBoardIsIndependentCopy(t *testing.T) {
	a := New()
	b := New()

	a[1].IsOwned = true
	a[1].OwnedByPlayerID = "p1"

	if b[1].IsOwned {
		t.Error("Mutating one board leaked into another")
	}
}

func TestPurchasableSpacesHaveUniqueNames(t *testing.T) {
	b := New()
	seen := make(map[string]int)

	for i, space := range b {
		if !space.Purchasable() {
			continue
		}
		if prev, ok := seen[space.Name]; ok {
			t.Errorf("Purchasable name %q appears at both %d and %d", space.Name, prev, i)
		}
		seen[space.Name] = i
	}
}

func TestSpaceAt(t *testing.T) {
	b := New()

	if b.SpaceAt(5) == nil || b.SpaceAt(5).Name != "Reading Railroad" {
		t.Error("Expected Reading Railroad at position 5")
	}
	if b.SpaceAt(-1) != nil {
		t.Error("Expected nil for negative position")
	}
	if b.SpaceAt(Size) != nil {
		t.Error("Expected nil for out-of-range position")
	}
}

func TestFindByName(t *testing.T) {
	b := New()

	space := b.FindByName("Boardwalk")
	if space == nil {
		t.Fatal("Expected to find Boardwalk")
	}
	if space.PurchasePrice != 400 || space.RentPrice != 50 {
		t.Errorf("Expected Boardwalk at 400/50, got %d/%d", space.PurchasePrice, space.RentPrice)
	}

	if b.FindByName("Fifth Avenue") != nil {
		t.Error("Expected nil for unknown space name")
	}
}

func TestParseRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{]`},
		{"wrong count", `[{"name": "GO", "type": ""}]`},
		{"unknown type", fullLayoutWith(t, 3, `{"name": "Weird", "type": "teleporter"}`)},
		{"missing name", fullLayoutWith(t, 3, `{"name": "", "type": ""}`)},
		{"free property", fullLayoutWith(t, 3, `{"name": "Freebie", "type": "property", "price": 0, "rent": 5}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

// fullLayoutWith returns the embedded layout with position pos replaced by
// the given raw JSON object, so Parse sees a full 40-space board.
func fullLayoutWith(t *testing.T, pos int, raw string) string {
	t.Helper()

	var defs []json.RawMessage
	if err := json.Unmarshal(embeddedSpaces, &defs); err != nil {
		t.Fatalf("Failed to load embedded layout: %v", err)
	}
	defs[pos] = json.RawMessage(raw)

	out, err := json.Marshal(defs)
	if err != nil {
		t.Fatalf("Failed to re-marshal layout: %v", err)
	}
	return string(out)
}
