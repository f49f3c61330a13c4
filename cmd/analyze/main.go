// Command analyze prints quick, human-readable heuristics about a board
// layout. It summarizes space counts, property pricing, rent yields, and
// highlights pricing outliers like rent-free properties or rents that
// exceed the purchase price.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/castlebay/boardwalk/game/board"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("=== Analyzing built-in layout ===")
		analyzeBoard(board.New())
		return
	}

	for _, path := range os.Args[1:] {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			continue
		}
		b, err := board.Parse(data)
		if err != nil {
			fmt.Printf("Error parsing layout: %v\n", err)
			continue
		}
		analyzeBoard(b)
	}
}

func analyzeBoard(b board.Board) {
	properties := 0
	chance := 0
	chest := 0
	plain := 0
	totalPrice := 0
	totalRent := 0

	var cheapest, dearest *board.Space
	var outliers []string

	for _, space := range b {
		switch {
		case space.IsChance:
			chance++
		case space.IsCommunityChest:
			chest++
		case space.Purchasable():
			properties++
			totalPrice += space.PurchasePrice
			totalRent += space.RentPrice

			if cheapest == nil || space.PurchasePrice < cheapest.PurchasePrice {
				cheapest = space
			}
			if dearest == nil || space.PurchasePrice > dearest.PurchasePrice {
				dearest = space
			}
			if space.RentPrice == 0 {
				outliers = append(outliers, fmt.Sprintf("%s collects no rent", space.Name))
			}
			if space.RentPrice > space.PurchasePrice {
				outliers = append(outliers, fmt.Sprintf("%s rents for more than it costs ($%d > $%d)", space.Name, space.RentPrice, space.PurchasePrice))
			}
		default:
			plain++
		}
	}

	fmt.Printf("Spaces: %d (%d properties, %d chance, %d chest, %d plain)\n",
		len(b), properties, chance, chest, plain)

	if properties == 0 {
		fmt.Println("⚠️  WARNING: no purchasable properties on this board")
		return
	}

	fmt.Printf("Total board value: $%d (average $%d per property)\n", totalPrice, totalPrice/properties)
	fmt.Printf("Cheapest: %s ($%d)  Dearest: %s ($%d)\n",
		cheapest.Name, cheapest.PurchasePrice, dearest.Name, dearest.PurchasePrice)
	fmt.Printf("Average rent yield: %.1f%% of purchase price\n",
		100*float64(totalRent)/float64(totalPrice))

	// Top earners by raw rent.
	earners := make([]*board.Space, 0, properties)
	for _, space := range b {
		if space.Purchasable() {
			earners = append(earners, space)
		}
	}
	sort.Slice(earners, func(i, j int) bool { return earners[i].RentPrice > earners[j].RentPrice })
	fmt.Println("Top rents:")
	for i, space := range earners {
		if i == 5 {
			break
		}
		fmt.Printf("   %s: $%d rent on $%d\n", space.Name, space.RentPrice, space.PurchasePrice)
	}

	if len(outliers) > 0 {
		fmt.Printf("⚠️  %d pricing outliers:\n", len(outliers))
		for _, line := range outliers {
			fmt.Printf("   %s\n", line)
		}
	} else {
		fmt.Println("✅ No pricing outliers")
	}
}
