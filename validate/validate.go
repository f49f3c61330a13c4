// Command validate provides a small CLI that validates board layout JSON
// files in a directory (default ./layouts). It checks:
//   - JSON structure: an array of exactly 40 space definitions
//   - Allowed space types (property, chance, chest, or empty)
//   - Price constraints (positive purchase price, non-negative rent)
//   - Name presence and uniqueness among purchasable spaces
//   - Economy summary (space counts, total board value)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const boardSize = 40

// SpaceDef mirrors the JSON schema for one board space.
type SpaceDef struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Price int    `json:"price"`
	Rent  int    `json:"rent"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLayout loads and validates a single board layout JSON file.
func validateLayout(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var defs []SpaceDef
	if err := json.Unmarshal(data, &defs); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(defs) != boardSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout has %d spaces, expected %d", len(defs), boardSize))
	}

	properties := 0
	chance := 0
	chest := 0
	plain := 0
	totalValue := 0
	purchasableNames := make(map[string]int)

	for i, def := range defs {
		if def.Name == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Space %d has no name", i))
		}

		switch def.Type {
		case "property":
			properties++
			totalValue += def.Price
			if def.Price <= 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): price must be positive, got %d", i, def.Name, def.Price))
			}
			if def.Rent < 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): rent cannot be negative, got %d", i, def.Name, def.Rent))
			}
			if prev, seen := purchasableNames[def.Name]; seen {
				// Purchases and rent payments reference properties by
				// name, so duplicates would be ambiguous.
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): duplicate property name, first at space %d", i, def.Name, prev))
			} else {
				purchasableNames[def.Name] = i
			}
		case "chance":
			chance++
			if def.Price != 0 || def.Rent != 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): chance spaces cannot carry prices", i, def.Name))
			}
		case "chest":
			chest++
			if def.Price != 0 || def.Rent != 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): chest spaces cannot carry prices", i, def.Name))
			}
		case "":
			plain++
			if def.Price != 0 || def.Rent != 0 {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): plain spaces cannot carry prices", i, def.Name))
			}
		default:
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Space %d (%s): unknown type %q", i, def.Name, def.Type))
		}
	}

	if properties == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout has no purchasable properties")
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Spaces: %d", len(defs)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Properties: %d (total value $%d)", properties, totalValue))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Chance: %d", chance))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Community chest: %d", chest))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Plain: %d", plain))
	}

	return result
}

// main scans a directory for *.json files and validates each one, printing
// a concise report and exiting with non-zero status if any are invalid.
func main() {
	layoutDir := "./layouts"
	if len(os.Args) > 1 {
		layoutDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(layoutDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding layout files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No layout files found in %s\n", layoutDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateLayout(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All layouts are valid!")
	} else {
		fmt.Println("❌ Some layouts have errors")
		os.Exit(1)
	}
}
