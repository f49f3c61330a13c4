// Package config resolves board layouts by name.
//
// The config package handles:
//   - Serving the compiled-in classic board
//   - Loading alternative board layouts from JSON files
//   - Layout validation and caching
//   - Layout discovery and listing
//
// Layout Format:
//
// Board layouts are stored as JSON arrays of exactly 40 space
// definitions. Each definition names the space and gives its type:
// "property" with purchase and rent prices, "chance", "chest", or an
// empty type for plain spaces like Go and Jail.
//
// Usage:
//
//	manager, err := config.NewManager("layouts")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Fresh board for a new game
//	b, err := manager.LoadBoard("classic")
//
//	// Constructor for the session registry
//	newBoard, err := manager.BoardFactory("summer-edition")
//
//	// List available layouts
//	layouts, err := manager.ListLayouts()
//
// Every LoadBoard call returns an independent copy. Boards carry per-game
// ownership state, so layouts are cached only as raw definitions and
// re-parsed per call.
package config
