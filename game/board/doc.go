// Package board holds the static 40-space board layout and its lookups.
//
// The default layout ships embedded in the binary, so the server has no
// runtime file dependency. Each space carries a display name, purchase and
// rent prices, and flags for the two card-drawing space kinds. Ownership
// fields start zeroed; every game session clones the board via New and
// mutates only its own copy.
package board
