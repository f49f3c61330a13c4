// Package engine provides the authoritative game state machine for
// Boardwalk sessions.
//
// The engine package implements:
//   - The per-session lobby/started lifecycle and readiness quorum
//   - Turn ordering and dice movement around the 40-space board
//   - Property purchase, rent transfer, and card effects
//   - Winner selection when a game ends
//
// Core Types:
//
// Session holds the mutable state for one match: its players in join
// order, the turn pointer, the readiness set, and a private copy of the
// board. Command handlers (HandleJoin, HandleStart, HandleRoll, HandleBuy,
// HandlePayRent, HandleEnd) mutate state and return a Result carrying the
// outbound events to dispatch.
//
// Error Model:
//
// Rule violations are not errors. A command from the wrong player, an
// unaffordable purchase, or an unknown property yields Result.Applied ==
// false with a Reason for logs and tests; the protocol deliberately never
// sends an error frame, and some ignored commands (a failed purchase)
// still advance the turn and emit state updates.
//
// Concurrency:
//
// Session embeds a sync.Mutex. Callers hold the lock for the entire
// read-modify-write-dispatch sequence of one command, so handlers
// themselves are written lock-free. Multiple connections feeding the same
// session serialize here; separate sessions never contend.
package engine
