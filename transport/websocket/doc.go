// Package websocket provides a read-only WebSocket event feed for games.
//
// The websocket package implements:
//   - A hub-and-spoke fan-out of game events to browser watchers
//   - Per-game subscription via query parameter (?game=abc1)
//   - A non-blocking event sink fed by the command router
//   - Connection lifecycle management with ping/pong keepalives
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// watcher connections. Each connection is handled by dedicated read and
// write goroutines; the hub's Run loop is the only goroutine touching the
// watcher maps.
//
// Message Protocol:
//
// Watchers receive the same JSON envelopes the game clients receive,
// without the binary length prefix:
//
//	{"GameId": "abc1", "Type": "GameStateUpdate", "Data": {...}}
//
// Watchers never send game commands; any inbound payload is drained and
// ignored. Commands travel only over the TCP transport.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run()
//	router.AddSink(hub)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("game"))
//	})
//
// Concurrency:
//
// Publish is called while a game session's lock is held, so it queues the
// envelope and returns immediately; a saturated queue drops events rather
// than stall game processing. A watcher that cannot drain its own send
// buffer is disconnected for the same reason.
package websocket
