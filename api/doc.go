// Package api provides the read-only HTTP operator surface.
//
// The api package implements:
//   - RESTful endpoints for inspecting live games
//   - Board layout listing and retrieval
//   - WebSocket upgrade for the game event feed
//   - A health endpoint with registry counters
//
// Game play never goes through this surface. Commands travel only over
// the TCP transport; these endpoints exist for dashboards, debugging,
// and spectators.
//
// Endpoints:
//
// Games:
//   - GET /api/games - List game summaries
//   - GET /api/games/{id} - Full state snapshot of one game
//   - GET /api/games/{id}/players - Just the seats
//
// Boards:
//   - GET /api/boards - List available board layouts
//   - GET /api/boards/{name} - The 40 spaces of one layout
//
// Feed and health:
//   - GET /ws?game={id} - WebSocket event feed for one game
//   - GET /healthz - Liveness plus game and connection counts
//
// Response Format:
//
// All endpoints return JSON. Game snapshots use the same PascalCase
// field names the wire protocol uses, so a dashboard can share decoding
// code with a game client. Errors are returned as JSON with appropriate
// HTTP status codes:
//
//	{
//	  "error": "game not found"
//	}
//
// Consistency:
//
// Snapshot handlers marshal under the session lock, so a response is
// always a state the game actually passed through, never a torn read of
// a move in progress.
package api
