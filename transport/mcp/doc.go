// Package mcp provides a Model Context Protocol surface over the game
// server's operator API.
//
// The mcp package implements:
//   - An MCP server for AI agent integration
//   - Read-only tool definitions backed by the REST API
//   - Stdio transport for local MCP clients
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_games: List active games with player counts and turn info
//   - game_state: Full snapshot of one game
//   - board_info: The spaces of a board layout with prices and rents
//   - list_boards: List available board layouts
//
// The tool set is deliberately read-only. Game commands require a live
// TCP connection with a stable player identity and a seat in the turn
// order; a stateless request/response surface cannot hold one. Agents
// that want to play connect as ordinary game clients instead.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8081")
//	server.ServeStdio(client.GetMCPServer())
//
// The client proxies every tool call to the REST API, so it can run as a
// separate process from the game server and needs no shared state.
package mcp
