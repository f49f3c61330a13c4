package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/castlebay/boardwalk/game/config"
	"github.com/castlebay/boardwalk/game/engine"
)

// Client is a thin MCP client that proxies to the REST API. It exposes
// read-only inspection tools; game commands are deliberately absent
// because play happens over the TCP transport with its own turn
// ordering.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Boardwalk Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Boardwalk Game Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server hosts multiplayer property-trading games played over a TCP
protocol. These tools inspect running games; they cannot play.

AVAILABLE TOOLS:
- list_games: List all active games with player counts and turn info
- game_state: Full snapshot of one game (players, money, positions, ownership)
- board_info: The 40 spaces of a board layout with prices and rents
- list_boards: List available board layouts`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the full state of one game: players, balances, positions, and property ownership",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to inspect",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_info",
		Description: "Get the 40 spaces of a board layout with purchase prices and rents",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"layout": map[string]interface{}{
					"type":        "string",
					"description": "Layout name (defaults to classic)",
				},
			},
		},
	}, c.handleBoardInfo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List available board layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int `json:"count"`
		Games []struct {
			GameID        string `json:"game_id"`
			Players       int    `json:"players"`
			Started       bool   `json:"started"`
			CurrentPlayer string `json:"current_player"`
		} `json:"games"`
	}

	if err := c.apiCall("GET", "/api/games", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		phase := "lobby"
		if g.Started {
			phase = fmt.Sprintf("in play, %s to move", g.CurrentPlayer)
		}
		fmt.Fprintf(&b, "- %s: %d player(s), %s\n", g.GameID, g.Players, phase)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var state engine.GameState
	if err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleBoardInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	layout := config.DefaultLayout
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if name, _ := args["layout"].(string); name != "" {
			layout = name
		}
	}

	var spaces []struct {
		Name          string `json:"Name"`
		PurchasePrice int    `json:"PurchasePrice"`
		RentPrice     int    `json:"RentPrice"`
		IsChance      bool   `json:"IsChance"`
		IsChest       bool   `json:"IsCommunityChest"`
	}
	if err := c.apiCall("GET", fmt.Sprintf("/api/boards/%s", layout), nil, &spaces); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Board %q (%d spaces):\n\n", layout, len(spaces))
	for i, s := range spaces {
		switch {
		case s.IsChance:
			fmt.Fprintf(&b, "%2d. %s [chance]\n", i, s.Name)
		case s.IsChest:
			fmt.Fprintf(&b, "%2d. %s [community chest]\n", i, s.Name)
		case s.PurchasePrice > 0:
			fmt.Fprintf(&b, "%2d. %s ($%d, rent $%d)\n", i, s.Name, s.PurchasePrice, s.RentPrice)
		default:
			fmt.Fprintf(&b, "%2d. %s\n", i, s.Name)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                 `json:"count"`
		Layouts []config.LayoutInfo `json:"layouts"`
	}

	if err := c.apiCall("GET", "/api/boards", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Layouts (%d):\n\n", response.Count)
	for _, l := range response.Layouts {
		origin := "file"
		if l.BuiltIn {
			origin = "built-in"
		}
		fmt.Fprintf(&b, "- %s: %d spaces, %d purchasable (%s)\n", l.Name, l.Spaces, l.Purchasable, origin)
	}

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatGameState(state *engine.GameState) string {
	var b strings.Builder

	phase := "lobby"
	if state.Started {
		phase = "in play"
	}
	fmt.Fprintf(&b, "Game %s (%s)\n\n", state.GameID, phase)

	for i, p := range state.Players {
		marker := " "
		if state.Started && i == state.CurrentPlayerIndex {
			marker = "*"
		}
		space := "?"
		if s := state.Board.SpaceAt(p.Position); s != nil {
			space = s.Name
		}
		fmt.Fprintf(&b, "%s %s: $%d at %d (%s)\n", marker, p.Name, p.Money, p.Position, space)
		if len(p.OwnedProperties) > 0 {
			fmt.Fprintf(&b, "    owns: %s\n", strings.Join(p.OwnedProperties, ", "))
		}
	}
	if len(state.Players) == 0 {
		b.WriteString("(no players yet)\n")
	}

	owned := 0
	for _, s := range state.Board {
		if s.IsOwned {
			owned++
		}
	}
	fmt.Fprintf(&b, "\nProperties owned: %d of %d spaces\n", owned, len(state.Board))

	return b.String()
}
