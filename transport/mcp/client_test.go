package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/castlebay/boardwalk/game/board"
	"github.com/castlebay/boardwalk/game/engine"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"count": float64(2),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["count"] != expectedResponse["count"] {
		t.Errorf("Expected count %v, got %v", expectedResponse["count"], response["count"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "game not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/games/missing", nil, nil)
	if err == nil || err.Error() != "game not found" {
		t.Errorf("Expected the API's error message, got: %v", err)
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected content in tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestClient_listGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/games" {
			t.Errorf("Expected GET /api/games, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"games": []map[string]interface{}{
				{"game_id": "g1", "players": 2, "started": true, "current_player": "alice"},
				{"game_id": "g2", "players": 1, "started": false},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_games",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleListGames(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListGames failed: %v", err)
	}

	text := toolText(t, result)
	for _, want := range []string{"Active Games (2)", "g1: 2 player(s), in play, alice to move", "g2: 1 player(s), lobby"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got: %s", want, text)
		}
	}
}

func TestClient_gameState(t *testing.T) {
	b := board.New()
	state := &engine.GameState{
		GameID:             "g1",
		Started:            true,
		CurrentPlayerIndex: 1,
		Board:              b,
		Players: []*engine.Player{
			{ID: "c1", Name: "alice", Position: 5, Money: 1300, OwnedProperties: []string{b.SpaceAt(5).Name}},
			{ID: "c2", Name: "bob", Position: 0, Money: 1500, OwnedProperties: []string{}},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/games/g1" {
			t.Errorf("Expected /api/games/g1, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_state",
			Arguments: map[string]interface{}{"game_id": "g1"},
		},
	}

	result, err := client.handleGameState(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGameState failed: %v", err)
	}

	text := toolText(t, result)
	for _, want := range []string{"Game g1 (in play)", "alice: $1300 at 5", "* bob: $1500 at 0"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got: %s", want, text)
		}
	}
}

func TestClient_boardInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/boards/classic" {
			t.Errorf("Expected /api/boards/classic, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(board.New())
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "board_info",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleBoardInfo(context.Background(), request)
	if err != nil {
		t.Fatalf("handleBoardInfo failed: %v", err)
	}

	text := toolText(t, result)
	if !strings.Contains(text, `Board "classic" (40 spaces)`) {
		t.Errorf("Expected board header in output, got: %s", text)
	}
	if !strings.Contains(text, "[chance]") || !strings.Contains(text, "[community chest]") {
		t.Errorf("Expected card spaces in output, got: %s", text)
	}
}

func TestFormatGameStateLobby(t *testing.T) {
	state := &engine.GameState{
		GameID: "g9",
		Board:  board.New(),
	}

	text := formatGameState(state)
	if !strings.Contains(text, "Game g9 (lobby)") {
		t.Errorf("Expected lobby header, got: %s", text)
	}
	if !strings.Contains(text, "(no players yet)") {
		t.Errorf("Expected empty-seat note, got: %s", text)
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
