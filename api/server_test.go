package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/game/board"
	"github.com/castlebay/boardwalk/game/config"
	"github.com/castlebay/boardwalk/game/session"
	"github.com/castlebay/boardwalk/transport/websocket"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()

	registry := session.NewManager()
	layouts, err := config.NewManager("")
	if err != nil {
		t.Fatalf("Failed to create layout manager: %v", err)
	}
	return NewServer(registry, layouts, nil, zap.NewNop().Sugar()), registry
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, registry := newTestServer(t)
	registry.GetOrCreate("g1")

	rec := doGet(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
		Games  int    `json:"games"`
		Conns  int    `json:"conns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Status != "healthy" || body.Games != 1 || body.Conns != 0 {
		t.Errorf("Unexpected health body: %+v", body)
	}
}

func TestListGames(t *testing.T) {
	srv, registry := newTestServer(t)

	s2 := registry.GetOrCreate("g2")
	registry.GetOrCreate("g1")
	s2.HandleJoin("c1", "alice")
	s2.HandleJoin("c2", "bob")
	s2.HandleStart("c1")
	s2.HandleStart("c2")

	rec := doGet(t, srv, "/api/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Count int `json:"count"`
		Games []struct {
			GameID        string `json:"game_id"`
			Players       int    `json:"players"`
			Started       bool   `json:"started"`
			CurrentPlayer string `json:"current_player"`
		} `json:"games"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body.Count != 2 || len(body.Games) != 2 {
		t.Fatalf("Expected 2 games, got %+v", body)
	}
	// Sorted by game id.
	if body.Games[0].GameID != "g1" || body.Games[1].GameID != "g2" {
		t.Errorf("Expected games sorted by id, got %+v", body.Games)
	}
	if !body.Games[1].Started || body.Games[1].Players != 2 || body.Games[1].CurrentPlayer != "alice" {
		t.Errorf("Unexpected g2 summary: %+v", body.Games[1])
	}
	if body.Games[0].Started || body.Games[0].CurrentPlayer != "" {
		t.Errorf("Unexpected g1 summary: %+v", body.Games[0])
	}
}

func TestGetGameSnapshot(t *testing.T) {
	srv, registry := newTestServer(t)

	sess := registry.GetOrCreate("g1")
	sess.HandleJoin("c1", "alice")

	rec := doGet(t, srv, "/api/games/g1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var state struct {
		GameID  string `json:"GameId"`
		Started bool   `json:"Started"`
		Players []struct {
			ID    string `json:"Id"`
			Name  string `json:"Name"`
			Money int    `json:"Money"`
		} `json:"Players"`
		Board []struct {
			Name string `json:"Name"`
		} `json:"Board"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}

	if state.GameID != "g1" || state.Started {
		t.Errorf("Unexpected snapshot header: %+v", state)
	}
	if len(state.Players) != 1 || state.Players[0].Name != "alice" {
		t.Errorf("Unexpected players: %+v", state.Players)
	}
	if len(state.Board) != board.Size {
		t.Errorf("Expected %d board spaces, got %d", board.Size, len(state.Board))
	}
}

func TestGetGameNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doGet(t, srv, "/api/games/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected an error message in the body")
	}
}

func TestGetPlayers(t *testing.T) {
	srv, registry := newTestServer(t)

	sess := registry.GetOrCreate("g1")
	sess.HandleJoin("c1", "alice")
	sess.HandleJoin("c2", "bob")

	rec := doGet(t, srv, "/api/games/g1/players")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var players []struct {
		Name string `json:"Name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &players); err != nil {
		t.Fatalf("Failed to decode players: %v", err)
	}
	if len(players) != 2 || players[0].Name != "alice" || players[1].Name != "bob" {
		t.Errorf("Unexpected players: %+v", players)
	}
}

func TestListBoards(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doGet(t, srv, "/api/boards")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Count   int                 `json:"count"`
		Layouts []config.LayoutInfo `json:"layouts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Count != 1 || body.Layouts[0].Name != config.DefaultLayout {
		t.Errorf("Expected only the built-in layout, got %+v", body)
	}
}

func TestGetBoard(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doGet(t, srv, "/api/boards/classic")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var spaces []struct {
		Name string `json:"Name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spaces); err != nil {
		t.Fatalf("Failed to decode board: %v", err)
	}
	if len(spaces) != board.Size {
		t.Errorf("Expected %d spaces, got %d", board.Size, len(spaces))
	}

	rec = doGet(t, srv, "/api/boards/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown layout, got %d", rec.Code)
	}
}

func TestWebSocketWithoutHub(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doGet(t, srv, "/ws?game=g1")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without a hub, got %d", rec.Code)
	}
}

func TestWebSocketRequiresGame(t *testing.T) {
	registry := session.NewManager()
	layouts, err := config.NewManager("")
	if err != nil {
		t.Fatalf("Failed to create layout manager: %v", err)
	}
	// A hub is present but the request names no game.
	hub := websocket.NewHub(zap.NewNop().Sugar())
	srv := NewServer(registry, layouts, hub, zap.NewNop().Sugar())

	rec := doGet(t, srv, "/ws")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a game parameter, got %d", rec.Code)
	}
}
