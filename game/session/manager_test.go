package session

import (
	"errors"
	"sync"
	"testing"
)

func TestGetOrCreate(t *testing.T) {
	m := NewManager()

	sess := m.GetOrCreate("g1")
	if sess == nil {
		t.Fatal("Expected a session to be created")
	}
	if sess.GameID != "g1" {
		t.Errorf("Expected game id g1, got %q", sess.GameID)
	}

	if again := m.GetOrCreate("g1"); again != sess {
		t.Error("Expected the same session instance on repeat lookup")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}
}

func TestGetOrCreateConcurrentFirstTouch(t *testing.T) {
	m := NewManager()

	const workers = 64
	results := make([]any, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("Racing first-touch callers received different sessions")
		}
	}
	if m.Count() != 1 {
		t.Errorf("Expected exactly 1 session after the race, got %d", m.Count())
	}
}

func TestGet(t *testing.T) {
	m := NewManager()

	if _, ok := m.Get("missing"); ok {
		t.Error("Expected lookup of an unknown game to miss")
	}

	created := m.GetOrCreate("g1")
	got, ok := m.Get("g1")
	if !ok || got != created {
		t.Error("Expected lookup to return the created session")
	}
}

func TestConnLifecycle(t *testing.T) {
	m := NewManager()
	c := &fakeConn{id: "c1"}

	if _, err := m.ResolveConn("c1"); !errors.Is(err, ErrConnNotFound) {
		t.Errorf("Expected ErrConnNotFound before registration, got %v", err)
	}

	m.AddConn(c)
	got, err := m.ResolveConn("c1")
	if err != nil {
		t.Fatalf("Failed to resolve registered connection: %v", err)
	}
	if got != c {
		t.Error("Resolved a different connection handle")
	}
	if m.ConnCount() != 1 {
		t.Errorf("Expected 1 connection, got %d", m.ConnCount())
	}

	m.RemoveConn("c1")
	if _, err := m.ResolveConn("c1"); !errors.Is(err, ErrConnNotFound) {
		t.Error("Expected connection to be gone after removal")
	}

	// Double removal is fine.
	m.RemoveConn("c1")
}

func TestListSessions(t *testing.T) {
	m := NewManager()
	m.GetOrCreate("g1")
	m.GetOrCreate("g2")

	sessions := m.List()
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	ids := map[string]bool{}
	for _, s := range sessions {
		ids[s.GameID] = true
	}
	if !ids["g1"] || !ids["g2"] {
		t.Errorf("Expected g1 and g2 in listing, got %v", ids)
	}
}
