package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/castlebay/boardwalk/game/board"
)

var (
	ErrLayoutNotFound = errors.New("board layout not found")
	ErrInvalidLayout  = errors.New("invalid board layout")
)

// DefaultLayout is the name of the compiled-in board.
const DefaultLayout = "classic"

// LayoutInfo summarizes one available board layout.
type LayoutInfo struct {
	Name        string `json:"name"`
	Spaces      int    `json:"spaces"`
	Purchasable int    `json:"purchasable"`
	BuiltIn     bool   `json:"built_in"`
}

// Manager resolves board layouts by name. The compiled-in classic layout
// is always available; an optional directory of *.json files adds more.
// Loaded layouts are cached as parsed definitions, and every LoadBoard
// call returns a fresh mutable copy so concurrent games never share
// ownership state.
type Manager struct {
	layoutDir string

	mu      sync.RWMutex
	layouts map[string][]byte
}

// NewManager creates a layout manager. An empty layoutDir serves only the
// built-in board; a non-empty one must exist.
func NewManager(layoutDir string) (*Manager, error) {
	if layoutDir != "" {
		if _, err := os.Stat(layoutDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("layout directory does not exist: %s", layoutDir)
		}
	}

	return &Manager{
		layoutDir: layoutDir,
		layouts:   make(map[string][]byte),
	}, nil
}

// LoadBoard returns a fresh board for the named layout.
func (m *Manager) LoadBoard(name string) (board.Board, error) {
	if name == "" || name == DefaultLayout {
		return board.New(), nil
	}

	m.mu.RLock()
	data, cached := m.layouts[name]
	m.mu.RUnlock()

	if !cached {
		var err error
		data, err = m.readLayout(name)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.layouts[name] = data
		m.mu.Unlock()
	}

	b, err := board.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return b, nil
}

// BoardFactory returns a zero-argument constructor for the named layout,
// suitable for the session registry. The layout is resolved once up front
// so a bad name fails fast.
func (m *Manager) BoardFactory(name string) (func() board.Board, error) {
	if _, err := m.LoadBoard(name); err != nil {
		return nil, err
	}
	return func() board.Board {
		b, err := m.LoadBoard(name)
		if err != nil {
			// The layout validated at startup; a later failure means the
			// cache was poisoned, which cannot happen through this API.
			panic(fmt.Sprintf("layout %s became unloadable: %v", name, err))
		}
		return b
	}, nil
}

// ListLayouts returns every available layout, built-in first.
func (m *Manager) ListLayouts() ([]LayoutInfo, error) {
	infos := []LayoutInfo{describeLayout(DefaultLayout, board.New(), true)}

	if m.layoutDir == "" {
		return infos, nil
	}

	entries, err := os.ReadDir(m.layoutDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)

	for _, name := range names {
		if name == DefaultLayout {
			continue
		}
		b, err := m.LoadBoard(name)
		if err != nil {
			// Skip files that do not parse as layouts.
			continue
		}
		infos = append(infos, describeLayout(name, b, false))
	}

	return infos, nil
}

func (m *Manager) readLayout(name string) ([]byte, error) {
	if m.layoutDir == "" {
		return nil, ErrLayoutNotFound
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.layoutDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return data, nil
}

func describeLayout(name string, b board.Board, builtIn bool) LayoutInfo {
	purchasable := 0
	for _, space := range b {
		if space.Purchasable() {
			purchasable++
		}
	}
	return LayoutInfo{
		Name:        name,
		Spaces:      len(b),
		Purchasable: purchasable,
		BuiltIn:     builtIn,
	}
}
