// Package settings exposes the shared game settings as a read-only snapshot
// source. The template provider reads defaults from here at build time and
// never writes back; application code applies resolved dialog values through
// the store's update API.
package settings

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Difficulty levels the AI opponent supports.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Opponent identifiers for the game-setting dialog.
const (
	OpponentPlayer   = "player"
	OpponentComputer = "computer"
	OpponentOnline   = "online"
)

// Snapshot is an immutable view of the current settings. Copies are handed
// out by value, so callers cannot corrupt the store.
type Snapshot struct {
	BoardSize      int    `yaml:"boardSize"`
	Difficulty     string `yaml:"difficulty"`
	Opponent       string `yaml:"opponent"`
	PlayerOneColor string `yaml:"playerOneColor"`
	PlayerTwoColor string `yaml:"playerTwoColor"`
}

// Source supplies the current settings snapshot to readers.
type Source interface {
	Current() Snapshot
}

// Defaults returns the out-of-the-box settings.
func Defaults() Snapshot {
	return Snapshot{
		BoardSize:      3,
		Difficulty:     DifficultyMedium,
		Opponent:       OpponentPlayer,
		PlayerOneColor: "#e94f37",
		PlayerTwoColor: "#393e41",
	}
}

// Store is the in-memory settings source.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewStore constructs a store seeded with Defaults.
func NewStore() *Store {
	return &Store{snap: Defaults()}
}

// Current returns the snapshot by value.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Set replaces the snapshot wholesale.
func (s *Store) Set(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Update applies fn to a copy of the snapshot and commits the result.
func (s *Store) Update(fn func(*Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	snap := s.snap
	fn(&snap)
	s.snap = snap
	s.mu.Unlock()
}

// ParseYAML merges a YAML settings document over the current snapshot. Absent
// keys keep their current values.
func (s *Store) ParseYAML(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snap
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("settings: parse yaml: %w", err)
	}
	s.snap = snap
	return nil
}

// LoadYAML reads and merges a YAML settings file.
func (s *Store) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("settings: read %s: %w", path, err)
	}
	return s.ParseYAML(data)
}
