package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseYAML_MergesOverDefaults(t *testing.T) {
	store := NewStore()

	err := store.ParseYAML([]byte("boardSize: 5\ndifficulty: hard\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Defaults()
	want.BoardSize = 5
	want.Difficulty = DifficultyHard
	if diff := cmp.Diff(want, store.Current()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML_InvalidDocumentKeepsState(t *testing.T) {
	store := NewStore()
	store.Update(func(s *Snapshot) { s.BoardSize = 4 })

	if err := store.ParseYAML([]byte("boardSize: [nope")); err == nil {
		t.Fatal("expected a parse error")
	}
	if got := store.Current().BoardSize; got != 4 {
		t.Fatalf("failed parse must not clobber state, got %d", got)
	}
}

func TestUpdate_CopySemantics(t *testing.T) {
	store := NewStore()
	snap := store.Current()
	snap.BoardSize = 9

	if store.Current().BoardSize == 9 {
		t.Fatal("snapshots must be copies, not references")
	}
}
