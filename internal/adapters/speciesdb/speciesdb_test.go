package speciesdb

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

const testDatabase = `{
  "Permineralized Bone": ["Tyrannosaurus Rex", "Triceratops"],
  "Petrified Wood": ["Araucarioxylon"],
  "Shell Fragment": ["Ammonite", "Trilobite"]
}`

func newTestRepository(t *testing.T) *FileRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "species.json")
	if err := os.WriteFile(path, []byte(testDatabase), 0644); err != nil {
		t.Fatalf("failed to write database: %v", err)
	}
	return NewFileRepository(path, zap.NewNop())
}

func TestList(t *testing.T) {
	repo := newTestRepository(t)

	db, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(db) != 3 {
		t.Errorf("List() returned %d fossil types, want 3", len(db))
	}
	want := []string{"Tyrannosaurus Rex", "Triceratops"}
	if !reflect.DeepEqual(db["Permineralized Bone"], want) {
		t.Errorf("Permineralized Bone = %v, want %v", db["Permineralized Bone"], want)
	}
}

func TestSearch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("matches species case-insensitively", func(t *testing.T) {
		matches, err := repo.Search(ctx, "REX")
		if err != nil {
			t.Fatalf("Search() error: %v", err)
		}
		want := map[string][]string{"Permineralized Bone": {"Tyrannosaurus Rex"}}
		if !reflect.DeepEqual(matches, want) {
			t.Errorf("Search(REX) = %v, want %v", matches, want)
		}
	})

	t.Run("matching type returns all its species", func(t *testing.T) {
		matches, err := repo.Search(ctx, "wood")
		if err != nil {
			t.Fatalf("Search() error: %v", err)
		}
		want := map[string][]string{"Petrified Wood": {"Araucarioxylon"}}
		if !reflect.DeepEqual(matches, want) {
			t.Errorf("Search(wood) = %v, want %v", matches, want)
		}
	})

	t.Run("no matches yields empty map", func(t *testing.T) {
		matches, err := repo.Search(ctx, "stromatolite")
		if err != nil {
			t.Fatalf("Search() error: %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("Search(stromatolite) = %v, want empty", matches)
		}
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		if _, err := repo.Search(ctx, "   "); err == nil {
			t.Error("Search() expected error for empty query")
		}
	})
}

func TestMissingDatabaseFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())

	if _, err := repo.List(context.Background()); err == nil {
		t.Error("List() expected error for missing database file")
	}
}

func TestMalformedDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to write database: %v", err)
	}
	repo := NewFileRepository(path, zap.NewNop())

	if _, err := repo.List(context.Background()); err == nil {
		t.Error("List() expected error for malformed database file")
	}
}
