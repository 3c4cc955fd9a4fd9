package files

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.narc", "a.narc", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.narc"), 0o755); err != nil {
		t.Fatal(err)
	}

	finder := NewFinder()

	got, err := finder.FindSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.narc"), filepath.Join(dir, "b.narc")}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	single := filepath.Join(dir, "notes.txt")
	if got, err := finder.FindSources(single); err != nil || !slices.Equal(got, []string{single}) {
		t.Errorf("file argument: %v, %v", got, err)
	}

	if _, err := finder.FindSources(filepath.Join(dir, "sub.narc")); err == nil {
		t.Error("empty directory accepted")
	}
	if _, err := finder.FindSources(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing path accepted")
	}
}
