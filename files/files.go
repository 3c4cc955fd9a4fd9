package files

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

const Ext = ".narc"

// Finder expands command line arguments into source files.
type Finder interface {
	FindSources(path string) ([]string, error)
}

func NewFinder() Finder {
	return &finder{ext: Ext}
}

type finder struct {
	ext string
}

// FindSources returns path itself when it is a file, or the sources
// directly inside it, sorted by name, when it is a directory.
func (f *finder) FindSources(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == f.ext {
			sources = append(sources, filepath.Join(path, entry.Name()))
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no %v files in %v", f.ext, path)
	}
	slices.Sort(sources)
	return sources, nil
}
