package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/owo-lang/narc/files"
	"github.com/samber/lo"
)

// Editors tend to write a file in several steps.
const settle = 100 * time.Millisecond

// watch checks paths, then checks all of them again from scratch whenever
// a source file next to them changes, until ctx is cancelled.
func (e *env) watch(ctx context.Context, paths []string) int {
	dirs, err := watchedDirs(paths)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 2
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return 1
	}
	defer w.Close()
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			fmt.Fprintln(e.stderr, err)
			return 1
		}
	}

	recheck := func() {
		e.checkAll(ctx, paths)
		fmt.Fprintln(e.stdout, "Watching for changes.")
	}
	recheck()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return 0
		case ev, ok := <-w.Events:
			if !ok {
				return 0
			}
			if changed(ev) {
				pending = time.After(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintln(e.stderr, err)
		case <-pending:
			pending = nil
			recheck()
		}
	}
}

func changed(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != files.Ext {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// watchedDirs are the directories holding paths. Files are watched through
// their directory so that editors replacing them are still noticed.
func watchedDirs(paths []string) ([]string, error) {
	dirs := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "-" {
			return nil, fmt.Errorf("cannot watch standard input")
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirs = append(dirs, filepath.Clean(path))
		} else {
			dirs = append(dirs, filepath.Dir(path))
		}
	}
	return lo.Uniq(dirs), nil
}
