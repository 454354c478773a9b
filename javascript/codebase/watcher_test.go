package codebase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/jsxparse/project"
)

type change struct {
	path string
	info *FileInfo
}

func startWatcher(t *testing.T, dir string) <-chan change {
	t.Helper()
	w, err := NewFileWatcher(New(project.Default(dir)))
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	changes := make(chan change, 64)
	w.OnChange = func(path string, info *FileInfo) {
		select {
		case changes <- change{path, info}:
		default:
		}
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return changes
}

// waitFor reads changes until one satisfies ok.
func waitFor(t *testing.T, changes <-chan change, what string, ok func(change) bool) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if ok(c) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", what)
		}
	}
}

func TestFileWatcherReparses(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir)

	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte("let x = ;"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, "reparse with errors", func(c change) bool {
		return c.path == path && c.info != nil && c.info.HasErrors()
	})

	if err := os.WriteFile(path, []byte("let x = 1;"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, "clean reparse", func(c change) bool {
		return c.path == path && c.info != nil && !c.info.HasErrors() && len(c.info.Content) > 0
	})

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, "removal", func(c change) bool {
		return c.path == path && c.info == nil
	})
}

func TestFileWatcherNewDirectory(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir)

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(sub, "b.jsx")
	if err := os.WriteFile(path, []byte("<b />;"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, "file in new directory", func(c change) bool {
		return c.path == path && c.info != nil && len(c.info.Content) > 0
	})
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changes := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	js := filepath.Join(dir, "c.js")
	if err := os.WriteFile(js, []byte("c;"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, "c.js", func(c change) bool {
		if filepath.Ext(c.path) == ".txt" {
			t.Errorf("change reported for %s", c.path)
		}
		return c.path == js
	})
}
