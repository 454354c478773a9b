package codebase

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("jsxparse.watch")

// FileWatcher keeps a Codebase in sync with the file system. OnChange, if
// set, is called after each reparse with the new entry, or with nil after
// a removal.
type FileWatcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	OnChange func(path string, info *FileInfo)
}

func NewFileWatcher(c *Codebase) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &FileWatcher{
		codebase: c,
		watcher:  w,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches every directory under the root. Directories created later
// are added as they appear. Events are handled on a separate goroutine.
func (w *FileWatcher) Start() error {
	if err := w.addTree(w.codebase.RootDir()); err != nil {
		return err
	}
	w.started = true
	go w.run()
	return nil
}

// Stop ends the event loop and waits for it to return.
func (w *FileWatcher) Stop() error {
	close(w.stopCh)
	err := w.watcher.Close()
	if w.started {
		<-w.doneCh
	}
	return err
}

func (w *FileWatcher) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Errorf("watch: %s", err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	path := ev.Name
	proj := w.codebase.Project()

	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		if w.codebase.RemoveFile(path) {
			watchLog.Infof("removed %s", path)
			w.notify(path, nil)
		}
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		if proj.Excluded(info.Name()) {
			return
		}
		if err := w.addTree(path); err != nil {
			watchLog.Warningf("watch %s: %s", path, err)
			return
		}
		// Files written before the directory was watched.
		files, err := proj.SourceFiles(path)
		if err != nil {
			watchLog.Warningf("%s", err)
			return
		}
		for _, f := range files {
			w.rescan(f)
		}
		return
	}
	if proj.HasSourceExtension(path) {
		w.rescan(path)
	}
}

func (w *FileWatcher) rescan(path string) {
	if err := w.codebase.ScanFile(path); err != nil {
		watchLog.Warningf("reparse %s: %s", path, err)
		return
	}
	watchLog.Debugf("reparsed %s", path)
	w.notify(path, w.codebase.GetFile(path))
}

func (w *FileWatcher) notify(path string, info *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, info)
	}
}

func (w *FileWatcher) addTree(root string) error {
	proj := w.codebase.Project()
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && proj.Excluded(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
