package cmd

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/go-drift/codeview/pkg/errors"
)

// fileWatcher calls onChange whenever one file is written or recreated.
// It watches the parent directory so editors that save by renaming a
// temporary file over the original are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	wg      sync.WaitGroup
}

func watchFile(path string, onChange func()) (*fileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &fileWatcher{watcher: fsw, path: filepath.Clean(path)}
	w.wg.Add(1)
	go w.loop(onChange)
	return w, nil
}

func (w *fileWatcher) loop(onChange func()) {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			errors.Report(&errors.EditorError{
				Op:   "codeview.watch",
				Kind: errors.KindConfig,
				Err:  err,
			})
		}
	}
}

// Close stops watching and waits for the event goroutine to exit.
func (w *fileWatcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
