package assets

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"stargate/core"
)

// Watcher collects shader file changes in the background. The frame loop
// drains them once per frame with Changed, which never blocks.
type Watcher struct {
	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		fs:      fw,
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	core.LogInfo("watching shaders", "dir", dir)
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Editors often save by rename+create, so Create counts too.
			if e.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.mark(filepath.Base(e.Name))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			core.LogError("shader watcher", "err", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) mark(name string) {
	w.mu.Lock()
	w.pending[name] = struct{}{}
	w.mu.Unlock()
}

// Changed returns the file names modified since the last call, sorted.
func (w *Watcher) Changed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for name := range w.pending {
		out = append(out, name)
	}
	clear(w.pending)
	sort.Strings(out)
	return out
}

func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
