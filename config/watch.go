package config

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a watched file must stay quiet before its change
// is reported.
const DefaultSettle = 150 * time.Millisecond

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reports changes to a fixed set of files. It watches their parent
// directories so editors that save by rename are still seen, and reports a
// file once its burst of writes has settled. Events carry the path exactly as
// it was passed to NewWatcher.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]string // absolute path -> path as given
	settle  time.Duration
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches files, ignoring empty names. settle <= 0 uses
// DefaultSettle.
func NewWatcher(settle time.Duration, files ...string) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fs,
		files:   make(map[string]string, len(files)),
		settle:  settle,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	dirs := map[string]bool{}
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fs.Close()
			return nil, err
		}
		w.files[abs] = f
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// match maps an fsnotify event name back to a watched file.
func (w *Watcher) match(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	f, ok := w.files[abs]
	return f, ok
}

func (w *Watcher) run() {
	defer close(w.done)

	due := map[string]time.Time{}
	timer := time.NewTimer(w.settle)
	timer.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&watchedOps == 0 {
				continue
			}
			f, ok := w.match(ev.Name)
			if !ok {
				continue
			}
			due[f] = time.Now().Add(w.settle)
			timer.Reset(time.Until(earliest(due)))
		case <-timer.C:
			now := time.Now()
			var ready []string
			for f, at := range due {
				if !at.After(now) {
					ready = append(ready, f)
				}
			}
			sort.Strings(ready)
			for _, f := range ready {
				delete(due, f)
				select {
				case w.Events <- f:
				case <-w.closeCh:
					return
				}
			}
			if len(due) > 0 {
				timer.Reset(time.Until(earliest(due)))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

func earliest(due map[string]time.Time) time.Time {
	var first time.Time
	for _, at := range due {
		if first.IsZero() || at.Before(first) {
			first = at
		}
	}
	return first
}

// SameFile reports whether two paths name the same file after cleaning.
func SameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
