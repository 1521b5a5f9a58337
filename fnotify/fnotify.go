// Package fnotify reports changes to a set of files, coalescing bursts of
// filesystem events into one notification per file.
package fnotify

import (
	"log"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/fsnotify.v1"
)

type Notifier struct {
	name     string
	watcher  *fsnotify.Watcher
	files    map[string]bool
	Debounce time.Duration
	shutdown chan bool
}

const DefaultDebounce = 250 * time.Millisecond

func New(name string) *Notifier {
	return &Notifier{
		name:     name,
		files:    map[string]bool{},
		Debounce: DefaultDebounce,
		shutdown: make(chan bool, 1),
	}
}

// Close stops Run. Closing an already closed Notifier does nothing.
func (n *Notifier) Close() {
	select {
	case n.shutdown <- true:
	default:
	}
}

// Watch starts watching files. The containing directories are watched so
// that files replaced by rename (as editors and converters do) are still
// seen.
func (n *Notifier) Watch(files []string) error {
	if n.watcher == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "watcher "+n.name)
		}
		n.watcher = watcher
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Wrap(err, f)
		}
		n.files[abs] = true
		if err := n.watcher.Add(filepath.Dir(abs)); err != nil {
			return errors.Wrapf(err, "watch %s", f)
		}
	}
	return nil
}

func (n *Notifier) watched(name string) (string, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	return abs, n.files[abs]
}

// Run sends the absolute path of each watched file to res once its events
// have been quiet for Debounce. Run returns when the Notifier is closed.
func (n *Notifier) Run(res chan<- string) error {
	if n.watcher == nil {
		return errors.Errorf("watcher %s: nothing to watch", n.name)
	}
	defer n.watcher.Close()

	pendingChanges := map[string]bool{}

	throttler := time.NewTimer(n.Debounce)
	throttler.Stop()
	throttleChan := func() <-chan time.Time {
		if len(pendingChanges) == 0 {
			return nil
		}
		return throttler.C
	}

selectLoop:
	for {
		select {
		case event, ok := <-n.watcher.Events:
			if !ok {
				break selectLoop
			}
			file, watched := n.watched(event.Name)
			if !watched || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pendingChanges[file] = true
			throttler.Reset(n.Debounce)
		case <-throttleChan():
			for file := range pendingChanges {
				delete(pendingChanges, file)
				log.Println("Firing pending change for", file)
				res <- file
			}
		case err, ok := <-n.watcher.Errors:
			if !ok {
				break selectLoop
			}
			log.Println("watcher", n.name, "error:", err)
		case <-n.shutdown:
			break selectLoop
		}
	}
	throttler.Stop()
	return nil
}
