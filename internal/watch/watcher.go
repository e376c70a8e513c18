package watch

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// FileChangeEvent reports that a watched file was written or replaced.
type FileChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// FileWatcher watches individual files and publishes debounced change
// events on Changes. It watches each file's directory so editors that
// replace files through a rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]int
	debounce time.Duration
	changes  chan FileChangeEvent
	mu       sync.RWMutex
	done     chan struct{}
	closing  sync.Once
}

func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		debounce: debounce,
		changes:  make(chan FileChangeEvent, 8),
		done:     make(chan struct{}),
	}

	go fw.watch()
	return fw, nil
}

// Changes delivers one event per burst of writes to a watched file. It is
// closed once the watcher stops.
func (fw *FileWatcher) Changes() <-chan FileChangeEvent {
	return fw.changes
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.files[absPath] {
		return nil // Already watching
	}

	dir := filepath.Dir(absPath)
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
	}

	fw.dirs[dir]++
	fw.files[absPath] = true
	return nil
}

func (fw *FileWatcher) RemoveFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[absPath] {
		return nil // Not watching
	}

	delete(fw.files, absPath)
	dir := filepath.Dir(absPath)
	fw.dirs[dir]--
	if fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		return fw.watcher.Remove(dir)
	}
	return nil
}

func (fw *FileWatcher) watching(path string) bool {
	fw.mu.RLock()
	defer fw.mu.RUnlock()
	return fw.files[path]
}

func (fw *FileWatcher) watch() {
	defer close(fw.changes)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(fw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !fw.watching(event.Name) {
				continue
			}
			// Debounce rapid events
			pending[event.Name] = time.Now()

		case <-ticker.C:
			now := time.Now()
			for path, last := range pending {
				if now.Sub(last) < fw.debounce {
					continue
				}
				delete(pending, path)
				select {
				case fw.changes <- FileChangeEvent{Path: path, Timestamp: now}:
				default:
					// Channel full, the consumer already has a reload queued
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.closing.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
