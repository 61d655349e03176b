package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"grimport/internal/importer"
	"grimport/internal/log"
	"grimport/pkg/types"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a source tree for new scripts using fsnotify and
// installs matching files as they appear.
type Watcher struct {
	engine   *importer.Engine
	destDir  string
	debounce time.Duration

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Channel delivering the outcome of each triggered install
	resultChan chan types.ImportResult

	// Channel to signal stop
	stopChan chan struct{}

	// Lock for running state
	mutex   sync.Mutex
	running bool
}

// New creates a watcher that installs scripts passing the engine's filter
// into destDir. debounce is how long to wait after a file event before
// copying, giving writers a moment to finish.
func New(engine *importer.Engine, destDir string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		engine:     engine,
		destDir:    destDir,
		debounce:   debounce,
		fsWatcher:  fsWatcher,
		resultChan: make(chan types.ImportResult, 10),
		stopChan:   make(chan struct{}),
	}, nil
}

// AddTree registers root and every directory below it with the watcher
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		log.Debug("Watching directory %s", path)
		return nil
	})
}

// Results returns the channel that delivers install outcomes
func (w *Watcher) Results() <-chan types.ImportResult {
	return w.resultChan
}

// Start begins the event loop in a separate goroutine
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	log.Info("Watch mode started")

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Error("Watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	// The file might already be gone again
	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}

	// New directories join the watch set
	if info.IsDir() {
		if err := w.fsWatcher.Add(event.Name); err != nil {
			log.Error("Failed to watch new directory %s: %v", event.Name, err)
		}
		return
	}

	if !w.engine.Match(filepath.Base(event.Name)) {
		return
	}

	if w.debounce > 0 {
		time.Sleep(w.debounce)
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		log.Error("Failed to resolve %s: %v", event.Name, err)
		return
	}

	result, err := w.engine.Install(types.FileRecord{Path: abs}, w.destDir)
	if err != nil {
		log.LogWithFields(log.F("file", abs)).Error("Install failed: %v", err)
		return
	}
	if result.Copied {
		log.Info("Imported %s -> %s", result.SourcePath, result.DestinationPath)
	}

	// Send non-blockingly so a slow consumer never stalls the loop
	select {
	case w.resultChan <- result:
	default:
	}
}

// Stop halts the event loop and releases the fsnotify watcher
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.Error("Error closing watcher: %v", err)
	}
}
