package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"DroidKit/pkg/platformtools"
	"DroidKit/pkg/toolexec"

	"github.com/fsnotify/fsnotify"
)

const toolsDebounce = 300 * time.Millisecond

// ToolsWatcher notices binaries being dropped into or removed from the tools
// directories and tells the front end the resolved tool set changed.
type ToolsWatcher struct {
	app      *App
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	mu       sync.Mutex
	onChange func()
}

// NewToolsWatcher creates a watcher for app's tools directories.
func NewToolsWatcher(app *App) *ToolsWatcher {
	w := &ToolsWatcher{
		app:    app,
		stopCh: make(chan struct{}),
	}
	w.onChange = w.notify
	return w
}

// dirs returns the directories the resolver searches that exist on disk.
func (w *ToolsWatcher) dirs() []string {
	base := w.app.cfg.BaseDir
	candidates := []string{
		filepath.Join(base, toolexec.DefaultToolsDir),
		filepath.Join(base, platformtools.ScrcpyRoot),
	}
	var out []string
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

// Start begins watching. It does nothing in MCP mode, where there is no
// window to notify.
func (w *ToolsWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.app.mcpMode {
		return nil
	}

	dirs := w.dirs()
	if len(dirs) == 0 {
		return fmt.Errorf("no tools directory under %s", w.app.cfg.BaseDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return err
		}
	}
	w.watcher = watcher

	LogInfo("tools_watcher").Strs("paths", dirs).Msg("Started watching tools directories")

	go w.watch(watcher)
	return nil
}

// Stop stops watching. It is safe to call more than once.
func (w *ToolsWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		close(w.stopCh)
		w.watcher.Close()
		w.watcher = nil
		LogInfo("tools_watcher").Msg("Stopped watching tools directories")
	}
}

func (w *ToolsWatcher) watch(watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// chmod alone does not change what resolves
			if event.Op == fsnotify.Chmod {
				continue
			}
			LogDebug("tools_watcher").Str("file", event.Name).Str("op", event.Op.String()).Msg("Tools directory changed")

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(toolsDebounce, w.onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			LogError("tools_watcher").Err(err).Msg("Watcher error")
		}
	}
}

func (w *ToolsWatcher) notify() {
	status := w.app.tools.ToolStatus()
	w.app.emit("tools-changed", status)
	LogDebug("tools_watcher").Int("tools", len(status)).Msg("Emitted tools-changed event")
}
