package main

import (
	"fmt"
	"os"
	"runtime"

	"DroidKit/pkg/types"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// OpenFolder shows path in the platform file browser.
func (a *App) OpenFolder(path string) error {
	if path == "" {
		path = a.cfg.DataDir
	}
	return a.tools.OpenFolder(runtime.GOOS, path)
}

// EnsureDir creates path and any missing parents.
func (a *App) EnsureDir(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// GetDataDir returns <base dir>/data.
func (a *App) GetDataDir() string {
	return a.cfg.DataDir
}

// SelectDirectory opens a native folder picker starting in the data dir.
// An empty result means the user cancelled.
func (a *App) SelectDirectory(title string) (string, error) {
	if a.mcpMode || a.ctx == nil {
		return "", fmt.Errorf("directory picker needs the desktop window")
	}
	return wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:                title,
		DefaultDirectory:     a.cfg.DataDir,
		CanCreateDirectories: true,
	})
}

// GetToolStatus reports where every known tool resolves.
func (a *App) GetToolStatus() []types.ToolStatus {
	return a.tools.ToolStatus()
}

// GetBackendLogs returns the tail of the log file for the front end's log
// panel.
func (a *App) GetBackendLogs() []string {
	lines, err := ReadRecentLogs(200)
	if err != nil {
		return []string{}
	}
	return lines
}
