package main

import (
	"context"
	"path/filepath"

	"DroidKit/mcp"
	"DroidKit/pkg/cache"
	"DroidKit/pkg/platformtools"
	"DroidKit/pkg/toolexec"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     Config
	tools   *platformtools.Client
	reports *cache.Service
	watcher *ToolsWatcher
	mcpMode bool

	mcpServer *mcp.MCPServer
	version string
}

// NewApp creates a new App instance
func NewApp(cfg Config, version string) *App {
	app := &App{
		cfg:     cfg,
		version: version,
	}
	var opts []platformtools.Option
	reports, err := cache.New(cache.Config{
		Dir:    filepath.Join(cfg.DataDir, "cache"),
		Logger: ModuleLogger("cache"),
	})
	if err != nil {
		LogWarn("app").Err(err).Msg("APK reports will not be cached")
	} else {
		app.reports = reports
		opts = append(opts, platformtools.WithReportCache(reports))
	}
	app.tools = newToolsClient(cfg, nil, opts...)
	return app
}

// newToolsClient wires the resolver, runner and client from cfg. A nil
// spawner runs real processes.
func newToolsClient(cfg Config, spawner toolexec.Spawner, opts ...platformtools.Option) *platformtools.Client {
	resolver := toolexec.NewResolver(cfg.BaseDir)
	runner := toolexec.NewRunner(resolver,
		toolexec.WithSpawner(spawner),
		toolexec.WithLogger(ModuleLogger("toolexec")),
		toolexec.WithTimeout(cfg.CommandTimeout),
	)
	base := []platformtools.Option{
		platformtools.WithLogger(ModuleLogger("platformtools")),
		platformtools.WithPython(cfg.PythonPath),
	}
	return platformtools.New(runner, append(base, opts...)...)
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx, a.cancel = context.WithCancel(ctx)
	LogAppState(StateStarting, map[string]interface{}{
		"version":  a.version,
		"base_dir": a.cfg.BaseDir,
		"mcp":      a.mcpMode,
	})

	if err := a.cfg.EnsureDataDirs(); err != nil {
		LogError("app").Err(err).Str("data_dir", a.cfg.DataDir).Msg("Failed to prepare data directory")
	}

	a.watcher = NewToolsWatcher(a)
	if err := a.watcher.Start(); err != nil {
		LogWarn("app").Err(err).Msg("Tools directory is not watched")
	}

	bundled := 0
	for _, st := range a.tools.ToolStatus() {
		if st.Bundled {
			bundled++
		}
	}
	LogAppState(StateReady, map[string]interface{}{"bundled_tools": bundled})
}

// shutdown aborts running tools, saves the report cache and closes the log.
func (a *App) shutdown(ctx context.Context) {
	LogAppState(StateShuttingDown, nil)
	if a.mcpServer != nil {
		a.mcpServer.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.reports != nil {
		if err := a.reports.Close(); err != nil {
			LogWarn("app").Err(err).Msg("Failed to save APK report cache")
		}
	}
	CloseLogger()
}

// GetAppVersion returns the application version
func (a *App) GetAppVersion() string {
	return a.version
}

// context is the app context, or Background before startup.
func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// emit sends an event to the front end. It is a no-op without a window.
func (a *App) emit(event string, data interface{}) {
	if !a.mcpMode && a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, event, data)
	}
}

// finish ends timer and tells the front end the action completed.
func (a *App) finish(timer *OperationTimer, action UserAction, device string, err error) {
	timer.Finish(err)
	payload := map[string]interface{}{
		"action":  string(action),
		"device":  device,
		"success": err == nil,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	a.emit("device-action", payload)
}

// dataPath returns dir, or <data>/<sub> when dir is empty.
func (a *App) dataPath(dir, sub string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(a.cfg.DataDir, sub)
}
