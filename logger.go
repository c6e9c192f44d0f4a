package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger.
var Logger zerolog.Logger

var logFile *RotatingFile

// LogLevel is the minimum level written.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// ParseLogLevel maps "debug", "info", "warn" and "error" to a LogLevel.
// Unknown names mean info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogConfig controls where logs go.
type LogConfig struct {
	Level      LogLevel
	Console    bool
	File       bool
	FilePath   string
	MaxSizeMB  int // rotate once the file grows past this
	MaxBackups int // rotated files kept
}

// DefaultLogConfig logs to the console only.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      LogLevelInfo,
		Console:    true,
		MaxSizeMB:  10,
		MaxBackups: 5,
	}
}

// LogConfigFor derives the log configuration from the app config.
func LogConfigFor(cfg Config) LogConfig {
	lc := DefaultLogConfig()
	lc.Level = cfg.LogLevel
	if cfg.LogToFile {
		lc.File = true
		lc.FilePath = filepath.Join(cfg.DataDir, "log", "droidkit.log")
	}
	return lc
}

// RotatingFile is an io.Writer that starts a new file when the current one
// exceeds the size limit and keeps a bounded number of old files.
type RotatingFile struct {
	mu         sync.Mutex
	path       string
	maxBytes   int64
	maxBackups int
	file       *os.File
	size       int64
	rename     func(oldpath, newpath string) error
}

// NewRotatingFile opens (or creates) path for appending.
func NewRotatingFile(path string, maxSizeMB, maxBackups int) (*RotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	rf := &RotatingFile{
		path:       path,
		maxBytes:   int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
	}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.maxBytes > 0 && rf.size+int64(len(p)) > rf.maxBytes {
		if err := rf.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := rf.file.Write(p)
	rf.size += int64(n)
	return n, err
}

func (rf *RotatingFile) open() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	rf.file = f
	rf.size = info.Size()
	return nil
}

func (rf *RotatingFile) rotate() error {
	if rf.file != nil {
		rf.file.Close()
	}
	ext := filepath.Ext(rf.path)
	stamp := time.Now().Format("20060102-150405.000")
	rotated := strings.TrimSuffix(rf.path, ext) + "-" + stamp + ext
	rename := rf.rename
	if rename == nil {
		rename = os.Rename
	}
	if err := rename(rf.path, rotated); err != nil {
		// Logger writes back into rf, so report on stderr. Keep appending
		// and retry after another maxBytes.
		fmt.Fprintf(os.Stderr, "log rotation of %s failed: %v\n", rf.path, err)
		if err := rf.open(); err != nil {
			return err
		}
		rf.size = 0
		return nil
	}
	rf.prune()
	return rf.open()
}

// prune removes the oldest rotated files beyond maxBackups.
func (rf *RotatingFile) prune() {
	if rf.maxBackups <= 0 {
		return
	}
	ext := filepath.Ext(rf.path)
	old, err := filepath.Glob(strings.TrimSuffix(rf.path, ext) + "-*" + ext)
	if err != nil || len(old) <= rf.maxBackups {
		return
	}
	// timestamped names sort chronologically
	sort.Strings(old)
	for _, p := range old[:len(old)-rf.maxBackups] {
		os.Remove(p)
	}
}

// Close closes the current file.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.file == nil {
		return nil
	}
	err := rf.file.Close()
	rf.file = nil
	return err
}

// InitLogger (re)configures Logger.
func InitLogger(config LogConfig) error {
	var writers []io.Writer
	var rf *RotatingFile
	if config.Console {
		// stdout carries the MCP protocol in --mcp mode, so the console goes to stderr
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	if config.File && config.FilePath != "" {
		var err error
		rf, err = NewRotatingFile(config.FilePath, config.MaxSizeMB, config.MaxBackups)
		if err != nil {
			return err
		}
		writers = append(writers, rf)
	}
	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(config.Level.zerolog()).
		With().
		Timestamp().
		Logger()

	CloseLogger()
	logFile = rf
	return nil
}

// CloseLogger flushes and closes the log file, if any.
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// ModuleLogger returns a child logger tagged with module, for packages that
// take a zerolog.Logger.
func ModuleLogger(module string) zerolog.Logger {
	return Logger.With().Str("module", module).Logger()
}

func LogDebug(module string) *zerolog.Event {
	return Logger.Debug().Str("module", module)
}

func LogInfo(module string) *zerolog.Event {
	return Logger.Info().Str("module", module)
}

func LogWarn(module string) *zerolog.Event {
	return Logger.Warn().Str("module", module)
}

func LogError(module string) *zerolog.Event {
	return Logger.Error().Str("module", module)
}

// UserAction names something the user asked for.
type UserAction string

const (
	ActionDeviceConnect    UserAction = "device_connect"
	ActionDeviceDisconnect UserAction = "device_disconnect"
	ActionShellCommand     UserAction = "shell_command"
	ActionAppInstall       UserAction = "app_install"
	ActionAppUninstall     UserAction = "app_uninstall"
	ActionAppExtract       UserAction = "app_extract"
	ActionFilePush         UserAction = "file_push"
	ActionFilePull         UserAction = "file_pull"
	ActionReboot           UserAction = "reboot"
	ActionSideload         UserAction = "sideload"
	ActionFlash            UserAction = "flash"
	ActionErase            UserAction = "erase"
	ActionUnlock           UserAction = "bootloader_unlock"
	ActionSetActive        UserAction = "set_active_slot"
	ActionScrcpyStart      UserAction = "scrcpy_start"
	ActionScreenRecord     UserAction = "screen_record"
	ActionScreenshot       UserAction = "screenshot"
	ActionPayloadExtract   UserAction = "payload_extract"
)

// LogUserAction records a user-triggered action with optional details.
func LogUserAction(action UserAction, deviceID string, details map[string]interface{}) {
	event := Logger.Info().
		Str("category", "user_interaction").
		Str("action", string(action)).
		Str("device_id", deviceID)
	addFields(event, details).Msg("User action")
}

// AppState is a lifecycle stage.
type AppState string

const (
	StateStarting     AppState = "starting"
	StateReady        AppState = "ready"
	StateShuttingDown AppState = "shutting_down"
)

func LogAppState(state AppState, details map[string]interface{}) {
	event := Logger.Info().
		Str("category", "app_state").
		Str("state", string(state))
	addFields(event, details).Msg("App state changed")
}

func addFields(event *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			event.Str(k, val)
		case []string:
			event.Strs(k, val)
		case int:
			event.Int(k, val)
		case int64:
			event.Int64(k, val)
		case bool:
			event.Bool(k, val)
		case error:
			event.AnErr(k, val)
		default:
			event.Interface(k, val)
		}
	}
	return event
}

// OperationTimer logs how long an operation took.
type OperationTimer struct {
	module    string
	operation string
	start     time.Time
	details   map[string]interface{}
}

// StartOperation starts timing module/operation.
func StartOperation(module, operation string) *OperationTimer {
	return &OperationTimer{
		module:    module,
		operation: operation,
		start:     time.Now(),
		details:   make(map[string]interface{}),
	}
}

func (t *OperationTimer) AddDetail(key string, value interface{}) *OperationTimer {
	t.details[key] = value
	return t
}

// End logs a successful completion.
func (t *OperationTimer) End() {
	t.event(Logger.Info()).Msg("Operation completed")
}

// EndWithError logs a failure.
func (t *OperationTimer) EndWithError(err error) {
	t.event(Logger.Error().Err(err)).Msg("Operation failed")
}

// Finish calls End or EndWithError depending on err.
func (t *OperationTimer) Finish(err error) {
	if err != nil {
		t.EndWithError(err)
		return
	}
	t.End()
}

func (t *OperationTimer) event(e *zerolog.Event) *zerolog.Event {
	d := time.Since(t.start)
	e.Str("module", t.module).
		Str("category", "performance").
		Str("operation", t.operation).
		Int64("duration_ms", d.Milliseconds())
	return addFields(e, t.details)
}

// GetLogFilePath returns the active log file, or "" when logging to the
// console only.
func GetLogFilePath() string {
	if logFile == nil {
		return ""
	}
	return logFile.path
}

// ReadRecentLogs returns the last n lines of the active log file.
func ReadRecentLogs(n int) ([]string, error) {
	path := GetLogFilePath()
	if path == "" {
		return nil, fmt.Errorf("file logging is disabled")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func init() {
	_ = InitLogger(DefaultLogConfig())
}
