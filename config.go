package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"
)

const envPrefix = "DROIDKIT_"

// dataSubdirs are created under the data directory at startup.
var dataSubdirs = []string{"apk", "backup", "screenshot", "record", "rom", "module", "log"}

// Config is resolved once at startup and passed to everything that needs a
// path or a tool setting.
type Config struct {
	BaseDir        string        // directory tools are searched from, normally the executable's
	DataDir        string        // <BaseDir>/data
	PythonPath     string        // interpreter for the payload_dumper module
	ScrcpyArgs     string        // extra mirroring flags, shell quoted
	LogLevel       LogLevel
	LogToFile      bool          // write a rotating log under <DataDir>/log
	CommandTimeout time.Duration // 0 waits for tools indefinitely
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig(baseDir string) Config {
	return Config{
		BaseDir:    baseDir,
		DataDir:    filepath.Join(baseDir, "data"),
		PythonPath: "python",
		LogLevel:   LogLevelInfo,
	}
}

// SettingsPath is the optional JSON settings file.
func (c Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.json")
}

// LoadConfig builds the configuration from, in increasing priority:
// defaults, <data>/settings.json, a .env next to the executable, and
// DROIDKIT_* environment variables.
func LoadConfig() (Config, error) {
	exeDir, err := executableDir()
	if err != nil {
		return Config{}, err
	}
	loadDotEnv(exeDir)

	cfg := DefaultConfig(envString("BASE_DIR", exeDir))
	data, err := os.ReadFile(cfg.SettingsPath())
	switch {
	case err == nil:
		if err := cfg.applySettings(data); err != nil {
			return cfg, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("failed to read settings: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applySettings reads the keys DroidKit understands from settings.json and
// ignores the rest, which belongs to the front end.
func (c *Config) applySettings(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("settings.json is not valid JSON")
	}
	if v := gjson.GetBytes(data, "pythonPath"); v.Exists() && v.String() != "" {
		c.PythonPath = v.String()
	}
	if v := gjson.GetBytes(data, "scrcpyArgs"); v.Exists() {
		c.ScrcpyArgs = v.String()
	}
	if v := gjson.GetBytes(data, "log.level"); v.Exists() {
		c.LogLevel = ParseLogLevel(v.String())
	}
	if v := gjson.GetBytes(data, "log.file"); v.Exists() {
		c.LogToFile = v.Bool()
	}
	if v := gjson.GetBytes(data, "commandTimeout"); v.Exists() {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid commandTimeout: %w", err)
		}
		c.CommandTimeout = d
	}
	return nil
}

// parseTimeout accepts a number of seconds or a Go duration string.
func parseTimeout(v gjson.Result) (time.Duration, error) {
	if v.Type == gjson.Number {
		return time.Duration(v.Float() * float64(time.Second)), nil
	}
	return time.ParseDuration(v.String())
}

func (c *Config) applyEnv() {
	c.PythonPath = envString("PYTHON", c.PythonPath)
	c.ScrcpyArgs = envString("SCRCPY_ARGS", c.ScrcpyArgs)
	if v := envString("LOG_LEVEL", ""); v != "" {
		c.LogLevel = ParseLogLevel(v)
	}
	c.LogToFile = envBool("LOG_FILE", c.LogToFile)
	if v := envString("COMMAND_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CommandTimeout = d
		} else {
			LogWarn("config").Str("value", v).Msg("Ignoring invalid DROIDKIT_COMMAND_TIMEOUT")
		}
	}
}

// EnsureDataDirs creates the data directory and its standard sub-folders.
func (c Config) EnsureDataDirs() error {
	for _, sub := range dataSubdirs {
		if err := os.MkdirAll(filepath.Join(c.DataDir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// loadDotEnv loads <dir>/.env without overriding variables already set.
// Tests stay hermetic unless GOTEST_LOAD_DOTENV=1.
func loadDotEnv(dir string) {
	if runningUnderGoTest() && os.Getenv("GOTEST_LOAD_DOTENV") != "1" {
		return
	}
	path := filepath.Join(dir, ".env")
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return
	}
	if err := godotenv.Load(path); err != nil {
		LogWarn("config").Err(err).Str("dotenv", path).Msg("Failed to load .env")
		return
	}
	LogDebug("config").Str("dotenv", path).Msg("Loaded .env")
}

func runningUnderGoTest() bool {
	if strings.HasSuffix(os.Args[0], ".test") {
		return true
	}
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}
