// Package platformtools drives adb, fastboot, scrcpy, aapt and the payload
// dumpers. Every method builds a fresh argument vector, runs the tool through
// a toolexec.Runner and returns its output or an error whose text is meant
// to be shown to the user as is.
package platformtools

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"DroidKit/pkg/shellguard"
	"DroidKit/pkg/toolexec"
	"DroidKit/pkg/types"

	"github.com/rs/zerolog"
)

// Logical tool names understood by the resolver.
const (
	Adb             = "adb"
	Fastboot        = "fastboot"
	Scrcpy          = "scrcpy"
	Aapt            = "aapt"
	PayloadDumperGo = "payload-dumper-go"
	Python          = "python"
)

// ScrcpyRoot is searched before the tools folder, since scrcpy releases ship
// as a directory with their own server jar and DLLs.
var ScrcpyRoot = filepath.Join(toolexec.DefaultToolsDir, "scrcpy")

// Client runs platform tool operations. It keeps no per-call state and is
// safe for concurrent use.
type Client struct {
	runner     *toolexec.Runner
	guard      *shellguard.Guard
	logger     zerolog.Logger
	now        func() time.Time
	sleep      func(time.Duration)
	python     string
	retryDelay time.Duration
	reports    ReportCache
}

// ReportCache stores aapt badging reports by APK file version (see
// cache.Key).
type ReportCache interface {
	Get(key string) (string, bool)
	Put(key, report string)
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger. It is also used for guard escalation audits.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClock replaces time.Now, used for screenshot and recording names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithPython sets the interpreter used for the payload_dumper module.
func WithPython(python string) Option {
	return func(c *Client) {
		if python != "" {
			c.python = python
		}
	}
}

// WithReportCache caches successful AnalyzeAPK reports in rc.
func WithReportCache(rc ReportCache) Option {
	return func(c *Client) {
		c.reports = rc
	}
}

// WithConnectRetryDelay sets the pause before the single connect retry.
func WithConnectRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithSleep replaces time.Sleep.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// New creates a client on top of runner.
func New(runner *toolexec.Runner, opts ...Option) *Client {
	c := &Client{
		runner:     runner,
		logger:     zerolog.Nop(),
		now:        time.Now,
		sleep:      time.Sleep,
		python:     Python,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.guard = shellguard.New(c.logger)
	return c
}

// Runner returns the underlying runner.
func (c *Client) Runner() *toolexec.Runner {
	return c.runner
}

// ToolStatus reports where each known tool resolves to.
func (c *Client) ToolStatus() []types.ToolStatus {
	resolver := c.runner.Resolver()
	lookups := []struct {
		name  string
		roots []string
	}{
		{Adb, nil},
		{Fastboot, nil},
		{Scrcpy, []string{ScrcpyRoot}},
		{Aapt, nil},
		{PayloadDumperGo, nil},
		{c.python, nil},
	}
	status := make([]types.ToolStatus, 0, len(lookups))
	for _, l := range lookups {
		path, found := resolver.Lookup(l.name, l.roots...)
		status = append(status, types.ToolStatus{Name: l.name, Path: path, Bundled: found})
	}
	return status
}

func (c *Client) adb(ctx context.Context, args []string) (string, error) {
	return c.runner.Run(ctx, Adb, args...)
}

// fastboot reports most of its progress on stderr, even on success, so an
// empty stdout is replaced by stderr.
func (c *Client) fastboot(ctx context.Context, args []string) (string, error) {
	path := c.runner.Resolver().Resolve(Fastboot)
	res, err := c.runner.ExecResult(ctx, toolexec.Command{Path: path, Args: args})
	if err != nil {
		return "", err
	}
	out, err := res.Collapse(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		out = res.Stderr
	}
	return out, nil
}
