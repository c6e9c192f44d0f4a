package toolexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Command is a single process invocation. It is built per call and never reused.
type Command struct {
	Path string
	Args []string
	Env  []string // extra KEY=VALUE pairs on top of the inherited environment
}

// String renders the command for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Result is the raw outcome of a finished process.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Collapse turns r into stdout on success, or an *ExitError carrying stderr
// (stdout when stderr is blank, since some tools report errors there).
func (r Result) Collapse(path string) (string, error) {
	if r.Success {
		return r.Stdout, nil
	}
	msg := r.Stderr
	if strings.TrimSpace(msg) == "" {
		msg = r.Stdout
	}
	return "", &ExitError{Path: path, Output: msg}
}

// Spawner is the process capability used by Runner.
// Output waits for the process; Start returns once it is running.
// A non-nil error from either means the process never ran to completion.
type Spawner interface {
	Output(ctx context.Context, cmd Command) (Result, error)
	Start(cmd Command) error
}

// OSSpawner runs commands with os/exec. The console window is suppressed on
// Windows and proxy variables are removed from the child environment.
type OSSpawner struct{}

// Output implements Spawner.
func (OSSpawner) Output(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	prepare(cmd, c.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		res.Success = true
		return res, nil
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, err
}

// Start implements Spawner. The child is reaped in the background and no
// handle is kept.
func (OSSpawner) Start(c Command) error {
	cmd := exec.Command(c.Path, c.Args...)
	prepare(cmd, c.Env)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

var proxyVars = []string{"HTTP_PROXY", "HTTPS_PROXY", "ALL_PROXY", "NO_PROXY"}

func prepare(cmd *exec.Cmd, extra []string) {
	env := os.Environ()
	clean := make([]string, 0, len(env)+len(extra))
	for _, e := range env {
		if !isProxyVar(e) {
			clean = append(clean, e)
		}
	}
	cmd.Env = append(clean, extra...)
	hideConsole(cmd)
}

func isProxyVar(kv string) bool {
	name, _, _ := strings.Cut(kv, "=")
	for _, v := range proxyVars {
		if strings.EqualFold(name, v) {
			return true
		}
	}
	return false
}
