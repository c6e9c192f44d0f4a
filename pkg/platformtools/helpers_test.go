package platformtools

import (
	"errors"
	"testing"
	"time"

	"DroidKit/pkg/toolexec"
)

var fixedNow = time.Unix(1700000000, 0)

func newTestClient(t *testing.T, f *toolexec.FakeSpawner, opts ...Option) *Client {
	t.Helper()
	resolver := toolexec.NewResolver("", toolexec.WithExistsFunc(func(string) bool { return false }))
	runner := toolexec.NewRunner(resolver, toolexec.WithSpawner(f))
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithSleep(func(time.Duration) {}),
	}
	return New(runner, append(base, opts...)...)
}

func succeed(stdout string) toolexec.FakeResponse {
	return toolexec.FakeResponse{Result: toolexec.Result{Success: true, Stdout: stdout}}
}

func fail(stderr string) toolexec.FakeResponse {
	return toolexec.FakeResponse{Result: toolexec.Result{Success: false, Stderr: stderr}}
}

func failOnStdout(stdout string) toolexec.FakeResponse {
	return toolexec.FakeResponse{Result: toolexec.Result{Success: false, Stdout: stdout}}
}

func missing() toolexec.FakeResponse {
	return toolexec.FakeResponse{Err: errors.New("executable file not found in $PATH")}
}

func callStrings(f *toolexec.FakeSpawner) []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, c.String())
	}
	return out
}
