package toolexec

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
)

// Call records one invocation seen by FakeSpawner.
type Call struct {
	Path    string
	Args    []string
	Env     []string
	Started bool // launched with Start rather than waited for
}

// String renders the call as "<base name of path> <args...>".
func (c Call) String() string {
	s := filepath.Base(c.Path)
	if len(c.Args) > 0 {
		s += " " + strings.Join(c.Args, " ")
	}
	return s
}

// FakeResponse is what FakeSpawner answers for a matched call.
type FakeResponse struct {
	Result Result
	Err    error
}

type fakeRule struct {
	prefix string
	resps  []FakeResponse
	next   int
}

// FakeSpawner records calls and answers them from rules registered with On.
// Unmatched synchronous calls succeed with empty output.
//
//	f := &toolexec.FakeSpawner{}
//	f.On("adb devices", toolexec.FakeResponse{Result: toolexec.Result{Success: true, Stdout: out}})
type FakeSpawner struct {
	mu       sync.Mutex
	rules    []*fakeRule
	calls    []Call
	StartErr error
}

// On registers resp for every call whose String() starts with prefix.
// Earlier rules win.
func (f *FakeSpawner) On(prefix string, resp FakeResponse) *FakeSpawner {
	return f.OnSequence(prefix, resp)
}

// OnSequence answers successive matching calls with resps in order; the last
// response repeats once the sequence is exhausted.
func (f *FakeSpawner) OnSequence(prefix string, resps ...FakeResponse) *FakeSpawner {
	if len(resps) == 0 {
		return f
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, &fakeRule{prefix: prefix, resps: resps})
	return f
}

// Output implements Spawner.
func (f *FakeSpawner) Output(_ context.Context, cmd Command) (Result, error) {
	call := f.record(cmd, false)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rule := range f.rules {
		if strings.HasPrefix(call.String(), rule.prefix) {
			resp := rule.resps[rule.next]
			if rule.next < len(rule.resps)-1 {
				rule.next++
			}
			return resp.Result, resp.Err
		}
	}
	return Result{Success: true}, nil
}

// Start implements Spawner.
func (f *FakeSpawner) Start(cmd Command) error {
	f.record(cmd, true)
	return f.StartErr
}

// Calls returns a copy of the recorded calls in order.
func (f *FakeSpawner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeSpawner) record(cmd Command, started bool) Call {
	call := Call{
		Path:    cmd.Path,
		Args:    append([]string(nil), cmd.Args...),
		Env:     append([]string(nil), cmd.Env...),
		Started: started,
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return call
}
