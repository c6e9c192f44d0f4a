package toolexec

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Runner resolves tool names and runs them synchronously.
type Runner struct {
	resolver *Resolver
	spawner  Spawner
	logger   zerolog.Logger
	timeout  time.Duration
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithSpawner replaces the OS process capability, mainly for tests.
func WithSpawner(s Spawner) RunnerOption {
	return func(r *Runner) {
		if s != nil {
			r.spawner = s
		}
	}
}

// WithLogger sets the logger used for per-invocation debug lines.
func WithLogger(l zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithTimeout bounds every synchronous run. Zero, the default, means the
// call waits for as long as the tool runs.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner creates a runner on top of resolver.
func NewRunner(resolver *Resolver, opts ...RunnerOption) *Runner {
	r := &Runner{
		resolver: resolver,
		spawner:  OSSpawner{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolver returns the resolver the runner was built with.
func (r *Runner) Resolver() *Resolver {
	return r.resolver
}

// Run resolves tool and runs it with args.
func (r *Runner) Run(ctx context.Context, tool string, args ...string) (string, error) {
	return r.Exec(ctx, Command{Path: r.resolver.Resolve(tool), Args: args})
}

// Exec runs an already resolved command and waits for it.
// It returns stdout on success, *SpawnError if the process could not run and
// *ExitError if it exited unsuccessfully.
func (r *Runner) Exec(ctx context.Context, cmd Command) (string, error) {
	res, err := r.ExecResult(ctx, cmd)
	if err != nil {
		return "", err
	}
	return res.Collapse(cmd.Path)
}

// ExecResult is Exec without collapsing the streams. Only spawn failures are
// returned as errors.
func (r *Runner) ExecResult(ctx context.Context, cmd Command) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	id := uuid.NewString()
	start := time.Now()
	res, err := r.spawner.Output(ctx, cmd)
	event := r.logger.Debug().
		Str("invocation", id).
		Str("path", cmd.Path).
		Strs("args", cmd.Args).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("spawn failed")
		return Result{}, &SpawnError{Path: cmd.Path, Err: err}
	}
	event.Bool("success", res.Success).Msg("tool finished")
	return res, nil
}

// Start launches cmd without waiting for it. Only a failure to start is
// reported; the process outlives the call and cannot be awaited later.
func (r *Runner) Start(cmd Command) error {
	if err := r.spawner.Start(cmd); err != nil {
		r.logger.Debug().Str("path", cmd.Path).Strs("args", cmd.Args).Err(err).Msg("launch failed")
		return &SpawnError{Path: cmd.Path, Err: err}
	}
	r.logger.Debug().Str("path", cmd.Path).Strs("args", cmd.Args).Msg("launched")
	return nil
}
