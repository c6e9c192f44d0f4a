package toolexec

import "fmt"

// SpawnError means the process could not be started at all
// (missing binary, permission denied, cancelled context).
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitError means the tool ran and reported failure. Output is stderr, or
// stdout when stderr was empty, and is the whole error message.
type ExitError struct {
	Path   string
	Output string
}

func (e *ExitError) Error() string {
	return e.Output
}
