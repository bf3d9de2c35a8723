package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError reports missing or invalid run parameters. The pipeline
// never starts when one is raised.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Msg
}

// DependencyError reports every required external tool missing from
// PATH, enumerated in one pass so the operator sees the complete list.
type DependencyError struct {
	Missing []string
}

func (e *DependencyError) Error() string {
	return "required tools not found on PATH: " + strings.Join(e.Missing, ", ")
}

// StageFailure wraps a fatal stage error: a non-zero tool exit or an
// expected artifact absent afterwards. There is no retry policy.
type StageFailure struct {
	Stage string
	Err   error
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageFailure) Unwrap() error {
	return e.Err
}

// ErrAwaitingReview signals a clean suspension at the manual review
// checkpoint. It is not a failure; the run exits 0 and a later resume
// invocation picks up from the checkpoint.
var ErrAwaitingReview = errors.New("awaiting manual review of draft scaffold")
