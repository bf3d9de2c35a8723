package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sequencer runs stages strictly in order, each blocking until its
// external tools exit. Before a stage runs, every declared input
// artifact must exist and be non-empty; after it runs, every declared
// output must too. The first failure aborts the whole run.
type Sequencer struct {
	ctx       *Context
	stages    []Stage
	completed map[string]bool
	executed  []string

	// SaveState, when set, persists the completed-stage set after each
	// stage finishes, so a later invocation can skip them.
	SaveState func(completed []string) error
}

func NewSequencer(ctx *Context, stages []Stage) *Sequencer {
	return &Sequencer{
		ctx:       ctx,
		stages:    stages,
		completed: make(map[string]bool),
	}
}

// MarkCompleted records stages finished by a prior invocation; they
// are skipped, never re-run. This is what makes resuming from a
// checkpoint idempotent with respect to earlier stages.
func (s *Sequencer) MarkCompleted(names ...string) {
	for _, name := range names {
		s.completed[name] = true
	}
}

// Completed returns the completed stage names in execution order.
func (s *Sequencer) Completed() []string {
	var done []string
	for _, st := range s.stages {
		if s.completed[st.Name] {
			done = append(done, st.Name)
		}
	}
	return done
}

// Executed returns the stages actually run by this invocation.
func (s *Sequencer) Executed() []string {
	return s.executed
}

// Run executes the remaining stages in order. It returns
// ErrAwaitingReview unchanged when a stage suspends at the manual
// review checkpoint; any other error is wrapped as a *StageFailure.
func (s *Sequencer) Run() error {
	for _, st := range s.stages {
		if s.completed[st.Name] {
			slog.Info("PIPELINE", "PROGRAM", st.Name, "TARGET", "ALL", "STATUS", "SKIPPED")
			continue
		}

		if err := s.ctx.Reg.VerifyNonEmpty(st.Inputs...); err != nil {
			return &StageFailure{Stage: st.Name, Err: fmt.Errorf("input check: %w", err)}
		}

		slog.Info("PIPELINE", "PROGRAM", st.Name, "TARGET", "ALL", "STATUS", "STARTED")
		s.executed = append(s.executed, st.Name)

		if err := st.Run(s.ctx); err != nil {
			if errors.Is(err, ErrAwaitingReview) {
				slog.Info("PIPELINE", "PROGRAM", st.Name, "TARGET", "ALL", "STATUS", "SUSPENDED")
				return err
			}
			slog.Error("PIPELINE", "PROGRAM", st.Name, "TARGET", "ALL", "STATUS", fmt.Sprintf("FAILED - %v", err))
			return &StageFailure{Stage: st.Name, Err: err}
		}

		if err := s.ctx.Reg.VerifyNonEmpty(st.Outputs...); err != nil {
			slog.Error("PIPELINE", "PROGRAM", st.Name, "TARGET", "ALL", "STATUS", fmt.Sprintf("FAILED - %v", err))
			return &StageFailure{Stage: st.Name, Err: fmt.Errorf("output check: %w", err)}
		}

		s.completed[st.Name] = true
		slog.Info("PIPELINE", "PROGRAM", st.Name, "TARGET", "ALL", "STATUS", "COMPLETED")

		if s.SaveState != nil {
			if err := s.SaveState(s.Completed()); err != nil {
				return &StageFailure{Stage: st.Name, Err: fmt.Errorf("persisting state: %w", err)}
			}
		}
	}
	return nil
}
