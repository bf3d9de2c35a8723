package scaffolding

import "testing"

func TestMachineAutomaticPath(t *testing.T) {
	m := NewMachine()
	if m.State() != AwaitingContactMap {
		t.Fatalf("initial state = %s", m.State())
	}
	for _, to := range []State{AwaitingScaffold, DraftReady, Finalizing, Complete} {
		if err := m.Transition(to); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}
	if m.State() != Complete {
		t.Errorf("final state = %s", m.State())
	}
}

func TestMachineReviewPath(t *testing.T) {
	m := NewMachine()
	for _, to := range []State{AwaitingScaffold, DraftReady, AwaitingManualReview} {
		if err := m.Transition(to); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}

	// A separate invocation resumes from the checkpointed state.
	resumed := ResumeMachine(AwaitingManualReview)
	if err := resumed.Transition(Finalizing); err != nil {
		t.Fatalf("resume transition: %v", err)
	}
	if err := resumed.Transition(Complete); err != nil {
		t.Fatalf("completing after resume: %v", err)
	}
}

func TestMachineRejectsDisallowedTransitions(t *testing.T) {
	cases := []struct {
		from State
		to   State
	}{
		{AwaitingContactMap, DraftReady},
		{AwaitingContactMap, Complete},
		{AwaitingScaffold, Finalizing},
		{DraftReady, Complete},
		{AwaitingManualReview, Complete},
		{AwaitingManualReview, DraftReady},
		{Finalizing, AwaitingManualReview},
		{Complete, AwaitingContactMap},
	}
	for _, tc := range cases {
		m := ResumeMachine(tc.from)
		if err := m.Transition(tc.to); err == nil {
			t.Errorf("transition %s -> %s should be rejected", tc.from, tc.to)
		}
		if m.State() != tc.from {
			t.Errorf("state moved to %s after a rejected transition", m.State())
		}
	}
}
