package scaffolding

import "fmt"

// State is the scaffolding stage's position in its workflow.
type State string

const (
	// AwaitingContactMap: the Juicer alignment has not produced a
	// merged contact list yet.
	AwaitingContactMap State = "AwaitingContactMap"
	// AwaitingScaffold: contact map ready, 3D-DNA zero-round draft not
	// run yet.
	AwaitingScaffold State = "AwaitingScaffold"
	// DraftReady: draft scaffold produced; the review gate decides
	// what happens next.
	DraftReady State = "DraftReady"
	// AwaitingManualReview: terminal for this invocation. A separate
	// resume invocation continues from here.
	AwaitingManualReview State = "AwaitingManualReview"
	// Finalizing: running the post-review finalization, either on the
	// auto-draft or on a manually reviewed assembly.
	Finalizing State = "Finalizing"
	// Complete: final scaffold fasta published.
	Complete State = "Complete"
)

func allowedTransition(from State, to State) bool {
	switch from {
	case AwaitingContactMap:
		return to == AwaitingScaffold
	case AwaitingScaffold:
		return to == DraftReady
	case DraftReady:
		return to == Finalizing || to == AwaitingManualReview
	case AwaitingManualReview:
		return to == Finalizing
	case Finalizing:
		return to == Complete
	default:
		return false
	}
}

// Machine validates every state transition; a disallowed transition is
// a programming error surfaced loudly rather than silent corruption.
type Machine struct {
	state State
}

func NewMachine() *Machine {
	return &Machine{state: AwaitingContactMap}
}

// ResumeMachine starts a machine at the checkpointed state.
func ResumeMachine(state State) *Machine {
	return &Machine{state: state}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Transition(to State) error {
	if !allowedTransition(m.state, to) {
		return fmt.Errorf("disallowed scaffolding transition: %s -> %s", m.state, to)
	}
	m.state = to
	return nil
}
