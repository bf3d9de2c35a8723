package pipeline

// Stage names in execution order.
const (
	StageAssembly        = "ASSEMBLY"
	StageEvaluation      = "EVALUATION"
	StageScaffolding     = "SCAFFOLDING"
	StageGapClose        = "GAP_CLOSE"
	StageFinalEvaluation = "FINAL_EVALUATION"
)

// Context carries the immutable run parameters and the artifact
// registry through every stage call, instead of relying on implicit
// current-directory conventions.
type Context struct {
	Cfg *RunConfig
	Reg *Registry
}

// Stage is one named unit of work. Ordinal position is its index in
// the sequencer's stage slice. Inputs and Outputs are artifact
// aliases: a stage never executes unless all of its inputs exist and
// are non-empty, and it has not completed until all of its outputs do.
type Stage struct {
	Name    string
	Inputs  []string
	Outputs []string
	Run     func(*Context) error
}
