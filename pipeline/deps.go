package pipeline

import "os/exec"

// RequiredTools is every external binary the full pipeline invokes.
var RequiredTools = []string{
	"hifiasm",
	"verkko",
	"canu",
	"flye",
	"nextDenovo",
	"quast.py",
	"busco",
	"meryl",
	"merqury.sh",
	"bwa",
	"samtools",
	"juicer.sh",
	"run-asm-pipeline.sh",
	"run-asm-pipeline-post-review.sh",
	"quartet.py",
}

// ResumeTools is the subset needed from the Finalizing state onward.
var ResumeTools = []string{
	"run-asm-pipeline-post-review.sh",
	"quast.py",
	"busco",
	"quartet.py",
}

// VerifyTools checks every tool on PATH and returns a single
// *DependencyError listing all missing ones, rather than failing on
// the first, so one run shows the operator the complete list.
func VerifyTools(tools []string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Missing: missing}
	}
	return nil
}
