package workflow

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gmaffy/hifi2chrom/assembly"
	"github.com/gmaffy/hifi2chrom/evaluation"
	"github.com/gmaffy/hifi2chrom/gapclose"
	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/scaffolding"
	"github.com/gmaffy/hifi2chrom/utils"
)

// Stages returns the five pipeline stages in dependency order.
func Stages() []pipeline.Stage {
	return []pipeline.Stage{
		{
			Name:    pipeline.StageAssembly,
			Outputs: []string{"assembly.primary"},
			Run:     assembly.Run,
		},
		{
			Name:    pipeline.StageEvaluation,
			Inputs:  []string{"assembly.primary"},
			Outputs: []string{"evaluation.report.dir"},
			Run:     evaluation.Run,
		},
		{
			Name:    pipeline.StageScaffolding,
			Inputs:  []string{"assembly.primary"},
			Outputs: []string{"scaffold.final"},
			Run:     scaffolding.Run,
		},
		{
			Name:    pipeline.StageGapClose,
			Inputs:  []string{"scaffold.final"},
			Outputs: []string{"genome.gapclosed"},
			Run:     gapclose.Run,
		},
		{
			Name:    pipeline.StageFinalEvaluation,
			Inputs:  []string{"genome.gapclosed"},
			Outputs: []string{"final.report.dir"},
			Run:     evaluation.RunFinal,
		},
	}
}

// Run executes the full pipeline. It returns pipeline.ErrAwaitingReview
// after writing the checkpoint when review mode suspends at the draft
// scaffold; the caller maps that to a clean exit.
func Run(cfg *pipeline.RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return &pipeline.ConfigError{Msg: fmt.Sprintf("cannot create output directory %s: %v", cfg.OutputDir, err)}
	}

	logFile, err := utils.InitLogging(cfg.LogFile())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	fmt.Printf("Checking dependencies ...\n\n")
	if err := pipeline.VerifyTools(pipeline.RequiredTools); err != nil {
		return err
	}
	fmt.Printf("Dependencies OK\n\n----------------------------------------------------------\n\n")

	reg, err := pipeline.NewRegistry(cfg.ArtifactsDir())
	if err != nil {
		return fmt.Errorf("creating artifact registry: %w", err)
	}
	ctx := &pipeline.Context{Cfg: cfg, Reg: reg}

	seq := pipeline.NewSequencer(ctx, Stages())
	statePath := StatePath(cfg)
	if prior, ok := LoadState(statePath); ok {
		for alias, path := range prior.Artifacts {
			if _, err := reg.Record(alias, path); err != nil {
				return err
			}
		}
		seq.MarkCompleted(prior.Completed...)
	}
	seq.SaveState = func(completed []string) error {
		return SaveState(statePath, RunState{Completed: completed, Artifacts: reg.Snapshot()})
	}

	err = seq.Run()
	if errors.Is(err, pipeline.ErrAwaitingReview) {
		ckpt := &pipeline.Checkpoint{
			Version:       1,
			State:         string(scaffolding.AwaitingManualReview),
			Completed:     seq.Completed(),
			DraftAssembly: reg.MustResolve("scaffold.draft.assembly"),
			ScaffoldDir:   reg.MustResolve("scaffold.dir"),
			Artifacts:     reg.Snapshot(),
			Config:        *cfg,
			CreatedAt:     time.Now(),
		}
		if wErr := ckpt.Write(cfg.CheckpointFile()); wErr != nil {
			return &pipeline.StageFailure{Stage: pipeline.StageScaffolding, Err: fmt.Errorf("writing checkpoint: %w", wErr)}
		}
		slog.Info("PIPELINE", "PROGRAM", "CHECKPOINT", "TARGET", cfg.Prefix, "STATUS", "WRITTEN", "CMD", cfg.CheckpointFile())
		return pipeline.ErrAwaitingReview
	}
	return err
}

// Resume continues a suspended run from its checkpoint, given the
// filename of the manually reviewed assembly placed in the scaffolding
// working directory. Assembly and Evaluation are never re-run.
func Resume(workDir string, reviewedName string) error {
	if reviewedName == "" {
		return &pipeline.ConfigError{Msg: "the reviewed assembly filename is required (--assembly)"}
	}
	if filepath.Base(reviewedName) != reviewedName {
		return &pipeline.ConfigError{Msg: "--assembly takes a filename, not a path; the file must sit in the scaffolding working directory"}
	}

	ckpt, err := pipeline.ReadCheckpoint(filepath.Join(workDir, "checkpoint.json"))
	if err != nil {
		return &pipeline.ConfigError{Msg: err.Error()}
	}
	if ckpt.State != string(scaffolding.AwaitingManualReview) {
		return &pipeline.ConfigError{Msg: fmt.Sprintf("checkpoint state is %s, not %s", ckpt.State, scaffolding.AwaitingManualReview)}
	}

	cfg := ckpt.Config

	logFile, err := utils.InitLogging(cfg.LogFile())
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	fmt.Printf("Checking dependencies ...\n\n")
	if err := pipeline.VerifyTools(pipeline.ResumeTools); err != nil {
		return err
	}
	fmt.Printf("Dependencies OK\n\n----------------------------------------------------------\n\n")

	reviewed := filepath.Join(ckpt.ScaffoldDir, reviewedName)
	if !utils.FileNonEmpty(reviewed) {
		return &pipeline.ConfigError{Msg: fmt.Sprintf("reviewed assembly %s does not exist or is empty", reviewed)}
	}

	reg, err := pipeline.RestoreRegistry(cfg.ArtifactsDir(), ckpt.Artifacts)
	if err != nil {
		return fmt.Errorf("restoring artifact registry: %w", err)
	}

	m := scaffolding.ResumeMachine(scaffolding.AwaitingManualReview)
	if err := m.Transition(scaffolding.Finalizing); err != nil {
		return err
	}
	finalFasta, err := scaffolding.Finalize(&cfg, ckpt.ScaffoldDir, reviewed)
	if err != nil {
		return &pipeline.StageFailure{Stage: pipeline.StageScaffolding, Err: err}
	}
	if err := m.Transition(scaffolding.Complete); err != nil {
		return err
	}
	if _, err := reg.Publish("scaffold.final", finalFasta); err != nil {
		return err
	}

	ctx := &pipeline.Context{Cfg: &cfg, Reg: reg}
	seq := pipeline.NewSequencer(ctx, Stages())
	seq.MarkCompleted(ckpt.Completed...)
	seq.MarkCompleted(pipeline.StageScaffolding)
	statePath := StatePath(&cfg)
	seq.SaveState = func(completed []string) error {
		return SaveState(statePath, RunState{Completed: completed, Artifacts: reg.Snapshot()})
	}
	return seq.Run()
}
