package scaffolding

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// Run drives the scaffolding stage through its state machine: contact
// map, zero-round draft scaffold, then either automatic finalization
// or suspension at the manual review checkpoint.
func Run(ctx *pipeline.Context) error {
	cfg := ctx.Cfg
	primary := ctx.Reg.MustResolve("assembly.primary")

	m := NewMachine()

	lay, err := Prepare(cfg, primary)
	if err != nil {
		return fmt.Errorf("staging scaffolding workspace: %w", err)
	}

	// AwaitingContactMap -> AwaitingScaffold
	if utils.FileNonEmpty(lay.MergedNodups) {
		fmt.Println("Merged contact list exists. Skipping Juicer...")
	} else {
		slog.Info("SCAFFOLDING", "PROGRAM", "juicer", "TARGET", cfg.Prefix, "STATUS", "STARTED")
		if err := RunContactMap(cfg, lay); err != nil {
			slog.Error("SCAFFOLDING", "PROGRAM", "juicer", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("juicer: %w", err)
		}
		if !utils.FileNonEmpty(lay.MergedNodups) {
			return fmt.Errorf("juicer finished but %s is missing or empty", lay.MergedNodups)
		}
		slog.Info("SCAFFOLDING", "PROGRAM", "juicer", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	}
	if err := m.Transition(AwaitingScaffold); err != nil {
		return err
	}

	// AwaitingScaffold -> DraftReady: zero-round draft, no auto-review.
	base := strings.TrimSuffix(filepath.Base(lay.Reference), filepath.Ext(lay.Reference))
	draftAssembly := filepath.Join(lay.Dir, base+".final.assembly")
	draftFasta := filepath.Join(lay.Dir, base+".final.fasta")

	if utils.FileNonEmpty(draftAssembly) && utils.FileNonEmpty(draftFasta) {
		fmt.Println("Draft scaffold exists. Skipping 3D-DNA draft...")
	} else {
		slog.Info("SCAFFOLDING", "PROGRAM", "3d-dna", "TARGET", cfg.Prefix, "STATUS", "STARTED")
		cmdStr := fmt.Sprintf(`run-asm-pipeline.sh -r 0 %s %s`, lay.Reference, lay.MergedNodups)
		fmt.Println(cmdStr)
		if err := utils.RunBashCmdInDir(cmdStr, lay.Dir); err != nil {
			slog.Error("SCAFFOLDING", "PROGRAM", "3d-dna", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("3d-dna draft: %w", err)
		}
		if !utils.FileNonEmpty(draftAssembly) || !utils.FileNonEmpty(draftFasta) {
			return fmt.Errorf("3d-dna finished but draft artifacts are missing in %s", lay.Dir)
		}
		slog.Info("SCAFFOLDING", "PROGRAM", "3d-dna", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	}
	if err := m.Transition(DraftReady); err != nil {
		return err
	}

	if _, err := ctx.Reg.Publish("scaffold.draft", draftFasta); err != nil {
		return err
	}
	if _, err := ctx.Reg.Publish("scaffold.draft.assembly", draftAssembly); err != nil {
		return err
	}
	if _, err := ctx.Reg.Record("scaffold.dir", lay.Dir); err != nil {
		return err
	}

	if cfg.Review {
		if err := m.Transition(AwaitingManualReview); err != nil {
			return err
		}
		fmt.Printf("\nDraft scaffold ready for review: %s\n", draftAssembly)
		fmt.Printf("Review it in Juicebox, place the corrected .assembly file in %s,\n", lay.Dir)
		fmt.Println("then run: hifi2chrom resume --assembly <reviewed filename>")
		return pipeline.ErrAwaitingReview
	}

	// Review off: treat the draft as already final.
	if err := m.Transition(Finalizing); err != nil {
		return err
	}
	finalFasta, err := Finalize(cfg, lay.Dir, draftAssembly)
	if err != nil {
		return err
	}
	if err := m.Transition(Complete); err != nil {
		return err
	}
	_, err = ctx.Reg.Publish("scaffold.final", finalFasta)
	return err
}

// Finalize runs the post-review finalization against either the
// auto-draft or a manually reviewed assembly and returns the final
// scaffold fasta path.
func Finalize(cfg *pipeline.RunConfig, scaffoldDir string, reviewedAssembly string) (string, error) {
	reference := filepath.Join(scaffoldDir, "references", cfg.Prefix+".fa")
	mergedNodups := filepath.Join(scaffoldDir, "aligned", "merged_nodups.txt")
	base := cfg.Prefix

	slog.Info("SCAFFOLDING", "PROGRAM", "3d-dna-post-review", "TARGET", cfg.Prefix, "STATUS", "STARTED")
	cmdStr := fmt.Sprintf(`run-asm-pipeline-post-review.sh -r %s %s %s`, reviewedAssembly, reference, mergedNodups)
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdInDir(cmdStr, scaffoldDir); err != nil {
		slog.Error("SCAFFOLDING", "PROGRAM", "3d-dna-post-review", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
		return "", fmt.Errorf("3d-dna post-review: %w", err)
	}

	finalFasta := filepath.Join(scaffoldDir, base+".FINAL.fasta")
	if !utils.FileNonEmpty(finalFasta) {
		return "", fmt.Errorf("finalization finished but %s is missing or empty", finalFasta)
	}
	slog.Info("SCAFFOLDING", "PROGRAM", "3d-dna-post-review", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	return finalFasta, nil
}
