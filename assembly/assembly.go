package assembly

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// PrimaryAssembler produces the assembly that scaffolding operates on.
const PrimaryAssembler = "hifiasm"

// Names lists every assembler in canonical order, primary first.
var Names = []string{"hifiasm", "verkko", "canu", "flye", "nextdenovo"}

type assembler struct {
	name string
	run  func(cfg *pipeline.RunConfig, outDir string) (string, error)
}

// Run fans out to five independent assemblers against the same HiFi
// input set. Each assembler's canonical output is symlinked as
// <assemblies>/<name>.fasta and published under the "assembly.<name>"
// alias; hifiasm additionally becomes "assembly.primary".
//
// One assembler failing aborts the stage unless KeepGoing is set, in
// which case the stage only fails when the primary assembler failed.
// Jobs > 1 runs assemblers concurrently; each tool still gets the full
// CPU budget, so this is only worth it on large hosts.
func Run(ctx *pipeline.Context) error {
	cfg := ctx.Cfg
	dir := cfg.AssembliesDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating assemblies directory: %w", err)
	}

	assemblers := []assembler{
		{"hifiasm", RunHifiasm},
		{"verkko", RunVerkko},
		{"canu", RunCanu},
		{"flye", RunFlye},
		{"nextdenovo", RunNextDenovo},
	}

	fastas := make([]string, len(assemblers))
	failures := make([]error, len(assemblers))

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Jobs)
	for i, a := range assemblers {
		i, a := i, a
		g.Go(func() error {
			if gctx.Err() != nil {
				// A sibling already failed under the fail-fast policy.
				return nil
			}

			published := filepath.Join(dir, a.name+".fasta")
			if utils.FileNonEmpty(published) {
				fmt.Printf("%s assembly exists at %s. Skipping...\n", a.name, published)
				fastas[i] = published
				return nil
			}

			slog.Info("ASSEMBLY", "PROGRAM", a.name, "TARGET", cfg.Prefix, "STATUS", "STARTED")
			fasta, err := a.run(cfg, filepath.Join(dir, a.name))
			if err == nil && !utils.FileNonEmpty(fasta) {
				err = fmt.Errorf("expected output %s is missing or empty", fasta)
			}
			if err != nil {
				failures[i] = err
				slog.Error("ASSEMBLY", "PROGRAM", a.name, "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
				if !cfg.KeepGoing {
					return fmt.Errorf("%s: %w", a.name, err)
				}
				return nil
			}

			if err := utils.ForceSymlink(fasta, published); err != nil {
				failures[i] = err
				if !cfg.KeepGoing {
					return fmt.Errorf("%s: publishing %s: %w", a.name, fasta, err)
				}
				return nil
			}
			fastas[i] = published
			slog.Info("ASSEMBLY", "PROGRAM", a.name, "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if fastas[0] == "" {
		return fmt.Errorf("primary assembler %s did not produce an assembly: %v", PrimaryAssembler, failures[0])
	}

	for i, a := range assemblers {
		if fastas[i] == "" {
			fmt.Printf("Continuing without %s assembly\n", a.name)
			continue
		}
		if _, err := ctx.Reg.Publish("assembly."+a.name, fastas[i]); err != nil {
			return err
		}
	}
	if _, err := ctx.Reg.Publish("assembly.primary", fastas[0]); err != nil {
		return err
	}
	_, err := ctx.Reg.Record("assemblies.dir", dir)
	return err
}
