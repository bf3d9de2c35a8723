package gapclose

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/gmaffy/hifi2chrom/assembly"
	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// ConcatFasta concatenates fasta files into one contig pool.
func ConcatFasta(fastas []string, outFasta string) error {
	outFile, err := os.Create(outFasta)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outFasta, err)
	}
	defer outFile.Close()

	fmt.Println("Concatenating fasta files")
	for _, f := range fastas {
		inFile, err := os.Open(f)
		if err != nil {
			return fmt.Errorf("opening %s: %w", f, err)
		}
		_, err = io.Copy(outFile, inFile)
		inFile.Close()
		if err != nil {
			return fmt.Errorf("copying contents from %s: %w", f, err)
		}
	}
	return nil
}

// RunGapFiller calls the external gap-filling tool against the
// scaffolded genome and the alternate-assembly contig pool.
func RunGapFiller(cfg *pipeline.RunConfig, scaffold string, pool string, workDir string) error {
	cmdStr := fmt.Sprintf(`quartet.py GapFiller -d %s -g %s -p %s -t %d`, scaffold, pool, cfg.Prefix, cfg.CPU)
	fmt.Println(cmdStr)
	return utils.RunBashCmdInDir(cmdStr, workDir)
}

// Run is the gap-close stage. The contig pool holds every assembly
// except the primary assembler's, to avoid redundant self-comparison.
// If the filler produces no filled genome the pre-gap-close scaffold
// is published unchanged under the same alias, so downstream
// evaluation never operates on a missing file.
func Run(ctx *pipeline.Context) error {
	cfg := ctx.Cfg
	dir := cfg.GapCloseDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating gap-close directory: %w", err)
	}

	scaffold := ctx.Reg.MustResolve("scaffold.final")

	altNames := lo.Filter(assembly.Names, func(name string, _ int) bool {
		return name != assembly.PrimaryAssembler
	})
	pool := lo.FilterMap(altNames, func(name string, _ int) (string, bool) {
		return ctx.Reg.Resolve("assembly." + name)
	})

	poolFasta := filepath.Join(dir, "contig_pool.fasta")
	if utils.FileNonEmpty(poolFasta) {
		fmt.Println("Contig pool exists. Skipping...")
	} else if err := ConcatFasta(pool, poolFasta); err != nil {
		return err
	}

	filled := filepath.Join(dir, cfg.Prefix+".genome.filled.fasta")
	if utils.FileNonEmpty(filled) {
		fmt.Println("Filled genome exists. Skipping gap filler...")
	} else if len(pool) == 0 {
		fmt.Println("No alternate assemblies available; skipping gap filler")
	} else {
		slog.Info("GAP_CLOSE", "PROGRAM", "quartet", "TARGET", cfg.Prefix, "STATUS", "STARTED")
		if err := RunGapFiller(cfg, scaffold, poolFasta, dir); err != nil {
			slog.Error("GAP_CLOSE", "PROGRAM", "quartet", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("gap filler: %w", err)
		}
		slog.Info("GAP_CLOSE", "PROGRAM", "quartet", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	}

	published := filepath.Join(dir, cfg.Prefix+".gapclosed.fasta")
	if utils.FileNonEmpty(filled) {
		if err := utils.ForceSymlink(filled, published); err != nil {
			return err
		}
	} else {
		fmt.Printf("Gap filler produced no filled genome; publishing scaffold unchanged as %s\n", published)
		if err := utils.ForceSymlink(scaffold, published); err != nil {
			return err
		}
	}

	_, err := ctx.Reg.Publish("genome.gapclosed", published)
	return err
}
