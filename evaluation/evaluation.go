package evaluation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gmaffy/hifi2chrom/assembly"
	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// Run is the assembly-evaluation stage: quast, BUSCO and merqury for
// every assembly the assembly stage published, plus the native stats
// table and Nx chart. Reports are observational, but a tool failing
// still aborts the run.
func Run(ctx *pipeline.Context) error {
	cfg := ctx.Cfg
	evalDir := cfg.EvalDir()
	if err := os.MkdirAll(evalDir, 0755); err != nil {
		return fmt.Errorf("creating evaluation directory: %w", err)
	}

	assemblies := make(map[string]string)
	for _, name := range assembly.Names {
		if path, ok := ctx.Reg.Resolve("assembly." + name); ok {
			assemblies[name] = path
		}
	}
	if len(assemblies) == 0 {
		return fmt.Errorf("no assemblies registered for evaluation")
	}

	// Native contiguity report.
	var allStats []AssemblyStats
	curves := make(map[string][]int)
	for _, name := range assembly.Names {
		path, ok := assemblies[name]
		if !ok {
			continue
		}
		lengths, gc, err := ReadContigLengths(path)
		if err != nil {
			return fmt.Errorf("reading %s assembly: %w", name, err)
		}
		allStats = append(allStats, ComputeStats(name, lengths, gc))
		curves[name] = NxCurve(lengths)
	}
	if err := WriteStatsTSV(allStats, filepath.Join(evalDir, "assembly_stats.tsv")); err != nil {
		return fmt.Errorf("writing stats table: %w", err)
	}
	if err := PlotNxCurves(curves, filepath.Join(evalDir, "nx_curves.html")); err != nil {
		return fmt.Errorf("plotting Nx curves: %w", err)
	}

	// quast per assembly, then one merged summary.
	quastReports := make(map[string]string)
	for _, name := range assembly.Names {
		path, ok := assemblies[name]
		if !ok {
			continue
		}
		quastDir := filepath.Join(evalDir, "quast", name)
		report := QuastReportPath(quastDir)
		if utils.FileNonEmpty(report) {
			fmt.Printf("quast report exists for %s. Skipping...\n", name)
		} else {
			slog.Info("EVALUATION", "PROGRAM", "quast", "TARGET", name, "STATUS", "STARTED")
			if err := RunQuast(path, quastDir, cfg.CPU); err != nil {
				slog.Error("EVALUATION", "PROGRAM", "quast", "TARGET", name, "STATUS", fmt.Sprintf("FAILED - %v", err))
				return fmt.Errorf("quast on %s: %w", name, err)
			}
			slog.Info("EVALUATION", "PROGRAM", "quast", "TARGET", name, "STATUS", "COMPLETED")
		}
		quastReports[name] = report
	}
	if len(quastReports) > 1 {
		if err := MergeQuastReports(quastReports, filepath.Join(evalDir, "quast_summary.tsv")); err != nil {
			return fmt.Errorf("merging quast reports: %w", err)
		}
	}

	// BUSCO per assembly.
	for _, name := range assembly.Names {
		path, ok := assemblies[name]
		if !ok {
			continue
		}
		buscoDir := filepath.Join(evalDir, "busco")
		if utils.FileNonEmpty(filepath.Join(buscoDir, name)) {
			fmt.Printf("BUSCO output exists for %s. Skipping...\n", name)
			continue
		}
		slog.Info("EVALUATION", "PROGRAM", "busco", "TARGET", name, "STATUS", "STARTED")
		if err := RunBusco(path, name, buscoDir, cfg.CPU); err != nil {
			slog.Error("EVALUATION", "PROGRAM", "busco", "TARGET", name, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("busco on %s: %w", name, err)
		}
		slog.Info("EVALUATION", "PROGRAM", "busco", "TARGET", name, "STATUS", "COMPLETED")
	}

	// One meryl database from the HiFi reads, shared by every merqury run.
	merylDB := filepath.Join(evalDir, cfg.Prefix+".k21.meryl")
	if utils.FileNonEmpty(merylDB) {
		fmt.Printf("meryl database exists at %s. Skipping...\n", merylDB)
	} else {
		slog.Info("EVALUATION", "PROGRAM", "meryl", "TARGET", cfg.Prefix, "STATUS", "STARTED")
		if err := BuildMerylDB(cfg.HifiReads, merylDB, cfg.CPU); err != nil {
			slog.Error("EVALUATION", "PROGRAM", "meryl", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("meryl count: %w", err)
		}
		slog.Info("EVALUATION", "PROGRAM", "meryl", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	}

	for _, name := range assembly.Names {
		path, ok := assemblies[name]
		if !ok {
			continue
		}
		merquryDir := filepath.Join(evalDir, "merqury", name)
		if utils.FileNonEmpty(filepath.Join(merquryDir, name+".qv")) {
			fmt.Printf("merqury output exists for %s. Skipping...\n", name)
			continue
		}
		if err := os.MkdirAll(merquryDir, 0755); err != nil {
			return err
		}
		slog.Info("EVALUATION", "PROGRAM", "merqury", "TARGET", name, "STATUS", "STARTED")
		if err := RunMerqury(merylDB, path, name, merquryDir); err != nil {
			slog.Error("EVALUATION", "PROGRAM", "merqury", "TARGET", name, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("merqury on %s: %w", name, err)
		}
		slog.Info("EVALUATION", "PROGRAM", "merqury", "TARGET", name, "STATUS", "COMPLETED")
	}

	_, err := ctx.Reg.Record("evaluation.report.dir", evalDir)
	return err
}

// RunFinal is the final-evaluation stage: quast and BUSCO against the
// gap-closed genome, plus the native stats row.
func RunFinal(ctx *pipeline.Context) error {
	cfg := ctx.Cfg
	finalDir := cfg.FinalEvalDir()
	if err := os.MkdirAll(finalDir, 0755); err != nil {
		return fmt.Errorf("creating final evaluation directory: %w", err)
	}

	genome := ctx.Reg.MustResolve("genome.gapclosed")

	lengths, gc, err := ReadContigLengths(genome)
	if err != nil {
		return fmt.Errorf("reading gap-closed genome: %w", err)
	}
	stats := []AssemblyStats{ComputeStats(cfg.Prefix, lengths, gc)}
	if err := WriteStatsTSV(stats, filepath.Join(finalDir, "genome_stats.tsv")); err != nil {
		return fmt.Errorf("writing final stats table: %w", err)
	}

	quastDir := filepath.Join(finalDir, "quast")
	if utils.FileNonEmpty(QuastReportPath(quastDir)) {
		fmt.Println("Final quast report exists. Skipping...")
	} else {
		slog.Info("FINAL_EVALUATION", "PROGRAM", "quast", "TARGET", cfg.Prefix, "STATUS", "STARTED")
		if err := RunQuast(genome, quastDir, cfg.CPU); err != nil {
			slog.Error("FINAL_EVALUATION", "PROGRAM", "quast", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("final quast: %w", err)
		}
		slog.Info("FINAL_EVALUATION", "PROGRAM", "quast", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	}

	buscoDir := filepath.Join(finalDir, "busco")
	if utils.FileNonEmpty(filepath.Join(buscoDir, cfg.Prefix)) {
		fmt.Println("Final BUSCO output exists. Skipping...")
	} else {
		slog.Info("FINAL_EVALUATION", "PROGRAM", "busco", "TARGET", cfg.Prefix, "STATUS", "STARTED")
		if err := RunBusco(genome, cfg.Prefix, buscoDir, cfg.CPU); err != nil {
			slog.Error("FINAL_EVALUATION", "PROGRAM", "busco", "TARGET", cfg.Prefix, "STATUS", fmt.Sprintf("FAILED - %v", err))
			return fmt.Errorf("final busco: %w", err)
		}
		slog.Info("FINAL_EVALUATION", "PROGRAM", "busco", "TARGET", cfg.Prefix, "STATUS", "COMPLETED")
	}

	_, err = ctx.Reg.Record("final.report.dir", finalDir)
	return err
}
