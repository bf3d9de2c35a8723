package pipeline

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/gmaffy/hifi2chrom/utils"
)

// RunConfig holds every run parameter. It is constructed once at start
// and not mutated afterwards; all paths are stored in absolute,
// symlink-resolved form so stages that change directory still
// reference inputs correctly.
type RunConfig struct {
	HifiReads  []string `json:"hifi_reads"`
	Hic1       string   `json:"hic1"`
	Hic2       string   `json:"hic2"`
	GenomeSize string   `json:"genome_size"`
	Prefix     string   `json:"prefix"`
	OutputDir  string   `json:"output_dir"`
	CPU        int      `json:"cpu"`
	Jobs       int      `json:"jobs"`
	Review     bool     `json:"review"`
	KeepGoing  bool     `json:"keep_going"`
}

// Validate checks required parameters, applies defaults and resolves
// every path argument. It returns a *ConfigError on the first missing
// or invalid parameter.
func (cfg *RunConfig) Validate() error {
	if len(cfg.HifiReads) == 0 {
		return &ConfigError{Msg: "at least one HiFi reads file is required (--hifi)"}
	}
	if cfg.Hic1 == "" {
		return &ConfigError{Msg: "Hi-C forward reads are required (--hic1)"}
	}
	if cfg.Hic2 == "" {
		return &ConfigError{Msg: "Hi-C reverse reads are required (--hic2)"}
	}
	if cfg.GenomeSize == "" {
		return &ConfigError{Msg: "a genome size estimate is required (--genomeSize)"}
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "species"
	}
	if cfg.CPU <= 0 {
		cfg.CPU = runtime.NumCPU()
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = 1
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	for i, r := range cfg.HifiReads {
		abs, err := utils.AbsResolve(r)
		if err != nil {
			return &ConfigError{Msg: fmt.Sprintf("cannot resolve HiFi reads path %s: %v", r, err)}
		}
		if !utils.FileNonEmpty(abs) {
			return &ConfigError{Msg: fmt.Sprintf("HiFi reads file %s does not exist or is empty", r)}
		}
		cfg.HifiReads[i] = abs
	}

	for _, p := range []struct {
		name string
		path *string
	}{
		{"--hic1", &cfg.Hic1},
		{"--hic2", &cfg.Hic2},
	} {
		abs, err := utils.AbsResolve(*p.path)
		if err != nil {
			return &ConfigError{Msg: fmt.Sprintf("cannot resolve %s path %s: %v", p.name, *p.path, err)}
		}
		if !utils.FileNonEmpty(abs) {
			return &ConfigError{Msg: fmt.Sprintf("%s file %s does not exist or is empty", p.name, *p.path)}
		}
		*p.path = abs
	}

	outAbs, err := utils.AbsResolve(cfg.OutputDir)
	if err != nil {
		return &ConfigError{Msg: fmt.Sprintf("cannot resolve output directory %s: %v", cfg.OutputDir, err)}
	}
	cfg.OutputDir = outAbs

	return nil
}

// Canonical per-stage directories, each created by its owning stage.

func (cfg *RunConfig) AssembliesDir() string {
	return filepath.Join(cfg.OutputDir, cfg.Prefix+"_assemblies")
}

func (cfg *RunConfig) EvalDir() string {
	return filepath.Join(cfg.OutputDir, cfg.Prefix+"_assembly_eval")
}

func (cfg *RunConfig) ScaffoldingDir() string {
	return filepath.Join(cfg.OutputDir, cfg.Prefix+"_scaffolding")
}

func (cfg *RunConfig) GapCloseDir() string {
	return filepath.Join(cfg.OutputDir, cfg.Prefix+"_gapclose")
}

func (cfg *RunConfig) FinalEvalDir() string {
	return filepath.Join(cfg.OutputDir, cfg.Prefix+"_final_eval")
}

func (cfg *RunConfig) ArtifactsDir() string {
	return filepath.Join(cfg.OutputDir, cfg.Prefix+"_artifacts")
}

func (cfg *RunConfig) LogFile() string {
	return filepath.Join(cfg.OutputDir, "hifi2chrom.log")
}

func (cfg *RunConfig) CheckpointFile() string {
	return filepath.Join(cfg.OutputDir, "checkpoint.json")
}
