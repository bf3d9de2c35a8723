package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeReads(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("@read\nACGT\n+\nIIII\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func validConfig(t *testing.T) *RunConfig {
	t.Helper()
	dir := t.TempDir()
	return &RunConfig{
		HifiReads:  []string{writeReads(t, dir, "hifi.fastq.gz")},
		Hic1:       writeReads(t, dir, "hic_R1.fastq.gz"),
		Hic2:       writeReads(t, dir, "hic_R2.fastq.gz"),
		GenomeSize: "1g",
		OutputDir:  dir,
	}
}

func TestValidateMissingParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *RunConfig)
	}{
		{"no hifi reads", func(cfg *RunConfig) { cfg.HifiReads = nil }},
		{"no hic1", func(cfg *RunConfig) { cfg.Hic1 = "" }},
		{"no hic2", func(cfg *RunConfig) { cfg.Hic2 = "" }},
		{"no genome size", func(cfg *RunConfig) { cfg.GenomeSize = "" }},
		{"hifi reads missing on disk", func(cfg *RunConfig) { cfg.HifiReads = []string{"/no/such/reads.fastq"} }},
		{"hic1 missing on disk", func(cfg *RunConfig) { cfg.Hic1 = "/no/such/hic_R1.fastq" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want *ConfigError", err)
			}
		})
	}
}

func TestValidateDefaultsAndResolution(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Prefix != "species" {
		t.Errorf("default prefix = %q", cfg.Prefix)
	}
	if cfg.CPU <= 0 {
		t.Errorf("default CPU = %d", cfg.CPU)
	}
	if cfg.Jobs != 1 {
		t.Errorf("default jobs = %d", cfg.Jobs)
	}
	for _, p := range append(append([]string{}, cfg.HifiReads...), cfg.Hic1, cfg.Hic2, cfg.OutputDir) {
		if !filepath.IsAbs(p) {
			t.Errorf("path %q not absolute after validation", p)
		}
	}
}

func TestValidateResolvesSymlinks(t *testing.T) {
	cfg := validConfig(t)
	dir := t.TempDir()
	link := filepath.Join(dir, "reads_link.fastq.gz")
	if err := os.Symlink(cfg.HifiReads[0], link); err != nil {
		t.Fatal(err)
	}
	want := cfg.HifiReads[0]
	cfg.HifiReads = []string{link}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(want)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HifiReads[0] != resolved {
		t.Errorf("hifi path = %q, want %q", cfg.HifiReads[0], resolved)
	}
}

func TestStageDirectories(t *testing.T) {
	cfg := &RunConfig{OutputDir: "/work", Prefix: "melon"}
	if got := cfg.AssembliesDir(); got != "/work/melon_assemblies" {
		t.Errorf("AssembliesDir = %q", got)
	}
	if got := cfg.ScaffoldingDir(); got != "/work/melon_scaffolding" {
		t.Errorf("ScaffoldingDir = %q", got)
	}
	if got := cfg.CheckpointFile(); got != "/work/checkpoint.json" {
		t.Errorf("CheckpointFile = %q", got)
	}
	if got := cfg.LogFile(); got != "/work/hifi2chrom.log" {
		t.Errorf("LogFile = %q", got)
	}
}
