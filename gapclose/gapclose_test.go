package gapclose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmaffy/hifi2chrom/pipeline"
)

func writeStub(t *testing.T, dir string, name string, body string) {
	t.Helper()
	script := "#!/bin/bash\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
}

func writeFasta(t *testing.T, dir string, name string, header string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(">"+header+"\nACGTACGTGATCACGT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func gapCloseContext(t *testing.T, withAlternates bool) *pipeline.Context {
	t.Helper()
	outDir := t.TempDir()
	reg, err := pipeline.NewRegistry(filepath.Join(outDir, "artifacts"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := &pipeline.RunConfig{
		Prefix:    "test",
		OutputDir: outDir,
		CPU:       2,
	}

	inputs := t.TempDir()
	if _, err := reg.Record("scaffold.final", writeFasta(t, inputs, "scaffold.fasta", "scaf_1")); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Record("assembly.hifiasm", writeFasta(t, inputs, "hifiasm.fasta", "hifi_ctg")); err != nil {
		t.Fatal(err)
	}
	if withAlternates {
		if _, err := reg.Record("assembly.verkko", writeFasta(t, inputs, "verkko.fasta", "verkko_ctg")); err != nil {
			t.Fatal(err)
		}
		if _, err := reg.Record("assembly.canu", writeFasta(t, inputs, "canu.fasta", "canu_ctg")); err != nil {
			t.Fatal(err)
		}
	}
	return &pipeline.Context{Cfg: cfg, Reg: reg}
}

func TestRunFillsGaps(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "quartet.py", `p=""
while [ $# -gt 0 ]; do
  case "$1" in
    -p) p="$2"; shift 2 ;;
    *) shift ;;
  esac
done
printf '>filled_1\nACGTGATCACGTGATCACGT\n' > "$p.genome.filled.fasta"`)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ctx := gapCloseContext(t, true)
	if err := Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The contig pool holds the alternates only, never the primary.
	pool, err := os.ReadFile(filepath.Join(ctx.Cfg.GapCloseDir(), "contig_pool.fasta"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pool), ">verkko_ctg") || !strings.Contains(string(pool), ">canu_ctg") {
		t.Errorf("pool missing alternate contigs: %q", pool)
	}
	if strings.Contains(string(pool), ">hifi_ctg") {
		t.Error("pool contains the primary assembly")
	}

	published := ctx.Reg.MustResolve("genome.gapclosed")
	data, err := os.ReadFile(published)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">filled_1") {
		t.Errorf("published genome = %q, want the filled output", data)
	}
}

func TestRunPublishesScaffoldWhenFillerProducesNothing(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "quartet.py", `exit 0`)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ctx := gapCloseContext(t, true)
	if err := Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	published := ctx.Reg.MustResolve("genome.gapclosed")
	got, err := os.ReadFile(published)
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(ctx.Reg.MustResolve("scaffold.final"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("published genome differs from the scaffold it should pass through")
	}
}

func TestRunNoAlternatesSkipsFiller(t *testing.T) {
	binDir := t.TempDir()
	marker := filepath.Join(binDir, "ran")
	writeStub(t, binDir, "quartet.py", `echo ran > `+marker)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	ctx := gapCloseContext(t, false)
	if err := Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("gap filler ran without alternate assemblies")
	}

	published := ctx.Reg.MustResolve("genome.gapclosed")
	got, err := os.ReadFile(published)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), ">scaf_1") {
		t.Errorf("published genome = %q, want the scaffold", got)
	}
}

func TestConcatFasta(t *testing.T) {
	dir := t.TempDir()
	a := writeFasta(t, dir, "a.fasta", "a_1")
	b := writeFasta(t, dir, "b.fasta", "b_1")
	out := filepath.Join(dir, "pool.fasta")

	if err := ConcatFasta([]string{a, b}, out); err != nil {
		t.Fatalf("ConcatFasta: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">a_1") || !strings.Contains(string(data), ">b_1") {
		t.Errorf("pool = %q", data)
	}
}
