package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testCheckpoint() *Checkpoint {
	return &Checkpoint{
		Version:       1,
		State:         "AwaitingManualReview",
		Completed:     []string{StageAssembly, StageEvaluation},
		DraftAssembly: "/work/species_scaffolding/species.final.assembly",
		ScaffoldDir:   "/work/species_scaffolding",
		Artifacts: map[string]string{
			"assembly.primary": "/work/species_assemblies/hifiasm.fasta",
		},
		Config: RunConfig{
			HifiReads:  []string{"/data/hifi.fastq.gz"},
			Hic1:       "/data/hic_R1.fastq.gz",
			Hic2:       "/data/hic_R2.fastq.gz",
			GenomeSize: "1g",
			Prefix:     "species",
			OutputDir:  "/work",
			CPU:        16,
			Jobs:       1,
			Review:     true,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.json")

	ckpt := testCheckpoint()
	if err := ckpt.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadCheckpoint(path)
	if err != nil {
		t.Fatalf("ReadCheckpoint: %v", err)
	}
	if got.State != ckpt.State || got.DraftAssembly != ckpt.DraftAssembly || got.ScaffoldDir != ckpt.ScaffoldDir {
		t.Errorf("read back = %+v", got)
	}
	if !reflect.DeepEqual(got.Completed, ckpt.Completed) {
		t.Errorf("completed = %v", got.Completed)
	}
	if !reflect.DeepEqual(got.Artifacts, ckpt.Artifacts) {
		t.Errorf("artifacts = %v", got.Artifacts)
	}
	if !reflect.DeepEqual(got.Config, ckpt.Config) {
		t.Errorf("config = %+v", got.Config)
	}

	// The atomic write must leave no temp files behind.
	leftovers, err := filepath.Glob(filepath.Join(dir, ".checkpoint-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestCheckpointOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	ckpt := testCheckpoint()
	if err := ckpt.Write(path); err != nil {
		t.Fatal(err)
	}
	ckpt.Completed = append(ckpt.Completed, StageScaffolding)
	if err := ckpt.Write(path); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := ReadCheckpoint(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Completed) != 3 {
		t.Errorf("completed = %v after overwrite", got.Completed)
	}
}

func TestCheckpointValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Checkpoint)
	}{
		{"wrong version", func(c *Checkpoint) { c.Version = 99 }},
		{"missing state", func(c *Checkpoint) { c.State = "" }},
		{"missing scaffold dir", func(c *Checkpoint) { c.ScaffoldDir = "" }},
		{"missing draft assembly", func(c *Checkpoint) { c.DraftAssembly = "" }},
		{"no completed stages", func(c *Checkpoint) { c.Completed = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testCheckpoint()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestReadCheckpointRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCheckpoint(path); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := ReadCheckpoint(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing checkpoint")
	}
}
