package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const checkpointVersion = 1

// Checkpoint is the serialized pause point written when review mode
// suspends the run at the draft scaffold. It persists everything a
// separate resume invocation needs: the run parameters, which stages
// already completed, the artifact registry and the draft assembly
// path. Suspension lives on disk, not in a process, so resuming can
// happen much later, even after a host restart.
type Checkpoint struct {
	Version       int               `json:"version"`
	State         string            `json:"state"`
	Completed     []string          `json:"completed_stages"`
	DraftAssembly string            `json:"draft_assembly"`
	ScaffoldDir   string            `json:"scaffold_dir"`
	Artifacts     map[string]string `json:"artifacts"`
	Config        RunConfig         `json:"config"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Write serializes the checkpoint atomically: a temp file in the same
// directory followed by a rename, so a crash never leaves a partial
// record behind.
func (c *Checkpoint) Write(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".checkpoint-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadCheckpoint loads and validates a checkpoint record.
func ReadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint %s: %w", path, err)
	}
	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing checkpoint %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid checkpoint %s: %w", path, err)
	}
	return &c, nil
}

// Validate rejects records a resume invocation cannot safely act on.
func (c *Checkpoint) Validate() error {
	if c.Version != checkpointVersion {
		return fmt.Errorf("unsupported checkpoint version %d", c.Version)
	}
	if c.State == "" {
		return fmt.Errorf("missing state")
	}
	if c.ScaffoldDir == "" {
		return fmt.Errorf("missing scaffolding directory")
	}
	if c.DraftAssembly == "" {
		return fmt.Errorf("missing draft assembly path")
	}
	if len(c.Completed) == 0 {
		return fmt.Errorf("no completed stages recorded")
	}
	return nil
}
