package workflow

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gmaffy/hifi2chrom/pipeline"
)

// RunState records which stages have completed and the artifact
// registry snapshot, so a re-run of the same command skips finished
// work instead of repeating it.
type RunState struct {
	Completed []string          `json:"completed_stages"`
	Artifacts map[string]string `json:"artifacts"`
}

func StatePath(cfg *pipeline.RunConfig) string {
	return filepath.Join(cfg.OutputDir, "pipeline_state.json")
}

// LoadState returns the prior state, if any.
func LoadState(path string) (RunState, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunState{}, false
	}
	var st RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return RunState{}, false
	}
	return st, true
}

// SaveState writes the state atomically next to its final location.
func SaveState(path string, st RunState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
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
