package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gmaffy/hifi2chrom/utils"
)

// Registry maps stable artifact aliases (e.g. "assembly.primary") to
// concrete tool-specific paths. Each artifact is produced by exactly
// one stage and consumed by any later stage; publishing also drops a
// stable symlink in the artifacts directory so the alias survives a
// change of producing tool.
type Registry struct {
	linkDir string
	paths   map[string]string
}

func NewRegistry(linkDir string) (*Registry, error) {
	if err := os.MkdirAll(linkDir, 0755); err != nil {
		return nil, err
	}
	return &Registry{linkDir: linkDir, paths: make(map[string]string)}, nil
}

// RestoreRegistry rebuilds a registry from a checkpoint snapshot.
func RestoreRegistry(linkDir string, paths map[string]string) (*Registry, error) {
	reg, err := NewRegistry(linkDir)
	if err != nil {
		return nil, err
	}
	for alias, path := range paths {
		reg.paths[alias] = path
	}
	return reg, nil
}

// Publish records alias -> path and force-links the alias into the
// artifacts directory. The path is resolved to absolute form first.
func (r *Registry) Publish(alias string, path string) (string, error) {
	abs, err := utils.AbsResolve(path)
	if err != nil {
		return "", err
	}
	link := filepath.Join(r.linkDir, alias)
	if err := utils.ForceSymlink(abs, link); err != nil {
		return "", err
	}
	r.paths[alias] = abs
	return abs, nil
}

// Record registers alias -> path without creating a symlink, for
// artifacts that are whole directories.
func (r *Registry) Record(alias string, path string) (string, error) {
	abs, err := utils.AbsResolve(path)
	if err != nil {
		return "", err
	}
	r.paths[alias] = abs
	return abs, nil
}

func (r *Registry) Resolve(alias string) (string, bool) {
	path, ok := r.paths[alias]
	return path, ok
}

// MustResolve is for consumers whose inputs the sequencer has already
// verified; a missing alias at that point is a wiring bug.
func (r *Registry) MustResolve(alias string) string {
	path, ok := r.paths[alias]
	if !ok {
		panic(fmt.Sprintf("artifact %q not registered", alias))
	}
	return path
}

// VerifyNonEmpty checks that every alias is registered and points at
// an existing, non-empty file or directory.
func (r *Registry) VerifyNonEmpty(aliases ...string) error {
	for _, alias := range aliases {
		path, ok := r.paths[alias]
		if !ok {
			return fmt.Errorf("artifact %q was never published", alias)
		}
		if !utils.FileNonEmpty(path) {
			return fmt.Errorf("artifact %q at %s is missing or empty", alias, path)
		}
	}
	return nil
}

// Snapshot returns a copy of the alias map for checkpointing.
func (r *Registry) Snapshot() map[string]string {
	snap := make(map[string]string, len(r.paths))
	for alias, path := range r.paths {
		snap[alias] = path
	}
	return snap
}

// Aliases returns the registered aliases in sorted order.
func (r *Registry) Aliases() []string {
	aliases := make([]string, 0, len(r.paths))
	for alias := range r.paths {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
