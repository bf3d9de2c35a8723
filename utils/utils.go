package utils

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type Config struct {
	HifiReads  []string
	Hic1       string
	Hic2       string
	GenomeSize string
	Prefix     string
	OutputDir  string
	Threads    string
}

func ReadConfig(configPath string) (Config, error) {
	configFile, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer configFile.Close()
	var cfg Config

	scanner := bufio.NewScanner(configFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "hifi":
			cfg.HifiReads = append(cfg.HifiReads, value)
		case "hic1":
			cfg.Hic1 = value
		case "hic2":
			cfg.Hic2 = value
		case "genomeSize":
			cfg.GenomeSize = value
		case "prefix":
			cfg.Prefix = value
		case "OutputDir":
			cfg.OutputDir = value
		case "threads":
			cfg.Threads = value
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil

}

func RunBashCmdVerbose(cmdStr string) error {
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

// RunBashCmdInDir runs a bash command with the working directory set,
// for tools that write into their cwd (nextDenovo, juicer, 3d-dna).
func RunBashCmdInDir(cmdStr string, dir string) error {
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

func CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	if err != nil {
		return err
	}
	return out.Sync()
}

func CopyDir(src string, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(srcPath)
			if err != nil {
				return err
			}
			if err := ForceSymlink(target, dstPath); err != nil {
				return err
			}
		} else {
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
			info, err := entry.Info()
			if err == nil {
				os.Chmod(dstPath, info.Mode())
			}
		}
	}
	return nil
}

// ForceSymlink replaces dst with a symlink to target.
func ForceSymlink(target string, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	return os.Symlink(target, dst)
}

// FileNonEmpty reports whether path exists and has non-zero size.
// Symlinks are followed. A directory counts as non-empty when it has
// at least one entry.
func FileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		entries, dErr := os.ReadDir(path)
		return dErr == nil && len(entries) > 0
	}
	return info.Size() > 0
}

// AbsResolve resolves a path to absolute, symlink-resolved form so
// later stages that cd into subdirectories still reference it.
func AbsResolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Keep the absolute form for paths that do not exist yet.
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}
