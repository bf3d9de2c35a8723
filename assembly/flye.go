package assembly

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// RunFlye assembles the HiFi reads with flye.
func RunFlye(cfg *pipeline.RunConfig, outDir string) (string, error) {
	cmdStr := fmt.Sprintf(`flye --pacbio-hifi %s --genome-size %s --out-dir %s --threads %d`,
		strings.Join(cfg.HifiReads, " "), cfg.GenomeSize, outDir, cfg.CPU)
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return "", err
	}
	return filepath.Join(outDir, "assembly.fasta"), nil
}
