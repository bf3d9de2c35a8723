package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// RunHifiasm assembles the HiFi reads with hifiasm and converts the
// primary contig graph to fasta.
func RunHifiasm(cfg *pipeline.RunConfig, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	outPrefix := filepath.Join(outDir, cfg.Prefix)
	cmdStr := fmt.Sprintf(`hifiasm -o %s -t %d %s`, outPrefix, cfg.CPU, strings.Join(cfg.HifiReads, " "))
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return "", err
	}

	gfa := outPrefix + ".bp.p_ctg.gfa"
	fasta := outPrefix + ".bp.p_ctg.fasta"
	if err := GfaToFasta(gfa, fasta); err != nil {
		return "", fmt.Errorf("converting %s to fasta: %w", gfa, err)
	}
	return fasta, nil
}
