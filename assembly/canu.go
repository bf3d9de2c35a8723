package assembly

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// RunCanu assembles the HiFi reads with canu in HiFi mode.
func RunCanu(cfg *pipeline.RunConfig, outDir string) (string, error) {
	cmdStr := fmt.Sprintf(`canu -p %s -d %s genomeSize=%s maxThreads=%d useGrid=false -pacbio-hifi %s`,
		cfg.Prefix, outDir, cfg.GenomeSize, cfg.CPU, strings.Join(cfg.HifiReads, " "))
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return "", err
	}
	return filepath.Join(outDir, cfg.Prefix+".contigs.fasta"), nil
}
