package assembly

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// RunVerkko assembles the HiFi reads with verkko. Verkko creates its
// own output directory.
func RunVerkko(cfg *pipeline.RunConfig, outDir string) (string, error) {
	cmdStr := fmt.Sprintf(`verkko -d %s --threads %d --hifi %s`, outDir, cfg.CPU, strings.Join(cfg.HifiReads, " "))
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
		return "", err
	}
	return filepath.Join(outDir, "assembly.fasta"), nil
}
