package evaluation

import (
	"fmt"

	"github.com/gmaffy/hifi2chrom/utils"
)

// BuildMerylDB counts k-mers from the HiFi reads once; every merqury
// run shares the same database. k=21 is the merqury default for
// genomes in this size range.
func BuildMerylDB(reads []string, dbPath string, cpu int) error {
	args := ""
	for _, r := range reads {
		args += " " + r
	}
	cmdStr := fmt.Sprintf(`meryl count k=21 threads=%d output %s%s`, cpu, dbPath, args)
	fmt.Println(cmdStr)
	return utils.RunBashCmdVerbose(cmdStr)
}

// RunMerqury evaluates assembly base accuracy against the read k-mer
// database. merqury writes into its working directory.
func RunMerqury(dbPath string, fastaPath string, outPrefix string, workDir string) error {
	cmdStr := fmt.Sprintf(`merqury.sh %s %s %s`, dbPath, fastaPath, outPrefix)
	fmt.Println(cmdStr)
	return utils.RunBashCmdInDir(cmdStr, workDir)
}
