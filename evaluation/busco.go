package evaluation

import (
	"fmt"

	"github.com/gmaffy/hifi2chrom/utils"
)

// RunBusco scores conserved-gene completeness for one assembly. The
// lineage is auto-selected; -f lets an aborted earlier run be redone.
func RunBusco(fastaPath string, label string, outPath string, cpu int) error {
	cmdStr := fmt.Sprintf(`busco -i %s -o %s --out_path %s -m genome -c %d --auto-lineage -f`,
		fastaPath, label, outPath, cpu)
	fmt.Println(cmdStr)
	return utils.RunBashCmdVerbose(cmdStr)
}
