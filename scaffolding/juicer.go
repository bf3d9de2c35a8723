package scaffolding

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

// Layout is the staged working layout Juicer expects inside the
// scaffolding directory.
type Layout struct {
	Dir          string
	Reference    string // references/<prefix>.fa
	Sites        string // restriction_sites/<prefix>_MboI.txt
	ChromSizes   string // <prefix>.chrom.sizes
	JuicerScript string // juicer/scripts/juicer.sh (staged copy)
	MergedNodups string // aligned/merged_nodups.txt
}

// Prepare stages everything the contact-map run needs: a working copy
// of the Juicer scripts, the primary assembly under references/, a
// natively generated restriction-site position file and chromosome
// size table, the Hi-C read pair linked into fastq/, and a bwa index
// on the reference.
func Prepare(cfg *pipeline.RunConfig, primaryAssembly string) (*Layout, error) {
	dir := cfg.ScaffoldingDir()
	lay := &Layout{
		Dir:          dir,
		Reference:    filepath.Join(dir, "references", cfg.Prefix+".fa"),
		Sites:        filepath.Join(dir, "restriction_sites", fmt.Sprintf("%s_%s.txt", cfg.Prefix, Enzyme)),
		ChromSizes:   filepath.Join(dir, cfg.Prefix+".chrom.sizes"),
		JuicerScript: filepath.Join(dir, "juicer", "scripts", "juicer.sh"),
		MergedNodups: filepath.Join(dir, "aligned", "merged_nodups.txt"),
	}

	for _, d := range []string{dir, filepath.Join(dir, "references"), filepath.Join(dir, "restriction_sites"), filepath.Join(dir, "fastq")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, err
		}
	}

	if err := utils.ForceSymlink(primaryAssembly, lay.Reference); err != nil {
		return nil, fmt.Errorf("linking primary assembly: %w", err)
	}

	if utils.FileNonEmpty(lay.Sites) && utils.FileNonEmpty(lay.ChromSizes) {
		fmt.Println("Restriction site file and chrom.sizes exist. Skipping...")
	} else {
		fmt.Printf("Scanning %s sites (%s) in %s ...\n", Enzyme, EnzymeMotif, primaryAssembly)
		sites, err := ScanRestrictionSites(primaryAssembly, EnzymeMotif)
		if err != nil {
			return nil, fmt.Errorf("scanning restriction sites: %w", err)
		}
		if err := WriteSitePositions(sites, lay.Sites); err != nil {
			return nil, fmt.Errorf("writing site positions: %w", err)
		}
		if err := WriteChromSizes(sites, lay.ChromSizes); err != nil {
			return nil, fmt.Errorf("writing chrom.sizes: %w", err)
		}
	}

	// Juicer expects the read pair under fastq/ with _R1/_R2 names.
	ext := ".fastq"
	if strings.HasSuffix(cfg.Hic1, ".gz") {
		ext = ".fastq.gz"
	}
	if err := utils.ForceSymlink(cfg.Hic1, filepath.Join(dir, "fastq", cfg.Prefix+"_R1"+ext)); err != nil {
		return nil, fmt.Errorf("linking Hi-C R1: %w", err)
	}
	if err := utils.ForceSymlink(cfg.Hic2, filepath.Join(dir, "fastq", cfg.Prefix+"_R2"+ext)); err != nil {
		return nil, fmt.Errorf("linking Hi-C R2: %w", err)
	}

	if utils.FileNonEmpty(lay.JuicerScript) {
		fmt.Println("Staged Juicer copy exists. Skipping...")
	} else {
		installed, err := exec.LookPath("juicer.sh")
		if err != nil {
			return nil, fmt.Errorf("locating juicer.sh: %w", err)
		}
		resolved, err := utils.AbsResolve(installed)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Staging Juicer working copy from %s ...\n", filepath.Dir(resolved))
		if err := utils.CopyDir(filepath.Dir(resolved), filepath.Join(dir, "juicer", "scripts")); err != nil {
			return nil, fmt.Errorf("staging juicer: %w", err)
		}
	}

	if utils.FileNonEmpty(lay.Reference + ".bwt") {
		fmt.Println("bwa index exists. Skipping...")
	} else {
		cmdStr := fmt.Sprintf(`bwa index %s`, lay.Reference)
		fmt.Println(cmdStr)
		if err := utils.RunBashCmdVerbose(cmdStr); err != nil {
			return nil, fmt.Errorf("bwa index: %w", err)
		}
	}

	return lay, nil
}

// RunContactMap runs the staged Juicer pipeline to produce the merged
// contact list.
func RunContactMap(cfg *pipeline.RunConfig, lay *Layout) error {
	cmdStr := fmt.Sprintf(`bash %s -g %s -s %s -z %s -y %s -p %s -d %s -D %s -t %d`,
		lay.JuicerScript, cfg.Prefix, Enzyme, lay.Reference, lay.Sites, lay.ChromSizes,
		lay.Dir, filepath.Join(lay.Dir, "juicer"), cfg.CPU)
	fmt.Println(cmdStr)
	return utils.RunBashCmdInDir(cmdStr, lay.Dir)
}
