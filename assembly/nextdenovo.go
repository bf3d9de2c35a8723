package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
)

const nextDenovoCfgTemplate = `[General]
job_type = local
job_prefix = nextDenovo
task = all
rewrite = yes
deltmp = yes
parallel_jobs = %d
input_type = raw
read_type = hifi
input_fofn = input.fofn
workdir = 01_rundir

[correct_option]
read_cutoff = 1k
genome_size = %s
sort_options = -m 20g -t %d
minimap2_options_raw = -t %d
pa_correction = 3
correction_options = -p %d

[assemble_option]
minimap2_options_cns = -t %d
nextgraph_options = -a 1
`

// RunNextDenovo generates the fofn and config file nextDenovo expects
// and runs it inside the output directory, since its workdir paths are
// relative.
func RunNextDenovo(cfg *pipeline.RunConfig, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	fofn := filepath.Join(outDir, "input.fofn")
	if err := os.WriteFile(fofn, []byte(strings.Join(cfg.HifiReads, "\n")+"\n"), 0644); err != nil {
		return "", fmt.Errorf("writing input.fofn: %w", err)
	}

	runCfg := filepath.Join(outDir, "run.cfg")
	content := fmt.Sprintf(nextDenovoCfgTemplate, cfg.CPU, cfg.GenomeSize, cfg.CPU, cfg.CPU, cfg.CPU, cfg.CPU)
	if err := os.WriteFile(runCfg, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing run.cfg: %w", err)
	}

	cmdStr := "nextDenovo run.cfg"
	fmt.Println(cmdStr)
	if err := utils.RunBashCmdInDir(cmdStr, outDir); err != nil {
		return "", err
	}
	return filepath.Join(outDir, "01_rundir", "03.ctg_graph", "nd.asm.fasta"), nil
}
