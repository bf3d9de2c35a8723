/*
Copyright © 2025 Godwin Mafireyi <mafireyi@gmail.com>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/utils"
	"github.com/gmaffy/hifi2chrom/workflow"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run --hifi <path[,path...]> --hic1 <path> --hic2 <path> --genomeSize <size> [args]",
	Short: "Runs the full pipeline from reads to an evaluated genome",
	Long: `Runs Assembly, Assembly Evaluation, Scaffolding, Gap Closing and Final
Evaluation in order. With --review the run suspends after the draft
scaffold and writes a checkpoint; correct the draft in Juicebox and
continue with "hifi2chrom resume".`,
	Run: func(cmd *cobra.Command, args []string) {
		hifi, hErr := cmd.Flags().GetStringSlice("hifi")
		if hErr != nil {
			log.Fatalf("Error getting hifi flag: %v", hErr)
		}
		hic1, h1Err := cmd.Flags().GetString("hic1")
		if h1Err != nil {
			log.Fatalf("Error getting hic1 flag: %v", h1Err)
		}
		hic2, h2Err := cmd.Flags().GetString("hic2")
		if h2Err != nil {
			log.Fatalf("Error getting hic2 flag: %v", h2Err)
		}
		genomeSize, gErr := cmd.Flags().GetString("genomeSize")
		if gErr != nil {
			log.Fatalf("Error getting genomeSize flag: %v", gErr)
		}
		prefix, pErr := cmd.Flags().GetString("prefix")
		if pErr != nil {
			log.Fatalf("Error getting prefix flag: %v", pErr)
		}
		outputDir, oErr := cmd.Flags().GetString("outputDir")
		if oErr != nil {
			log.Fatalf("Error getting outputDir flag: %v", oErr)
		}
		cpu, cErr := cmd.Flags().GetInt("cpu")
		if cErr != nil {
			log.Fatalf("Error getting cpu flag: %v", cErr)
		}
		jobs, jErr := cmd.Flags().GetInt("jobs")
		if jErr != nil {
			log.Fatalf("Error getting jobs flag: %v", jErr)
		}
		review, rErr := cmd.Flags().GetBool("review")
		if rErr != nil {
			log.Fatalf("Error getting review flag: %v", rErr)
		}
		keepGoing, kErr := cmd.Flags().GetBool("keep-going")
		if kErr != nil {
			log.Fatalf("Error getting keep-going flag: %v", kErr)
		}
		configFile, cfErr := cmd.Flags().GetString("config")
		if cfErr != nil {
			log.Fatalf("Error getting config flag: %v", cfErr)
		}

		cfg := &pipeline.RunConfig{
			HifiReads:  hifi,
			Hic1:       hic1,
			Hic2:       hic2,
			GenomeSize: genomeSize,
			Prefix:     prefix,
			OutputDir:  outputDir,
			CPU:        cpu,
			Jobs:       jobs,
			Review:     review,
			KeepGoing:  keepGoing,
		}

		// Config file values fill in whatever the flags left unset.
		if configFile != "" {
			fmt.Println("Reading config file ...")
			fileCfg, err := utils.ReadConfig(configFile)
			if err != nil {
				log.Fatalf("Error reading config: %v", err)
			}
			if !cmd.Flags().Changed("hifi") && len(fileCfg.HifiReads) > 0 {
				cfg.HifiReads = fileCfg.HifiReads
			}
			if !cmd.Flags().Changed("hic1") && fileCfg.Hic1 != "" {
				cfg.Hic1 = fileCfg.Hic1
			}
			if !cmd.Flags().Changed("hic2") && fileCfg.Hic2 != "" {
				cfg.Hic2 = fileCfg.Hic2
			}
			if !cmd.Flags().Changed("genomeSize") && fileCfg.GenomeSize != "" {
				cfg.GenomeSize = fileCfg.GenomeSize
			}
			if !cmd.Flags().Changed("prefix") && fileCfg.Prefix != "" {
				cfg.Prefix = fileCfg.Prefix
			}
			if !cmd.Flags().Changed("outputDir") && fileCfg.OutputDir != "" {
				cfg.OutputDir = fileCfg.OutputDir
			}
			if !cmd.Flags().Changed("cpu") && fileCfg.Threads != "" {
				t, err := strconv.Atoi(fileCfg.Threads)
				if err != nil {
					log.Fatalf("Invalid threads value in config: %v", err)
				}
				cfg.CPU = t
			}
		}

		err := workflow.Run(cfg)
		if err == nil {
			fmt.Println("\nPipeline complete.")
			return
		}
		if errors.Is(err, pipeline.ErrAwaitingReview) {
			fmt.Println("\nPipeline suspended at the manual review checkpoint.")
			return
		}

		var cfgErr *pipeline.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, cfgErr)
			cmd.Usage()
			os.Exit(1)
		}
		var depErr *pipeline.DependencyError
		if errors.As(err, &depErr) {
			fmt.Fprintln(os.Stderr, depErr)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Pipeline aborted")
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSlice("hifi", nil, "HiFi reads fastq path(s), comma separated")
	runCmd.Flags().String("hic1", "", "Hi-C forward reads fastq path")
	runCmd.Flags().String("hic2", "", "Hi-C reverse reads fastq path")
	runCmd.Flags().String("genomeSize", "", "genome size estimate, e.g. 5m or 1.2g")
	runCmd.Flags().String("prefix", "species", "output name prefix")
	runCmd.Flags().String("outputDir", ".", "output directory")
	runCmd.Flags().Int("cpu", 0, "CPU budget passed to external tools (default: all cores)")
	runCmd.Flags().Int("jobs", 1, "assemblers to run in parallel")
	runCmd.Flags().Bool("review", false, "pause after the draft scaffold for manual review")
	runCmd.Flags().Bool("keep-going", false, "continue past non-primary assembler failures")
	runCmd.Flags().StringP("config", "c", "", "path to config file")
}
