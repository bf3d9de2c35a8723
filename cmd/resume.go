/*
Copyright © 2025 Godwin Mafireyi <mafireyi@gmail.com>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmaffy/hifi2chrom/pipeline"
	"github.com/gmaffy/hifi2chrom/workflow"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume --assembly <reviewed filename>",
	Short: "Resumes a run suspended at the manual review checkpoint",
	Long: `Consumes the checkpoint written by "run --review" and the reviewed
.assembly file placed in the scaffolding working directory, then
finishes Scaffolding, Gap Closing and Final Evaluation. Assembly and
Assembly Evaluation are never re-run.`,
	Run: func(cmd *cobra.Command, args []string) {
		assemblyName, aErr := cmd.Flags().GetString("assembly")
		if aErr != nil {
			log.Fatalf("Error getting assembly flag: %v", aErr)
		}
		workDir, wErr := cmd.Flags().GetString("workdir")
		if wErr != nil {
			log.Fatalf("Error getting workdir flag: %v", wErr)
		}

		err := workflow.Resume(workDir, assemblyName)
		if err == nil {
			fmt.Println("\nPipeline complete.")
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
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().String("assembly", "", "filename of the reviewed assembly inside the scaffolding directory")
	resumeCmd.Flags().String("workdir", ".", "directory holding checkpoint.json")
}
