/*
Copyright © 2025 Godwin Mafireyi <mafireyi@gmail.com>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hifi2chrom",
	Short: "HiFi + Hi-C chromosome-scale genome assembly pipeline",
	Long: `Drives raw HiFi and Hi-C reads to a scaffolded, gap-closed, evaluated
genome assembly by sequencing external tools:
1.	Assembly: (hifiasm, verkko, canu, flye, nextDenovo)
2.	Assembly evaluation: (quast, BUSCO, merqury)
3.	Hi-C scaffolding: (Juicer, 3D-DNA) with an optional manual review checkpoint
4.	Gap closing: (QuarTeT)
5.	Final evaluation: (quast, BUSCO)
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
