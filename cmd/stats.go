/*
Copyright © 2025 Godwin Mafireyi <mafireyi@gmail.com>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/gmaffy/hifi2chrom/evaluation"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats --fasta <path>",
	Short: "Prints contiguity statistics for an assembly fasta",
	Run: func(cmd *cobra.Command, args []string) {
		fastaPath, fErr := cmd.Flags().GetString("fasta")
		if fErr != nil {
			log.Fatalf("Error getting fasta flag: %v", fErr)
		}
		if fastaPath == "" {
			log.Fatalf("Please provide a fasta file with --fasta")
		}

		lengths, gc, err := evaluation.ReadContigLengths(fastaPath)
		if err != nil {
			log.Fatalf("Error reading fasta: %v", err)
		}
		s := evaluation.ComputeStats(fastaPath, lengths, gc)

		fmt.Printf("Contigs:\t%d\n", s.Contigs)
		fmt.Printf("Total length:\t%d\n", s.TotalLen)
		fmt.Printf("Mean length:\t%.1f\n", s.MeanLen)
		fmt.Printf("Largest:\t%d\n", s.LargestLen)
		fmt.Printf("N50:\t%d\n", s.N50)
		fmt.Printf("L50:\t%d\n", s.L50)
		fmt.Printf("GC:\t%.4f\n", s.GC)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("fasta", "", "assembly fasta path (.gz supported)")
}
