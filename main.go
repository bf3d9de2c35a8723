/*
Copyright © 2025 Godwin Mafireyi <mafireyi@gmail.com>
*/
package main

import "github.com/gmaffy/hifi2chrom/cmd"

func main() {
	cmd.Execute()
}
