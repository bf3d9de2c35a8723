package assembly

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// GfaToFasta extracts the segment records from a GFA assembly graph
// into a fasta file. hifiasm emits its primary contigs as GFA only.
func GfaToFasta(gfaPath string, fastaPath string) error {
	in, err := os.Open(gfaPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(fastaPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := fasta.NewWriter(out, 60)
	// Contig lines run to megabases, so read whole lines rather than
	// relying on a scanner token limit.
	r := bufio.NewReaderSize(in, 1<<20)
	nSegments := 0
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\n")
			if strings.HasPrefix(line, "S\t") {
				fields := strings.SplitN(line, "\t", 4)
				if len(fields) < 3 || fields[2] == "*" {
					return fmt.Errorf("malformed GFA segment line: %.80s", line)
				}
				s := linear.NewSeq(fields[1], alphabet.BytesToLetters([]byte(fields[2])), alphabet.DNA)
				if _, err := w.Write(s); err != nil {
					return err
				}
				nSegments++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if nSegments == 0 {
		return fmt.Errorf("no segment records in %s", gfaPath)
	}
	return nil
}
