package scaffolding

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// MboI is the restriction enzyme the Hi-C library preparation assumes.
const (
	Enzyme      = "MboI"
	EnzymeMotif = "GATC"
)

// SeqSites holds the restriction-site positions found on one sequence.
type SeqSites struct {
	Name      string
	Length    int
	Positions []int // 1-based motif start positions
}

// ScanRestrictionSites finds every motif occurrence per sequence of
// the assembly, replacing the site-position generator script the
// contact-map pipeline normally ships with.
func ScanRestrictionSites(fastaPath string, motif string) ([]SeqSites, error) {
	fna, err := os.Open(fastaPath)
	if err != nil {
		return nil, err
	}
	defer fna.Close()

	var reader io.Reader = fna
	if strings.HasSuffix(fastaPath, ".gz") {
		gzReader, err := gzip.NewReader(fna)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader for %s: %w", fastaPath, err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	upperMotif := strings.ToUpper(motif)
	r := fasta.NewReader(reader, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(r)

	var all []SeqSites
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		letters := make([]byte, seq.Len())
		for i, l := range seq.Seq {
			letters[i] = byte(l)
		}
		upper := strings.ToUpper(string(letters))

		sites := SeqSites{Name: seq.ID, Length: seq.Len()}
		for from := 0; ; {
			idx := strings.Index(upper[from:], upperMotif)
			if idx < 0 {
				break
			}
			pos := from + idx
			sites.Positions = append(sites.Positions, pos+1)
			from = pos + 1
		}
		all = append(all, sites)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", fastaPath, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no sequences in %s", fastaPath)
	}
	return all, nil
}

// WriteSitePositions writes the Juicer site-position format: one line
// per sequence, name then positions then sequence length.
func WriteSitePositions(sites []SeqSites, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, s := range sites {
		fields := make([]string, 0, len(s.Positions)+2)
		fields = append(fields, s.Name)
		for _, p := range s.Positions {
			fields = append(fields, fmt.Sprintf("%d", p))
		}
		fields = append(fields, fmt.Sprintf("%d", s.Length))
		if _, err := fmt.Fprintln(f, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteChromSizes writes the two-column chromosome-size table derived
// from the same scan.
func WriteChromSizes(sites []SeqSites, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, s := range sites {
		if _, err := fmt.Fprintf(f, "%s\t%d\n", s.Name, s.Length); err != nil {
			return err
		}
	}
	return nil
}
