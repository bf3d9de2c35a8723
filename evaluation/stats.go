package evaluation

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"gonum.org/v1/gonum/stat"
)

// AssemblyStats is the reference-free summary computed natively for
// each assembly, alongside the external evaluators.
type AssemblyStats struct {
	Assembly   string
	Contigs    int
	TotalLen   int
	MeanLen    float64
	LargestLen int
	N50        int
	L50        int
	GC         float64
}

// ReadContigLengths scans a (possibly gzipped) fasta and returns the
// per-contig lengths plus the GC fraction over all bases.
func ReadContigLengths(fastaPath string) ([]int, float64, error) {
	fna, err := os.Open(fastaPath)
	if err != nil {
		return nil, 0, err
	}
	defer fna.Close()

	var reader io.Reader = fna
	if strings.HasSuffix(fastaPath, ".gz") {
		gzReader, err := gzip.NewReader(fna)
		if err != nil {
			return nil, 0, fmt.Errorf("creating gzip reader for %s: %w", fastaPath, err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	r := fasta.NewReader(reader, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(r)

	var lengths []int
	var gcBases, totalBases int
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		lengths = append(lengths, seq.Len())
		for _, l := range seq.Seq {
			switch byte(l) {
			case 'G', 'g', 'C', 'c':
				gcBases++
			}
			totalBases++
		}
	}
	if err := sc.Error(); err != nil {
		return nil, 0, fmt.Errorf("scanning %s: %w", fastaPath, err)
	}
	if totalBases == 0 {
		return nil, 0, fmt.Errorf("no sequence in %s", fastaPath)
	}
	return lengths, float64(gcBases) / float64(totalBases), nil
}

// ComputeStats summarizes contig lengths into the usual assembly
// contiguity metrics.
func ComputeStats(name string, lengths []int, gc float64) AssemblyStats {
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	asFloat := make([]float64, len(sorted))
	for i, l := range sorted {
		total += l
		asFloat[i] = float64(l)
	}

	s := AssemblyStats{
		Assembly: name,
		Contigs:  len(sorted),
		TotalLen: total,
		GC:       gc,
	}
	if len(sorted) == 0 {
		return s
	}
	s.LargestLen = sorted[0]
	s.MeanLen = stat.Mean(asFloat, nil)

	half := total / 2
	cum := 0
	for i, l := range sorted {
		cum += l
		if cum >= half {
			s.N50 = l
			s.L50 = i + 1
			break
		}
	}
	return s
}

// NxCurve returns, for x = 1..100, the contig length at which the
// cumulative sum first reaches x percent of the total.
func NxCurve(lengths []int) []int {
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	for _, l := range sorted {
		total += l
	}

	curve := make([]int, 100)
	if total == 0 {
		return curve
	}
	cum := 0
	i := 0
	for x := 1; x <= 100; x++ {
		threshold := float64(total) * float64(x) / 100.0
		for i < len(sorted) && float64(cum) < threshold {
			cum += sorted[i]
			i++
		}
		if i > 0 {
			curve[x-1] = sorted[i-1]
		}
	}
	return curve
}

// WriteStatsTSV writes one row per assembly.
func WriteStatsTSV(stats []AssemblyStats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "assembly\tcontigs\ttotal_len\tmean_len\tlargest\tN50\tL50\tGC"); err != nil {
		return err
	}
	for _, s := range stats {
		_, err := fmt.Fprintf(f, "%s\t%d\t%d\t%.1f\t%d\t%d\t%d\t%.4f\n",
			s.Assembly, s.Contigs, s.TotalLen, s.MeanLen, s.LargestLen, s.N50, s.L50, s.GC)
		if err != nil {
			return err
		}
	}
	return nil
}
