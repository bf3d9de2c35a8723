package evaluation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/gmaffy/hifi2chrom/utils"
)

// RunQuast runs quast against one assembly, writing report.tsv and
// friends into outDir.
func RunQuast(fastaPath string, outDir string, cpu int) error {
	cmdStr := fmt.Sprintf(`quast.py -o %s -t %d %s`, outDir, cpu, fastaPath)
	fmt.Println(cmdStr)
	return utils.RunBashCmdVerbose(cmdStr)
}

// MergeQuastReports joins the per-assembly quast report.tsv files on
// their metric column into one side-by-side summary table.
func MergeQuastReports(reports map[string]string, outPath string) error {
	labels := make([]string, 0, len(reports))
	for label := range reports {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var merged dataframe.DataFrame
	for i, label := range labels {
		f, err := os.Open(reports[label])
		if err != nil {
			return fmt.Errorf("opening quast report for %s: %w", label, err)
		}
		df := dataframe.ReadCSV(f,
			dataframe.WithDelimiter('\t'),
			dataframe.HasHeader(false),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
		f.Close()
		if df.Error() != nil {
			return fmt.Errorf("parsing quast report for %s: %w", label, df.Error())
		}
		df = df.Rename("metric", "X0").Rename(label, "X1")

		if i == 0 {
			merged = df
		} else {
			merged = merged.InnerJoin(df, "metric")
			if merged.Error() != nil {
				return fmt.Errorf("merging quast report for %s: %w", label, merged.Error())
			}
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, row := range merged.Records() {
		if _, err := fmt.Fprintln(out, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// QuastReportPath is where quast leaves its tabular report.
func QuastReportPath(outDir string) string {
	return filepath.Join(outDir, "report.tsv")
}
