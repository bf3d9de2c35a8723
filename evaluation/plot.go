package evaluation

import (
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotNxCurves renders the Nx curves of all assemblies into one HTML
// chart so their contiguity can be compared at a glance.
func PlotNxCurves(curves map[string][]int, htmlPath string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Assembly Nx curves"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Contig length (bp)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (%)"}),
	)

	x := make([]int, 100)
	for i := range x {
		x[i] = i + 1
	}
	line.SetXAxis(x)

	labels := make([]string, 0, len(curves))
	for label := range curves {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		var data []opts.LineData
		for _, v := range curves[label] {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(label, data)
	}

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
