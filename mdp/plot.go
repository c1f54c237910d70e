package mdp

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Plot renders average reward per step as an HTML line chart, one series
// per report.
func Plot(w io.Writer, reports ...Report) error {
	if len(reports) == 0 {
		return errors.New("plot: no reports")
	}
	numSteps := len(reports[0].AverageRewards)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "average reward per step",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	steps := make([]string, 0, numSteps)
	for i := 0; i < numSteps; i++ {
		steps = append(steps, fmt.Sprintf("%d", i))
	}
	line.SetXAxis(steps)

	for _, r := range reports {
		if len(r.AverageRewards) != numSteps {
			return fmt.Errorf("plot: %s has %d steps, want %d", r.Policy, len(r.AverageRewards), numSteps)
		}
		items := make([]opts.LineData, 0, numSteps)
		for _, v := range r.AverageRewards {
			items = append(items, opts.LineData{Value: float64(v)})
		}
		line.AddSeries(r.Policy, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}
