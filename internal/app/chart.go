package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"rate-report/internal/storage"
)

// chartBuilder accumulates one time series per currency from the chunked
// record stream.
type chartBuilder struct {
	order  []string
	series map[string]*currencySeries
}

type currencySeries struct {
	x []time.Time
	y []float64
}

func newChartBuilder() *chartBuilder {
	return &chartBuilder{series: make(map[string]*currencySeries)}
}

func (b *chartBuilder) WriteChunk(records []storage.RateRecord) error {
	for _, rec := range records {
		s, ok := b.series[rec.Currency]
		if !ok {
			s = &currencySeries{}
			b.series[rec.Currency] = s
			b.order = append(b.order, rec.Currency)
		}
		s.x = append(s.x, rec.Date)
		s.y = append(s.y, rec.Rate.InexactFloat64())
	}
	return nil
}

// Render writes a PNG line chart with one series per currency.
func (b *chartBuilder) Render(path string) error {
	if len(b.order) == 0 {
		return fmt.Errorf("no data to chart")
	}

	series := make([]chart.Series, 0, len(b.order))
	for _, code := range b.order {
		s := b.series[code]
		series = append(series, chart.TimeSeries{
			Name:    code,
			XValues: s.x,
			YValues: s.y,
		})
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Exchange rate",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}
