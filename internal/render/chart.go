package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Roberto-info/CDA2-Demokratie-Challange/votes"
)

var (
	societalBarColor = drawing.Color{R: 66, G: 112, B: 193, A: 255}
	otherBarColor    = drawing.Color{R: 160, G: 160, B: 160, A: 255}
)

// RankingBarChart renders the liberality ranking as a bar chart, one bar per
// canton colored by its score on the diverging palette. Cantons without a
// score are drawn as zero-height no-data bars at the end of the ranking.
func RankingBarChart(ranking []votes.LiberalityScore, path string) error {
	bars := make([]chart.Value, 0, len(ranking))
	for _, entry := range ranking {
		bar := chart.Value{Label: string(entry.Canton)}
		if entry.Score != nil {
			bar.Value = *entry.Score
			bar.Style = chart.Style{FillColor: colorFor(*entry.Score), StrokeColor: chart.ColorBlack, StrokeWidth: 0.5}
		} else {
			bar.Style = chart.Style{FillColor: noDataColor, StrokeColor: chart.ColorBlack, StrokeWidth: 0.5}
		}
		bars = append(bars, bar)
	}

	graph := chart.BarChart{
		Title:    "Kantone nach Liberalität bei gesellschaftsorientierten Abstimmungen",
		Width:    1200,
		Height:   600,
		BarWidth: 30,
		YAxis: chart.YAxis{
			Range:     &chart.ContinuousRange{Min: 0, Max: 100},
			GridLines: []chart.GridLine{{Value: 50}},
		},
		Bars: bars,
	}
	return renderChart(path, graph.Render)
}

// EpochTrendChart renders the epoch trend view as paired bars, societal next
// to other referenda for each epoch. Epochs where a class has no mean (no
// complete rows) get a no-data bar rather than a fake zero.
func EpochTrendChart(trend []votes.EpochTrendRow, path string) error {
	bars := make([]chart.Value, 0, len(trend)*2)
	for _, row := range trend {
		bars = append(bars,
			trendBar(row.Epoch.Label, row.Societal, societalBarColor),
			trendBar("", row.Other, otherBarColor),
		)
	}
	graph := chart.BarChart{
		Title:    "Annahmequoten: gesellschaftsorientierte (blau) vs. andere Abstimmungen",
		Width:    1100,
		Height:   550,
		BarWidth: 48,
		YAxis: chart.YAxis{
			Range:     &chart.ContinuousRange{Min: 0, Max: 100},
			GridLines: []chart.GridLine{{Value: 50}},
		},
		Bars: bars,
	}
	return renderChart(path, graph.Render)
}

func trendBar(label string, stats votes.GroupStats, color drawing.Color) chart.Value {
	bar := chart.Value{Label: label}
	if stats.MeanYes != nil {
		bar.Value = *stats.MeanYes
		bar.Style = chart.Style{FillColor: color, StrokeColor: chart.ColorBlack, StrokeWidth: 0.5}
	} else {
		bar.Style = chart.Style{FillColor: noDataColor, StrokeColor: chart.ColorBlack, StrokeWidth: 0.5}
	}
	return bar
}

// AcceptanceTrendChart renders the mean nationwide yes-percentage per year
// as a line, with the 50% threshold marked.
func AcceptanceTrendChart(rows []votes.Classified, path string) error {
	byYear := make(map[int][]float64)
	for _, rec := range rows {
		if rec.Date.IsZero() || rec.Yes == nil {
			continue
		}
		byYear[rec.Year()] = append(byYear[rec.Year()], *rec.Yes)
	}
	if len(byYear) == 0 {
		return fmt.Errorf("no dated results to plot")
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		var sum float64
		for _, v := range byYear[y] {
			sum += v
		}
		xs[i] = float64(y)
		ys[i] = sum / float64(len(byYear[y]))
	}

	graph := chart.Chart{
		Title:  "Durchschnittliche Annahmequote im Zeitverlauf (1893-2025)",
		Width:  1100,
		Height: 500,
		YAxis: chart.YAxis{
			Range:     &chart.ContinuousRange{Min: 0, Max: 100},
			GridLines: []chart.GridLine{{Value: 50}},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: societalBarColor, StrokeWidth: 2},
			},
		},
	}
	return renderChart(path, graph.Render)
}

// renderChart writes a chart as SVG or PNG depending on the file extension.
func renderChart(path string, render func(chart.RendererProvider, io.Writer) error) error {
	provider := chart.RendererProvider(chart.SVG)
	if filepath.Ext(path) == ".png" {
		provider = chart.PNG
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := render(provider, f); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart: %w", err)
	}
	return nil
}
