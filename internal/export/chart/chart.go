package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there are no letters to chart.
var ErrNoData = errors.New("no letter frequencies to chart")

// Format is an image encoding for the chart.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// Chart dimensions and styling constants control the visual appearance
// of the frequency chart.
const (
	// chartWidth and chartHeight set the canvas size in pixels.
	chartWidth  = 1024
	chartHeight = 512
	// barWidth and barSpacing fit ten bars inside the canvas.
	barWidth   = 60
	barSpacing = 30
	// titleFontSize sets the size of the chart title text.
	titleFontSize = 12.0
	// axisFontSize sets the size of axis labels.
	axisFontSize = 10.0
	// gridLineWidth controls the thickness of grid lines.
	gridLineWidth = 1.0
	// paddingTop adds space above the chart.
	paddingTop = 40
)

// barColor fills every bar.
var barColor = drawing.ColorFromHex("4a90d9")

// Exporter handles exporting the frequency chart of a report.
type Exporter struct {
	outDir string
	format Format
}

// New creates a new chart exporter writing the given image format.
func New(outDir string, format Format) *Exporter {
	return &Exporter{outDir: outDir, format: format}
}

// Export writes frequency.png or frequency.webp.
// Reports without letter frequencies produce no file.
func (e *Exporter) Export(report *analysis.Report) ([]string, error) {
	if len(report.Frequencies) == 0 {
		return nil, nil
	}

	path := filepath.Join(e.outDir, "frequency."+string(e.format))

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := Render(file, report.Frequencies, e.format); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, err
	}

	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close chart file: %w", err)
	}

	return []string{path}, nil
}

// Render draws a bar chart of letter percentages and encodes it to w.
func Render(w io.Writer, entries []analysis.FrequencyEntry, format Format) error {
	if len(entries) == 0 {
		return ErrNoData
	}

	graph := buildChart(entries)

	switch format {
	case FormatPNG:
		if err := graph.Render(chart.PNG, w); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
	case FormatWebP:
		iw := &chart.ImageWriter{}
		if err := graph.Render(chart.PNG, iw); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}

		img, err := iw.Image()
		if err != nil {
			return fmt.Errorf("failed to read rendered chart: %w", err)
		}

		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("failed to encode webp: %w", err)
		}
	default:
		return fmt.Errorf("unsupported chart format: %s", format)
	}

	return nil
}

// buildChart creates the bar chart for the entries.
func buildChart(entries []analysis.FrequencyEntry) *chart.BarChart {
	bars := make([]chart.Value, 0, len(entries))
	highest := 0.0

	for _, entry := range entries {
		bars = append(bars, chart.Value{
			Label: string(entry.Char),
			Value: entry.Percentage,
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		})
		highest = math.Max(highest, entry.Percentage)
	}

	return &chart.BarChart{
		Title:      "Letter Frequency (%)",
		TitleStyle: chart.Style{FontSize: titleFontSize},
		Background: chart.Style{
			Padding: chart.Box{Top: paddingTop},
		},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis: chart.Style{
			FontSize: axisFontSize,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize: axisFontSize,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: gridLineWidth,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: math.Max(1, math.Ceil(highest)),
			},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}
}
