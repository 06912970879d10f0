package report

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Palette is cycled through by pie slices.
var Palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff8042"}

const (
	barChartWidth  = 600
	barChartHeight = 300
	barChartMargin = 40
	barGap         = 12

	pieRadius = 120
	pieCenter = 150
)

type Bar struct {
	Label  string
	Count  int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type BarChart struct {
	Width  int
	Height int
	Max    int
	Bars   []Bar
}

// NewBarChart lays out one bar per movie, scaled to the largest count.
func NewBarChart(series []MovieCount) BarChart {
	chart := BarChart{Width: barChartWidth, Height: barChartHeight}
	if len(series) == 0 {
		return chart
	}

	for _, c := range series {
		chart.Max = max(chart.Max, c.Count)
	}

	plotWidth := float64(barChartWidth - 2*barChartMargin)
	plotHeight := float64(barChartHeight - 2*barChartMargin)
	slot := plotWidth / float64(len(series))
	width := math.Max(slot-barGap, 1)

	for i, c := range series {
		height := 0.0
		if chart.Max > 0 {
			height = plotHeight * float64(c.Count) / float64(chart.Max)
		}

		chart.Bars = append(chart.Bars, Bar{
			Label:  c.MovieTitle,
			Count:  c.Count,
			X:      round2(barChartMargin + float64(i)*slot + barGap/2),
			Y:      round2(barChartMargin + plotHeight - height),
			Width:  round2(width),
			Height: round2(height),
		})
	}

	return chart
}

// Baseline is the y coordinate of the bar chart's x axis.
func (c BarChart) Baseline() int {
	return c.Height - barChartMargin
}

type Slice struct {
	Label   string
	Count   int
	Percent string
	Color   string
	Path    string
	// Full is set when the slice covers the whole pie; an SVG arc cannot
	// draw a full circle so the view renders a circle instead.
	Full bool
}

type PieChart struct {
	Size   int
	Center int
	Radius int
	Slices []Slice
}

// NewPieChart turns the time-of-day series into pie slices. Empty buckets
// get no slice.
func NewPieChart(series []TimeCount) PieChart {
	chart := PieChart{Size: 2 * pieCenter, Center: pieCenter, Radius: pieRadius}

	total := 0
	for _, c := range series {
		total += c.Count
	}

	if total == 0 {
		return chart
	}

	hundred := decimal.NewFromInt(100)
	totalDec := decimal.NewFromInt(int64(total))
	angle := -math.Pi / 2

	for i, c := range series {
		if c.Count == 0 {
			continue
		}

		share := float64(c.Count) / float64(total)
		sweep := share * 2 * math.Pi

		slice := Slice{
			Label:   c.Time,
			Count:   c.Count,
			Percent: decimal.NewFromInt(int64(c.Count)).Div(totalDec).Mul(hundred).Round(1).StringFixed(1),
			Color:   Palette[i%len(Palette)],
			Full:    c.Count == total,
		}

		if !slice.Full {
			slice.Path = arcPath(angle, angle+sweep)
		}

		chart.Slices = append(chart.Slices, slice)
		angle += sweep
	}

	return chart
}

func arcPath(from, to float64) string {
	x1, y1 := pointOnCircle(from)
	x2, y2 := pointOnCircle(to)

	largeArc := 0
	if to-from > math.Pi {
		largeArc = 1
	}

	return fmt.Sprintf("M %d %d L %.2f %.2f A %d %d 0 %d 1 %.2f %.2f Z",
		pieCenter, pieCenter, x1, y1, pieRadius, pieRadius, largeArc, x2, y2)
}

func pointOnCircle(angle float64) (float64, float64) {
	return pieCenter + pieRadius*math.Cos(angle), pieCenter + pieRadius*math.Sin(angle)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
