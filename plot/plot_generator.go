package plot

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to draw for the current filter.
var ErrNoData = errors.New("no data to plot")

var (
	colorRed   = drawing.ColorFromHex("E50914")
	colorDark  = drawing.ColorFromHex("141414")
	colorWhite = drawing.ColorFromHex("FFFFFF")

	pieColors = []drawing.Color{
		colorRed,
		drawing.ColorFromHex("800000"),
		colorWhite,
		drawing.ColorFromHex("808080"),
	}
)

func chartDimensions(bars int, minBarWidth float64) (width, height int) {
	if bars <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if bars < 2 {
		x = 4.0
	} else if bars < 10 {
		x = 2.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(bars) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

// yAxisTop rounds the largest value up to the next grid line, never below 1
// so that all-zero series still get a valid range.
func yAxisTop(values []float64) (top, step float64) {
	top = findMaxValue(values)
	if top < 1 {
		top = 1
	}
	step = calculateGridStep(top)
	return math.Ceil(top/step) * step, step
}

func generateGrid(top, step float64) []chart.Tick {
	var ticks []chart.Tick
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > top+step/2 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func DrawPlotBar(data dataForGraph) ([]byte, error) {
	if data.lenXValues() == 0 {
		return nil, ErrNoData
	}

	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	top, step := yAxisTop(data.getYValues())

	bar := chart.BarChart{
		Title:      data.GetNameGraph(),
		TitleStyle: chart.Style{FontColor: colorWhite, FontSize: 16},
		Background: chart.Style{
			FillColor: colorDark,
			Padding: chart.Box{
				Top:    60,
				Bottom: paddingX,
			},
		},
		Canvas:   chart.Style{FillColor: colorDark},
		Height:   height + 50,
		Width:    width + paddingX + 50,
		BarWidth: 60,
		Bars:     barValues,
		YAxis: chart.YAxis{
			Name:      data.getNameYAxis(),
			NameStyle: chart.Style{FontColor: colorWhite},
			Range:     &chart.ContinuousRange{Min: 0, Max: top},
			Ticks:     generateGrid(top, step),
			Style: chart.Style{
				StrokeWidth: 1,
				StrokeColor: colorWhite,
				FontColor:   colorWhite,
				FontSize:    12,
			},
			GridMajorStyle: chart.Style{
				StrokeColor:     drawing.ColorFromHex("808080"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		XAxis: chart.Style{
			StrokeWidth:         1,
			StrokeColor:         colorWhite,
			FontColor:           colorWhite,
			TextRotationDegrees: 45,
			FontSize:            12,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// DrawPie renders each value as a slice labelled with its share of the total.
func DrawPie(data dataXStringsForGraph) ([]byte, error) {
	if data.lenXValues() == 0 {
		return nil, ErrNoData
	}
	total := 0.0
	for _, v := range data.yValues {
		total += v
	}
	if total <= 0 {
		return nil, ErrNoData
	}

	values := make([]chart.Value, 0, data.lenXValues())
	for i, label := range data.xValues {
		color := pieColors[i%len(pieColors)]
		fontColor := colorWhite
		if color == colorWhite {
			fontColor = colorDark
		}
		values = append(values, chart.Value{
			Value: data.yValues[i],
			Label: fmt.Sprintf("%s %.1f%%", label, data.yValues[i]/total*100),
			Style: chart.Style{FillColor: color, StrokeColor: colorDark, FontColor: fontColor},
		})
	}

	pie := chart.PieChart{
		Title:      data.GetNameGraph(),
		TitleStyle: chart.Style{FontColor: colorWhite, FontSize: 16},
		Background: chart.Style{FillColor: colorDark, Padding: chart.Box{Top: 60}},
		Canvas:     chart.Style{FillColor: colorDark},
		Width:      640,
		Height:     640,
		Values:     values,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// DrawLine renders a monthly series as a line with one tick per month.
func DrawLine(data dataDateForGraph) ([]byte, error) {
	if data.lenXValues() == 0 {
		return nil, ErrNoData
	}

	width, height := data.calculateChartDimensions(40)
	top, step := yAxisTop(data.yValues)
	xs, ys := data.xIndexes(), data.yValues
	xMin, xMax := 0.0, float64(data.lenXValues()-1)
	if data.lenXValues() == 1 {
		// go-chart needs a non-zero x range, stretch the lone month over [-0.5, 0.5]
		xMin, xMax = -0.5, 0.5
		xs = []float64{xMin, xMax}
		ys = []float64{data.yValues[0], data.yValues[0]}
	}

	series := chart.ContinuousSeries{
		Name:    data.getNameYAxis(),
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: colorRed,
			StrokeWidth: 3,
			DotColor:    colorRed,
			DotWidth:    4,
		},
	}

	graph := chart.Chart{
		Title:      data.GetNameGraph(),
		TitleStyle: chart.Style{FontColor: colorWhite, FontSize: 16},
		Width:      width,
		Height:     height,
		Background: chart.Style{
			FillColor: colorDark,
			Padding:   chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 60},
		},
		Canvas: chart.Style{FillColor: colorDark},
		XAxis: chart.XAxis{
			Name:      "Date",
			NameStyle: chart.Style{FontColor: colorWhite},
			Range:     &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:     data.ticks(),
			Style: chart.Style{
				FontColor:           colorWhite,
				StrokeColor:         colorWhite,
				TextRotationDegrees: 45,
			},
		},
		YAxis: chart.YAxis{
			Name:      data.getNameYAxis(),
			NameStyle: chart.Style{FontColor: colorWhite},
			Range:     &chart.ContinuousRange{Min: 0, Max: top},
			Ticks:     generateGrid(top, step),
			Style:     chart.Style{FontColor: colorWhite, StrokeColor: colorWhite},
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
