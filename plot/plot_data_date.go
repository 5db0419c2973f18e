package plot

import (
	"github.com/wcharczuk/go-chart/v2"
)

// dataDateForGraph is a monthly series; xValues are "2006-01" keys in
// chronological order.
type dataDateForGraph struct {
	xValues   []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataDateForGraph(months []string, y []float64, nameYAxis, nameGraph string) dataDateForGraph {
	return dataDateForGraph{
		xValues:   months,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d dataDateForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataDateForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataDateForGraph) getYValues() []float64 {
	return d.yValues
}
func (d dataDateForGraph) lenXValues() int {
	return len(d.xValues)
}

func (d dataDateForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(d.lenXValues(), minBarWidth)
}

func (d dataDateForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.xValues))
	for i, month := range d.xValues {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: month,
			Style: chart.Style{FillColor: colorRed, StrokeColor: colorRed},
		})
	}
	return bars
}

// xIndexes places every month at its position, one unit apart.
func (d dataDateForGraph) xIndexes() []float64 {
	xs := make([]float64, len(d.xValues))
	for i := range d.xValues {
		xs[i] = float64(i)
	}
	return xs
}

// ticks labels every month. go-chart takes the x range from the ticks, so a
// single month gets unlabelled ticks at -0.5 and 0.5 around it.
func (d dataDateForGraph) ticks() []chart.Tick {
	if len(d.xValues) == 1 {
		return []chart.Tick{{Value: -0.5}, {Value: 0, Label: d.xValues[0]}, {Value: 0.5}}
	}
	ticks := make([]chart.Tick, len(d.xValues))
	for i, month := range d.xValues {
		ticks[i] = chart.Tick{Value: float64(i), Label: month}
	}
	return ticks
}
