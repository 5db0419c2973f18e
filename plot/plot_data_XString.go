package plot

import (
	"github.com/wcharczuk/go-chart/v2"
)

type dataXStringsForGraph struct {
	xValues   []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataXStringsForGraph(xValues []string, y []float64, nameYAxis, nameGraph string) dataXStringsForGraph {
	return dataXStringsForGraph{
		xValues:   xValues,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d dataXStringsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataXStringsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataXStringsForGraph) getYValues() []float64 {
	return d.yValues
}
func (d dataXStringsForGraph) lenXValues() int {
	return len(d.xValues)
}

func (d dataXStringsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(d.lenXValues(), minBarWidth)
}

func (d dataXStringsForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.xValues))
	for i, label := range d.xValues {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{
				FillColor:   colorRed,
				StrokeColor: colorRed,
			},
		})
	}
	return bars
}
