// Package dashboard renders the interactive HTML page: filter controls,
// KPI cards and echarts charts for one aggregate bundle.
package dashboard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

const (
	PageTitle = "Userbase Dashboard"

	ColorRed   = "#E50914"
	ColorDark  = "#141414"
	ColorWhite = "#FFFFFF"
)

var bodyTag = []byte("<body>")

var deviceColors = opts.Colors{ColorRed, "#800000", ColorWhite, "#808080"}

// Render writes the full dashboard page for bundle to w.
func Render(w io.Writer, bundle models.AggregateBundle, options models.DatasetOptions, selection models.FilterSelection) error {
	var header bytes.Buffer
	if err := renderHeader(&header, bundle, options, selection); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	page := components.NewPage()
	page.PageTitle = PageTitle
	page.Layout = components.PageFlexLayout
	page.AddCharts(
		subscriptionChart(bundle.SubscriptionDistribution),
		deviceChart(bundle.DeviceUsage),
		newUsersChart(bundle.NewUsersOverTime),
		revenueChart(bundle.RevenueByCountry),
		countBar("gender", "Gender Distribution", bundle.GenderDistribution),
		countBar("age_group", "Age Group Distribution", bundle.AgeGroupDistribution),
	)

	var body bytes.Buffer
	if err := page.Render(&body); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}

	html := body.Bytes()
	if bytes.Contains(html, bodyTag) {
		html = bytes.Replace(html, bodyTag, append(append([]byte{}, bodyTag...), header.Bytes()...), 1)
	} else {
		html = append(header.Bytes(), html...)
	}
	_, err := w.Write(html)
	return err
}

func initOpts(id string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID:         id,
		Width:           "600px",
		Height:          "400px",
		BackgroundColor: ColorDark,
	})
}

func titleOpts(title string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title:      title,
		TitleStyle: &opts.TextStyle{Color: ColorWhite},
	})
}

func axisLabels() (charts.GlobalOpts, charts.GlobalOpts) {
	label := &opts.AxisLabel{Color: ColorWhite}
	return charts.WithXAxisOpts(opts.XAxis{AxisLabel: label}),
		charts.WithYAxisOpts(opts.YAxis{AxisLabel: label})
}

func countBar(id, title string, counts []models.ValueCount) *charts.Bar {
	x, y := countSeries(counts)
	xOpts, yOpts := axisLabels()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(id),
		titleOpts(title),
		charts.WithColorsOpts(opts.Colors{ColorRed}),
		xOpts, yOpts,
	)
	bar.SetXAxis(x).AddSeries("Users", barData(y))
	return bar
}

func subscriptionChart(counts []models.ValueCount) *charts.Bar {
	return countBar("subscription", "Subscription Type Distribution", counts)
}

func deviceChart(counts []models.ValueCount) *charts.Pie {
	data := make([]opts.PieData, 0, len(counts))
	for _, c := range counts {
		data = append(data, opts.PieData{Name: c.Value, Value: c.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts("device"),
		titleOpts("Device Usage"),
		charts.WithColorsOpts(deviceColors),
		charts.WithLegendOpts(opts.Legend{
			Top:       "bottom",
			TextStyle: &opts.TextStyle{Color: ColorWhite},
		}),
	)
	pie.AddSeries("Users", data)
	return pie
}

func newUsersChart(points []models.DateCount) *charts.Line {
	x := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		x[i] = p.Date
		data[i] = opts.LineData{Value: p.Count}
	}
	xOpts, yOpts := axisLabels()

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("new_users"),
		titleOpts("New Users Over Time"),
		charts.WithColorsOpts(opts.Colors{ColorRed}),
		xOpts, yOpts,
	)
	line.SetXAxis(x).AddSeries("New Users", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)
	return line
}

func revenueChart(sums []models.ValueSum) *charts.Bar {
	x := make([]string, len(sums))
	y := make([]float64, len(sums))
	for i, s := range sums {
		x[i] = s.Value
		y[i] = s.Sum.Round(2).InexactFloat64()
	}
	xOpts, yOpts := axisLabels()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("revenue_country"),
		titleOpts("Revenue by Country"),
		charts.WithColorsOpts(opts.Colors{ColorRed}),
		xOpts, yOpts,
	)
	data := make([]opts.BarData, len(y))
	for i, v := range y {
		data[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(x).AddSeries("Revenue", data)
	bar.XYReversal()
	return bar
}

func countSeries(counts []models.ValueCount) ([]string, []int64) {
	x := make([]string, len(counts))
	y := make([]int64, len(counts))
	for i, c := range counts {
		x[i] = c.Value
		y[i] = c.Count
	}
	return x, y
}

func barData(y []int64) []opts.BarData {
	data := make([]opts.BarData, len(y))
	for i, v := range y {
		data[i] = opts.BarData{Value: v}
	}
	return data
}
