package plot

import (
	"fmt"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

// Chart names accepted by DrawChart.
const (
	ChartSubscription   = "subscription"
	ChartDevice         = "device"
	ChartNewUsers       = "new_users"
	ChartRevenueCountry = "revenue_country"
	ChartGender         = "gender"
	ChartAgeGroup       = "age_group"
)

// ChartNames lists every chart in dashboard order.
var ChartNames = []string{
	ChartSubscription,
	ChartDevice,
	ChartNewUsers,
	ChartRevenueCountry,
	ChartGender,
	ChartAgeGroup,
}

var chartTitles = map[string]string{
	ChartSubscription:   "Subscription Type Distribution",
	ChartDevice:         "Device Usage",
	ChartNewUsers:       "New Users Over Time",
	ChartRevenueCountry: "Revenue by Country",
	ChartGender:         "Gender Distribution",
	ChartAgeGroup:       "Age Group Distribution",
}

// Title returns the display title of a chart, or "" for unknown names.
func Title(name string) string {
	return chartTitles[name]
}

// DrawChart renders one chart of the bundle as PNG.
func DrawChart(bundle models.AggregateBundle, name string) ([]byte, error) {
	title, ok := chartTitles[name]
	if !ok {
		return nil, fmt.Errorf("unknown chart %q", name)
	}

	switch name {
	case ChartSubscription:
		x, y := countSeries(bundle.SubscriptionDistribution)
		return DrawPlotBar(NewDataXStringsForGraph(x, y, "Users", title))
	case ChartDevice:
		x, y := countSeries(bundle.DeviceUsage)
		return DrawPie(NewDataXStringsForGraph(x, y, "Users", title))
	case ChartNewUsers:
		x := make([]string, len(bundle.NewUsersOverTime))
		y := make([]float64, len(bundle.NewUsersOverTime))
		for i, p := range bundle.NewUsersOverTime {
			x[i] = p.Date
			y[i] = float64(p.Count)
		}
		return DrawLine(NewDataDateForGraph(x, y, "New Users", title))
	case ChartRevenueCountry:
		x := make([]string, len(bundle.RevenueByCountry))
		y := make([]float64, len(bundle.RevenueByCountry))
		for i, p := range bundle.RevenueByCountry {
			x[i] = p.Value
			y[i] = p.Sum.InexactFloat64()
		}
		return DrawPlotBar(NewDataXStringsForGraph(x, y, "Revenue", title))
	case ChartGender:
		x, y := countSeries(bundle.GenderDistribution)
		return DrawPlotBar(NewDataXStringsForGraph(x, y, "Users", title))
	default:
		x, y := countSeries(bundle.AgeGroupDistribution)
		return DrawPlotBar(NewDataXStringsForGraph(x, y, "Users", title))
	}
}

func countSeries(counts []models.ValueCount) ([]string, []float64) {
	x := make([]string, len(counts))
	y := make([]float64, len(counts))
	for i, c := range counts {
		x[i] = c.Value
		y[i] = float64(c.Count)
	}
	return x, y
}
