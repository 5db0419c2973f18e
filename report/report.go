// Package report renders an aggregate bundle as plain-text tables.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

type Format int

const (
	FormatText Format = iota
	FormatMarkdown
)

// ParseFormat maps "md"/"markdown" to FormatMarkdown, anything else to FormatText.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "md", "markdown":
		return FormatMarkdown
	}
	return FormatText
}

// GenerateReport renders KPIs followed by one table per distribution.
func GenerateReport(bundle models.AggregateBundle, format Format) string {
	sections := []string{
		render(kpiTable(bundle.KPI), format),
		render(countTable("Subscription Type", bundle.SubscriptionDistribution), format),
		render(countTable("Device", bundle.DeviceUsage), format),
		render(monthTable(bundle.NewUsersOverTime), format),
		render(revenueTable(bundle.RevenueByCountry), format),
		render(countTable("Gender", bundle.GenderDistribution), format),
		render(countTable("Age Group", bundle.AgeGroupDistribution), format),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func render(t table.Writer, format Format) string {
	if format == FormatMarkdown {
		return t.RenderMarkdown()
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func kpiTable(kpi models.KPI) table.Writer {
	t := table.NewWriter()
	t.SetTitle("Key Metrics")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total Users", kpi.TotalUsers},
		{"Average Age", kpi.AverageAge},
		{"Total Revenue", fmt.Sprintf("$%d", kpi.TotalRevenue)},
	})
	return t
}

func countTable(name string, counts []models.ValueCount) table.Writer {
	t := table.NewWriter()
	t.SetTitle(name)
	t.AppendHeader(table.Row{name, "Users"})
	var total int64
	for _, c := range counts {
		t.AppendRow(table.Row{c.Value, c.Count})
		total += c.Count
	}
	t.AppendFooter(table.Row{"Total", total})
	return t
}

func monthTable(points []models.DateCount) table.Writer {
	t := table.NewWriter()
	t.SetTitle("New Users Over Time")
	t.AppendHeader(table.Row{"Month", "New Users"})
	for _, p := range points {
		t.AppendRow(table.Row{p.Date, p.Count})
	}
	return t
}

func revenueTable(sums []models.ValueSum) table.Writer {
	t := table.NewWriter()
	t.SetTitle("Revenue by Country")
	t.AppendHeader(table.Row{"Country", "Revenue"})
	for _, s := range sums {
		t.AppendRow(table.Row{s.Value, s.Sum.StringFixed(2)})
	}
	return t
}
