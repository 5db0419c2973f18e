package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

func bundle() models.AggregateBundle {
	return models.AggregateBundle{
		KPI: models.KPI{TotalUsers: 2, AverageAge: 29, TotalRevenue: 25},
		SubscriptionDistribution: []models.ValueCount{{Value: "Basic", Count: 2}},
		DeviceUsage:              []models.ValueCount{{Value: "Smart TV", Count: 1}, {Value: "Tablet", Count: 1}},
		NewUsersOverTime:         []models.DateCount{{Date: "2022-01", Count: 2}},
		RevenueByCountry:         []models.ValueSum{{Value: "Spain", Sum: decimal.RequireFromString("25.5")}},
		GenderDistribution:       []models.ValueCount{{Value: "Male", Count: 2}},
		AgeGroupDistribution: []models.ValueCount{
			{Value: "<18"}, {Value: "18-25"}, {Value: "26-35", Count: 2}, {Value: "36-50"}, {Value: "50+"},
		},
	}
}

func TestGenerateReport(t *testing.T) {
	out := GenerateReport(bundle(), FormatText)

	for _, want := range []string{
		"Total Users", "$25", "Smart TV", "2022-01", "Spain", "25.50", "26-35", "50+",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestGenerateReportMarkdown(t *testing.T) {
	out := GenerateReport(bundle(), FormatMarkdown)
	assert.Contains(t, out, "| Total Users |")
	assert.Contains(t, out, "| Spain | 25.50 |")
}

func TestGenerateReportEmpty(t *testing.T) {
	out := GenerateReport(models.AggregateBundle{}, FormatText)
	assert.Contains(t, out, "$0")
	assert.Contains(t, out, "Total Revenue")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"md", FormatMarkdown},
		{"Markdown", FormatMarkdown},
		{"", FormatText},
		{"txt", FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormat(tt.in))
		})
	}
}
