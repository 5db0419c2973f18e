package engine

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

const monthLayout = "2006-01"

// AgeGroup is a (Lower, Upper] age bucket.
type AgeGroup struct {
	Label string
	Lower int
	Upper int
}

// AgeGroupBins are the fixed buckets of the age group chart, in display order.
var AgeGroupBins = []AgeGroup{
	{Label: "<18", Lower: 0, Upper: 18},
	{Label: "18-25", Lower: 18, Upper: 25},
	{Label: "26-35", Lower: 25, Upper: 35},
	{Label: "36-50", Lower: 35, Upper: 50},
	{Label: "50+", Lower: 50, Upper: 100},
}

// ComputeKPI returns the three headline numbers. Mean age and revenue are
// truncated toward zero; an empty view yields zeros.
func ComputeKPI(view []models.Subscriber) models.KPI {
	kpi := models.KPI{TotalUsers: len(view)}
	if len(view) == 0 {
		return kpi
	}

	ageSum := lo.SumBy(view, func(r models.Subscriber) int { return r.Age })
	kpi.AverageAge = int(float64(ageSum) / float64(len(view)))
	kpi.TotalRevenue = sumRevenue(view).IntPart()
	return kpi
}

// CountBy counts rows per value of dim, omitting absent values. Entries are
// ordered by count descending, then value ascending.
func CountBy(view []models.Subscriber, dim models.Dimension) []models.ValueCount {
	groups := lo.GroupBy(view, func(r models.Subscriber) string { return r.Value(dim) })

	counts := make([]models.ValueCount, 0, len(groups))
	for value, rows := range groups {
		counts = append(counts, models.ValueCount{Value: value, Count: int64(len(rows))})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts
}

// SumRevenueBy sums monthly revenue per value of dim, ordered by value.
func SumRevenueBy(view []models.Subscriber, dim models.Dimension) []models.ValueSum {
	groups := lo.GroupBy(view, func(r models.Subscriber) string { return r.Value(dim) })

	sums := make([]models.ValueSum, 0, len(groups))
	for value, rows := range groups {
		sums = append(sums, models.ValueSum{Value: value, Sum: sumRevenue(rows)})
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Value < sums[j].Value })
	return sums
}

// NewUsersByMonth counts rows per join month ("2021-03"), oldest first.
func NewUsersByMonth(view []models.Subscriber) []models.DateCount {
	groups := lo.GroupBy(view, func(r models.Subscriber) string { return r.JoinDate.Format(monthLayout) })

	months := lo.Keys(groups)
	sort.Strings(months)

	series := make([]models.DateCount, 0, len(months))
	for _, month := range months {
		series = append(series, models.DateCount{Date: month, Count: int64(len(groups[month]))})
	}
	return series
}

// AgeGroups counts rows per AgeGroupBins bucket. All buckets are present, in
// bin order, even when empty; ages outside (0, 100] are not counted.
func AgeGroups(view []models.Subscriber) []models.ValueCount {
	counts := make([]models.ValueCount, len(AgeGroupBins))
	for i, bin := range AgeGroupBins {
		counts[i].Value = bin.Label
	}
	for _, r := range view {
		if i, ok := ageGroupIndex(r.Age); ok {
			counts[i].Count++
		}
	}
	return counts
}

func ageGroupIndex(age int) (int, bool) {
	for i, bin := range AgeGroupBins {
		if age > bin.Lower && age <= bin.Upper {
			return i, true
		}
	}
	return 0, false
}

func sumRevenue(rows []models.Subscriber) decimal.Decimal {
	return lo.Reduce(rows, func(acc decimal.Decimal, r models.Subscriber, _ int) decimal.Decimal {
		return acc.Add(r.MonthlyRevenue)
	}, decimal.Zero)
}
