// Package engine derives the dashboard aggregates from a dataset and a filter selection.
// Every function is pure: the dataset is only read and each call builds fresh results.
package engine

import (
	"github.com/samber/lo"

	"github.com/pivolan/userbase_dashboard/dataset"
	"github.com/pivolan/userbase_dashboard/domain/models"
)

// Filter returns the rows of ds matching sel, in source order. Dimensions are
// ANDed, values inside one dimension are ORed.
func Filter(ds *dataset.Dataset, sel models.FilterSelection) []models.Subscriber {
	tiers := sel.Tiers()
	countries := sel.Countries()
	ageRange, hasAge := sel.AgeRange()

	var view []models.Subscriber
	ds.Each(func(r models.Subscriber) {
		if len(tiers) > 0 && !lo.Contains(tiers, r.SubscriptionType) {
			return
		}
		if len(countries) > 0 && !lo.Contains(countries, r.Country) {
			return
		}
		if hasAge && !ageRange.Contains(r.Age) {
			return
		}
		view = append(view, r)
	})
	return view
}

// Apply filters ds with sel and computes the KPIs and all six charts.
func Apply(ds *dataset.Dataset, sel models.FilterSelection) models.AggregateBundle {
	return Aggregate(Filter(ds, sel))
}

// Aggregate computes the bundle for an already filtered view.
func Aggregate(view []models.Subscriber) models.AggregateBundle {
	return models.AggregateBundle{
		KPI:                      ComputeKPI(view),
		SubscriptionDistribution: CountBy(view, models.DimensionTier),
		DeviceUsage:              CountBy(view, models.DimensionDevice),
		NewUsersOverTime:         NewUsersByMonth(view),
		RevenueByCountry:         SumRevenueBy(view, models.DimensionCountry),
		GenderDistribution:       CountBy(view, models.DimensionGender),
		AgeGroupDistribution:     AgeGroups(view),
	}
}
