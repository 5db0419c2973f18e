package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dimension string

const (
	DimensionTier    Dimension = "subscription_type"
	DimensionCountry Dimension = "country"
	DimensionDevice  Dimension = "device"
	DimensionGender  Dimension = "gender"
)

// Subscriber is one row of the userbase table.
type Subscriber struct {
	UserID           string          `json:"user_id"`
	SubscriptionType string          `json:"subscription_type"`
	MonthlyRevenue   decimal.Decimal `json:"monthly_revenue"`
	JoinDate         time.Time       `json:"join_date"`
	LastPaymentDate  time.Time       `json:"last_payment_date"`
	Country          string          `json:"country"`
	Age              int             `json:"age"`
	Gender           string          `json:"gender"`
	Device           string          `json:"device"`
	PlanDuration     string          `json:"plan_duration"`
}

// Value returns the categorical value of the subscriber for dim.
func (s Subscriber) Value(dim Dimension) string {
	switch dim {
	case DimensionTier:
		return s.SubscriptionType
	case DimensionCountry:
		return s.Country
	case DimensionDevice:
		return s.Device
	case DimensionGender:
		return s.Gender
	}
	return ""
}

// SubscriberRow is the database mapping of Subscriber.
type SubscriberRow struct {
	UserID           string    `gorm:"column:user_id;primaryKey"`
	SubscriptionType string    `gorm:"column:subscription_type"`
	MonthlyRevenue   string    `gorm:"column:monthly_revenue"`
	JoinDate         time.Time `gorm:"column:join_date"`
	LastPaymentDate  time.Time `gorm:"column:last_payment_date"`
	Country          string    `gorm:"column:country"`
	Age              int       `gorm:"column:age"`
	Gender           string    `gorm:"column:gender"`
	Device           string    `gorm:"column:device"`
	PlanDuration     string    `gorm:"column:plan_duration"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// FilterSelection is built fresh from user input for every request.
// Empty Tiers or Countries mean no filter on that dimension, nil AgeRange means any age.
type FilterSelection struct {
	tiers     []string
	countries []string
	ageRange  *AgeRange
}

func NewFilterSelection(tiers, countries []string, ageRange *AgeRange) FilterSelection {
	sel := FilterSelection{
		tiers:     append([]string(nil), tiers...),
		countries: append([]string(nil), countries...),
	}
	if ageRange != nil {
		r := *ageRange
		sel.ageRange = &r
	}
	return sel
}

func (f FilterSelection) Tiers() []string     { return append([]string(nil), f.tiers...) }
func (f FilterSelection) Countries() []string { return append([]string(nil), f.countries...) }

func (f FilterSelection) AgeRange() (AgeRange, bool) {
	if f.ageRange == nil {
		return AgeRange{}, false
	}
	return *f.ageRange, true
}

type KPI struct {
	TotalUsers   int   `json:"total_users"`
	AverageAge   int   `json:"average_age"`
	TotalRevenue int64 `json:"total_revenue"`
}

type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type ValueSum struct {
	Value string          `json:"value"`
	Sum   decimal.Decimal `json:"sum"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AggregateBundle holds everything one dashboard render needs.
type AggregateBundle struct {
	KPI                      KPI          `json:"kpi"`
	SubscriptionDistribution []ValueCount `json:"subscription_distribution"`
	DeviceUsage              []ValueCount `json:"device_usage"`
	NewUsersOverTime         []DateCount  `json:"new_users_over_time"`
	RevenueByCountry         []ValueSum   `json:"revenue_by_country"`
	GenderDistribution       []ValueCount `json:"gender_distribution"`
	AgeGroupDistribution     []ValueCount `json:"age_group_distribution"`
}

// DatasetOptions feeds the filter controls.
type DatasetOptions struct {
	Tiers     []string `json:"tiers"`
	Countries []string `json:"countries"`
	AgeMin    int      `json:"age_min"`
	AgeMax    int      `json:"age_max"`
	AgeMarks  []int    `json:"age_marks"`
}
