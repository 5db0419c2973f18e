package dataset

import (
	"fmt"

	"github.com/pivolan/go_utils"
	"github.com/samber/lo"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

// ageMarkStep matches the tick spacing of the age slider.
const ageMarkStep = 5

// Dataset is the immutable, fully parsed userbase. It is safe to share between
// goroutines without locking.
type Dataset struct {
	records   []models.Subscriber
	tiers     []string
	countries []string
	ageMin    int
	ageMax    int
}

// New builds a Dataset from already normalised records. The slice is copied.
func New(records []models.Subscriber) *Dataset {
	ds := &Dataset{records: append([]models.Subscriber(nil), records...)}
	ds.tiers = distinct(ds.records, models.DimensionTier)
	ds.countries = distinct(ds.records, models.DimensionCountry)
	if len(ds.records) > 0 {
		ds.ageMin = lo.MinBy(ds.records, func(a, b models.Subscriber) bool { return a.Age < b.Age }).Age
		ds.ageMax = lo.MaxBy(ds.records, func(a, b models.Subscriber) bool { return a.Age > b.Age }).Age
	}
	return ds
}

func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the rows in source order.
func (d *Dataset) Records() []models.Subscriber {
	return append([]models.Subscriber(nil), d.records...)
}

// Each calls fn for every row in source order without copying the dataset.
func (d *Dataset) Each(fn func(models.Subscriber)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Distinct returns the values of dim in first-seen order.
func (d *Dataset) Distinct(dim models.Dimension) ([]string, error) {
	switch dim {
	case models.DimensionTier:
		return append([]string(nil), d.tiers...), nil
	case models.DimensionCountry:
		return append([]string(nil), d.countries...), nil
	}
	if go_utils.InArray(string(dim), []string{string(models.DimensionDevice), string(models.DimensionGender)}) {
		return distinct(d.records, dim), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
}

// AgeBounds returns the youngest and oldest age over the whole dataset.
func (d *Dataset) AgeBounds() (int, int) {
	return d.ageMin, d.ageMax
}

// Options describes the filter controls for this dataset.
func (d *Dataset) Options() models.DatasetOptions {
	opts := models.DatasetOptions{
		Tiers:     append([]string(nil), d.tiers...),
		Countries: append([]string(nil), d.countries...),
		AgeMin:    d.ageMin,
		AgeMax:    d.ageMax,
	}
	if len(d.records) > 0 {
		for mark := d.ageMin; mark <= d.ageMax; mark += ageMarkStep {
			opts.AgeMarks = append(opts.AgeMarks, mark)
		}
	}
	return opts
}

func distinct(records []models.Subscriber, dim models.Dimension) []string {
	return lo.Uniq(lo.Map(records, func(r models.Subscriber, _ int) string {
		return r.Value(dim)
	}))
}
