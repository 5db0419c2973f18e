package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

const separator = ','

// Day-first layouts are tried in order; the ISO layout is unambiguous and kept last.
var dayFirstLayouts = []string{
	"2-1-06",
	"2-1-2006",
	"2/1/06",
	"2/1/2006",
	"2.1.06",
	"2.1.2006",
	"2006-01-02",
}

// LoadFile opens path (optionally .gz, .lz4 or .zip) and parses it.
func LoadFile(path string) (*Dataset, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("open %s: %w", path, err)}
	}
	defer rc.Close()

	ds, err := Load(rc)
	if err != nil {
		return nil, err
	}
	slog.Default().With("module", "dataset").Info("dataset loaded",
		"path", path, "rows", ds.Len(), "tiers", len(ds.tiers), "countries", len(ds.countries))
	return ds, nil
}

// Load parses a comma separated userbase table with a header row.
func Load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = separator
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Err: ErrEmptySource}
	}
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.Subscriber
	for row := 1; ; row++ {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}
		rec, err := parseRow(values, index)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.Row = row
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &LoadError{Err: ErrEmptySource}
	}
	return New(records), nil
}

func parseRow(values []string, index map[string]int) (models.Subscriber, error) {
	field := func(col string) string {
		return strings.TrimSpace(values[index[col]])
	}

	rec := models.Subscriber{
		UserID:           field(colUserID),
		SubscriptionType: field(colSubscription),
		Country:          field(colCountry),
		Gender:           field(colGender),
		Device:           field(colDevice),
		PlanDuration:     field(colPlanDuration),
	}

	var err error
	if rec.JoinDate, err = parseDayFirst(field(colJoinDate)); err != nil {
		return rec, &LoadError{Column: colJoinDate, Err: err}
	}
	// nothing aggregates on the last payment date, an unreadable one stays zero
	rec.LastPaymentDate, _ = parseDayFirst(field(colLastPaymentDate))
	if rec.Age, err = parseAge(field(colAge)); err != nil {
		return rec, &LoadError{Column: colAge, Err: err}
	}
	if rec.MonthlyRevenue, err = parseRevenue(field(colMonthlyRevenue)); err != nil {
		return rec, &LoadError{Column: colMonthlyRevenue, Err: err}
	}
	return rec, nil
}

// parseDayFirst reads "05/03/2021" as 5 March 2021.
func parseDayFirst(value string) (time.Time, error) {
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func parseAge(value string) (int, error) {
	age, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("unparseable age %q", value)
	}
	if age < 0 {
		return 0, fmt.Errorf("negative age %d", age)
	}
	return age, nil
}

func parseRevenue(value string) (decimal.Decimal, error) {
	revenue, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable revenue %q", value)
	}
	if revenue.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative revenue %s", revenue)
	}
	return revenue, nil
}
