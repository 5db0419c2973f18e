package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

const DefaultTable = "subscribers"

// LoadFromDB reads every row of table and applies the same normalisation as Load.
func LoadFromDB(ctx context.Context, db *gorm.DB, table string) (*Dataset, error) {
	if table == "" {
		table = DefaultTable
	}

	var rows []models.SubscriberRow
	tx := db.WithContext(ctx).Table(table).Order("user_id").Find(&rows)
	if tx.Error != nil {
		return nil, &LoadError{Err: fmt.Errorf("query %s: %w", table, tx.Error)}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Err: ErrEmptySource}
	}

	records := make([]models.Subscriber, 0, len(rows))
	for i, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			err.Row = i + 1
			return nil, err
		}
		records = append(records, rec)
	}

	slog.Default().With("module", "dataset").Info("dataset loaded", "table", table, "rows", len(records))
	return New(records), nil
}

func fromRow(row models.SubscriberRow) (models.Subscriber, *LoadError) {
	if row.Age < 0 {
		return models.Subscriber{}, &LoadError{Column: colAge, Err: fmt.Errorf("negative age %d", row.Age)}
	}
	revenue, err := decimal.NewFromString(row.MonthlyRevenue)
	if err != nil {
		return models.Subscriber{}, &LoadError{Column: colMonthlyRevenue, Err: fmt.Errorf("unparseable revenue %q", row.MonthlyRevenue)}
	}
	if revenue.IsNegative() {
		return models.Subscriber{}, &LoadError{Column: colMonthlyRevenue, Err: fmt.Errorf("negative revenue %s", revenue)}
	}
	return models.Subscriber{
		UserID:           row.UserID,
		SubscriptionType: row.SubscriptionType,
		MonthlyRevenue:   revenue,
		JoinDate:         row.JoinDate,
		LastPaymentDate:  row.LastPaymentDate,
		Country:          row.Country,
		Age:              row.Age,
		Gender:           row.Gender,
		Device:           row.Device,
		PlanDuration:     row.PlanDuration,
	}, nil
}
