package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User ID", "user_id"},
		{"Monthly Revenue", "monthly_revenue"},
		{" Join Date ", "join_date"},
		{"\ufeffUser ID", "user_id"},
		{"Âge", "age"},
		{"Plan-Duration!", "plan_duration"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeader(tt.input))
		})
	}
}

func TestIsLikelyHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Empty string", "", false},
		{"Simple header", "Country", true},
		{"Header with space", "Subscription Type", true},
		{"Number", "123", false},
		{"Decimal", "12.5", false},
		{"ISO date", "2024-01-01", false},
		{"Day first date", "15-01-22", false},
		{"Slashed date", "05/03/2021", false},
		{"Only special chars", "###", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyHeader(tt.input))
		})
	}
}

func TestHeaderIndexDuplicate(t *testing.T) {
	row := []string{"User ID", "Subscription Type", "Monthly Revenue", "Join Date", "Last Payment Date",
		"Country", "Age", "Gender", "Device", "Plan Duration", "country"}
	_, err := headerIndex(row)

	var le *LoadError
	assert.ErrorAs(t, err, &le)
	assert.Equal(t, "country", le.Column)
}

func TestHeaderIndexIgnoresExtraColumns(t *testing.T) {
	row := []string{"Notes", "User ID", "Subscription Type", "Monthly Revenue", "Join Date", "Last Payment Date",
		"Country", "Age", "Gender", "Device", "Plan Duration"}
	index, err := headerIndex(row)

	assert.NoError(t, err)
	assert.Equal(t, 1, index[colUserID])
	assert.Equal(t, 10, index[colPlanDuration])
}
