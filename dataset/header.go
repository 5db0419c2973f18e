package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"
)

const (
	colUserID          = "user_id"
	colSubscription    = "subscription_type"
	colMonthlyRevenue  = "monthly_revenue"
	colJoinDate        = "join_date"
	colLastPaymentDate = "last_payment_date"
	colCountry         = "country"
	colAge             = "age"
	colGender          = "gender"
	colDevice          = "device"
	colPlanDuration    = "plan_duration"
)

var requiredColumns = []string{
	colUserID,
	colSubscription,
	colMonthlyRevenue,
	colJoinDate,
	colLastPaymentDate,
	colCountry,
	colAge,
	colGender,
	colDevice,
	colPlanDuration,
}

var (
	specialSymbols = regexp.MustCompile("[^a-zA-Z0-9]+")
	datePatterns   = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`),
		regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`),
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}$`),
	}
)

// headerIndex maps every required column to its position in the header row.
func headerIndex(firstRow []string) (map[string]int, error) {
	if len(firstRow) == 0 {
		return nil, &LoadError{Err: ErrMissingHeader}
	}

	headerLike := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLike++
		}
	}
	if float64(headerLike)/float64(len(firstRow)) < 0.5 {
		return nil, &LoadError{Err: ErrMissingHeader}
	}

	index := make(map[string]int, len(firstRow))
	for i, raw := range firstRow {
		name := normalizeHeader(raw)
		if !go_utils.InArray(name, requiredColumns) {
			continue
		}
		if _, dup := index[name]; dup {
			return nil, &LoadError{Column: name, Err: fmt.Errorf("duplicate column")}
		}
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &LoadError{Column: col, Err: fmt.Errorf("missing column")}
		}
	}
	return index, nil
}

// normalizeHeader turns "Monthly Revenue" into "monthly_revenue".
func normalizeHeader(header string) string {
	header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	header = unidecode.Unidecode(header)
	cleaned := specialSymbols.ReplaceAllString(header, "_")
	return strings.ToLower(strings.Trim(cleaned, "_"))
}

// isLikelyHeader tells a column title apart from a data value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}

	letters, others := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsSpace(r):
		default:
			others++
		}
	}
	total := letters + others
	if total == 0 {
		return false
	}
	// more than 30% letters
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}
