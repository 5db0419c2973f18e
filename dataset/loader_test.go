package dataset

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/userbase_dashboard/domain/models"
)

const header = "User ID,Subscription Type,Monthly Revenue,Join Date,Last Payment Date,Country,Age,Gender,Device,Plan Duration\n"

const sample = header +
	"1,Basic,10,15-01-22,10-06-23,United States,28,Male,Smartphone,1 Month\n" +
	"2,Premium,15,05/03/2021,22-06-23,Canada,35,Female,Tablet,1 Month\n" +
	"3,Standard,12,28-02-23,27-06-23,United Kingdom,42,Male,Smart TV,1 Month\n" +
	"4,Basic,11.5,10-07-22,26-06-23,Canada,51,Female,Laptop,1 Month\n"

func TestLoad(t *testing.T) {
	ds, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	records := ds.Records()
	assert.Equal(t, "1", records[0].UserID)
	assert.Equal(t, time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC), records[0].JoinDate)
	assert.Equal(t, time.Date(2021, time.March, 5, 0, 0, 0, 0, time.UTC), records[1].JoinDate)
	assert.Equal(t, "11.5", records[3].MonthlyRevenue.String())
	assert.Equal(t, "Smart TV", records[2].Device)
}

func TestDistinctKeepsFirstSeenOrder(t *testing.T) {
	ds, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	tiers, err := ds.Distinct(models.DimensionTier)
	require.NoError(t, err)
	assert.Equal(t, []string{"Basic", "Premium", "Standard"}, tiers)

	countries, err := ds.Distinct(models.DimensionCountry)
	require.NoError(t, err)
	assert.Equal(t, []string{"United States", "Canada", "United Kingdom"}, countries)

	again, _ := ds.Distinct(models.DimensionCountry)
	assert.Equal(t, countries, again)

	_, err = ds.Distinct("plan")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestAgeBoundsAndOptions(t *testing.T) {
	ds, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	lo, hi := ds.AgeBounds()
	assert.Equal(t, 28, lo)
	assert.Equal(t, 51, hi)

	opts := ds.Options()
	assert.Equal(t, []int{28, 33, 38, 43, 48}, opts.AgeMarks)
	assert.Equal(t, []string{"Basic", "Premium", "Standard"}, opts.Tiers)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		row    int
		column string
		target error
	}{
		{
			name:   "empty source",
			input:  "",
			target: ErrEmptySource,
		},
		{
			name:   "header only",
			input:  header,
			target: ErrEmptySource,
		},
		{
			name:   "no header",
			input:  "1,2,10,15-01-22,10-06-23,3,28,4,5,6\n",
			target: ErrMissingHeader,
		},
		{
			name:   "missing column",
			input:  "User ID,Subscription Type,Monthly Revenue,Join Date,Last Payment Date,Country,Gender,Device,Plan Duration\n",
			column: "age",
		},
		{
			name:   "bad date",
			input:  header + "1,Basic,10,yesterday,10-06-23,Spain,28,Male,Laptop,1 Month\n",
			row:    1,
			column: "join_date",
		},
		{
			name:   "month first date",
			input:  header + "1,Basic,10,01/15/2022,10-06-23,Spain,28,Male,Laptop,1 Month\n",
			row:    1,
			column: "join_date",
		},
		{
			name: "bad age",
			input: header +
				"1,Basic,10,15-01-22,10-06-23,Spain,28,Male,Laptop,1 Month\n" +
				"2,Basic,10,15-01-22,10-06-23,Spain,old,Male,Laptop,1 Month\n",
			row:    2,
			column: "age",
		},
		{
			name:   "negative age",
			input:  header + "1,Basic,10,15-01-22,10-06-23,Spain,-3,Male,Laptop,1 Month\n",
			row:    1,
			column: "age",
		},
		{
			name:   "bad revenue",
			input:  header + "1,Basic,ten,15-01-22,10-06-23,Spain,28,Male,Laptop,1 Month\n",
			row:    1,
			column: "monthly_revenue",
		},
		{
			name:  "short row",
			input: header + "1,Basic,10\n",
			row:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "want *LoadError, got %T", err)
			assert.Equal(t, tt.row, le.Row)
			assert.Equal(t, tt.column, le.Column)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Equal(t, tt.row > 0 && tt.column != "", IsParseError(err))
		})
	}
}

func TestLoadToleratesBadLastPaymentDate(t *testing.T) {
	ds, err := Load(strings.NewReader(header +
		"1,Basic,10,15-01-22,n/a,Spain,28,Male,Laptop,1 Month\n" +
		"2,Basic,10,15-01-22,,Spain,30,Male,Laptop,1 Month\n"))
	require.NoError(t, err)

	records := ds.Records()
	require.Len(t, records, 2)
	assert.True(t, records[0].LastPaymentDate.IsZero())
	assert.True(t, records[1].LastPaymentDate.IsZero())
	assert.Equal(t, time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC), records[0].JoinDate)
}

func TestLoadErrorMessage(t *testing.T) {
	_, err := Load(strings.NewReader(header + "1,Basic,10,15-01-22,10-06-23,Spain,x,Male,Laptop,1 Month\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), `"age"`)
}

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"05/03/2021", time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"5/3/2021", time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"15-01-22", time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"17.01.2021", time.Date(2021, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"2021-03-05", time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDayFirst(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseDayFirst("")
	assert.Error(t, err)
}

func TestLoadFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userbase.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
