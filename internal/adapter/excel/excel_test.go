package excel

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var tripHeader = []any{
	"City", "Vehicle Type", "Driver ID", "Trip Type", "Rider ID", "Country", "Region",
	"Corporate", "Category", "Date", "Hour", "Latitude", "Longitude", "Distance",
}

func workbook(t *testing.T, rows ...[]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func TestParseTrips(t *testing.T) {
	f := workbook(t,
		tripHeader,
		[]any{"Nairobi", "Car", "D1", "Standard", "R1", "Kenya", "A", "Acme", "Trips", "2024-03-01", 8, -1.28, 36.82, 5.5},
		[]any{},
		[]any{"Lagos", "Bike", "D2", "Express", "R2", "Nigeria", "B", "None", "driver cancellation", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 23, "", "", 12},
	)

	trips, err := ParseTrips(f, "")
	require.NoError(t, err)
	require.Len(t, trips, 2)

	first := trips[0]
	assert.Equal(t, "Nairobi", first.City)
	assert.Equal(t, types.OutcomeTrip, first.Outcome)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 8, first.Hour)
	assert.Equal(t, 5.5, first.Distance)
	require.NotNil(t, first.Location)
	assert.Equal(t, models.Location{Latitude: -1.28, Longitude: 36.82}, *first.Location)

	second := trips[1]
	assert.Equal(t, types.OutcomeDriverCancellation, second.Outcome)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), second.Date)
	assert.Nil(t, second.Location, "empty coordinates stay absent")
}

func TestParseTripsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		err  error
	}{
		{
			name: "missing column",
			rows: [][]any{{"City", "Driver ID"}},
			err:  types.ErrMissingColumn,
		},
		{
			name: "empty sheet",
			rows: nil,
			err:  types.ErrMissingColumn,
		},
		{
			name: "unknown category",
			rows: [][]any{tripHeader, {"Nairobi", "Car", "D1", "Standard", "R1", "Kenya", "A", "Acme", "Lost", "2024-03-01", 8, "", "", 1}},
			err:  types.ErrMalformedCell,
		},
		{
			name: "hour out of range",
			rows: [][]any{tripHeader, {"Nairobi", "Car", "D1", "Standard", "R1", "Kenya", "A", "Acme", "Trips", "2024-03-01", 24, "", "", 1}},
			err:  types.ErrMalformedCell,
		},
		{
			name: "bad distance",
			rows: [][]any{tripHeader, {"Nairobi", "Car", "D1", "Standard", "R1", "Kenya", "A", "Acme", "Trips", "2024-03-01", 8, "", "", "far"}},
			err:  types.ErrMalformedCell,
		},
		{
			name: "bad date",
			rows: [][]any{tripHeader, {"Nairobi", "Car", "D1", "Standard", "R1", "Kenya", "A", "Acme", "Trips", "yesterday", 8, "", "", 1}},
			err:  types.ErrMalformedCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrips(workbook(t, tt.rows...), "Sheet1")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseLoans(t *testing.T) {
	f := workbook(t,
		[]any{"LoanID", "Driver Email", "Date of issue", "Date due", "Amount Issued", "Amount Payable", "Amount Paid", "Outstanding Amount"},
		[]any{"L1", "a@x.com", "2024-01-01", "2024-02-01", 1000, 1100, 600, 500},
	)

	loans, err := ParseLoans(f, "Sheet1")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, models.Loan{
		LoanID:            "L1",
		DriverEmail:       "a@x.com",
		IssuedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueAt:             time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AmountIssued:      1000,
		AmountPayable:     1100,
		AmountPaid:        600,
		OutstandingAmount: 500,
	}, loans[0])
}

func TestFileLoader(t *testing.T) {
	f := workbook(t,
		tripHeader,
		[]any{"Nairobi", "Car", "D1", "Standard", "R1", "Kenya", "A", "Acme", "Timeout", "2024-03-01", 8, "", "", 2},
	)
	path := filepath.Join(t.TempDir(), "trips.xlsx")
	require.NoError(t, f.SaveAs(path))

	l := NewFileLoader(path, "", ParseTrips)
	assert.Equal(t, "file://"+path, l.Source())

	trips, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, types.OutcomeTimeout, trips[0].Outcome)

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.xlsx"), "", ParseTrips).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type memObjects struct {
	data map[string][]byte
}

func (m memObjects) Bucket() string { return "exports" }

func (m memObjects) GetObject(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, types.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func TestObjectLoader(t *testing.T) {
	f := workbook(t,
		[]any{"LoanID", "Driver Email", "Date of issue", "Date due", "Amount Issued", "Amount Payable", "Amount Paid", "Outstanding Amount"},
		[]any{"L9", "z@x.com", "2024-05-01", "2024-06-01", 10, 11, 0, 11},
	)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	objects := memObjects{data: map[string][]byte{"loans.xlsx": buf.Bytes()}}
	l := NewObjectLoader(objects, "loans.xlsx", "", ParseLoans)
	assert.Equal(t, "s3://exports/loans.xlsx", l.Source())

	loans, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "L9", loans[0].LoanID)

	_, err = NewObjectLoader(objects, "nope.xlsx", "", ParseLoans).Load(context.Background())
	assert.ErrorIs(t, err, types.ErrNotFound)
}
