package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadList(t *testing.T) {
	qs := url.Values{"city": {"Nairobi, Mombasa", "Kisumu", " ", ""}}
	assert.Equal(t, []string{"Nairobi", "Mombasa", "Kisumu"}, ReadList(qs, "city"))
	assert.Nil(t, ReadList(qs, "vehicle_type"))
}

func TestTripFilterDefaults(t *testing.T) {
	v := validator.New()
	f := TripFilter(url.Values{}, v)

	require.True(t, v.Valid())
	assert.Empty(t, f.Cities)
	assert.Equal(t, models.All, f.DriverID)
	assert.Equal(t, models.All, f.Corporate)
	assert.True(t, f.DateFrom.IsZero())
	assert.Nil(t, f.Distance)
}

func TestTripFilterDates(t *testing.T) {
	v := validator.New()
	f := TripFilter(url.Values{"date_from": {"2024-03-01"}, "date_to": {"2024-03-01"}}, v)

	require.True(t, v.Valid())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), f.DateFrom)
	assert.Equal(t, f.DateFrom, f.DateTo)
}

func TestLoanFilter(t *testing.T) {
	v := validator.New()
	f := LoanFilter(url.Values{"driver_email": {"jane@example.com"}, "issued_from": {"2024-01-01"}}, v)
	require.True(t, v.Valid())
	assert.Equal(t, "jane@example.com", f.DriverEmail)
	assert.Equal(t, models.All, f.LoanID)

	// Exported spreadsheets are not cleaned, so any stored value must be selectable.
	v = validator.New()
	f = LoanFilter(url.Values{"driver_email": {"J. Doe (no email)"}}, v)
	require.True(t, v.Valid())
	assert.Equal(t, "J. Doe (no email)", f.DriverEmail)
}

func TestPageDefaults(t *testing.T) {
	v := validator.New()
	p := Page(url.Values{}, []string{"date", "-date"}, v)

	require.True(t, v.Valid())
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, "date", p.Sort)

	v = validator.New()
	Page(url.Values{"page": {"x"}}, []string{"date"}, v)
	assert.Contains(t, v.Errors, "page")
}

func TestAskRequestValidate(t *testing.T) {
	v := validator.New()
	(&AskRequest{Question: "  "}).Validate(v)
	assert.Contains(t, v.Errors, "question")

	v = validator.New()
	(&AskRequest{Question: "top regions?"}).Validate(v)
	assert.True(t, v.Valid())
}
