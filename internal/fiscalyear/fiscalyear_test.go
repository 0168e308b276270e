package fiscalyear

import (
	"testing"

	"nordledger/sie-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sieYears = []models.FiscalYear{
	{Ref: models.IndexRef(0), StartDate: "2016-01-01", EndDate: "2016-12-31"},
	{Ref: models.IndexRef(-1), StartDate: "2015-01-01", EndDate: "2015-12-31", Closed: true},
}

var ledgerYears = []models.LedgerFiscalYear{
	{ID: "fy-2016", OrganizationID: "org-1", StartDate: "2016-01-01", EndDate: "2016-12-31"},
	{ID: "fy-2015", OrganizationID: "org-1", StartDate: "2015-01-01", EndDate: "2015-12-31"},
}

func TestResolveIndexRef(t *testing.T) {
	r := NewResolver(sieYears, ledgerYears)

	id, ok := r.Resolve(models.IndexRef(0))
	assert.True(t, ok)
	assert.Equal(t, "fy-2016", id)

	id, ok = r.Resolve(models.IndexRef(-1))
	assert.True(t, ok)
	assert.Equal(t, "fy-2015", id)

	// An index the SIE file never declared cannot resolve.
	_, ok = r.Resolve(models.IndexRef(-2))
	assert.False(t, ok)
}

func TestResolveCalendarRef(t *testing.T) {
	r := NewResolver(nil, ledgerYears)

	id, ok := r.Resolve(models.CalendarRef(2016))
	assert.True(t, ok)
	assert.Equal(t, "fy-2016", id)

	_, ok = r.Resolve(models.CalendarRef(2014))
	assert.False(t, ok)
}

func TestResolveDate(t *testing.T) {
	r := NewResolver(sieYears, ledgerYears)

	id, ok := r.ResolveDate("2016-03-15")
	assert.True(t, ok)
	assert.Equal(t, "fy-2016", id)

	_, ok = r.ResolveDate("2014-01-01")
	assert.False(t, ok)
	_, ok = r.ResolveDate("garbage")
	assert.False(t, ok)
}

func TestStartDate(t *testing.T) {
	r := NewResolver(sieYears, ledgerYears)

	// The SIE file's own declaration wins for index references.
	start, ok := r.StartDate(models.IndexRef(0))
	assert.True(t, ok)
	assert.Equal(t, "2016-01-01", start)

	// Calendar references fall back to the resolved ledger year.
	start, ok = r.StartDate(models.CalendarRef(2015))
	assert.True(t, ok)
	assert.Equal(t, "2015-01-01", start)

	_, ok = r.StartDate(models.CalendarRef(2014))
	assert.False(t, ok)
}

func TestDetectMissingFiscalYears(t *testing.T) {
	vouchers := []models.Voucher{
		{Series: "A", Number: 1, Date: "2016-03-15"},
		{Series: "A", Number: 2, Date: "2016-06-01"},
	}

	// Empty ledger, SIE file declares a matching year.
	report := DetectMissingFiscalYears(vouchers, nil, sieYears[:1])

	assert.Equal(t, []int{2016}, report.RequiredYears)
	require.Len(t, report.MissingYears, 1)
	assert.Equal(t, 2016, report.MissingYears[0].Year)
	assert.True(t, report.MissingYears[0].InSieFile)
	assert.Equal(t, "2016-01-01", report.MissingYears[0].StartDate)
	assert.Equal(t, "2016-12-31", report.MissingYears[0].EndDate)
	assert.True(t, report.AllCanBeCreatedFromSie)
}

func TestDetectMissingFiscalYearsNotInSie(t *testing.T) {
	vouchers := []models.Voucher{
		{Series: "A", Number: 1, Date: "2016-03-15"},
		{Series: "A", Number: 2, Date: "2017-02-01"},
	}

	report := DetectMissingFiscalYears(vouchers, ledgerYears[:1], sieYears[:1])

	assert.Equal(t, []int{2016, 2017}, report.RequiredYears)

	// 2016 exists in the ledger; 2017 is missing and the SIE file cannot
	// supply it.
	require.Len(t, report.MissingYears, 1)
	assert.Equal(t, 2017, report.MissingYears[0].Year)
	assert.False(t, report.MissingYears[0].InSieFile)
	assert.False(t, report.AllCanBeCreatedFromSie)
}

func TestDetectMissingFiscalYearsNothingMissing(t *testing.T) {
	vouchers := []models.Voucher{{Series: "A", Number: 1, Date: "2016-03-15"}}

	report := DetectMissingFiscalYears(vouchers, ledgerYears, sieYears)

	assert.Empty(t, report.MissingYears)
	assert.True(t, report.AllCanBeCreatedFromSie)
}
