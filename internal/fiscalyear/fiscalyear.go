// Package fiscalyear reconciles the fiscal-year references inside a SIE file
// with the fiscal years already known to the target ledger.
//
// SIE4 addresses years by relative index (#RAR 0, -1, ...) while SIE5
// addresses them by calendar year. Both schemes resolve through the YearRef
// discriminant; there is no string-keyed shortcut between them.
package fiscalyear

import (
	"sort"

	"nordledger/sie-import/internal/dateutils"
	"nordledger/sie-import/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Resolver maps YearRefs to concrete ledger fiscal-year ids.
type Resolver struct {
	sieByIndex     map[int]models.FiscalYear
	ledgerByYear   map[int]string
	ledgerByYearID map[string]models.LedgerFiscalYear
}

// NewResolver builds a resolver from the fiscal years declared in the SIE
// file and those already present in the ledger. Ledger years are keyed by
// the calendar year of their start date.
func NewResolver(sieYears []models.FiscalYear, ledgerYears []models.LedgerFiscalYear) *Resolver {
	r := &Resolver{
		sieByIndex:     make(map[int]models.FiscalYear, len(sieYears)),
		ledgerByYear:   make(map[int]string, len(ledgerYears)),
		ledgerByYearID: make(map[string]models.LedgerFiscalYear, len(ledgerYears)),
	}
	for _, fy := range sieYears {
		if fy.Ref.Kind == models.YearRefIndex {
			r.sieByIndex[fy.Ref.Index] = fy
		}
	}
	for _, ly := range ledgerYears {
		if year := dateutils.YearOf(ly.StartDate); year != 0 {
			r.ledgerByYear[year] = ly.ID
		}
		r.ledgerByYearID[ly.ID] = ly
	}
	return r
}

// Resolve maps a year reference to a ledger fiscal-year id. Index references
// go through the SIE file's own year table first to obtain a calendar year;
// calendar references resolve directly.
func (r *Resolver) Resolve(ref models.YearRef) (string, bool) {
	year, ok := r.calendarYear(ref)
	if !ok {
		return "", false
	}
	id, ok := r.ledgerByYear[year]
	return id, ok
}

// ResolveDate maps a voucher date to the ledger fiscal year covering its
// calendar year.
func (r *Resolver) ResolveDate(date string) (string, bool) {
	year := dateutils.YearOf(date)
	if year == 0 {
		return "", false
	}
	id, ok := r.ledgerByYear[year]
	return id, ok
}

// StartDate returns the start date of the fiscal year a reference points at,
// preferring the SIE file's own declaration and falling back to the resolved
// ledger year.
func (r *Resolver) StartDate(ref models.YearRef) (string, bool) {
	if ref.Kind == models.YearRefIndex {
		if fy, ok := r.sieByIndex[ref.Index]; ok && fy.StartDate != "" {
			return fy.StartDate, true
		}
	}
	if id, ok := r.Resolve(ref); ok {
		if ly, ok := r.ledgerByYearID[id]; ok {
			return ly.StartDate, true
		}
	}
	return "", false
}

// calendarYear reduces a reference to a calendar year via the SIE year table.
func (r *Resolver) calendarYear(ref models.YearRef) (int, bool) {
	switch ref.Kind {
	case models.YearRefCalendar:
		return ref.Year, true
	case models.YearRefIndex:
		fy, ok := r.sieByIndex[ref.Index]
		if !ok {
			return 0, false
		}
		year := dateutils.YearOf(fy.StartDate)
		return year, year != 0
	}
	return 0, false
}

// DetectMissingFiscalYears collects every calendar year referenced by a
// voucher date, subtracts the years the ledger already has, and reports for
// each missing year whether the SIE file itself carries the start and end
// dates needed to create it.
func DetectMissingFiscalYears(vouchers []models.Voucher, ledgerYears []models.LedgerFiscalYear, sieYears []models.FiscalYear) models.MissingFiscalYearReport {
	required := make(map[int]bool)
	for _, v := range vouchers {
		if year := dateutils.YearOf(v.Date); year != 0 {
			required[year] = true
		}
	}

	existing := make(map[int]bool, len(ledgerYears))
	for _, ly := range ledgerYears {
		if year := dateutils.YearOf(ly.StartDate); year != 0 {
			existing[year] = true
		}
	}

	sieByYear := make(map[int]models.FiscalYear, len(sieYears))
	for _, fy := range sieYears {
		if year := dateutils.YearOf(fy.StartDate); year != 0 {
			sieByYear[year] = fy
		}
	}

	report := models.MissingFiscalYearReport{AllCanBeCreatedFromSie: true}
	for year := range required {
		report.RequiredYears = append(report.RequiredYears, year)
	}
	sort.Ints(report.RequiredYears)

	for _, year := range report.RequiredYears {
		if existing[year] {
			continue
		}
		missing := models.MissingYear{Year: year}
		if fy, ok := sieByYear[year]; ok && fy.StartDate != "" && fy.EndDate != "" {
			missing.InSieFile = true
			missing.StartDate = fy.StartDate
			missing.EndDate = fy.EndDate
		} else {
			report.AllCanBeCreatedFromSie = false
		}
		report.MissingYears = append(report.MissingYears, missing)
	}

	if len(report.MissingYears) > 0 {
		log.WithFields(logrus.Fields{
			"missing": len(report.MissingYears),
			"fromSie": report.AllCanBeCreatedFromSie,
		}).Info("Detected fiscal years missing from ledger")
	}
	return report
}
