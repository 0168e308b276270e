package importer

import (
	"strings"
	"testing"

	"nordledger/sie-import/internal/fiscalyear"
	"nordledger/sie-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSieYears = []models.FiscalYear{
	{Ref: models.IndexRef(0), StartDate: "2016-01-01", EndDate: "2016-12-31"},
}

var testLedgerYears = []models.LedgerFiscalYear{
	{ID: "fy-2016", OrganizationID: "org-1", StartDate: "2016-01-01", EndDate: "2016-12-31"},
}

var testAccountMap = map[string]string{
	"1510": "acc-1510",
	"1930": "acc-1930",
	"2091": "acc-2091",
	"3010": "acc-3010",
}

func testResolver() *fiscalyear.Resolver {
	return fiscalyear.NewResolver(testSieYears, testLedgerYears)
}

func saleVoucher(creditAmount int64) models.Voucher {
	return models.Voucher{
		Series: "A",
		Number: 1,
		Date:   "2016-03-15",
		Text:   "Sale",
		Transactions: []models.Transaction{
			{AccountNumber: "1510", Amount: decimal.NewFromInt(1000), Text: "Sale"},
			{AccountNumber: "3010", Amount: decimal.NewFromInt(creditAmount), Text: "Sale"},
		},
	}
}

func TestBuildJournalEntriesBalanced(t *testing.T) {
	b := NewBuilder(nil)
	result := b.BuildJournalEntries([]models.Voucher{saleVoucher(-1000)}, "org-1", testAccountMap, testResolver(), StrictPolicy())

	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.BatchID)
	require.Len(t, result.Entries, 1)

	entry := result.Entries[0]
	assert.Equal(t, "org-1", entry.OrganizationID)
	assert.Equal(t, "fy-2016", entry.FiscalYearID)
	assert.Equal(t, "2016-03-15", entry.EntryDate)
	assert.Equal(t, models.SourceTypeSIEImport, entry.SourceType)
	assert.Equal(t, models.EntryStatusPosted, entry.Status)
	assert.Equal(t, "A1", entry.SourceReference)
	assert.Contains(t, entry.Description, "A1")

	require.Len(t, entry.Lines, 2)
	debit, credit := entry.Lines[0], entry.Lines[1]
	assert.Equal(t, "acc-1510", debit.AccountID)
	assert.True(t, decimal.NewFromInt(1000).Equal(debit.DebitAmount))
	assert.True(t, debit.CreditAmount.IsZero())
	assert.Equal(t, 1, debit.LineOrder)
	assert.Equal(t, "acc-3010", credit.AccountID)
	assert.True(t, decimal.NewFromInt(1000).Equal(credit.CreditAmount))
	assert.True(t, credit.DebitAmount.IsZero())
	assert.Equal(t, 2, credit.LineOrder)

	// Every emitted entry balances within tolerance.
	assert.True(t, entry.DebitTotal().Sub(entry.CreditTotal()).Abs().
		LessThanOrEqual(decimal.NewFromFloat(0.01)))
}

func TestBuildJournalEntriesRejectsUnbalanced(t *testing.T) {
	b := NewBuilder(nil)
	result := b.BuildJournalEntries([]models.Voucher{saleVoucher(-900)}, "org-1", testAccountMap, testResolver(), StrictPolicy())

	// Strict policy: the unbalanced voucher is not emitted at all.
	assert.Empty(t, result.Entries)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "A1", result.Errors[0].SourceReference)
	assert.Contains(t, result.Errors[0].Message, "100.00")
}

func TestBuildJournalEntriesUnknownAccountSkipsWholeVoucher(t *testing.T) {
	b := NewBuilder(nil)
	voucher := saleVoucher(-1000)
	voucher.Transactions[1].AccountNumber = "9999"

	result := b.BuildJournalEntries([]models.Voucher{voucher}, "org-1", testAccountMap, testResolver(), StrictPolicy())

	// Partial vouchers are never emitted.
	assert.Empty(t, result.Entries)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "9999")
}

func TestBuildJournalEntriesUnresolvableYear(t *testing.T) {
	b := NewBuilder(nil)
	voucher := saleVoucher(-1000)
	voucher.Date = "2014-03-15"

	result := b.BuildJournalEntries([]models.Voucher{voucher}, "org-1", testAccountMap, testResolver(), StrictPolicy())

	assert.Empty(t, result.Entries)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "no fiscal year")
}

func TestBuildJournalEntriesDropsZeroAmountLines(t *testing.T) {
	voucher := saleVoucher(-1000)
	voucher.Transactions = []models.Transaction{
		{AccountNumber: "1510", Amount: decimal.NewFromInt(1000), Text: "Sale"},
		{AccountNumber: "1930", Amount: decimal.Zero, Text: "Rounding"},
		{AccountNumber: "3010", Amount: decimal.NewFromInt(-1000), Text: "Sale"},
	}

	b := NewBuilder(nil)
	result := b.BuildJournalEntries([]models.Voucher{voucher}, "org-1", testAccountMap, testResolver(), StrictPolicy())

	assert.Empty(t, result.Errors)
	require.Len(t, result.Entries, 1)

	// The zero-amount line is dropped and the order stays contiguous; every
	// kept line has exactly one nonzero side.
	lines := result.Entries[0].Lines
	require.Len(t, lines, 2)
	for i, line := range lines {
		assert.Equal(t, i+1, line.LineOrder)
		assert.True(t, line.DebitAmount.IsZero() != line.CreditAmount.IsZero(),
			"line %d has both sides zero or both nonzero", i+1)
	}
}

func TestBuildJournalEntriesPartialSuccess(t *testing.T) {
	good := saleVoucher(-1000)
	bad := saleVoucher(-900)
	bad.Number = 2

	b := NewBuilder(nil)
	result := b.BuildJournalEntries([]models.Voucher{good, bad}, "org-1", testAccountMap, testResolver(), StrictPolicy())

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "A1", result.Entries[0].SourceReference)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "A2", result.Errors[0].SourceReference)
}

func openingBalances() []models.BalanceRecord {
	return []models.BalanceRecord{
		{AccountNumber: "1930", YearRef: models.IndexRef(0), Amount: decimal.NewFromInt(500)},
		{AccountNumber: "2091", YearRef: models.IndexRef(0), Amount: decimal.NewFromInt(-300)},
	}
}

func TestBuildOpeningBalanceEntriesLenient(t *testing.T) {
	b := NewBuilder(nil)
	result := b.BuildOpeningBalanceEntries(openingBalances(), "org-1", testAccountMap, testResolver(), LenientPolicy())

	// The 200.00 discrepancy warns but the entry is still emitted.
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "200.00")

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, "fy-2016", entry.FiscalYearID)
	assert.Equal(t, "2016-01-01", entry.EntryDate)
	require.Len(t, entry.Lines, 2)
	assert.True(t, decimal.NewFromInt(500).Equal(entry.Lines[0].DebitAmount))
	assert.True(t, decimal.NewFromInt(300).Equal(entry.Lines[1].CreditAmount))
}

func TestBuildOpeningBalanceEntriesDropsUnmappedLines(t *testing.T) {
	balances := append(openingBalances(), models.BalanceRecord{
		AccountNumber: "9999", YearRef: models.IndexRef(0), Amount: decimal.NewFromInt(100),
	})

	b := NewBuilder(nil)
	result := b.BuildOpeningBalanceEntries(balances, "org-1", testAccountMap, testResolver(), LenientPolicy())

	// The unmapped account drops only its own line.
	require.Len(t, result.Entries, 1)
	assert.Len(t, result.Entries[0].Lines, 2)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "9999") {
			found = true
		}
	}
	assert.True(t, found, "expected a warning about account 9999, got %v", result.Warnings)
}

func TestBuildOpeningBalanceEntriesSkipsResultRecords(t *testing.T) {
	balances := append(openingBalances(), models.BalanceRecord{
		AccountNumber: "3010", YearRef: models.IndexRef(0),
		Amount: decimal.NewFromInt(-1000), IsResult: true,
	})

	b := NewBuilder(nil)
	result := b.BuildOpeningBalanceEntries(balances, "org-1", testAccountMap, testResolver(), LenientPolicy())

	require.Len(t, result.Entries, 1)
	assert.Len(t, result.Entries[0].Lines, 2)
}

func TestBuildOpeningBalanceEntriesUnresolvableYear(t *testing.T) {
	balances := []models.BalanceRecord{
		{AccountNumber: "1930", YearRef: models.CalendarRef(2010), Amount: decimal.NewFromInt(500)},
	}

	b := NewBuilder(nil)
	result := b.BuildOpeningBalanceEntries(balances, "org-1", testAccountMap, testResolver(), LenientPolicy())

	assert.Empty(t, result.Entries)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "no ledger fiscal year")
}

func TestBalancePolicyDiscrepancy(t *testing.T) {
	strict := StrictPolicy()

	diff, ok := strict.Discrepancy(decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	assert.True(t, ok)
	assert.True(t, diff.IsZero())

	// Exactly at the tolerance is acceptable.
	diff, ok = strict.Discrepancy(decimal.NewFromFloat(1000.01), decimal.NewFromInt(1000))
	assert.True(t, ok)
	assert.True(t, decimal.NewFromFloat(0.01).Equal(diff))

	_, ok = strict.Discrepancy(decimal.NewFromFloat(1000.02), decimal.NewFromInt(1000))
	assert.False(t, ok)

	assert.True(t, strict.RejectUnbalanced)
	assert.False(t, LenientPolicy().RejectUnbalanced)
}
