// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Format identifies the SIE dialect of an input file.
type Format string

const (
	// FormatSIE4 is the line-oriented text dialect (#FLAGGA, #VER, ...).
	FormatSIE4 Format = "sie4"
	// FormatSIE5 is the XML dialect (<Sie> root element).
	FormatSIE5 Format = "sie5"
	// FormatUnknown means neither dialect could be recognized.
	FormatUnknown Format = "unknown"
)

// AccountClass is the accounting classification of a BAS account.
type AccountClass string

const (
	ClassAssets      AccountClass = "assets"
	ClassLiabilities AccountClass = "liabilities"
	ClassEquity      AccountClass = "equity"
	ClassRevenue     AccountClass = "revenue"
	ClassExpenses    AccountClass = "expenses"
	ClassFinancial   AccountClass = "financial"
)

// YearRefKind discriminates the two fiscal-year addressing schemes.
type YearRefKind int

const (
	// YearRefIndex is SIE4 relative addressing: 0 = current year, -1 = prior.
	YearRefIndex YearRefKind = iota
	// YearRefCalendar is SIE5 literal calendar-year addressing.
	YearRefCalendar
)

// YearRef is a tagged reference to a fiscal year. SIE4 records address years
// by relative index while SIE5 records address them by calendar year; the two
// schemes are never mixed implicitly, so every lookup carries the discriminant.
type YearRef struct {
	Kind  YearRefKind
	Index int
	Year  int
}

// IndexRef returns a relative-index year reference (SIE4).
func IndexRef(index int) YearRef {
	return YearRef{Kind: YearRefIndex, Index: index}
}

// CalendarRef returns a calendar-year reference (SIE5).
func CalendarRef(year int) YearRef {
	return YearRef{Kind: YearRefCalendar, Year: year}
}

// String renders the reference for log and error messages.
func (r YearRef) String() string {
	if r.Kind == YearRefCalendar {
		return fmt.Sprintf("year %d", r.Year)
	}
	return fmt.Sprintf("index %d", r.Index)
}

// Company holds the identifying metadata of the exporting company.
type Company struct {
	Name               string
	OrganizationNumber string
	ClientID           string
	Address            string
}

// FiscalYear is a fiscal year as declared inside the SIE file itself
// (#RAR in SIE4, FiscalYear elements in SIE5).
type FiscalYear struct {
	Ref       YearRef
	StartDate string // ISO date
	EndDate   string // ISO date
	Closed    bool
}

// Account is one row of the chart of accounts carried by the file.
type Account struct {
	AccountNumber string
	Name          string
	Class         AccountClass
	// Type is the SIE5 account type tag (asset, liability, equity, income,
	// cost) when present; SIE4 files may set it via #KTYP.
	Type    string
	SRUCode string
}

// Transaction is a single debit/credit line of a voucher. Positive amounts
// are debits and negative amounts are credits, per SIE convention.
type Transaction struct {
	AccountNumber string
	Amount        decimal.Decimal
	Date          string // defaults to the voucher date
	Text          string // defaults to the voucher text
}

// Voucher is a dated group of transaction lines, the double-entry unit.
type Voucher struct {
	Series       string
	Number       int
	Date         string // ISO date
	Text         string
	Transactions []Transaction
}

// SourceReference is the natural key used for duplicate detection on
// repeated imports, e.g. "A1".
func (v Voucher) SourceReference() string {
	return fmt.Sprintf("%s%d", v.Series, v.Number)
}

// BalanceRecord is an opening (IB), closing (UB) or result (RES) balance
// for one account in one fiscal year.
type BalanceRecord struct {
	AccountNumber string
	YearRef       YearRef
	Amount        decimal.Decimal
	// IsResult marks income-statement RES balances as opposed to
	// balance-sheet IB/UB balances.
	IsResult bool
}

// ParseIssue is a recoverable, line-level parse failure. The parser records
// the issue and keeps going; it never aborts on a single bad record.
type ParseIssue struct {
	Line    int
	Content string
	Message string
}

// ParsedDocument is the format-agnostic result of parsing one SIE file.
// It is created once per file and never mutated afterwards.
type ParsedDocument struct {
	Format          Format
	Company         Company
	FiscalYears     []FiscalYear
	Accounts        []Account
	OpeningBalances []BalanceRecord
	ClosingBalances []BalanceRecord
	Vouchers        []Voucher
	Errors          []ParseIssue

	// File metadata, informational only.
	Program     string
	GeneratedAt string
	AccountPlan string
	Currency    string
}

// HasErrors reports whether any parse-level issue was recorded.
func (d *ParsedDocument) HasErrors() bool {
	return len(d.Errors) > 0
}

// TransactionCount counts transaction lines across all vouchers.
func (d *ParsedDocument) TransactionCount() int {
	n := 0
	for _, v := range d.Vouchers {
		n += len(v.Transactions)
	}
	return n
}
