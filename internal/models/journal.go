package models

import "github.com/shopspring/decimal"

// SourceTypeSIEImport marks journal entries that originate from a SIE file.
const SourceTypeSIEImport = "sie_import"

// EntryStatusPosted is the status given to imported entries.
const EntryStatusPosted = "posted"

// JournalLine is one debit or credit line of a journal entry. Exactly one of
// DebitAmount and CreditAmount is nonzero.
type JournalLine struct {
	AccountID    string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	Description  string
	LineOrder    int
}

// JournalEntry is an import-ready, balance-checked entry bound to ledger
// account and fiscal-year ids. The pipeline only builds these; persisting
// them is owned by the ledger store collaborator.
type JournalEntry struct {
	OrganizationID  string
	FiscalYearID    string
	EntryDate       string // ISO date
	Description     string
	SourceType      string
	SourceReference string
	Status          string
	Lines           []JournalLine
}

// DebitTotal sums the debit side of the entry.
func (e JournalEntry) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// CreditTotal sums the credit side of the entry.
func (e JournalEntry) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// ImportError reports a voucher or balance group that could not be turned
// into a journal entry. It blocks only the affected entry, not the batch.
type ImportError struct {
	SourceReference string
	Message         string
}

// ValidationSummary holds the per-category counts shown to the user after
// validation.
type ValidationSummary struct {
	AccountCount        int
	FiscalYearCount     int
	VoucherCount        int
	TransactionCount    int
	OpeningBalanceCount int
	ClosingBalanceCount int
}

// ValidationResult is the outcome of validating a parsed document. Warnings
// never block an import on their own; errors do.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
	Summary  ValidationSummary
}

// LedgerAccount is an account row as known to the target ledger. The store
// assigns the ID on insert.
type LedgerAccount struct {
	ID             string `yaml:"id"`
	OrganizationID string `yaml:"organization_id"`
	AccountNumber  string `yaml:"account_number"`
	Name           string `yaml:"name"`
	Class          string `yaml:"class"`
	SRUCode        string `yaml:"sru_code,omitempty"`
}

// LedgerFiscalYear is a fiscal-year row as known to the target ledger.
type LedgerFiscalYear struct {
	ID             string `yaml:"id"`
	OrganizationID string `yaml:"organization_id"`
	StartDate      string `yaml:"start_date"` // ISO date
	EndDate        string `yaml:"end_date"`   // ISO date
}

// MissingYear describes one calendar year referenced by vouchers but absent
// from the ledger, and whether the SIE file carries enough data to create it.
type MissingYear struct {
	Year      int
	InSieFile bool
	StartDate string
	EndDate   string
}

// MissingFiscalYearReport is the result of checking voucher dates against
// the ledger's known fiscal years.
type MissingFiscalYearReport struct {
	RequiredYears          []int
	MissingYears           []MissingYear
	AllCanBeCreatedFromSie bool
}

// ImportSummary aggregates counts for the caller after import preparation.
type ImportSummary struct {
	Format         Format
	Accounts       int
	FiscalYears    int
	Vouchers       int
	Transactions   int
	EntriesBuilt   int
	EntriesSkipped int
	OpeningEntries int
	Warnings       int
}
