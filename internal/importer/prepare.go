package importer

import (
	"nordledger/sie-import/internal/models"
)

// PrepareAccounts converts the document's chart of accounts into ledger
// account rows for the given organization. Duplicate account numbers
// collapse to the first occurrence; validation reports them separately.
func PrepareAccounts(doc *models.ParsedDocument, organizationID string) []models.LedgerAccount {
	seen := make(map[string]bool, len(doc.Accounts))
	accounts := make([]models.LedgerAccount, 0, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		if seen[acc.AccountNumber] {
			continue
		}
		seen[acc.AccountNumber] = true
		accounts = append(accounts, models.LedgerAccount{
			OrganizationID: organizationID,
			AccountNumber:  acc.AccountNumber,
			Name:           acc.Name,
			Class:          string(acc.Class),
			SRUCode:        acc.SRUCode,
		})
	}
	return accounts
}

// PrepareFiscalYears converts the fiscal years declared in the SIE file into
// ledger fiscal-year rows. Years without both dates are skipped; they cannot
// be created in the ledger.
func PrepareFiscalYears(doc *models.ParsedDocument, organizationID string) []models.LedgerFiscalYear {
	years := make([]models.LedgerFiscalYear, 0, len(doc.FiscalYears))
	for _, fy := range doc.FiscalYears {
		if fy.StartDate == "" || fy.EndDate == "" {
			continue
		}
		years = append(years, models.LedgerFiscalYear{
			OrganizationID: organizationID,
			StartDate:      fy.StartDate,
			EndDate:        fy.EndDate,
		})
	}
	return years
}

// Summarize aggregates the counts a caller needs to present after import
// preparation.
func Summarize(doc *models.ParsedDocument, journal, opening Result) models.ImportSummary {
	return models.ImportSummary{
		Format:         doc.Format,
		Accounts:       len(doc.Accounts),
		FiscalYears:    len(doc.FiscalYears),
		Vouchers:       len(doc.Vouchers),
		Transactions:   doc.TransactionCount(),
		EntriesBuilt:   len(journal.Entries),
		EntriesSkipped: len(journal.Errors),
		OpeningEntries: len(opening.Entries),
		Warnings:       len(journal.Warnings) + len(opening.Warnings),
	}
}
