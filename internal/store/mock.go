package store

import (
	"fmt"

	"nordledger/sie-import/internal/models"
)

// MockLedgerStore is an in-memory implementation of LedgerStore for testing.
type MockLedgerStore struct {
	Accounts       []models.LedgerAccount
	FiscalYears    []models.LedgerFiscalYear
	JournalEntries []models.JournalEntry

	// Error flags for testing error conditions
	ListAccountsError         error
	ListFiscalYearsError      error
	InsertAccountsError       error
	InsertFiscalYearsError    error
	InsertJournalEntriesError error
}

// ListAccounts returns the mock accounts for an organization.
func (m *MockLedgerStore) ListAccounts(organizationID string) ([]models.LedgerAccount, error) {
	if m.ListAccountsError != nil {
		return nil, m.ListAccountsError
	}
	var accounts []models.LedgerAccount
	for _, acc := range m.Accounts {
		if acc.OrganizationID == organizationID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// ListFiscalYears returns the mock fiscal years for an organization.
func (m *MockLedgerStore) ListFiscalYears(organizationID string) ([]models.LedgerFiscalYear, error) {
	if m.ListFiscalYearsError != nil {
		return nil, m.ListFiscalYearsError
	}
	var years []models.LedgerFiscalYear
	for _, fy := range m.FiscalYears {
		if fy.OrganizationID == organizationID {
			years = append(years, fy)
		}
	}
	return years, nil
}

// InsertAccounts appends accounts, assigning sequential ids.
func (m *MockLedgerStore) InsertAccounts(accounts []models.LedgerAccount) ([]models.LedgerAccount, error) {
	if m.InsertAccountsError != nil {
		return nil, m.InsertAccountsError
	}
	var inserted []models.LedgerAccount
	for _, acc := range accounts {
		acc.ID = fmt.Sprintf("acc-%d", len(m.Accounts)+1)
		m.Accounts = append(m.Accounts, acc)
		inserted = append(inserted, acc)
	}
	return inserted, nil
}

// InsertFiscalYears appends fiscal years, assigning sequential ids.
func (m *MockLedgerStore) InsertFiscalYears(years []models.LedgerFiscalYear) ([]models.LedgerFiscalYear, error) {
	if m.InsertFiscalYearsError != nil {
		return nil, m.InsertFiscalYearsError
	}
	var inserted []models.LedgerFiscalYear
	for _, fy := range years {
		fy.ID = fmt.Sprintf("fy-%d", len(m.FiscalYears)+1)
		m.FiscalYears = append(m.FiscalYears, fy)
		inserted = append(inserted, fy)
	}
	return inserted, nil
}

// InsertJournalEntries appends journal entries.
func (m *MockLedgerStore) InsertJournalEntries(entries []models.JournalEntry) error {
	if m.InsertJournalEntriesError != nil {
		return m.InsertJournalEntriesError
	}
	m.JournalEntries = append(m.JournalEntries, entries...)
	return nil
}
