// Package store provides the ledger persistence boundary the import
// pipeline hands its prepared batches to. The pipeline itself never writes;
// it returns batches and the store owns the transactional insert.
package store

import (
	"fmt"
	"os"

	"nordledger/sie-import/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// LedgerStore is the persistence interface for prepared import batches.
type LedgerStore interface {
	ListAccounts(organizationID string) ([]models.LedgerAccount, error)
	ListFiscalYears(organizationID string) ([]models.LedgerFiscalYear, error)
	InsertAccounts(accounts []models.LedgerAccount) ([]models.LedgerAccount, error)
	InsertFiscalYears(years []models.LedgerFiscalYear) ([]models.LedgerFiscalYear, error)
	InsertJournalEntries(entries []models.JournalEntry) error
}

// ledgerFile is the on-disk YAML shape of the file-backed store.
type ledgerFile struct {
	Accounts       []models.LedgerAccount    `yaml:"accounts"`
	FiscalYears    []models.LedgerFiscalYear `yaml:"fiscal_years"`
	JournalEntries []journalEntryRow         `yaml:"journal_entries"`
}

// journalEntryRow is the serializable form of a journal entry; decimal
// amounts are written as fixed two-decimal strings.
type journalEntryRow struct {
	ID              string           `yaml:"id"`
	OrganizationID  string           `yaml:"organization_id"`
	FiscalYearID    string           `yaml:"fiscal_year_id"`
	EntryDate       string           `yaml:"entry_date"`
	Description     string           `yaml:"description"`
	SourceType      string           `yaml:"source_type"`
	SourceReference string           `yaml:"source_reference"`
	Status          string           `yaml:"status"`
	Lines           []journalLineRow `yaml:"lines"`
}

type journalLineRow struct {
	AccountID    string `yaml:"account_id"`
	DebitAmount  string `yaml:"debit_amount"`
	CreditAmount string `yaml:"credit_amount"`
	Description  string `yaml:"description"`
	LineOrder    int    `yaml:"line_order"`
}

// FileStore is a YAML-file implementation of LedgerStore, used by the CLI
// and as a fixture in tests. Not safe for concurrent writers.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by the YAML file at path. The file is
// created on first insert.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) load() (*ledgerFile, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return &ledgerFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}
	var lf ledgerFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("error parsing ledger file: %w", err)
	}
	return &lf, nil
}

func (s *FileStore) save(lf *ledgerFile) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("error serializing ledger file: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	return nil
}

// ListAccounts returns the accounts stored for an organization.
func (s *FileStore) ListAccounts(organizationID string) ([]models.LedgerAccount, error) {
	lf, err := s.load()
	if err != nil {
		return nil, err
	}
	var accounts []models.LedgerAccount
	for _, acc := range lf.Accounts {
		if acc.OrganizationID == organizationID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// ListFiscalYears returns the fiscal years stored for an organization.
func (s *FileStore) ListFiscalYears(organizationID string) ([]models.LedgerFiscalYear, error) {
	lf, err := s.load()
	if err != nil {
		return nil, err
	}
	var years []models.LedgerFiscalYear
	for _, fy := range lf.FiscalYears {
		if fy.OrganizationID == organizationID {
			years = append(years, fy)
		}
	}
	return years, nil
}

// InsertAccounts stores new accounts, assigning ids, and returns the rows as
// stored. Accounts whose number already exists for the organization are
// skipped so repeated imports stay idempotent.
func (s *FileStore) InsertAccounts(accounts []models.LedgerAccount) ([]models.LedgerAccount, error) {
	lf, err := s.load()
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(lf.Accounts))
	for _, acc := range lf.Accounts {
		existing[acc.OrganizationID+"/"+acc.AccountNumber] = true
	}

	var inserted []models.LedgerAccount
	for _, acc := range accounts {
		key := acc.OrganizationID + "/" + acc.AccountNumber
		if existing[key] {
			continue
		}
		existing[key] = true
		acc.ID = uuid.New().String()
		lf.Accounts = append(lf.Accounts, acc)
		inserted = append(inserted, acc)
	}

	if err := s.save(lf); err != nil {
		return nil, err
	}
	log.WithField("count", len(inserted)).Info("Inserted accounts into ledger store")
	return inserted, nil
}

// InsertFiscalYears stores new fiscal years, assigning ids, and returns the
// rows as stored. Years with an existing start date are skipped.
func (s *FileStore) InsertFiscalYears(years []models.LedgerFiscalYear) ([]models.LedgerFiscalYear, error) {
	lf, err := s.load()
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(lf.FiscalYears))
	for _, fy := range lf.FiscalYears {
		existing[fy.OrganizationID+"/"+fy.StartDate] = true
	}

	var inserted []models.LedgerFiscalYear
	for _, fy := range years {
		key := fy.OrganizationID + "/" + fy.StartDate
		if existing[key] {
			continue
		}
		existing[key] = true
		fy.ID = uuid.New().String()
		lf.FiscalYears = append(lf.FiscalYears, fy)
		inserted = append(inserted, fy)
	}

	if err := s.save(lf); err != nil {
		return nil, err
	}
	log.WithField("count", len(inserted)).Info("Inserted fiscal years into ledger store")
	return inserted, nil
}

// InsertJournalEntries stores prepared journal entries. Entries whose source
// reference already exists for the organization are skipped, making the
// source reference the duplicate-detection key on repeated imports.
func (s *FileStore) InsertJournalEntries(entries []models.JournalEntry) error {
	lf, err := s.load()
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(lf.JournalEntries))
	for _, row := range lf.JournalEntries {
		existing[row.OrganizationID+"/"+row.SourceReference] = true
	}

	inserted := 0
	for _, entry := range entries {
		key := entry.OrganizationID + "/" + entry.SourceReference
		if existing[key] {
			log.WithField("sourceReference", entry.SourceReference).
				Debug("Skipping already imported journal entry")
			continue
		}
		existing[key] = true
		lf.JournalEntries = append(lf.JournalEntries, toRow(entry))
		inserted++
	}

	if err := s.save(lf); err != nil {
		return err
	}
	log.WithField("count", inserted).Info("Inserted journal entries into ledger store")
	return nil
}

func toRow(entry models.JournalEntry) journalEntryRow {
	row := journalEntryRow{
		ID:              uuid.New().String(),
		OrganizationID:  entry.OrganizationID,
		FiscalYearID:    entry.FiscalYearID,
		EntryDate:       entry.EntryDate,
		Description:     entry.Description,
		SourceType:      entry.SourceType,
		SourceReference: entry.SourceReference,
		Status:          entry.Status,
	}
	for _, line := range entry.Lines {
		row.Lines = append(row.Lines, journalLineRow{
			AccountID:    line.AccountID,
			DebitAmount:  line.DebitAmount.StringFixed(2),
			CreditAmount: line.CreditAmount.StringFixed(2),
			Description:  line.Description,
			LineOrder:    line.LineOrder,
		})
	}
	return row
}
