// Package common provides the CSV output shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"nordledger/sie-import/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Delimiter is the CSV output delimiter, configurable via config.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// journalEntryCSVRow flattens one journal line per CSV row.
type journalEntryCSVRow struct {
	SourceReference string `csv:"source_reference"`
	EntryDate       string `csv:"entry_date"`
	FiscalYearID    string `csv:"fiscal_year_id"`
	AccountID       string `csv:"account_id"`
	Debit           string `csv:"debit"`
	Credit          string `csv:"credit"`
	Description     string `csv:"description"`
	LineOrder       int    `csv:"line_order"`
}

// accountCSVRow is the CSV shape of a prepared ledger account.
type accountCSVRow struct {
	AccountNumber string `csv:"account_number"`
	Name          string `csv:"name"`
	Class         string `csv:"class"`
	SRUCode       string `csv:"sru_code"`
}

func marshalToFile(rows interface{}, csvFile string) error {
	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(writer)
	})

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// WriteJournalEntriesToCSV writes prepared journal entries to a CSV file,
// one row per line.
func WriteJournalEntriesToCSV(entries []models.JournalEntry, csvFile string) error {
	rows := make([]journalEntryCSVRow, 0, len(entries))
	for _, entry := range entries {
		for _, line := range entry.Lines {
			rows = append(rows, journalEntryCSVRow{
				SourceReference: entry.SourceReference,
				EntryDate:       entry.EntryDate,
				FiscalYearID:    entry.FiscalYearID,
				AccountID:       line.AccountID,
				Debit:           line.DebitAmount.StringFixed(2),
				Credit:          line.CreditAmount.StringFixed(2),
				Description:     line.Description,
				LineOrder:       line.LineOrder,
			})
		}
	}

	if err := marshalToFile(&rows, csvFile); err != nil {
		log.WithError(err).Error("Failed to write journal entries CSV")
		return err
	}
	log.WithFields(logrus.Fields{
		"file": csvFile,
		"rows": len(rows),
	}).Info("Wrote journal entries to CSV")
	return nil
}

// WriteAccountsToCSV writes prepared ledger accounts to a CSV file.
func WriteAccountsToCSV(accounts []models.LedgerAccount, csvFile string) error {
	rows := make([]accountCSVRow, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, accountCSVRow{
			AccountNumber: acc.AccountNumber,
			Name:          acc.Name,
			Class:         acc.Class,
			SRUCode:       acc.SRUCode,
		})
	}

	if err := marshalToFile(&rows, csvFile); err != nil {
		log.WithError(err).Error("Failed to write accounts CSV")
		return err
	}
	log.WithFields(logrus.Fields{
		"file": csvFile,
		"rows": len(rows),
	}).Info("Wrote accounts to CSV")
	return nil
}
