package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nordledger/sie-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJournalEntriesToCSV(t *testing.T) {
	entries := []models.JournalEntry{
		{
			SourceReference: "A1",
			EntryDate:       "2016-03-15",
			FiscalYearID:    "fy-2016",
			Lines: []models.JournalLine{
				{AccountID: "acc-1510", DebitAmount: decimal.NewFromInt(1000), Description: "Sale", LineOrder: 1},
				{AccountID: "acc-3010", CreditAmount: decimal.NewFromInt(1000), Description: "Sale", LineOrder: 2},
			},
		},
	}

	csvFile := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, WriteJournalEntriesToCSV(entries, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	// Header plus one row per journal line.
	require.Len(t, lines, 3)
	assert.Equal(t, "source_reference,entry_date,fiscal_year_id,account_id,debit,credit,description,line_order", lines[0])
	assert.Equal(t, "A1,2016-03-15,fy-2016,acc-1510,1000.00,0.00,Sale,1", lines[1])
	assert.Equal(t, "A1,2016-03-15,fy-2016,acc-3010,0.00,1000.00,Sale,2", lines[2])
}

func TestWriteJournalEntriesToCSVCustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	entries := []models.JournalEntry{
		{
			SourceReference: "A1",
			EntryDate:       "2016-03-15",
			FiscalYearID:    "fy-2016",
			Lines: []models.JournalLine{
				{AccountID: "acc-1510", DebitAmount: decimal.NewFromInt(1000), LineOrder: 1},
			},
		},
	}

	csvFile := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, WriteJournalEntriesToCSV(entries, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "A1;2016-03-15;fy-2016;acc-1510;1000.00;0.00;;1")
}

func TestWriteAccountsToCSV(t *testing.T) {
	accounts := []models.LedgerAccount{
		{AccountNumber: "1930", Name: "Bank", Class: "assets", SRUCode: "7214"},
		{AccountNumber: "3010", Name: "Sales", Class: "revenue"},
	}

	csvFile := filepath.Join(t.TempDir(), "accounts.csv")
	require.NoError(t, WriteAccountsToCSV(accounts, csvFile))

	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "account_number,name,class,sru_code", lines[0])
	assert.Equal(t, "1930,Bank,assets,7214", lines[1])
	assert.Equal(t, "3010,Sales,revenue,", lines[2])
}

func TestWriteToUnwritablePath(t *testing.T) {
	err := WriteAccountsToCSV(nil, filepath.Join(t.TempDir(), "missing", "accounts.csv"))
	assert.Error(t, err)
}
