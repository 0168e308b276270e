// Package prepare handles the SIE import-preparation command
package prepare

import (
	"fmt"
	"os"

	"nordledger/sie-import/cmd/root"
	"nordledger/sie-import/internal/common"
	"nordledger/sie-import/internal/store"
	"nordledger/sie-import/pkg/sie"

	"github.com/spf13/cobra"
)

// Cmd represents the prepare command
var Cmd = &cobra.Command{
	Use:   "prepare [file]",
	Short: "Prepare a SIE file for ledger import",
	Long: `Parse a SIE file, resolve its accounts and fiscal years against the ledger
store, build balance-checked journal entries and persist everything that
could be built. Vouchers that cannot be resolved or balanced are reported
and skipped; they never block the rest of the batch.`,
	Args: cobra.MaximumNArgs(1),
	Run:  prepareFunc,
}

func prepareFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		root.Log.Fatal("No input file given; use an argument or --input")
	}
	org := root.SharedFlags.Organization
	if org == "" {
		root.Log.Fatal("No organization given; use --org")
	}

	content, err := os.ReadFile(input)
	if err != nil {
		root.Log.WithError(err).Fatalf("Cannot read %s", input)
	}

	doc := sie.Parse(string(content), input)
	result := sie.Validate(doc)
	for _, w := range result.Warnings {
		root.Log.Warn(w)
	}
	if !result.IsValid {
		for _, e := range result.Errors {
			root.Log.Error(e)
		}
		root.Log.Fatal("Document failed validation; not preparing import")
	}

	ledger := store.NewFileStore(root.Cfg.Store.LedgerFile)

	// Create fiscal years the vouchers need and the ledger lacks, as far as
	// the SIE file carries the data for them.
	existingYears, err := ledger.ListFiscalYears(org)
	if err != nil {
		root.Log.WithError(err).Fatal("Cannot read fiscal years from ledger store")
	}
	report := sie.DetectMissingFiscalYears(doc, existingYears)
	if len(report.MissingYears) > 0 {
		var creatable []sie.LedgerFiscalYear
		for _, my := range report.MissingYears {
			if !my.InSieFile {
				root.Log.Warnf("Fiscal year %d is missing from the ledger and the SIE file cannot supply it", my.Year)
				continue
			}
			creatable = append(creatable, sie.LedgerFiscalYear{
				OrganizationID: org,
				StartDate:      my.StartDate,
				EndDate:        my.EndDate,
			})
		}
		if _, err := ledger.InsertFiscalYears(creatable); err != nil {
			root.Log.WithError(err).Fatal("Cannot insert fiscal years into ledger store")
		}
	}

	if _, err := ledger.InsertAccounts(sie.PrepareAccountsForImport(doc, org)); err != nil {
		root.Log.WithError(err).Fatal("Cannot insert accounts into ledger store")
	}

	accounts, err := ledger.ListAccounts(org)
	if err != nil {
		root.Log.WithError(err).Fatal("Cannot read accounts from ledger store")
	}
	accountMap := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		accountMap[acc.AccountNumber] = acc.ID
	}
	ledgerYears, err := ledger.ListFiscalYears(org)
	if err != nil {
		root.Log.WithError(err).Fatal("Cannot read fiscal years from ledger store")
	}

	journal := sie.PrepareJournalEntriesForImport(doc, org, accountMap, ledgerYears)
	opening := sie.PrepareOpeningBalancesForImport(doc, org, accountMap, ledgerYears)

	entries := append(opening.Entries, journal.Entries...)
	if err := ledger.InsertJournalEntries(entries); err != nil {
		root.Log.WithError(err).Fatal("Cannot insert journal entries into ledger store")
	}

	if root.SharedFlags.Output != "" {
		if err := common.WriteJournalEntriesToCSV(entries, root.SharedFlags.Output); err != nil {
			root.Log.WithError(err).Fatal("Cannot write journal entries CSV")
		}
	}

	summary := sie.Summarize(doc, journal, opening)
	fmt.Printf("Accounts:        %d\n", summary.Accounts)
	fmt.Printf("Fiscal years:    %d\n", summary.FiscalYears)
	fmt.Printf("Vouchers:        %d\n", summary.Vouchers)
	fmt.Printf("Entries built:   %d\n", summary.EntriesBuilt)
	fmt.Printf("Entries skipped: %d\n", summary.EntriesSkipped)
	fmt.Printf("Opening entries: %d\n", summary.OpeningEntries)

	for _, w := range journal.Warnings {
		root.Log.Warn(w)
	}
	for _, w := range opening.Warnings {
		root.Log.Warn(w)
	}
	for _, e := range append(journal.Errors, opening.Errors...) {
		root.Log.Errorf("%s: %s", e.SourceReference, e.Message)
	}
	if len(journal.Errors)+len(opening.Errors) > 0 {
		root.Log.Warn("Import prepared with partial success")
	}
}
