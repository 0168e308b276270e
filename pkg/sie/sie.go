// Package sie is the public entry point of the SIE import pipeline: format
// detection, parsing, validation and import preparation.
//
// The pipeline is a synchronous, purely functional transformation with no
// shared state across calls, so it is safe to invoke concurrently for
// independent files.
package sie

import (
	"nordledger/sie-import/internal/fiscalyear"
	"nordledger/sie-import/internal/format"
	"nordledger/sie-import/internal/importer"
	"nordledger/sie-import/internal/logging"
	"nordledger/sie-import/internal/models"
	"nordledger/sie-import/internal/parsererror"
	"nordledger/sie-import/internal/sie4parser"
	"nordledger/sie-import/internal/sie5parser"
	"nordledger/sie-import/internal/validation"

	"github.com/sirupsen/logrus"
)

// Aliases exposing the pipeline's data model to library consumers.
type (
	Format                  = models.Format
	ParsedDocument          = models.ParsedDocument
	ValidationResult        = models.ValidationResult
	JournalEntry            = models.JournalEntry
	LedgerAccount           = models.LedgerAccount
	LedgerFiscalYear        = models.LedgerFiscalYear
	MissingFiscalYearReport = models.MissingFiscalYearReport
	ImportSummary           = models.ImportSummary
	Result                  = importer.Result
)

const (
	FormatSIE4    = models.FormatSIE4
	FormatSIE5    = models.FormatSIE5
	FormatUnknown = models.FormatUnknown
)

// SetLogger routes the pipeline's logging through the given logger.
func SetLogger(logger *logrus.Logger) {
	sie4parser.SetLogger(logger)
	sie5parser.SetLogger(logger)
	validation.SetLogger(logger)
	fiscalyear.SetLogger(logger)
}

// DetectFormat classifies content as SIE4, SIE5 or unknown, consulting the
// filename extension when the content alone is inconclusive.
func DetectFormat(content, filename string) Format {
	return format.DetectWithFilename(content, filename)
}

// Parse detects the dialect of the given content and runs the matching
// parser. SIE5 content is confirmed against the expected document structure
// before the full parse. Content whose format cannot be determined yields a
// document with FormatUnknown and a single error; it never fails outright.
func Parse(content, filename string) *ParsedDocument {
	switch DetectFormat(content, filename) {
	case models.FormatSIE4:
		return sie4parser.Parse(content)
	case models.FormatSIE5:
		if ok, err := sie5parser.ValidateFormat(content); !ok || err != nil {
			ferr := &parsererror.FormatError{Filename: filename, Detected: string(models.FormatSIE5), Err: err}
			return &models.ParsedDocument{
				Format: models.FormatSIE5,
				Errors: []models.ParseIssue{{Message: ferr.Error()}},
			}
		}
		return sie5parser.Parse(content)
	default:
		ferr := &parsererror.FormatError{Filename: filename, Detected: string(models.FormatUnknown)}
		return &models.ParsedDocument{
			Format: models.FormatUnknown,
			Errors: []models.ParseIssue{{
				Message: ferr.Error(),
			}},
		}
	}
}

// Validate runs the structural and semantic checks over a parsed document.
func Validate(doc *ParsedDocument) *ValidationResult {
	return validation.ValidateDocument(doc)
}

// PrepareAccountsForImport converts the document's chart of accounts into
// ledger account rows.
func PrepareAccountsForImport(doc *ParsedDocument, organizationID string) []LedgerAccount {
	return importer.PrepareAccounts(doc, organizationID)
}

// PrepareFiscalYearsForImport converts the document's declared fiscal years
// into ledger fiscal-year rows.
func PrepareFiscalYearsForImport(doc *ParsedDocument, organizationID string) []LedgerFiscalYear {
	return importer.PrepareFiscalYears(doc, organizationID)
}

// PrepareJournalEntriesForImport builds balanced journal entries from the
// document's vouchers under the strict balance policy. accountMap maps
// account numbers to ledger account ids.
func PrepareJournalEntriesForImport(doc *ParsedDocument, organizationID string, accountMap map[string]string, ledgerYears []LedgerFiscalYear) Result {
	resolver := fiscalyear.NewResolver(doc.FiscalYears, ledgerYears)
	builder := importer.NewBuilder(logging.NewLogrusAdapterFromLogger(nil))
	return builder.BuildJournalEntries(doc.Vouchers, organizationID, accountMap, resolver, importer.StrictPolicy())
}

// PrepareOpeningBalancesForImport builds one journal entry per fiscal year
// from the document's opening balances under the lenient balance policy.
func PrepareOpeningBalancesForImport(doc *ParsedDocument, organizationID string, accountMap map[string]string, ledgerYears []LedgerFiscalYear) Result {
	resolver := fiscalyear.NewResolver(doc.FiscalYears, ledgerYears)
	builder := importer.NewBuilder(logging.NewLogrusAdapterFromLogger(nil))
	return builder.BuildOpeningBalanceEntries(doc.OpeningBalances, organizationID, accountMap, resolver, importer.LenientPolicy())
}

// DetectMissingFiscalYears reports the calendar years the document's
// vouchers require but the ledger does not have.
func DetectMissingFiscalYears(doc *ParsedDocument, ledgerYears []LedgerFiscalYear) MissingFiscalYearReport {
	return fiscalyear.DetectMissingFiscalYears(doc.Vouchers, ledgerYears, doc.FiscalYears)
}

// Summarize aggregates the counts a caller presents after preparation.
func Summarize(doc *ParsedDocument, journal, opening Result) ImportSummary {
	return importer.Summarize(doc, journal, opening)
}
