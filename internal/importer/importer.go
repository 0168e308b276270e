// Package importer converts parsed SIE documents into import-ready batches:
// ledger accounts, fiscal years and balanced journal entries. Entry
// construction is partial-success by design: whatever could be built is
// returned alongside the errors for what could not.
package importer

import (
	"fmt"

	"nordledger/sie-import/internal/fiscalyear"
	"nordledger/sie-import/internal/logging"
	"nordledger/sie-import/internal/models"
	"nordledger/sie-import/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the outcome of one builder run.
type Result struct {
	BatchID  string
	Entries  []models.JournalEntry
	Errors   []models.ImportError
	Warnings []string
}

// Builder constructs journal entries from vouchers and opening balances.
type Builder struct {
	log logging.Logger
}

// NewBuilder creates a Builder logging through the given logger.
func NewBuilder(logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Builder{log: logger}
}

// BuildJournalEntries converts vouchers into balanced journal entries bound
// to resolved accounts and fiscal years, applying the given balance policy.
//
// A voucher is skipped as a whole when its fiscal year cannot be resolved,
// when any of its accounts is unknown, or (under a rejecting policy) when
// its debit and credit totals disagree beyond the tolerance. Partial
// vouchers are never emitted. Zero-amount transactions are dropped, so every
// emitted line is either a debit or a credit.
func (b *Builder) BuildJournalEntries(vouchers []models.Voucher, organizationID string, accountMap map[string]string, resolver *fiscalyear.Resolver, policy BalancePolicy) Result {
	result := Result{BatchID: uuid.New().String()}

	for _, v := range vouchers {
		entry, importErr := b.buildEntry(v, organizationID, accountMap, resolver, policy)
		if importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	b.log.Info("Built journal entries",
		logging.F("batch", result.BatchID),
		logging.F("built", len(result.Entries)),
		logging.F("skipped", len(result.Errors)))
	return result
}

// skip records why an entry cannot be built and returns the import error
// carried back to the caller.
func (b *Builder) skip(what, ref, reason string) *models.ImportError {
	b.log.WithError(&parsererror.ImportError{SourceReference: ref, Reason: reason}).Warn(what)
	return &models.ImportError{SourceReference: ref, Message: reason}
}

func (b *Builder) buildEntry(v models.Voucher, organizationID string, accountMap map[string]string, resolver *fiscalyear.Resolver, policy BalancePolicy) (models.JournalEntry, *models.ImportError) {
	ref := v.SourceReference()

	fiscalYearID, ok := resolver.ResolveDate(v.Date)
	if !ok {
		return models.JournalEntry{}, b.skip("Skipping voucher", ref,
			fmt.Sprintf("no fiscal year covers voucher date %s", v.Date))
	}

	entry := models.JournalEntry{
		OrganizationID:  organizationID,
		FiscalYearID:    fiscalYearID,
		EntryDate:       v.Date,
		Description:     entryDescription(v.Text, ref),
		SourceType:      models.SourceTypeSIEImport,
		SourceReference: ref,
		Status:          models.EntryStatusPosted,
	}

	debitTotal, creditTotal := decimal.Zero, decimal.Zero
	lineOrder := 0
	for _, tx := range v.Transactions {
		if tx.Amount.IsZero() {
			continue
		}
		accountID, ok := accountMap[tx.AccountNumber]
		if !ok {
			return models.JournalEntry{}, b.skip("Skipping voucher", ref,
				fmt.Sprintf("account %s is not mapped in the ledger", tx.AccountNumber))
		}

		lineOrder++
		line := models.JournalLine{
			AccountID:   accountID,
			Description: tx.Text,
			LineOrder:   lineOrder,
		}
		if tx.Amount.IsNegative() {
			line.CreditAmount = tx.Amount.Abs()
			creditTotal = creditTotal.Add(line.CreditAmount)
		} else {
			line.DebitAmount = tx.Amount
			debitTotal = debitTotal.Add(line.DebitAmount)
		}
		entry.Lines = append(entry.Lines, line)
	}

	if diff, ok := policy.Discrepancy(debitTotal, creditTotal); !ok && policy.RejectUnbalanced {
		return models.JournalEntry{}, b.skip("Skipping voucher", ref,
			fmt.Sprintf("voucher is unbalanced by %s", diff.StringFixed(2)))
	}

	return entry, nil
}

// BuildOpeningBalanceEntries synthesizes one journal entry per fiscal year
// from the opening-balance records.
//
// Unmapped accounts drop only the affected line. An unbalanced group still
// produces its entry under the lenient policy; the discrepancy is reported
// as a warning, because missing historical accounts are an expected
// condition for this record type.
func (b *Builder) BuildOpeningBalanceEntries(balances []models.BalanceRecord, organizationID string, accountMap map[string]string, resolver *fiscalyear.Resolver, policy BalancePolicy) Result {
	result := Result{BatchID: uuid.New().String()}

	// YearRef is comparable, so the tagged union itself is the group key.
	groups := make(map[models.YearRef][]models.BalanceRecord)
	var order []models.YearRef
	for _, rec := range balances {
		if rec.IsResult {
			continue
		}
		if _, seen := groups[rec.YearRef]; !seen {
			order = append(order, rec.YearRef)
		}
		groups[rec.YearRef] = append(groups[rec.YearRef], rec)
	}

	for _, ref := range order {
		entry, warnings, importErr := b.buildOpeningEntry(ref, groups[ref], organizationID, accountMap, resolver, policy)
		result.Warnings = append(result.Warnings, warnings...)
		if importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}
		if len(entry.Lines) > 0 {
			result.Entries = append(result.Entries, entry)
		}
	}

	b.log.Info("Built opening-balance entries",
		logging.F("batch", result.BatchID),
		logging.F("built", len(result.Entries)),
		logging.F("warnings", len(result.Warnings)))
	return result
}

func (b *Builder) buildOpeningEntry(ref models.YearRef, records []models.BalanceRecord, organizationID string, accountMap map[string]string, resolver *fiscalyear.Resolver, policy BalancePolicy) (models.JournalEntry, []string, *models.ImportError) {
	sourceRef := openingReference(ref)

	fiscalYearID, ok := resolver.Resolve(ref)
	if !ok {
		return models.JournalEntry{}, nil, b.skip("Skipping opening-balance entry", sourceRef,
			fmt.Sprintf("no ledger fiscal year matches %s", ref))
	}
	entryDate, ok := resolver.StartDate(ref)
	if !ok {
		return models.JournalEntry{}, nil, b.skip("Skipping opening-balance entry", sourceRef,
			fmt.Sprintf("no start date known for %s", ref))
	}

	entry := models.JournalEntry{
		OrganizationID:  organizationID,
		FiscalYearID:    fiscalYearID,
		EntryDate:       entryDate,
		Description:     entryDescription("Opening balances", sourceRef),
		SourceType:      models.SourceTypeSIEImport,
		SourceReference: sourceRef,
		Status:          models.EntryStatusPosted,
	}

	var warnings []string
	debitTotal, creditTotal := decimal.Zero, decimal.Zero
	lineOrder := 0
	for _, rec := range records {
		if rec.Amount.IsZero() {
			continue
		}
		accountID, ok := accountMap[rec.AccountNumber]
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"%s: dropped opening balance for unmapped account %s", sourceRef, rec.AccountNumber))
			continue
		}

		lineOrder++
		line := models.JournalLine{
			AccountID:   accountID,
			Description: fmt.Sprintf("Opening balance %s", rec.AccountNumber),
			LineOrder:   lineOrder,
		}
		if rec.Amount.IsNegative() {
			line.CreditAmount = rec.Amount.Abs()
			creditTotal = creditTotal.Add(line.CreditAmount)
		} else {
			line.DebitAmount = rec.Amount
			debitTotal = debitTotal.Add(line.DebitAmount)
		}
		entry.Lines = append(entry.Lines, line)
	}

	if diff, ok := policy.Discrepancy(debitTotal, creditTotal); !ok {
		if policy.RejectUnbalanced {
			return models.JournalEntry{}, warnings, b.skip("Skipping opening-balance entry", sourceRef,
				fmt.Sprintf("opening balances unbalanced by %s", diff.StringFixed(2)))
		}
		warnings = append(warnings, fmt.Sprintf(
			"%s: opening balances unbalanced by %s", sourceRef, diff.StringFixed(2)))
	}

	return entry, warnings, nil
}

// entryDescription embeds the source reference in the entry description so
// the ledger can detect duplicates on repeated imports.
func entryDescription(text, sourceRef string) string {
	if text == "" {
		text = "SIE import"
	}
	return fmt.Sprintf("%s [%s]", text, sourceRef)
}

// openingReference derives the duplicate-detection key for an
// opening-balance entry from its year reference.
func openingReference(ref models.YearRef) string {
	if ref.Kind == models.YearRefCalendar {
		return fmt.Sprintf("IB%d", ref.Year)
	}
	return fmt.Sprintf("IB[%d]", ref.Index)
}
