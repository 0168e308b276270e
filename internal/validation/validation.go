// Package validation runs structural and semantic checks over a parsed SIE
// document before import preparation.
package validation

import (
	"fmt"

	"nordledger/sie-import/internal/bas"
	"nordledger/sie-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// BalanceTolerance is the maximum accepted debit/credit discrepancy, in
// currency units, used throughout the pipeline.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SetTolerance allows setting the balance tolerance
func SetTolerance(units float64) {
	if units > 0 {
		BalanceTolerance = decimal.NewFromFloat(units)
	}
}

// ValidateDocument checks a parsed document and classifies every finding as
// an error or a warning.
//
// Only parser-level errors make the document invalid. Missing company data,
// duplicate or malformed account numbers and unbalanced vouchers are
// warnings: the caller may still let the user proceed with the import.
func ValidateDocument(doc *models.ParsedDocument) *models.ValidationResult {
	result := &models.ValidationResult{
		IsValid: true,
		Summary: models.ValidationSummary{
			AccountCount:        len(doc.Accounts),
			FiscalYearCount:     len(doc.FiscalYears),
			VoucherCount:        len(doc.Vouchers),
			TransactionCount:    doc.TransactionCount(),
			OpeningBalanceCount: len(doc.OpeningBalances),
			ClosingBalanceCount: len(doc.ClosingBalances),
		},
	}

	for _, issue := range doc.Errors {
		result.IsValid = false
		if issue.Line > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("line %d: %s", issue.Line, issue.Message))
		} else {
			result.Errors = append(result.Errors, issue.Message)
		}
	}

	validateCompany(doc, result)
	validateAccounts(doc, result)
	validateVouchers(doc, result)

	log.WithFields(logrus.Fields{
		"valid":    result.IsValid,
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Info("Validated SIE document")
	return result
}

func validateCompany(doc *models.ParsedDocument, result *models.ValidationResult) {
	if doc.Company.Name == "" {
		result.Warnings = append(result.Warnings, "company name is missing")
	}
}

func validateAccounts(doc *models.ParsedDocument, result *models.ValidationResult) {
	if len(doc.Accounts) == 0 {
		result.Warnings = append(result.Warnings, "document contains no accounts")
		return
	}

	seen := make(map[string]bool, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		if seen[acc.AccountNumber] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate account number %s", acc.AccountNumber))
		}
		seen[acc.AccountNumber] = true

		if !bas.IsValidAccountNumber(acc.AccountNumber) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("account number %s is not 4-6 digits", acc.AccountNumber))
		}
	}
}

// validateVouchers balance-checks every voucher that carries transactions.
// In SIE convention the signed amounts of a balanced voucher sum to zero.
func validateVouchers(doc *models.ParsedDocument, result *models.ValidationResult) {
	for _, v := range doc.Vouchers {
		if len(v.Transactions) == 0 {
			continue
		}
		sum := decimal.Zero
		for _, tx := range v.Transactions {
			sum = sum.Add(tx.Amount)
		}
		if sum.Abs().GreaterThan(BalanceTolerance) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("voucher %s is unbalanced by %s",
					v.SourceReference(), sum.Abs().StringFixed(2)))
		}
	}
}
