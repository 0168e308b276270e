// Package sie5parser parses the XML SIE5 dialect into the shared
// ParsedDocument model.
//
// Unlike the SIE4 text parser, a document-level XML failure is fatal for the
// file: the parser returns a document carrying only the error, never partial
// data recovered from broken markup.
package sie5parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"nordledger/sie-import/internal/bas"
	"nordledger/sie-import/internal/dateutils"
	"nordledger/sie-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Parse converts already-decoded SIE5 XML into a ParsedDocument.
func Parse(content string) *models.ParsedDocument {
	doc := &models.ParsedDocument{Format: models.FormatSIE5}

	var xmlDoc models.SIE5Document
	if err := xml.Unmarshal([]byte(content), &xmlDoc); err != nil {
		log.WithError(err).Error("Failed to unmarshal SIE5 XML")
		doc.Errors = append(doc.Errors, models.ParseIssue{
			Line:    0,
			Message: fmt.Sprintf("malformed XML: %v", err),
		})
		return doc
	}

	extractFileInfo(doc, xmlDoc.FileInfo)
	extractAccounts(doc, xmlDoc.Accounts)
	extractVouchers(doc, xmlDoc.Vouchers)

	log.WithFields(logrus.Fields{
		"accounts": len(doc.Accounts),
		"vouchers": len(doc.Vouchers),
		"errors":   len(doc.Errors),
	}).Info("Parsed SIE5 document")
	return doc
}

// extractFileInfo maps company metadata and fiscal years. The primary fiscal
// year becomes Index(0); the others get negative indices in declaration
// order, mirroring the SIE4 relative addressing so downstream resolution is
// dialect-agnostic.
func extractFileInfo(doc *models.ParsedDocument, info models.SIE5FileInfo) {
	doc.Program = strings.TrimSpace(info.SoftwareProduct.Name + " " + info.SoftwareProduct.Version)
	doc.GeneratedAt = dateutils.NormalizeDate(info.FileCreation.Date, false)
	doc.Company = models.Company{
		Name:               info.Company.Name,
		OrganizationNumber: info.Company.OrganizationID,
		ClientID:           info.Company.ClientID,
	}
	doc.Currency = info.Currency.Currency

	nonPrimary := 0
	for _, fy := range info.FiscalYears {
		index := 0
		if !fy.Primary {
			nonPrimary++
			index = -nonPrimary
		}
		doc.FiscalYears = append(doc.FiscalYears, models.FiscalYear{
			Ref:       models.IndexRef(index),
			StartDate: dateutils.NormalizeDate(fy.Start, false),
			EndDate:   dateutils.NormalizeDate(fy.End, true),
			Closed:    fy.Closed,
		})
	}
}

// extractAccounts maps the chart of accounts and the balances nested under
// each account. Balance months carry the calendar year, so balance records
// use calendar-year references rather than relative indices.
func extractAccounts(doc *models.ParsedDocument, accounts models.SIE5Accounts) {
	for _, acc := range accounts.Accounts {
		doc.Accounts = append(doc.Accounts, models.Account{
			AccountNumber: acc.ID,
			Name:          acc.Name,
			Class:         bas.Classify(acc.ID, acc.Type),
			Type:          acc.Type,
		})

		for _, ob := range acc.OpeningBalances {
			rec, err := balanceRecord(acc.ID, ob)
			if err != nil {
				doc.Errors = append(doc.Errors, models.ParseIssue{
					Content: fmt.Sprintf("OpeningBalance account=%s month=%s", acc.ID, ob.Month),
					Message: err.Error(),
				})
				continue
			}
			doc.OpeningBalances = append(doc.OpeningBalances, rec)
		}
		for _, cb := range acc.ClosingBalances {
			rec, err := balanceRecord(acc.ID, cb)
			if err != nil {
				doc.Errors = append(doc.Errors, models.ParseIssue{
					Content: fmt.Sprintf("ClosingBalance account=%s month=%s", acc.ID, cb.Month),
					Message: err.Error(),
				})
				continue
			}
			doc.ClosingBalances = append(doc.ClosingBalances, rec)
		}
	}
}

func balanceRecord(accountID string, bal models.SIE5Balance) (models.BalanceRecord, error) {
	year := dateutils.MonthYear(bal.Month)
	if year == 0 {
		return models.BalanceRecord{}, fmt.Errorf("invalid balance month '%s'", bal.Month)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(bal.Amount))
	if err != nil {
		return models.BalanceRecord{}, fmt.Errorf("invalid balance amount '%s'", bal.Amount)
	}
	return models.BalanceRecord{
		AccountNumber: accountID,
		YearRef:       models.CalendarRef(year),
		Amount:        amount,
	}, nil
}

func extractVouchers(doc *models.ParsedDocument, vouchers models.SIE5Vouchers) {
	for _, v := range vouchers.Vouchers {
		series := v.Series
		if series == "" {
			series = "A"
		}
		voucher := models.Voucher{
			Series: series,
			Number: v.Number,
			Date:   dateutils.NormalizeDate(v.Date, false),
			Text:   v.Text,
		}

		for _, tx := range v.Transactions {
			amount, err := decimal.NewFromString(strings.TrimSpace(tx.Amount))
			if err != nil {
				doc.Errors = append(doc.Errors, models.ParseIssue{
					Content: fmt.Sprintf("Transaction voucher=%s account=%s", voucher.SourceReference(), tx.AccountID),
					Message: fmt.Sprintf("invalid amount '%s'", tx.Amount),
				})
				continue
			}
			date := voucher.Date
			if tx.Date != "" {
				date = dateutils.NormalizeDate(tx.Date, false)
			}
			text := voucher.Text
			if tx.Text != "" {
				text = tx.Text
			}
			voucher.Transactions = append(voucher.Transactions, models.Transaction{
				AccountNumber: tx.AccountID,
				Amount:        amount,
				Date:          date,
				Text:          text,
			})
		}
		doc.Vouchers = append(doc.Vouchers, voucher)
	}
}

// ValidateFormat checks that content looks like a SIE5 document without
// running the full parse. Non-XML content reports false, not an error.
func ValidateFormat(content string) (bool, error) {
	root, err := xmlpath.Parse(strings.NewReader(content))
	if err != nil {
		log.WithError(err).Debug("Content is not valid XML")
		return false, nil
	}
	if !xmlpath.MustCompile("/Sie").Exists(root) {
		log.Debug("Missing Sie root element, not a SIE5 file")
		return false, nil
	}
	if !xmlpath.MustCompile("/Sie/FileInfo/Company").Exists(root) {
		log.Debug("Missing FileInfo/Company element, not a valid SIE5 file")
		return false, nil
	}
	return true, nil
}
