package models

import "encoding/xml"

// SIE5Document is the XML binding for the SIE5 dialect. Only the elements
// the import pipeline consumes are mapped.
type SIE5Document struct {
	XMLName  xml.Name     `xml:"Sie"`
	FileInfo SIE5FileInfo `xml:"FileInfo"`
	Accounts SIE5Accounts `xml:"Accounts"`
	Vouchers SIE5Vouchers `xml:"Vouchers"`
}

// SIE5FileInfo carries the file and company metadata.
type SIE5FileInfo struct {
	SoftwareProduct SIE5SoftwareProduct `xml:"SoftwareProduct"`
	FileCreation    SIE5FileCreation    `xml:"FileCreation"`
	Company         SIE5Company         `xml:"Company"`
	FiscalYears     []SIE5FiscalYear    `xml:"FiscalYear"`
	Currency        SIE5Currency        `xml:"AccountingCurrency"`
}

// SIE5SoftwareProduct identifies the exporting software.
type SIE5SoftwareProduct struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
}

// SIE5FileCreation records when and by whom the file was generated.
type SIE5FileCreation struct {
	Date string `xml:"date,attr"`
	By   string `xml:"by,attr"`
}

// SIE5Company identifies the exporting company.
type SIE5Company struct {
	Name           string `xml:"name,attr"`
	OrganizationID string `xml:"organizationId,attr"`
	ClientID       string `xml:"clientId,attr"`
}

// SIE5FiscalYear is one declared fiscal year. Start and End are partial
// YYYY-MM dates per the SIE5 schema.
type SIE5FiscalYear struct {
	Start   string `xml:"start,attr"`
	End     string `xml:"end,attr"`
	Primary bool   `xml:"primary,attr"`
	Closed  bool   `xml:"closed,attr"`
}

// SIE5Currency is the accounting currency of the file.
type SIE5Currency struct {
	Currency string `xml:"currency,attr"`
}

// SIE5Accounts wraps the chart of accounts.
type SIE5Accounts struct {
	Accounts []SIE5Account `xml:"Account"`
}

// SIE5Account is one account with its nested balances.
type SIE5Account struct {
	ID              string        `xml:"id,attr"`
	Name            string        `xml:"name,attr"`
	Type            string        `xml:"type,attr"`
	OpeningBalances []SIE5Balance `xml:"OpeningBalance"`
	ClosingBalances []SIE5Balance `xml:"ClosingBalance"`
}

// SIE5Balance is a balance keyed by a YYYY-MM month.
type SIE5Balance struct {
	Month  string `xml:"month,attr"`
	Amount string `xml:",chardata"`
}

// SIE5Vouchers wraps the voucher list.
type SIE5Vouchers struct {
	Vouchers []SIE5Voucher `xml:"Voucher"`
}

// SIE5Voucher is one voucher with its transaction lines.
type SIE5Voucher struct {
	Series       string            `xml:"series,attr"`
	Number       int               `xml:"number,attr"`
	Date         string            `xml:"date,attr"`
	Text         string            `xml:"text,attr"`
	Transactions []SIE5Transaction `xml:"Transaction"`
}

// SIE5Transaction is one debit/credit line of a voucher.
type SIE5Transaction struct {
	AccountID string `xml:"accountId,attr"`
	Amount    string `xml:"amount,attr"`
	Date      string `xml:"date,attr"`
	Text      string `xml:"text,attr"`
}
