// Package sie4parser parses the line-oriented SIE4 text dialect into the
// shared ParsedDocument model.
//
// Parsing is best-effort: a malformed line is recorded on the document's
// error list and the parser continues with the next line. It never aborts
// on a single bad record.
package sie4parser

import (
	"fmt"
	"strconv"
	"strings"

	"nordledger/sie-import/internal/bas"
	"nordledger/sie-import/internal/dateutils"
	"nordledger/sie-import/internal/models"
	"nordledger/sie-import/internal/parsererror"

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

// DefaultSeries is used when a #VER record carries an empty series.
var DefaultSeries = "A"

// SetDefaultSeries allows setting the fallback voucher series
func SetDefaultSeries(series string) {
	if series != "" {
		DefaultSeries = series
	}
}

// parseState is the explicit accumulator threaded through the line fold.
// currentVoucher is the one piece of genuine cross-record state in the
// grammar: #VER opens a voucher and subsequent #TRANS lines accumulate into
// it until the next #VER or end of input.
type parseState struct {
	doc            *models.ParsedDocument
	currentVoucher *models.Voucher
	accountIndex   map[string]int
	lastAccount    string
}

// handler parses the argument list of one record type into the state.
type handler func(st *parseState, args []string) error

// recordHandlers is the dispatch table over SIE4 record types. Unknown tags
// are skipped silently; SIE4 producers routinely emit vendor extensions.
var recordHandlers = map[string]handler{
	"FLAGGA":  handleIgnore,
	"FORMAT":  handleIgnore,
	"SIETYP":  handleIgnore,
	"PROGRAM": handleProgram,
	"GEN":     handleGen,
	"FNAMN":   handleCompanyName,
	"FNR":     handleClientID,
	"ORGNR":   handleOrgNumber,
	"ADRESS":  handleAddress,
	"VALUTA":  handleCurrency,
	"KPTYP":   handleAccountPlan,
	"RAR":     handleFiscalYear,
	"KONTO":   handleAccount,
	"KTYP":    handleAccountType,
	"SRU":     handleSRU,
	"IB":      handleOpeningBalance,
	"UB":      handleClosingBalance,
	"RES":     handleResultBalance,
	"VER":     handleVoucher,
	"TRANS":   handleTransaction,
}

// Parse converts already-decoded SIE4 text into a ParsedDocument.
func Parse(content string) *models.ParsedDocument {
	doc := &models.ParsedDocument{Format: models.FormatSIE4}
	st := &parseState{
		doc:          doc,
		accountIndex: make(map[string]int),
	}

	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.HasPrefix(line, "#") {
			// Brace-only lines delimit #VER transaction blocks.
			continue
		}

		tag, rest := splitTag(line)
		h, ok := recordHandlers[tag]
		if !ok {
			log.WithField("record", tag).Debug("Skipping unknown SIE4 record type")
			continue
		}

		args, err := splitFields(rest)
		if err == nil {
			err = h(st, args)
		}
		if err != nil {
			perr := &parsererror.ParseError{Line: i + 1, Record: tag, Content: line, Err: err}
			doc.Errors = append(doc.Errors, models.ParseIssue{
				Line:    perr.Line,
				Content: perr.Content,
				Message: perr.Error(),
			})
		}
	}
	st.flushVoucher()

	log.WithFields(logrus.Fields{
		"accounts": len(doc.Accounts),
		"vouchers": len(doc.Vouchers),
		"errors":   len(doc.Errors),
	}).Info("Parsed SIE4 document")
	return doc
}

// splitTag separates "#TAG rest..." into the tag name and its argument text.
func splitTag(line string) (string, string) {
	body := strings.TrimPrefix(line, "#")
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		return strings.ToUpper(body[:i]), strings.TrimSpace(body[i+1:])
	}
	return strings.ToUpper(body), ""
}

// splitFields tokenizes a record's argument text. Quoted strings may contain
// spaces and escaped quotes; a {...} dimension block is kept as one field
// (without the braces).
func splitFields(rest string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote := false
	braceDepth := 0
	escaped := false

	flush := func() {
		fields = append(fields, cur.String())
		cur.Reset()
	}

	for _, r := range rest {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"' && braceDepth == 0:
			if inQuote {
				inQuote = false
				flush()
			} else {
				inQuote = true
			}
		case r == '{' && !inQuote:
			braceDepth++
			if braceDepth == 1 {
				cur.Reset()
			}
		case r == '}' && !inQuote:
			braceDepth--
			if braceDepth == 0 {
				flush()
			}
			if braceDepth < 0 {
				return nil, fmt.Errorf("unbalanced dimension block")
			}
		case (r == ' ' || r == '\t') && !inQuote && braceDepth == 0:
			if cur.Len() > 0 {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if braceDepth != 0 {
		return nil, fmt.Errorf("unbalanced dimension block")
	}
	if cur.Len() > 0 {
		flush()
	}
	return fields, nil
}

func requireArgs(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("expected at least %d fields, got %d", n, len(args))
	}
	return nil
}

func handleIgnore(st *parseState, args []string) error {
	return nil
}

func handleProgram(st *parseState, args []string) error {
	st.doc.Program = strings.Join(args, " ")
	return nil
}

func handleGen(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	st.doc.GeneratedAt = dateutils.NormalizeDate(args[0], false)
	return nil
}

func handleCompanyName(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	st.doc.Company.Name = args[0]
	return nil
}

func handleClientID(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	st.doc.Company.ClientID = args[0]
	return nil
}

func handleOrgNumber(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	st.doc.Company.OrganizationNumber = args[0]
	return nil
}

func handleAddress(st *parseState, args []string) error {
	st.doc.Company.Address = strings.Join(args, ", ")
	return nil
}

func handleCurrency(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	st.doc.Currency = args[0]
	return nil
}

func handleAccountPlan(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	st.doc.AccountPlan = args[0]
	return nil
}

// handleFiscalYear parses #RAR: relative index plus start and end dates.
func handleFiscalYear(st *parseState, args []string) error {
	if err := requireArgs(args, 3); err != nil {
		return err
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year index '%s'", args[0])
	}
	st.doc.FiscalYears = append(st.doc.FiscalYears, models.FiscalYear{
		Ref:       models.IndexRef(index),
		StartDate: dateutils.NormalizeDate(args[1], false),
		EndDate:   dateutils.NormalizeDate(args[2], true),
		Closed:    index < 0,
	})
	return nil
}

func handleAccount(st *parseState, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	number := args[0]
	st.accountIndex[number] = len(st.doc.Accounts)
	st.lastAccount = number
	st.doc.Accounts = append(st.doc.Accounts, models.Account{
		AccountNumber: number,
		Name:          args[1],
		Class:         bas.Classify(number, ""),
	})
	return nil
}

// ktypClasses maps #KTYP letters onto the SIE5-style type tags so the
// classifier treats both dialects alike. T (assets), S (liabilities and
// equity), I (income), K (cost).
var ktypClasses = map[string]string{
	"T": "asset",
	"S": "liability",
	"I": "income",
	"K": "cost",
}

func handleAccountType(st *parseState, args []string) error {
	if err := requireArgs(args, 2); err != nil {
		return err
	}
	idx, ok := st.accountIndex[args[0]]
	if !ok {
		return fmt.Errorf("unknown account '%s'", args[0])
	}
	letter := strings.ToUpper(args[1])
	if tag, ok := ktypClasses[letter]; ok {
		st.doc.Accounts[idx].Type = tag
		st.doc.Accounts[idx].Class = bas.Classify(args[0], tag)
	}
	return nil
}

// handleSRU attaches a tax form code to an account. The record names the
// account explicitly; when it does not, the code goes to the account most
// recently declared by #KONTO.
func handleSRU(st *parseState, args []string) error {
	if err := requireArgs(args, 1); err != nil {
		return err
	}
	account, code := st.lastAccount, args[0]
	if len(args) >= 2 {
		account, code = args[0], args[1]
	}
	idx, ok := st.accountIndex[account]
	if !ok {
		return fmt.Errorf("unknown account '%s'", account)
	}
	st.doc.Accounts[idx].SRUCode = code
	return nil
}

func handleOpeningBalance(st *parseState, args []string) error {
	rec, err := parseBalance(args, false)
	if err != nil {
		return err
	}
	st.doc.OpeningBalances = append(st.doc.OpeningBalances, rec)
	return nil
}

func handleClosingBalance(st *parseState, args []string) error {
	rec, err := parseBalance(args, false)
	if err != nil {
		return err
	}
	st.doc.ClosingBalances = append(st.doc.ClosingBalances, rec)
	return nil
}

// handleResultBalance parses #RES records. They land with the closing
// balances but stay flagged so downstream treats income-statement balances
// separately from IB/UB.
func handleResultBalance(st *parseState, args []string) error {
	rec, err := parseBalance(args, true)
	if err != nil {
		return err
	}
	st.doc.ClosingBalances = append(st.doc.ClosingBalances, rec)
	return nil
}

// parseBalance parses the shared #IB/#UB/#RES shape:
// year-index, account, amount.
func parseBalance(args []string, isResult bool) (models.BalanceRecord, error) {
	if err := requireArgs(args, 3); err != nil {
		return models.BalanceRecord{}, err
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return models.BalanceRecord{}, fmt.Errorf("invalid year index '%s'", args[0])
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return models.BalanceRecord{}, fmt.Errorf("invalid amount '%s'", args[2])
	}
	return models.BalanceRecord{
		AccountNumber: args[1],
		YearRef:       models.IndexRef(index),
		Amount:        amount,
		IsResult:      isResult,
	}, nil
}

// handleVoucher parses a #VER header: series, number, date, optional text.
// The series may be quoted or bare. It closes any voucher in flight.
func handleVoucher(st *parseState, args []string) error {
	if err := requireArgs(args, 3); err != nil {
		return err
	}
	st.flushVoucher()

	number, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid voucher number '%s'", args[1])
	}
	series := args[0]
	if series == "" {
		series = DefaultSeries
	}
	text := ""
	if len(args) >= 4 {
		text = args[3]
	}
	st.currentVoucher = &models.Voucher{
		Series: series,
		Number: number,
		Date:   dateutils.NormalizeDate(args[2], false),
		Text:   text,
	}
	return nil
}

// handleTransaction parses a #TRANS line: account, dimension block (ignored),
// signed amount, optional date, optional text. The line belongs to the
// voucher opened by the most recent #VER.
func handleTransaction(st *parseState, args []string) error {
	if st.currentVoucher == nil {
		return fmt.Errorf("transaction outside voucher")
	}
	if err := requireArgs(args, 3); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("invalid amount '%s'", args[2])
	}

	date := st.currentVoucher.Date
	if len(args) >= 4 && args[3] != "" {
		date = dateutils.NormalizeDate(args[3], false)
	}
	text := st.currentVoucher.Text
	if len(args) >= 5 && args[4] != "" {
		text = args[4]
	}

	st.currentVoucher.Transactions = append(st.currentVoucher.Transactions, models.Transaction{
		AccountNumber: args[0],
		Amount:        amount,
		Date:          date,
		Text:          text,
	})
	return nil
}

// flushVoucher appends the voucher in flight, if any, to the document.
func (st *parseState) flushVoucher() {
	if st.currentVoucher != nil {
		st.doc.Vouchers = append(st.doc.Vouchers, *st.currentVoucher)
		st.currentVoucher = nil
	}
}
