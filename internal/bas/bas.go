// Package bas classifies account numbers according to the Swedish BAS
// standard chart of accounts.
package bas

import (
	"strconv"

	"nordledger/sie-import/internal/models"
)

// sie5TypeClasses maps the explicit SIE5 account type tags to classes.
// An explicit tag always wins over the numeric range.
var sie5TypeClasses = map[string]models.AccountClass{
	"asset":     models.ClassAssets,
	"liability": models.ClassLiabilities,
	"equity":    models.ClassEquity,
	"income":    models.ClassRevenue,
	"cost":      models.ClassExpenses,
}

// Classify maps an account number, and optionally an explicit SIE5 type tag,
// to an accounting class. The function is total: every input produces a
// class, with expenses as the fallback for numbers outside the known ranges.
//
// BAS range thresholds: 1000-1999 assets, 2000-2099 equity, 2100-2999
// liabilities, 3000-3999 revenue, 4000-7999 expenses, 8000-8999 financial.
//
// TODO: report code treats 83xx as interest income and 84xx as interest cost,
// a finer split than the single financial class produced here. Needs a
// product decision before the mapping is hardened.
func Classify(accountNumber, sieType string) models.AccountClass {
	if class, ok := sie5TypeClasses[sieType]; ok {
		return class
	}

	n, err := strconv.Atoi(accountNumber)
	if err != nil {
		return models.ClassExpenses
	}

	switch {
	case n >= 1000 && n < 2000:
		return models.ClassAssets
	case n >= 2000 && n < 2100:
		return models.ClassEquity
	case n >= 2100 && n < 3000:
		return models.ClassLiabilities
	case n >= 3000 && n < 4000:
		return models.ClassRevenue
	case n >= 4000 && n < 8000:
		return models.ClassExpenses
	case n >= 8000 && n < 9000:
		return models.ClassFinancial
	default:
		return models.ClassExpenses
	}
}

// IsValidAccountNumber reports whether the number is 4 to 6 digits, the
// range the SIE standard allows. Violations are warnings, not rejections.
func IsValidAccountNumber(accountNumber string) bool {
	if len(accountNumber) < 4 || len(accountNumber) > 6 {
		return false
	}
	for _, r := range accountNumber {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
