package importer

import "github.com/shopspring/decimal"

var defaultTolerance = decimal.NewFromFloat(0.01)

// SetTolerance allows setting the balance tolerance, in currency units, that
// both policies start from.
func SetTolerance(units float64) {
	if units > 0 {
		defaultTolerance = decimal.NewFromFloat(units)
	}
}

// BalancePolicy decides what happens when an entry's debit and credit totals
// disagree. The journal-entry builder runs strict (unbalanced entries are
// rejected) while the opening-balance builder runs lenient (unbalanced
// entries are emitted with a warning, since opening balances commonly
// reference a partial chart of accounts).
type BalancePolicy struct {
	Name             string
	RejectUnbalanced bool
	Tolerance        decimal.Decimal
}

// StrictPolicy rejects entries whose discrepancy exceeds the tolerance.
func StrictPolicy() BalancePolicy {
	return BalancePolicy{
		Name:             "strict",
		RejectUnbalanced: true,
		Tolerance:        defaultTolerance,
	}
}

// LenientPolicy emits unbalanced entries and reports a warning instead.
func LenientPolicy() BalancePolicy {
	return BalancePolicy{
		Name:             "lenient",
		RejectUnbalanced: false,
		Tolerance:        defaultTolerance,
	}
}

// Discrepancy returns the absolute debit/credit difference and whether it is
// within the policy's tolerance.
func (p BalancePolicy) Discrepancy(debit, credit decimal.Decimal) (decimal.Decimal, bool) {
	diff := debit.Sub(credit).Abs()
	return diff, diff.LessThanOrEqual(p.Tolerance)
}
