// Package ledger implements the household balance and spending breakdown
// computations. Everything in this package is pure: callers supply the
// full transaction set in memory and results are recomputed from scratch
// on every call, so repeated invocations with the same inputs always
// produce identical outputs.
package ledger

import "bankofquack/internal/models"

// Shares returns the cost attributed to each household user for an
// expense, independent of who paid. For recognized split types the two
// shares sum exactly to the transaction amount. An unrecognized or
// missing split type resolves to zero effect rather than an error, so
// legacy or partial rows never break a computation.
func Shares(t models.Transaction) (user1Share, user2Share float64) {
	switch t.Split() {
	case models.SplitEqually:
		half := t.Amount / 2
		return half, half
	case models.SplitUser1Only:
		return t.Amount, 0
	case models.SplitUser2Only:
		return 0, t.Amount
	default:
		return 0, 0
	}
}
