package ledger

import (
	"fmt"
	"math"
	"sort"

	"bankofquack/internal/models"
)

// squareTolerance is the currency-arithmetic tolerance below which a
// balance counts as settled.
const squareTolerance = 0.01

// CalculationStep records one balance-affecting transaction in the trail.
type CalculationStep struct {
	Transaction models.Transaction `json:"transaction"`
	Change      float64            `json:"change"`
	Explanation string             `json:"explanation"`
	NewBalance  float64            `json:"new_balance"`
}

// BalanceResult is the net balance between the two users plus the
// chronological step trail that produced it. Summing the step changes
// always reproduces Summary exactly.
type BalanceResult struct {
	Summary float64           `json:"balance_summary"`
	Steps   []CalculationStep `json:"calculation_steps"`
}

// AllSquare reports whether a balance is settled within currency tolerance.
func AllSquare(summary float64) bool {
	return math.Abs(summary) < squareTolerance
}

// EffectiveTransactions returns the balance-relevant transaction set in
// chronological order: expenses and settlements as recorded, plus one
// virtual expense per linked reimbursement (when the expansion emits
// one). Income and unlinked reimbursements are balance-neutral between
// the two users and are excluded entirely.
func EffectiveTransactions(transactions []models.Transaction, user1, user2 string) []models.Transaction {
	byID := indexByID(transactions)

	effective := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeExpense, models.TransactionTypeSettlement:
			effective = append(effective, t)
		case models.TransactionTypeReimbursement:
			if t.ReimbursesTransactionID == nil {
				// General reimbursement: an income-like event outside
				// the two-party expense ledger.
				continue
			}
			if virtual, ok := expandReimbursement(t, byID, user1, user2); ok {
				effective = append(effective, virtual)
			}
		}
	}

	sortChronological(effective)
	return effective
}

// sortChronological orders by date ascending, tie-broken by creation
// time. The ordering only matters for the readability of the step trail;
// the final balance is a sum and therefore order-independent.
func sortChronological(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.Before(transactions[j].Date)
		}
		return transactions[i].CreatedAt.Before(transactions[j].CreatedAt)
	})
}

// ComputeBalance walks the effective transaction set accumulating the
// signed net balance between the two users. Sign convention: positive
// means user1 owes user2, negative means user2 owes user1.
//
// Missing user names yield a zero balance with an empty trail rather
// than an error; the inputs may reflect a half-configured household.
func ComputeBalance(transactions []models.Transaction, user1, user2 string) BalanceResult {
	if user1 == "" || user2 == "" {
		return BalanceResult{Summary: 0, Steps: []CalculationStep{}}
	}

	var net float64
	steps := []CalculationStep{}
	for _, t := range EffectiveTransactions(transactions, user1, user2) {
		change, explanation := stepChange(t, user1, user2)
		if change == 0 {
			continue
		}
		net += change
		steps = append(steps, CalculationStep{
			Transaction: t,
			Change:      change,
			Explanation: explanation,
			NewBalance:  net,
		})
	}

	return BalanceResult{Summary: net, Steps: steps}
}

func stepChange(t models.Transaction, user1, user2 string) (float64, string) {
	switch t.Type {
	case models.TransactionTypeSettlement:
		return settlementChange(t, user1, user2)
	case models.TransactionTypeExpense:
		return expenseChange(t, user1, user2)
	default:
		return 0, ""
	}
}

func settlementChange(t models.Transaction, user1, user2 string) (float64, string) {
	switch t.PaidBy() {
	case user1:
		return -t.Amount, fmt.Sprintf("%s paid %s %.2f to settle up", user1, t.PaidTo(), t.Amount)
	case user2:
		return t.Amount, fmt.Sprintf("%s paid %s %.2f to settle up", user2, t.PaidTo(), t.Amount)
	default:
		return 0, ""
	}
}

func expenseChange(t models.Transaction, user1, user2 string) (float64, string) {
	payer := t.PaidBy()
	if payer == models.SharedPayer {
		// Jointly paid: outside the two-party ledger by convention.
		return 0, ""
	}

	switch payer {
	case user1:
		switch t.Split() {
		case models.SplitEqually:
			return -t.Amount / 2, fmt.Sprintf("%s paid %.2f split equally; %s's half is %.2f", user1, t.Amount, user2, t.Amount/2)
		case models.SplitUser2Only:
			return -t.Amount, fmt.Sprintf("%s paid %.2f entirely for %s", user1, t.Amount, user2)
		case models.SplitUser1Only:
			// A user1-only cost paid by user1 is personal, unless the
			// amount is negative: then it is a reimbursement of that
			// cost flowing back through the balance.
			if t.Amount < 0 {
				return -t.Amount, fmt.Sprintf("%s was reimbursed %.2f for a personal cost", user1, -t.Amount)
			}
			return 0, ""
		}
	case user2:
		switch t.Split() {
		case models.SplitEqually:
			return t.Amount / 2, fmt.Sprintf("%s paid %.2f split equally; %s's half is %.2f", user2, t.Amount, user1, t.Amount/2)
		case models.SplitUser1Only:
			return t.Amount, fmt.Sprintf("%s paid %.2f entirely for %s", user2, t.Amount, user1)
		case models.SplitUser2Only:
			if t.Amount < 0 {
				return t.Amount, fmt.Sprintf("%s was reimbursed %.2f for a personal cost", user2, -t.Amount)
			}
			return 0, ""
		}
	}
	return 0, ""
}
