package ledger

import (
	"bankofquack/internal/logger"
	"bankofquack/internal/models"
)

// indexByID builds the id lookup used to resolve reimbursement links.
// It is built once per computation pass; reimbursements only ever point
// at expenses, never at other reimbursements, so no traversal is needed.
func indexByID(transactions []models.Transaction) map[string]models.Transaction {
	byID := make(map[string]models.Transaction, len(transactions))
	for _, t := range transactions {
		byID[t.ID] = t
	}
	return byID
}

// expandReimbursement rewrites a linked reimbursement into a virtual
// negative expense that folds into the balance arithmetic as a partial
// reversal of the original. The virtual expense inherits the original's
// split rule and category, and treats the reimbursement's receiver as
// the payer of the negative amount.
//
// The second return value is false when nothing should be emitted:
// a dangling, self-referencing, or mistyped link, an original with no
// split rule (all reported as warning-level data-quality diagnostics,
// never errors), or the self-reimbursement guard below.
func expandReimbursement(r models.Transaction, byID map[string]models.Transaction, user1, user2 string) (models.Transaction, bool) {
	refID := *r.ReimbursesTransactionID

	if refID == r.ID {
		logger.Get().Warnw("reimbursement references itself; excluded from balance",
			"transaction_id", r.ID)
		return models.Transaction{}, false
	}

	original, ok := byID[refID]
	if !ok {
		logger.Get().Warnw("reimbursement references a missing transaction; excluded from balance",
			"transaction_id", r.ID, "reimburses_transaction_id", refID)
		return models.Transaction{}, false
	}
	if original.Type != models.TransactionTypeExpense {
		logger.Get().Warnw("reimbursement references a non-expense; excluded from balance",
			"transaction_id", r.ID, "reimburses_transaction_id", refID, "referenced_type", original.Type)
		return models.Transaction{}, false
	}
	if original.SplitType == nil {
		logger.Get().Warnw("reimbursed expense has no split type; excluded from balance",
			"transaction_id", r.ID, "reimburses_transaction_id", refID)
		return models.Transaction{}, false
	}

	receiver := r.PaidTo()
	if receiver == "" {
		logger.Get().Warnw("reimbursement has no receiver; excluded from balance",
			"transaction_id", r.ID)
		return models.Transaction{}, false
	}

	// Self-reimbursement guard: when the original's cost was attributed
	// solely to the person who received the reimbursement, the reversal
	// has no net effect between the two users and must not appear in the
	// ledger or its trail.
	switch *original.SplitType {
	case models.SplitUser1Only:
		if receiver == user1 {
			return models.Transaction{}, false
		}
	case models.SplitUser2Only:
		if receiver == user2 {
			return models.Transaction{}, false
		}
	}

	virtual := models.Transaction{
		Base:           models.Base{ID: r.ID, CreatedAt: r.CreatedAt},
		Date:           r.Date,
		Description:    "Reimbursement: " + original.Description,
		Amount:         -r.Amount,
		Type:           models.TransactionTypeExpense,
		CategoryID:     original.CategoryID,
		Category:       original.Category,
		SplitType:      original.SplitType,
		PaidByUserName: r.PaidToUserName,
	}
	return virtual, true
}
