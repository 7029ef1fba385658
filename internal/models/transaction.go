package models

import "time"

// TransactionType represents the type of transaction. It is fixed at
// creation and never editable afterward.
type TransactionType string

const (
	TransactionTypeExpense       TransactionType = "expense"
	TransactionTypeIncome        TransactionType = "income"
	TransactionTypeSettlement    TransactionType = "settlement"
	TransactionTypeReimbursement TransactionType = "reimbursement"
)

// SplitType governs how an expense's cost is attributed between the two
// household users. It is set only on expenses.
type SplitType string

const (
	SplitEqually   SplitType = "splitEqually"
	SplitUser1Only SplitType = "user1_only"
	SplitUser2Only SplitType = "user2_only"
)

// SharedPayer is the sentinel payer name for expenses paid jointly.
// Shared-paid expenses are outside the two-party balance by convention.
const SharedPayer = "Shared"

// Transaction represents a single financial record in the household ledger.
//
// Which optional fields are populated depends on Type:
//   - expense: SplitType and PaidByUserName required, CategoryID optional
//   - settlement: PaidByUserName and PaidToUserName required
//   - income: PaidToUserName required
//   - reimbursement: PaidToUserName required, ReimbursesTransactionID optional
//
// The service layer enforces these shapes on every write.
type Transaction struct {
	Base
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"transaction_type"`

	CategoryID     *string    `gorm:"type:uuid" json:"category_id,omitempty"`
	SplitType      *SplitType `json:"split_type,omitempty"`
	PaidByUserName *string    `json:"paid_by_user_name,omitempty"`
	PaidToUserName *string    `json:"paid_to_user_name,omitempty"`

	// ReimbursesTransactionID links a reimbursement back to the expense it
	// reverses. Dangling references are tolerated at read time.
	ReimbursesTransactionID *string `gorm:"type:uuid" json:"reimburses_transaction_id,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// CategoryName returns the preloaded category name, or "" when the
// transaction is uncategorized.
func (t *Transaction) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

// PaidBy returns the payer name, or "" when unset.
func (t *Transaction) PaidBy() string {
	if t.PaidByUserName == nil {
		return ""
	}
	return *t.PaidByUserName
}

// PaidTo returns the receiver name, or "" when unset.
func (t *Transaction) PaidTo() string {
	if t.PaidToUserName == nil {
		return ""
	}
	return *t.PaidToUserName
}

// Split returns the split type, or "" when unset.
func (t *Transaction) Split() SplitType {
	if t.SplitType == nil {
		return ""
	}
	return *t.SplitType
}
