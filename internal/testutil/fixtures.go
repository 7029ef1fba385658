package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bankofquack/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestSettings creates the singleton settings row with the given user names.
func CreateTestSettings(t *testing.T, db *gorm.DB, user1, user2 string) *models.Settings {
	t.Helper()

	settings := &models.Settings{
		User1Name: user1,
		User2Name: user2,
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSector creates a sector containing the given categories.
func CreateTestSector(t *testing.T, db *gorm.DB, name string, categories ...*models.Category) *models.Sector {
	t.Helper()

	sector := &models.Sector{Name: name}
	for _, c := range categories {
		sector.Categories = append(sector.Categories, *c)
	}
	if err := db.Create(sector).Error; err != nil {
		t.Fatalf("failed to create test sector: %v", err)
	}
	return sector
}

// CreateTestExpense creates an expense paid by the given user with the given split.
func CreateTestExpense(t *testing.T, db *gorm.DB, paidBy string, amount float64, split models.SplitType, categoryID *string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:           time.Now(),
		Description:    fmt.Sprintf("Test Expense %d", nextID()),
		Amount:         amount,
		Type:           models.TransactionTypeExpense,
		CategoryID:     categoryID,
		SplitType:      &split,
		PaidByUserName: &paidBy,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return tx
}

// CreateTestSettlement creates a settlement payment from one user to the other.
func CreateTestSettlement(t *testing.T, db *gorm.DB, paidBy, paidTo string, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:           time.Now(),
		Description:    fmt.Sprintf("Test Settlement %d", nextID()),
		Amount:         amount,
		Type:           models.TransactionTypeSettlement,
		PaidByUserName: &paidBy,
		PaidToUserName: &paidTo,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test settlement: %v", err)
	}
	return tx
}

// CreateTestIncome creates an income record received by the given user.
func CreateTestIncome(t *testing.T, db *gorm.DB, paidTo string, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:           time.Now(),
		Description:    fmt.Sprintf("Test Income %d", nextID()),
		Amount:         amount,
		Type:           models.TransactionTypeIncome,
		PaidToUserName: &paidTo,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return tx
}

// CreateTestReimbursement creates a reimbursement received by the given user,
// optionally linked to an original expense.
func CreateTestReimbursement(t *testing.T, db *gorm.DB, paidTo string, amount float64, reimbursesID *string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:                    time.Now(),
		Description:             fmt.Sprintf("Test Reimbursement %d", nextID()),
		Amount:                  amount,
		Type:                    models.TransactionTypeReimbursement,
		PaidToUserName:          &paidTo,
		ReimbursesTransactionID: reimbursesID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test reimbursement: %v", err)
	}
	return tx
}
