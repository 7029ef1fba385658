// Package services implements the business logic between the HTTP
// handlers and the database, and feeds the ledger core with in-memory
// data.
package services

import (
	"time"

	"bankofquack/internal/ledger"
	"bankofquack/internal/models"
	"bankofquack/internal/pagination"
)

// SettingsServicer defines the contract for household settings logic.
type SettingsServicer interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(user1Name, user2Name string) (*models.Settings, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name, imageURL string) (*models.Category, error)
	GetCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID, name, imageURL string) (*models.Category, error)
	DeleteCategory(categoryID string) error
}

// SectorServicer defines the contract for sector-related business logic.
type SectorServicer interface {
	CreateSector(name string, categoryIDs []string) (*models.Sector, error)
	GetSectors() ([]models.Sector, error)
	GetSectorByID(sectorID string) (*models.Sector, error)
	UpdateSector(sectorID, name string, categoryIDs []string) (*models.Sector, error)
	DeleteSector(sectorID string) error
}

// TransactionInput carries the user-editable fields of a transaction.
// Which optional fields are required depends on Type; the service
// validates and normalizes the shape on every write.
type TransactionInput struct {
	Date                    time.Time
	Description             string
	Amount                  float64
	Type                    models.TransactionType
	CategoryID              *string
	SplitType               *models.SplitType
	PaidByUserName          *string
	PaidToUserName          *string
	ReimbursesTransactionID *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	Search     string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(in TransactionInput) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	UpdateTransaction(transactionID string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
}

// DashboardServicer defines the contract for the computed dashboard views.
type DashboardServicer interface {
	GetBalance() (*ledger.BalanceResult, error)
	GetCategoryBreakdown(filter TransactionFilter, involvement ledger.InvolvementFilter) ([]ledger.CategoryBreakdown, error)
	GetSectorBreakdown(filter TransactionFilter, involvement ledger.InvolvementFilter) ([]ledger.SectorBreakdown, error)
}
