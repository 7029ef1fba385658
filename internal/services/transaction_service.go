package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/models"
	"bankofquack/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	settingsService SettingsServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, settingsService SettingsServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		settingsService: settingsService,
	}
}

// CreateTransaction validates and stores a new transaction.
func (s *transactionService) CreateTransaction(in TransactionInput) (*models.Transaction, error) {
	normalized, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Date:                    normalized.Date,
		Description:             normalized.Description,
		Amount:                  normalized.Amount,
		Type:                    normalized.Type,
		CategoryID:              normalized.CategoryID,
		SplitType:               normalized.SplitType,
		PaidByUserName:          normalized.PaidByUserName,
		PaidToUserName:          normalized.PaidToUserName,
		ReimbursesTransactionID: normalized.ReimbursesTransactionID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(transaction.ID)
}

// GetTransactions retrieves a paginated, filtered list of transactions,
// newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		q = q.Where("description LIKE ?", "%"+f.Search+"%")
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID with its category.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates a transaction's editable fields. The
// transaction type is fixed at creation and cannot be changed.
func (s *transactionService) UpdateTransaction(transactionID string, in TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if in.Type != "" && in.Type != transaction.Type {
		return nil, apperrors.ErrTransactionTypeImmutable
	}
	in.Type = transaction.Type

	normalized, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	transaction.Date = normalized.Date
	transaction.Description = normalized.Description
	transaction.Amount = normalized.Amount
	transaction.CategoryID = normalized.CategoryID
	transaction.SplitType = normalized.SplitType
	transaction.PaidByUserName = normalized.PaidByUserName
	transaction.PaidToUserName = normalized.PaidToUserName
	transaction.ReimbursesTransactionID = normalized.ReimbursesTransactionID

	// Save with a cleared association so a removed category sticks.
	transaction.Category = nil
	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(transaction.ID)
}

// DeleteTransaction deletes a transaction. Reimbursements that pointed
// at it become dangling and are tolerated (ignored) by the ledger.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validate checks the per-type field shape and normalizes the input:
// fields that don't apply to the transaction type are cleared so
// illegal combinations (an income row with a split type, say) can never
// reach the database.
func (s *transactionService) validate(in TransactionInput) (TransactionInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if in.Amount <= 0 {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return in, err
	}
	user1, user2 := settings.UserNames()

	switch in.Type {
	case models.TransactionTypeExpense:
		if in.SplitType == nil {
			return in, apperrors.WithMessage(apperrors.ErrInvalidSplitType, "expenses require a split type")
		}
		switch *in.SplitType {
		case models.SplitEqually, models.SplitUser1Only, models.SplitUser2Only:
		default:
			return in, apperrors.ErrInvalidSplitType
		}
		payer := deref(in.PaidByUserName)
		if payer != user1 && payer != user2 && payer != models.SharedPayer {
			return in, apperrors.ErrUnknownUserName
		}
		if in.CategoryID != nil {
			var count int64
			if err := s.db.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
				return in, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count == 0 {
				return in, apperrors.ErrCategoryNotFound
			}
		}
		in.PaidToUserName = nil
		in.ReimbursesTransactionID = nil

	case models.TransactionTypeSettlement:
		payer, payee := deref(in.PaidByUserName), deref(in.PaidToUserName)
		if payer != user1 && payer != user2 {
			return in, apperrors.ErrUnknownUserName
		}
		if payee != user1 && payee != user2 {
			return in, apperrors.ErrUnknownUserName
		}
		if payer == payee {
			return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "settlement payer and payee must differ")
		}
		in.CategoryID = nil
		in.SplitType = nil
		in.ReimbursesTransactionID = nil

	case models.TransactionTypeIncome:
		receiver := deref(in.PaidToUserName)
		if receiver != user1 && receiver != user2 {
			return in, apperrors.ErrUnknownUserName
		}
		in.CategoryID = nil
		in.SplitType = nil
		in.PaidByUserName = nil
		in.ReimbursesTransactionID = nil

	case models.TransactionTypeReimbursement:
		receiver := deref(in.PaidToUserName)
		if receiver != user1 && receiver != user2 {
			return in, apperrors.ErrUnknownUserName
		}
		if in.ReimbursesTransactionID != nil {
			var original models.Transaction
			err := s.db.Where("id = ?", *in.ReimbursesTransactionID).First(&original).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return in, apperrors.ErrInvalidReimbursementRef
			}
			if err != nil {
				return in, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if original.Type != models.TransactionTypeExpense {
				return in, apperrors.ErrInvalidReimbursementRef
			}
		}
		in.CategoryID = nil
		in.SplitType = nil
		in.PaidByUserName = nil

	default:
		return in, apperrors.ErrInvalidTransactionType
	}

	return in, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
