package services

import (
	"gorm.io/gorm"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/ledger"
	"bankofquack/internal/models"
)

// dashboardService loads data and invokes the pure ledger computations.
// It holds no state between calls; every view is recomputed from
// scratch, which keeps the results trivially consistent with the data.
type dashboardService struct {
	db              *gorm.DB
	settingsService SettingsServicer
	sectorService   SectorServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, settingsService SettingsServicer, sectorService SectorServicer) DashboardServicer {
	return &dashboardService{
		db:              db,
		settingsService: settingsService,
		sectorService:   sectorService,
	}
}

// GetBalance computes the running balance between the two users over the
// whole transaction history.
func (s *dashboardService) GetBalance() (*ledger.BalanceResult, error) {
	user1, user2, err := s.userNames()
	if err != nil {
		return nil, err
	}

	transactions, err := s.loadTransactions(TransactionFilter{})
	if err != nil {
		return nil, err
	}

	result := ledger.ComputeBalance(transactions, user1, user2)
	return &result, nil
}

// GetCategoryBreakdown computes per-category net spend over the filtered
// transactions. Linked reimbursements are folded in as negative
// expenses via the ledger's effective set, so they net out of the
// category they reimburse.
func (s *dashboardService) GetCategoryBreakdown(filter TransactionFilter, involvement ledger.InvolvementFilter) ([]ledger.CategoryBreakdown, error) {
	effective, err := s.effectiveTransactions(filter)
	if err != nil {
		return nil, err
	}
	return ledger.BreakdownByCategory(effective, involvement), nil
}

// GetSectorBreakdown rolls the category breakdown up into sectors.
func (s *dashboardService) GetSectorBreakdown(filter TransactionFilter, involvement ledger.InvolvementFilter) ([]ledger.SectorBreakdown, error) {
	effective, err := s.effectiveTransactions(filter)
	if err != nil {
		return nil, err
	}

	sectors, err := s.sectorService.GetSectors()
	if err != nil {
		return nil, err
	}
	return ledger.BreakdownBySector(effective, sectors, involvement), nil
}

func (s *dashboardService) effectiveTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	user1, user2, err := s.userNames()
	if err != nil {
		return nil, err
	}
	if user1 == "" || user2 == "" {
		return []models.Transaction{}, nil
	}

	// Reimbursement links may point at expenses outside the requested
	// window, so the expansion runs over the full history and the window
	// applies to the effective set afterwards.
	transactions, err := s.loadTransactions(TransactionFilter{})
	if err != nil {
		return nil, err
	}
	effective := ledger.EffectiveTransactions(transactions, user1, user2)
	return filterByDateWindow(effective, filter), nil
}

func filterByDateWindow(transactions []models.Transaction, filter TransactionFilter) []models.Transaction {
	if filter.FromDate == nil && filter.ToDate == nil {
		return transactions
	}
	windowed := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filter.FromDate != nil && t.Date.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && t.Date.After(*filter.ToDate) {
			continue
		}
		windowed = append(windowed, t)
	}
	return windowed
}

func (s *dashboardService) userNames() (string, string, error) {
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return "", "", err
	}
	user1, user2 := settings.UserNames()
	return user1, user2, nil
}

func (s *dashboardService) loadTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	q := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)
	if err := q.Preload("Category").Order("date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
