package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/models"
	"bankofquack/internal/pagination"
	"bankofquack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the request payload for creating or
// updating a transaction. Which optional fields are required depends on
// transaction_type; the service layer enforces the per-type shape.
type TransactionRequest struct {
	Date                    time.Time              `json:"date" binding:"required"`
	Description             string                 `json:"description" binding:"required,min=1,max=200"`
	Amount                  float64                `json:"amount" binding:"required,gt=0"`
	Type                    models.TransactionType `json:"transaction_type" binding:"required,transaction_type"`
	CategoryID              *string                `json:"category_id" binding:"omitempty,uuid"`
	SplitType               *models.SplitType      `json:"split_type" binding:"omitempty,split_type"`
	PaidByUserName          *string                `json:"paid_by_user_name" binding:"omitempty,min=1,max=50"`
	PaidToUserName          *string                `json:"paid_to_user_name" binding:"omitempty,min=1,max=50"`
	ReimbursesTransactionID *string                `json:"reimburses_transaction_id" binding:"omitempty,uuid"`
}

func (r *TransactionRequest) toInput() services.TransactionInput {
	return services.TransactionInput{
		Date:                    r.Date,
		Description:             r.Description,
		Amount:                  r.Amount,
		Type:                    r.Type,
		CategoryID:              r.CategoryID,
		SplitType:               r.SplitType,
		PaidByUserName:          r.PaidByUserName,
		PaidToUserName:          r.PaidToUserName,
		ReimbursesTransactionID: r.ReimbursesTransactionID,
	}
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Record an expense, income, settlement, or reimbursement
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing transactions with filters.
// @Summary     Get transactions
// @Description Get a paginated, filtered list of transactions, newest first
// @Tags        transactions
// @Produce     json
// @Param       from        query string false "From date (YYYY-MM-DD)"
// @Param       to          query string false "To date (YYYY-MM-DD)"
// @Param       type        query string false "Transaction type filter"
// @Param       category_id query string false "Category filter"
// @Param       q           query string false "Description search"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	var err error

	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		return filter, err
	}
	if v := c.Query("type"); v != "" {
		switch models.TransactionType(v) {
		case models.TransactionTypeExpense, models.TransactionTypeIncome,
			models.TransactionTypeSettlement, models.TransactionTypeReimbursement:
			t := models.TransactionType(v)
			filter.Type = &t
		default:
			return filter, apperrors.ErrInvalidTransactionType
		}
	}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	filter.Search = c.Query("q")

	return filter, nil
}

// GetTransactionByID handles fetching a single transaction.
// @Summary     Get a transaction
// @Description Get a transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles updating a transaction.
// @Summary     Update a transaction
// @Description Update a transaction's editable fields; the type is immutable
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete a transaction
// @Description Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
