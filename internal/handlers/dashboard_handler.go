package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bankofquack/internal/ledger"
	"bankofquack/internal/services"
)

// DashboardHandler handles the computed balance and breakdown views.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetBalance handles the balance view.
// @Summary     Get balance
// @Description Get the net balance between the two users with the step-by-step trail
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} ledger.BalanceResult "Balance with calculation steps"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/balance [get]
func (h *DashboardHandler) GetBalance(c *gin.Context) {
	result, err := h.dashboardService.GetBalance()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance_summary":   result.Summary,
		"all_square":        ledger.AllSquare(result.Summary),
		"calculation_steps": result.Steps,
	})
}

// GetCategoryBreakdown handles the per-category spend view.
// @Summary     Get category breakdown
// @Description Get net spend per category under date and involvement filters
// @Tags        dashboard
// @Produce     json
// @Param       from   query string false "From date (YYYY-MM-DD)"
// @Param       to     query string false "To date (YYYY-MM-DD)"
// @Param       user1  query bool   false "Include user1's share"
// @Param       user2  query bool   false "Include user2's share"
// @Param       shared query bool   false "Include jointly-paid expenses"
// @Success     200 {array} ledger.CategoryBreakdown "Category breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/breakdown/categories [get]
func (h *DashboardHandler) GetCategoryBreakdown(c *gin.Context) {
	filter, involvement, err := parseBreakdownQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.dashboardService.GetCategoryBreakdown(filter, involvement)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}

// GetSectorBreakdown handles the per-sector spend view.
// @Summary     Get sector breakdown
// @Description Get net spend rolled up into sectors under date and involvement filters
// @Tags        dashboard
// @Produce     json
// @Param       from   query string false "From date (YYYY-MM-DD)"
// @Param       to     query string false "To date (YYYY-MM-DD)"
// @Param       user1  query bool   false "Include user1's share"
// @Param       user2  query bool   false "Include user2's share"
// @Param       shared query bool   false "Include jointly-paid expenses"
// @Success     200 {array} ledger.SectorBreakdown "Sector breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/breakdown/sectors [get]
func (h *DashboardHandler) GetSectorBreakdown(c *gin.Context) {
	filter, involvement, err := parseBreakdownQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.dashboardService.GetSectorBreakdown(filter, involvement)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sectors": breakdown})
}

// parseBreakdownQuery parses the shared date and involvement filters.
// Omitting all involvement flags defaults to the full aggregate view.
func parseBreakdownQuery(c *gin.Context) (services.TransactionFilter, ledger.InvolvementFilter, error) {
	var filter services.TransactionFilter
	var err error

	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		return filter, ledger.InvolvementFilter{}, err
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		return filter, ledger.InvolvementFilter{}, err
	}

	involvement := ledger.InvolvementFilter{User1: true, User2: true, Shared: true}
	if c.Query("user1") != "" || c.Query("user2") != "" || c.Query("shared") != "" {
		involvement = ledger.InvolvementFilter{
			User1:  c.Query("user1") == "true",
			User2:  c.Query("user2") == "true",
			Shared: c.Query("shared") == "true",
		}
	}

	return filter, involvement, nil
}
