package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/services"
)

// SectorHandler handles sector-related requests.
type SectorHandler struct {
	sectorService services.SectorServicer
}

// NewSectorHandler creates a new SectorHandler.
func NewSectorHandler(sectorService services.SectorServicer) *SectorHandler {
	return &SectorHandler{sectorService: sectorService}
}

// CreateSectorRequest represents the request payload for creating a sector.
type CreateSectorRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=100"`
	CategoryIDs []string `json:"category_ids" binding:"omitempty,dive,uuid"`
}

// UpdateSectorRequest represents the request payload for updating a sector.
type UpdateSectorRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=1,max=100"`
	CategoryIDs []string `json:"category_ids" binding:"omitempty,dive,uuid"`
}

// CreateSector handles the creation of a new sector.
// @Summary     Create a sector
// @Description Create a sector grouping a set of categories
// @Tags        sectors
// @Accept      json
// @Produce     json
// @Param       request body CreateSectorRequest true "Sector details"
// @Success     201 {object} models.Sector "Sector created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sectors [post]
func (h *SectorHandler) CreateSector(c *gin.Context) {
	var req CreateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sector, err := h.sectorService.CreateSector(req.Name, req.CategoryIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sector": sector})
}

// GetSectors handles listing all sectors with their categories.
// @Summary     Get sectors
// @Description Get all sectors with their categories, in creation order
// @Tags        sectors
// @Produce     json
// @Success     200 {array} models.Sector "Sectors"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sectors [get]
func (h *SectorHandler) GetSectors(c *gin.Context) {
	sectors, err := h.sectorService.GetSectors()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sectors": sectors})
}

// GetSectorByID handles fetching a single sector.
// @Summary     Get a sector
// @Description Get a sector by ID with its categories
// @Tags        sectors
// @Produce     json
// @Param       id path string true "Sector ID"
// @Success     200 {object} models.Sector "Sector"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Sector not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sectors/{id} [get]
func (h *SectorHandler) GetSectorByID(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sector, err := h.sectorService.GetSectorByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sector": sector})
}

// UpdateSector handles updating a sector.
// @Summary     Update a sector
// @Description Rename a sector and replace its category set
// @Tags        sectors
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Sector ID"
// @Param       request body UpdateSectorRequest true "Sector details"
// @Success     200 {object} models.Sector "Updated sector"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Sector not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sectors/{id} [put]
func (h *SectorHandler) UpdateSector(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sector, err := h.sectorService.UpdateSector(id, req.Name, req.CategoryIDs)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sector": sector})
}

// DeleteSector handles deleting a sector.
// @Summary     Delete a sector
// @Description Delete a sector; its categories are left untouched
// @Tags        sectors
// @Produce     json
// @Param       id path string true "Sector ID"
// @Success     204 "Sector deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Sector not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sectors/{id} [delete]
func (h *SectorHandler) DeleteSector(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sectorService.DeleteSector(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
