package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/models"
)

// sectorService handles sector-related business logic.
type sectorService struct {
	db *gorm.DB
}

// NewSectorService creates a new SectorServicer.
func NewSectorService(db *gorm.DB) SectorServicer {
	return &sectorService{db: db}
}

// CreateSector creates a sector grouping the given categories.
func (s *sectorService) CreateSector(name string, categoryIDs []string) (*models.Sector, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sector name is required")
	}

	var count int64
	if err := s.db.Model(&models.Sector{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateSector
	}

	categories, err := s.loadCategories(categoryIDs)
	if err != nil {
		return nil, err
	}

	sector := &models.Sector{Name: name, Categories: categories}
	if err := s.db.Create(sector).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sector, nil
}

// GetSectors returns all sectors with their categories, in creation
// order. The dashboard rollup depends on this order for first-match
// resolution when a category is linked to more than one sector.
func (s *sectorService) GetSectors() ([]models.Sector, error) {
	var sectors []models.Sector
	if err := s.db.Preload("Categories").Order("created_at ASC").Find(&sectors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sectors, nil
}

// GetSectorByID retrieves a sector with its categories.
func (s *sectorService) GetSectorByID(sectorID string) (*models.Sector, error) {
	var sector models.Sector
	if err := s.db.Preload("Categories").Where("id = ?", sectorID).First(&sector).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSectorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sector, nil
}

// UpdateSector renames a sector and replaces its category set.
func (s *sectorService) UpdateSector(sectorID, name string, categoryIDs []string) (*models.Sector, error) {
	sector, err := s.GetSectorByID(sectorID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name != "" && name != sector.Name {
		var count int64
		if err := s.db.Model(&models.Sector{}).
			Where("name = ? AND id <> ?", name, sectorID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateSector
		}
		sector.Name = name
	}

	categories, err := s.loadCategories(categoryIDs)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(sector).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(sector).Association("Categories").Replace(categories); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sector.Categories = categories
	return sector, nil
}

// DeleteSector deletes a sector; its categories are left untouched.
func (s *sectorService) DeleteSector(sectorID string) error {
	sector, err := s.GetSectorByID(sectorID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(sector).Association("Categories").Clear(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(sector).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// loadCategories resolves the given ids, rejecting any that don't exist.
func (s *sectorService) loadCategories(categoryIDs []string) ([]models.Category, error) {
	if len(categoryIDs) == 0 {
		return []models.Category{}, nil
	}

	var categories []models.Category
	if err := s.db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(categories) != len(categoryIDs) {
		return nil, apperrors.ErrCategoryNotFound
	}
	return categories, nil
}
