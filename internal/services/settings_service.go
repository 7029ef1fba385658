package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/models"
)

// settingsService handles household settings business logic.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the singleton settings row, bootstrapping a
// default one on first use.
func (s *settingsService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Order("created_at ASC").First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings = models.Settings{User1Name: "User 1", User2Name: "User 2"}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateSettings renames the two household users. Renames cascade to the
// payer/receiver name fields on existing transactions so the ledger
// keeps recognizing them.
func (s *settingsService) UpdateSettings(user1Name, user2Name string) (*models.Settings, error) {
	user1Name = strings.TrimSpace(user1Name)
	user2Name = strings.TrimSpace(user2Name)
	if user1Name == "" || user2Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "both user names are required")
	}
	if user1Name == user2Name {
		return nil, apperrors.ErrDuplicateUserNames
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	type userRename struct {
		oldName string
		newName string
	}
	var renames []userRename
	if settings.User1Name != user1Name {
		renames = append(renames, userRename{oldName: settings.User1Name, newName: user1Name})
	}
	if settings.User2Name != user2Name {
		renames = append(renames, userRename{oldName: settings.User2Name, newName: user2Name})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Overlapping renames (swapping the two names, or giving one user
		// the other's old name) must not observe each other's writes, so
		// rows move through unique placeholders before taking their final
		// name. User names are trimmed, so no real name starts with NUL.
		for i, r := range renames {
			placeholder := fmt.Sprintf("\x00rename-%d", i)
			if err := renameTransactionUser(tx, r.oldName, placeholder); err != nil {
				return err
			}
			renames[i].oldName = placeholder
		}
		for _, r := range renames {
			if err := renameTransactionUser(tx, r.oldName, r.newName); err != nil {
				return err
			}
		}

		settings.User1Name = user1Name
		settings.User2Name = user2Name
		if err := tx.Save(settings).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func renameTransactionUser(tx *gorm.DB, oldName, newName string) error {
	if err := tx.Model(&models.Transaction{}).
		Where("paid_by_user_name = ?", oldName).
		Update("paid_by_user_name", newName).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Model(&models.Transaction{}).
		Where("paid_to_user_name = ?", oldName).
		Update("paid_to_user_name", newName).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
