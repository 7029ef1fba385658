package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "bankofquack/internal/errors"
	"bankofquack/internal/models"
	"bankofquack/internal/services"
)

// --- mock settings service ---

type mockSettingsService struct {
	getSettingsFn    func() (*models.Settings, error)
	updateSettingsFn func(user1Name, user2Name string) (*models.Settings, error)
}

func (m *mockSettingsService) GetSettings() (*models.Settings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn()
	}
	return &models.Settings{User1Name: "User 1", User2Name: "User 2"}, nil
}

func (m *mockSettingsService) UpdateSettings(user1Name, user2Name string) (*models.Settings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(user1Name, user2Name)
	}
	return &models.Settings{User1Name: user1Name, User2Name: user2Name}, nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func setupSettingsRouter(handler *SettingsHandler) *gin.Engine {
	r := gin.New()
	r.GET("/settings", handler.GetSettings)
	r.PUT("/settings", handler.UpdateSettings)
	return r
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	svc := &mockSettingsService{
		getSettingsFn: func() (*models.Settings, error) {
			return &models.Settings{User1Name: "Alice", User2Name: "Bob"}, nil
		},
	}
	r := setupSettingsRouter(NewSettingsHandler(svc))

	rec := doRequest(r, "GET", "/settings", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	settings := result["settings"].(map[string]interface{})
	if settings["user1_name"] != "Alice" || settings["user2_name"] != "Bob" {
		t.Errorf("unexpected settings payload: %v", settings)
	}
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}))

		rec := doRequest(r, "PUT", "/settings", `{"user1_name":"Anna","user2_name":"Ben"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing names", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}))

		rec := doRequest(r, "PUT", "/settings", `{"user1_name":"Anna"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("propagates duplicate name error", func(t *testing.T) {
		svc := &mockSettingsService{
			updateSettingsFn: func(string, string) (*models.Settings, error) {
				return nil, apperrors.ErrDuplicateUserNames
			},
		}
		r := setupSettingsRouter(NewSettingsHandler(svc))

		rec := doRequest(r, "PUT", "/settings", `{"user1_name":"Anna","user2_name":"Anna"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USER_NAMES")
	})
}
