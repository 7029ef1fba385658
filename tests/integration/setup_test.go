package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bankofquack/internal/handlers"
	"bankofquack/internal/logger"
	"bankofquack/internal/middleware"
	"bankofquack/internal/models"
	"bankofquack/internal/services"
	"bankofquack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Settings{},
		&models.Category{},
		&models.Sector{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	settingsService := services.NewSettingsService(db)
	categoryService := services.NewCategoryService(db)
	sectorService := services.NewSectorService(db)
	transactionService := services.NewTransactionService(db, settingsService)
	dashboardService := services.NewDashboardService(db, settingsService, sectorService)

	// Handlers
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	sectorHandler := handlers.NewSectorHandler(sectorService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.GET("/settings", settingsHandler.GetSettings)
	v1.PUT("/settings", settingsHandler.UpdateSettings)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	sectors := v1.Group("/sectors")
	sectors.POST("", sectorHandler.CreateSector)
	sectors.GET("", sectorHandler.GetSectors)
	sectors.GET("/:id", sectorHandler.GetSectorByID)
	sectors.PUT("/:id", sectorHandler.UpdateSector)
	sectors.DELETE("/:id", sectorHandler.DeleteSector)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/balance", dashboardHandler.GetBalance)
	dashboard.GET("/breakdown/categories", dashboardHandler.GetCategoryBreakdown)
	dashboard.GET("/breakdown/sectors", dashboardHandler.GetSectorBreakdown)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// nameUsers sets the two household user names through the API.
func (app *testApp) nameUsers(t *testing.T, user1, user2 string) {
	t.Helper()
	rec := app.request("PUT", "/api/v1/settings", fmt.Sprintf(`{"user1_name":%q,"user2_name":%q}`, user1, user2))
	if rec.Code != 200 {
		t.Fatalf("naming users failed: %d %s", rec.Code, rec.Body.String())
	}
}

// createCategory creates a category and returns its id.
func (app *testApp) createCategory(t *testing.T, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/categories", fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != 201 {
		t.Fatalf("creating category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["category"].(map[string]interface{})["id"].(string)
}

// createTransaction posts a transaction payload and returns its id.
func (app *testApp) createTransaction(t *testing.T, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != 201 {
		t.Fatalf("creating transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["transaction"].(map[string]interface{})["id"].(string)
}

// getBalance fetches the dashboard balance view.
func (app *testApp) getBalance(t *testing.T) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/dashboard/balance", "")
	if rec.Code != 200 {
		t.Fatalf("fetching balance failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}
