package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wzsamuels/budget-project/internal/events"
	"github.com/wzsamuels/budget-project/internal/lock"
	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/middleware"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/router"
	"github.com/wzsamuels/budget-project/internal/services"
	"github.com/wzsamuels/budget-project/internal/validator"
)

const (
	testJWTSecret   = "integration-secret"
	testJWTIssuer   = "budget-test"
	testPipelineKey = "pipeline-key"
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
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	engine := router.New(router.Options{
		JWTSecret:             testJWTSecret,
		JWTIssuer:             testJWTIssuer,
		PipelineAPIKey:        testPipelineKey,
		SeedDefaultCategories: true,

		Paychecks:         services.NewPaycheckService(db, lock.NewLocalLocker(), 30*time.Second),
		RecurringExpenses: services.NewRecurringExpenseService(db),
		Transactions:      services.NewTransactionService(db),
		Categories:        services.NewBudgetCategoryService(db),
		Reports:           services.NewReportService(db),
		Audit:             services.NewAuditService(db, events.NopPublisher{}),
	})

	return &testApp{DB: db, Router: engine}
}

// tokenFor mints an access token the way the identity provider would.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.IssueToken(testJWTSecret, testJWTIssuer, userID, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
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

// errorCode extracts error.code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got: %s", rec.Body.String())
	}
	return errObj["code"].(string)
}

// expectStatus fails the test when the response code differs.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int, step string) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("%s: expected %d, got %d: %s", step, want, rec.Code, rec.Body.String())
	}
}
