package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/calendar"
	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/recurrence"
	"github.com/wzsamuels/budget-project/internal/services"
)

// --- mock recurring expense service ---

type mockRecurringExpenseService struct {
	createFn   func(userID string, in services.RecurringExpenseInput) (*models.RecurringExpense, error)
	getFn      func(userID, expenseID string) (*models.RecurringExpense, error)
	listFn     func(userID string, activeOnly bool) ([]models.RecurringExpense, error)
	updateFn   func(userID, expenseID string, in services.RecurringExpenseInput) (*models.RecurringExpense, error)
	stopFn     func(userID, expenseID string, today calendar.Date) (*models.RecurringExpense, error)
	skipFn     func(userID, expenseID string) (*models.RecurringExpense, error)
	markPaidFn func(userID, expenseID string, amount *money.Money, date *calendar.Date) (*models.RecurringExpense, *models.Transaction, error)
	deleteFn   func(userID, expenseID string) error
}

func (m *mockRecurringExpenseService) CreateRecurringExpense(userID string, in services.RecurringExpenseInput) (*models.RecurringExpense, error) {
	if m.createFn != nil {
		return m.createFn(userID, in)
	}
	return &models.RecurringExpense{}, nil
}

func (m *mockRecurringExpenseService) GetRecurringExpense(userID, expenseID string) (*models.RecurringExpense, error) {
	if m.getFn != nil {
		return m.getFn(userID, expenseID)
	}
	return &models.RecurringExpense{}, nil
}

func (m *mockRecurringExpenseService) ListRecurringExpenses(userID string, activeOnly bool) ([]models.RecurringExpense, error) {
	if m.listFn != nil {
		return m.listFn(userID, activeOnly)
	}
	return []models.RecurringExpense{}, nil
}

func (m *mockRecurringExpenseService) UpdateRecurringExpense(userID, expenseID string, in services.RecurringExpenseInput) (*models.RecurringExpense, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, expenseID, in)
	}
	return &models.RecurringExpense{}, nil
}

func (m *mockRecurringExpenseService) StopRecurringExpense(userID, expenseID string, today calendar.Date) (*models.RecurringExpense, error) {
	if m.stopFn != nil {
		return m.stopFn(userID, expenseID, today)
	}
	return &models.RecurringExpense{}, nil
}

func (m *mockRecurringExpenseService) SkipRecurringExpense(userID, expenseID string) (*models.RecurringExpense, error) {
	if m.skipFn != nil {
		return m.skipFn(userID, expenseID)
	}
	return &models.RecurringExpense{}, nil
}

func (m *mockRecurringExpenseService) MarkRecurringExpensePaid(userID, expenseID string, amount *money.Money, date *calendar.Date) (*models.RecurringExpense, *models.Transaction, error) {
	if m.markPaidFn != nil {
		return m.markPaidFn(userID, expenseID, amount, date)
	}
	return &models.RecurringExpense{}, &models.Transaction{}, nil
}

func (m *mockRecurringExpenseService) DeleteRecurringExpense(userID, expenseID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, expenseID)
	}
	return nil
}

var _ services.RecurringExpenseServicer = (*mockRecurringExpenseService)(nil)

func setupRecurringExpenseRouter(handler *RecurringExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/recurring-expenses", handler.CreateRecurringExpense)
	auth.GET("/recurring-expenses", handler.ListRecurringExpenses)
	auth.GET("/recurring-expenses/:id", handler.GetRecurringExpense)
	auth.PUT("/recurring-expenses/:id", handler.UpdateRecurringExpense)
	auth.POST("/recurring-expenses/:id/stop", handler.StopRecurringExpense)
	auth.POST("/recurring-expenses/:id/skip", handler.SkipRecurringExpense)
	auth.POST("/recurring-expenses/:id/pay", handler.MarkRecurringExpensePaid)
	auth.DELETE("/recurring-expenses/:id", handler.DeleteRecurringExpense)
	return r
}

func TestRecurringExpenseHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.RecurringExpenseInput
		svc := &mockRecurringExpenseService{
			createFn: func(_ string, in services.RecurringExpenseInput) (*models.RecurringExpense, error) {
				got = in
				return &models.RecurringExpense{
					Base:        models.Base{ID: testOtherID},
					Description: in.Description,
					Amount:      in.Amount,
					Frequency:   in.Frequency,
					StartDate:   in.StartDate,
					NextDueDate: in.StartDate,
					IsActive:    true,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, audit))

		rec := doRequest(r, "POST", "/recurring-expenses",
			`{"description":"Rent","amount":150000,"frequency":"MONTHLY","start_date":"2024-01-31","end_date":"2024-12-31"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Frequency != recurrence.Monthly || got.EndDate == nil || *got.EndDate != calendar.MustParse("2024-12-31") {
			t.Errorf("unexpected service input %+v", got)
		}
		expense := parseJSON(t, rec)["recurring_expense"].(map[string]interface{})
		if expense["next_due_date"] != "2024-01-31" {
			t.Errorf("expected next due 2024-01-31, got %v", expense["next_due_date"])
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "CREATE_RECURRING_EXPENSE" {
			t.Errorf("expected CREATE_RECURRING_EXPENSE audit entry, got %v", actions)
		}
	})

	t.Run("returns 400 on weekly frequency", func(t *testing.T) {
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(&mockRecurringExpenseService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses",
			`{"description":"Gym","amount":5000,"frequency":"WEEKLY","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_FREQUENCY")
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(&mockRecurringExpenseService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses",
			`{"description":"Gym","amount":0,"frequency":"MONTHLY","start_date":"2024-01-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on invalid end date", func(t *testing.T) {
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(&mockRecurringExpenseService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses",
			`{"description":"Gym","amount":5000,"frequency":"YEARLY","start_date":"2024-01-01","end_date":"2025-13-01"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})
}

func TestRecurringExpenseHandler_List(t *testing.T) {
	t.Run("passes the active filter", func(t *testing.T) {
		var gotActive bool
		svc := &mockRecurringExpenseService{
			listFn: func(_ string, activeOnly bool) ([]models.RecurringExpense, error) {
				gotActive = activeOnly
				return []models.RecurringExpense{{Description: "Rent"}}, nil
			},
		}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/recurring-expenses?active=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !gotActive {
			t.Error("expected activeOnly to be true")
		}
		if items := parseJSON(t, rec)["recurring_expenses"].([]interface{}); len(items) != 1 {
			t.Errorf("expected 1 item, got %d", len(items))
		}
	})
}

func TestRecurringExpenseHandler_Stop(t *testing.T) {
	t.Run("uses the today override", func(t *testing.T) {
		var gotToday calendar.Date
		svc := &mockRecurringExpenseService{
			stopFn: func(_, id string, today calendar.Date) (*models.RecurringExpense, error) {
				gotToday = today
				return &models.RecurringExpense{Base: models.Base{ID: id}, EndDate: &today}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, audit))

		rec := doRequest(r, "POST", "/recurring-expenses/"+testOtherID+"/stop?today=2024-06-15", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotToday != calendar.MustParse("2024-06-15") {
			t.Errorf("expected today 2024-06-15, got %s", gotToday)
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "STOP_RECURRING_EXPENSE" {
			t.Errorf("expected STOP_RECURRING_EXPENSE audit entry, got %v", actions)
		}
	})
}

func TestRecurringExpenseHandler_Skip(t *testing.T) {
	t.Run("returns 409 for an inactive rule", func(t *testing.T) {
		svc := &mockRecurringExpenseService{
			skipFn: func(string, string) (*models.RecurringExpense, error) {
				return nil, apperrors.ErrRecurringExpenseInactive
			},
		}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses/"+testOtherID+"/skip", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RECURRING_EXPENSE_INACTIVE")
	})
}

func TestRecurringExpenseHandler_MarkPaid(t *testing.T) {
	t.Run("accepts an empty body", func(t *testing.T) {
		var gotAmount *money.Money
		var gotDate *calendar.Date
		called := false
		svc := &mockRecurringExpenseService{
			markPaidFn: func(_, id string, amount *money.Money, date *calendar.Date) (*models.RecurringExpense, *models.Transaction, error) {
				called = true
				gotAmount, gotDate = amount, date
				return &models.RecurringExpense{Base: models.Base{ID: id}},
					&models.Transaction{Base: models.Base{ID: testUserID}, Amount: 150000}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, audit))

		rec := doRequest(r, "POST", "/recurring-expenses/"+testOtherID+"/pay", "")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !called || gotAmount != nil || gotDate != nil {
			t.Errorf("expected no overrides, got amount=%v date=%v", gotAmount, gotDate)
		}
		result := parseJSON(t, rec)
		if _, ok := result["transaction"]; !ok {
			t.Error("expected transaction in response")
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "PAY_RECURRING_EXPENSE" {
			t.Errorf("expected PAY_RECURRING_EXPENSE audit entry, got %v", actions)
		}
	})

	t.Run("passes amount and date overrides", func(t *testing.T) {
		var gotAmount *money.Money
		var gotDate *calendar.Date
		svc := &mockRecurringExpenseService{
			markPaidFn: func(_, _ string, amount *money.Money, date *calendar.Date) (*models.RecurringExpense, *models.Transaction, error) {
				gotAmount, gotDate = amount, date
				return &models.RecurringExpense{}, &models.Transaction{}, nil
			},
		}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses/"+testOtherID+"/pay", `{"amount":12345,"date":"2024-02-03"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotAmount == nil || *gotAmount != 12345 {
			t.Errorf("expected amount 12345, got %v", gotAmount)
		}
		if gotDate == nil || *gotDate != calendar.MustParse("2024-02-03") {
			t.Errorf("expected date 2024-02-03, got %v", gotDate)
		}
	})

	t.Run("returns 400 on negative amount", func(t *testing.T) {
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(&mockRecurringExpenseService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses/"+testOtherID+"/pay", `{"amount":-5}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockRecurringExpenseService{
			markPaidFn: func(string, string, *money.Money, *calendar.Date) (*models.RecurringExpense, *models.Transaction, error) {
				return nil, nil, apperrors.ErrRecurringExpenseNotFound
			},
		}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/recurring-expenses/"+testOtherID+"/pay", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RECURRING_EXPENSE_NOT_FOUND")
	})
}

func TestRecurringExpenseHandler_Delete(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotID string
		svc := &mockRecurringExpenseService{
			deleteFn: func(_, id string) error {
				gotID = id
				return nil
			},
		}
		r := setupRecurringExpenseRouter(NewRecurringExpenseHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/recurring-expenses/"+testOtherID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != testOtherID {
			t.Errorf("expected id %s, got %s", testOtherID, gotID)
		}
	})
}
