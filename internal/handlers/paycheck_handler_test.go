package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/calendar"
	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/pagination"
	"github.com/wzsamuels/budget-project/internal/recurrence"
	"github.com/wzsamuels/budget-project/internal/services"
)

// --- mock paycheck service ---

type mockPaycheckService struct {
	createPaycheckFn  func(userID string, in services.PaycheckInput) (*models.Paycheck, error)
	getPaycheckFn     func(userID, paycheckID string) (*models.Paycheck, error)
	listPaychecksFn   func(userID string, year int, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error)
	updatePaycheckFn  func(userID, paycheckID string, in services.PaycheckInput) (*models.Paycheck, error)
	deletePaycheckFn  func(userID, paycheckID string) error
	projectPaycheckFn func(ctx context.Context, userID, paycheckID string, f recurrence.Frequency, today calendar.Date) ([]models.Paycheck, error)
}

func (m *mockPaycheckService) CreatePaycheck(userID string, in services.PaycheckInput) (*models.Paycheck, error) {
	if m.createPaycheckFn != nil {
		return m.createPaycheckFn(userID, in)
	}
	return &models.Paycheck{}, nil
}

func (m *mockPaycheckService) GetPaycheck(userID, paycheckID string) (*models.Paycheck, error) {
	if m.getPaycheckFn != nil {
		return m.getPaycheckFn(userID, paycheckID)
	}
	return &models.Paycheck{}, nil
}

func (m *mockPaycheckService) ListPaychecks(userID string, year int, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error) {
	if m.listPaychecksFn != nil {
		return m.listPaychecksFn(userID, year, page)
	}
	resp := pagination.NewPageResponse([]models.Paycheck{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockPaycheckService) UpdatePaycheck(userID, paycheckID string, in services.PaycheckInput) (*models.Paycheck, error) {
	if m.updatePaycheckFn != nil {
		return m.updatePaycheckFn(userID, paycheckID, in)
	}
	return &models.Paycheck{}, nil
}

func (m *mockPaycheckService) DeletePaycheck(userID, paycheckID string) error {
	if m.deletePaycheckFn != nil {
		return m.deletePaycheckFn(userID, paycheckID)
	}
	return nil
}

func (m *mockPaycheckService) ProjectPaycheck(ctx context.Context, userID, paycheckID string, f recurrence.Frequency, today calendar.Date) ([]models.Paycheck, error) {
	if m.projectPaycheckFn != nil {
		return m.projectPaycheckFn(ctx, userID, paycheckID, f, today)
	}
	return []models.Paycheck{}, nil
}

var _ services.PaycheckServicer = (*mockPaycheckService)(nil)

func setupPaycheckRouter(handler *PaycheckHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/paychecks", handler.CreatePaycheck)
	auth.GET("/paychecks", handler.ListPaychecks)
	auth.GET("/paychecks/:id", handler.GetPaycheck)
	auth.PUT("/paychecks/:id", handler.UpdatePaycheck)
	auth.DELETE("/paychecks/:id", handler.DeletePaycheck)
	auth.POST("/paychecks/:id/project", handler.ProjectPaycheck)
	return r
}

const paycheckBody = `{
	"employer_name": "Acme Corp",
	"pay_date": "2024-03-15",
	"gross_amount": 200000,
	"deductions": [
		{"name": "Federal Income Tax", "amount": 20000, "category": "TAX"},
		{"name": "401k", "amount": 10000, "category": "RETIREMENT", "is_pre_tax": true}
	]
}`

func TestPaycheckHandler_CreatePaycheck(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.PaycheckInput
		svc := &mockPaycheckService{
			createPaycheckFn: func(userID string, in services.PaycheckInput) (*models.Paycheck, error) {
				got = in
				return &models.Paycheck{
					Base:         models.Base{ID: testOtherID},
					UserID:       userID,
					EmployerName: in.EmployerName,
					PayDate:      in.PayDate,
					GrossAmount:  in.GrossAmount,
					NetAmount:    170000,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, audit))

		rec := doRequest(r, "POST", "/paychecks", paycheckBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.PayDate != calendar.MustParse("2024-03-15") || len(got.Deductions) != 2 {
			t.Errorf("unexpected service input %+v", got)
		}
		if !got.Deductions[1].IsPreTax || got.Deductions[1].Category != models.DeductionCategoryRetirement {
			t.Errorf("deduction fields not carried through: %+v", got.Deductions[1])
		}

		p := parseJSON(t, rec)["paycheck"].(map[string]interface{})
		if p["net_amount"].(float64) != 170000 {
			t.Errorf("expected net 170000, got %v", p["net_amount"])
		}
		if p["pay_date"] != "2024-03-15" {
			t.Errorf("expected ISO pay date, got %v", p["pay_date"])
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "CREATE_PAYCHECK" {
			t.Errorf("expected CREATE_PAYCHECK audit entry, got %v", actions)
		}
	})

	t.Run("returns 400 on invalid date", func(t *testing.T) {
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/paychecks",
			`{"employer_name":"Acme","pay_date":"2024-02-30","gross_amount":1000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})

	t.Run("returns 400 on unknown deduction category", func(t *testing.T) {
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/paychecks",
			`{"employer_name":"Acme","pay_date":"2024-03-15","gross_amount":1000,"deductions":[{"name":"Bonus","amount":10,"category":"BONUS"}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 when deductions exceed gross", func(t *testing.T) {
		svc := &mockPaycheckService{
			createPaycheckFn: func(string, services.PaycheckInput) (*models.Paycheck, error) {
				return nil, apperrors.ErrDeductionsExceedGross
			},
		}
		audit := &mockAuditService{}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, audit))

		rec := doRequest(r, "POST", "/paychecks", paycheckBody)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DEDUCTIONS_EXCEED_GROSS")
		if len(audit.actions()) != 0 {
			t.Error("failed writes should not be audited")
		}
	})
}

func TestPaycheckHandler_ListPaychecks(t *testing.T) {
	t.Run("passes year and page", func(t *testing.T) {
		var gotYear int
		var gotPage pagination.PageRequest
		svc := &mockPaycheckService{
			listPaychecksFn: func(_ string, year int, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error) {
				gotYear, gotPage = year, page
				resp := pagination.NewPageResponse([]models.Paycheck{}, 2, 5, 0)
				return &resp, nil
			},
		}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/paychecks?year=2024&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotYear != 2024 || gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("unexpected arguments year=%d page=%+v", gotYear, gotPage)
		}
	})

	t.Run("returns 400 on page size over limit", func(t *testing.T) {
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/paychecks?page_size=500", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPaycheckHandler_GetPaycheck(t *testing.T) {
	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/paychecks/42", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockPaycheckService{
			getPaycheckFn: func(string, string) (*models.Paycheck, error) {
				return nil, apperrors.ErrPaycheckNotFound
			},
		}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/paychecks/"+testOtherID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PAYCHECK_NOT_FOUND")
	})
}

func TestPaycheckHandler_UpdatePaycheck(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotID string
		svc := &mockPaycheckService{
			updatePaycheckFn: func(_ string, id string, in services.PaycheckInput) (*models.Paycheck, error) {
				gotID = id
				return &models.Paycheck{Base: models.Base{ID: id}, PayDate: in.PayDate}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, audit))

		rec := doRequest(r, "PUT", "/paychecks/"+testOtherID, paycheckBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != testOtherID {
			t.Errorf("expected id %s, got %s", testOtherID, gotID)
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "UPDATE_PAYCHECK" {
			t.Errorf("expected UPDATE_PAYCHECK audit entry, got %v", actions)
		}
	})
}

func TestPaycheckHandler_DeletePaycheck(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, audit))

		rec := doRequest(r, "DELETE", "/paychecks/"+testOtherID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if actions := audit.actions(); len(actions) != 1 || actions[0] != "DELETE_PAYCHECK" {
			t.Errorf("expected DELETE_PAYCHECK audit entry, got %v", actions)
		}
	})
}

func TestPaycheckHandler_ProjectPaycheck(t *testing.T) {
	t.Run("returns 201 with projected paychecks", func(t *testing.T) {
		var gotFreq recurrence.Frequency
		var gotToday calendar.Date
		svc := &mockPaycheckService{
			projectPaycheckFn: func(_ context.Context, _, _ string, f recurrence.Frequency, today calendar.Date) ([]models.Paycheck, error) {
				gotFreq, gotToday = f, today
				return []models.Paycheck{{Projected: true}, {Projected: true}}, nil
			},
		}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/paychecks/"+testOtherID+"/project?today=2024-11-30", `{"frequency":"BIWEEKLY"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFreq != recurrence.Biweekly || gotToday != calendar.MustParse("2024-11-30") {
			t.Errorf("unexpected arguments %s %s", gotFreq, gotToday)
		}
		if parseJSON(t, rec)["count"].(float64) != 2 {
			t.Error("expected count 2")
		}
	})

	t.Run("returns 400 on unknown frequency", func(t *testing.T) {
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/paychecks/"+testOtherID+"/project", `{"frequency":"DAILY"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_FREQUENCY")
	})

	t.Run("returns 400 on invalid today", func(t *testing.T) {
		r := setupPaycheckRouter(NewPaycheckHandler(&mockPaycheckService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/paychecks/"+testOtherID+"/project?today=11/30/2024", `{"frequency":"WEEKLY"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})

	t.Run("returns 409 while another projection runs", func(t *testing.T) {
		svc := &mockPaycheckService{
			projectPaycheckFn: func(context.Context, string, string, recurrence.Frequency, calendar.Date) ([]models.Paycheck, error) {
				return nil, apperrors.ErrProjectionInProgress
			},
		}
		r := setupPaycheckRouter(NewPaycheckHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/paychecks/"+testOtherID+"/project", `{"frequency":"WEEKLY"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROJECTION_IN_PROGRESS")
	})
}
