package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wzsamuels/budget-project/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// errorObject decodes the {"error": {...}} envelope written by writeError.
func errorObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body struct {
		Error map[string]interface{} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	if body.Error == nil {
		t.Fatalf("expected error object in %s", rec.Body.String())
	}
	return body.Error
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "app_error", err: apperrors.ErrPaycheckNotFound, wantStatus: http.StatusNotFound, wantCode: "PAYCHECK_NOT_FOUND"},
		{name: "wrapped_app_error", err: apperrors.Wrap(apperrors.ErrInternalServer, errors.New("db down")), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
		{name: "plain_error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/fail", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			errObj := errorObject(t, rec)
			if code, _ := errObj["code"].(string); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if msg, _ := errObj["message"].(string); msg == "boom" || msg == "db down" {
				t.Errorf("internal error leaked: %q", msg)
			}
		})
	}
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatal("expected a request id header")
		}
	})

	t.Run("propagated", func(t *testing.T) {
		const id = "018f3a52-8e4c-7cc1-9d1e-3b5e0e6f2a10"
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set("X-Request-ID", id)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if got := rec.Header().Get("X-Request-ID"); got != id {
			t.Errorf("request id = %q, want %q", got, id)
		}
	})

	t.Run("garbage_replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set("X-Request-ID", "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if got := rec.Header().Get("X-Request-ID"); got == "<script>" || got == "" {
			t.Errorf("unexpected request id %q", got)
		}
	})
}
