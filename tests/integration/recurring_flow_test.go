package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRecurringExpenseFlow_PaySkipStop(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "user-recurring")

	// Step 1: Create a category to file the expense under
	rec := app.request("POST", "/api/v1/categories",
		`{"name":"Housing","type":"FIXED","monthly_budget":150000}`, token)
	expectStatus(t, rec, http.StatusCreated, "create category")
	categoryID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	// Step 2: Create a monthly rule
	rec = app.request("POST", "/api/v1/recurring-expenses",
		fmt.Sprintf(`{"description":"Rent","amount":150000,"frequency":"MONTHLY","start_date":"2024-01-01","category_id":%q}`,
			categoryID), token)
	expectStatus(t, rec, http.StatusCreated, "create recurring expense")
	rule := parseJSON(t, rec)["recurring_expense"].(map[string]interface{})
	ruleID := rule["id"].(string)
	if rule["next_due_date"] != "2024-01-01" || rule["is_active"] != true {
		t.Fatalf("unexpected new rule: %v", rule)
	}

	// Step 3: Pay the current occurrence with no overrides
	rec = app.request("POST", "/api/v1/recurring-expenses/"+ruleID+"/pay", "", token)
	expectStatus(t, rec, http.StatusCreated, "pay recurring expense")
	paid := parseJSON(t, rec)
	payment := paid["transaction"].(map[string]interface{})
	if payment["date"] != "2024-01-01" || payment["amount"].(float64) != 150000 || payment["type"] != "EXPENSE" {
		t.Errorf("unexpected payment: %v", payment)
	}
	if payment["category_id"] != categoryID {
		t.Errorf("expected payment to inherit category %s, got %v", categoryID, payment["category_id"])
	}
	if next := paid["recurring_expense"].(map[string]interface{})["next_due_date"]; next != "2024-02-01" {
		t.Errorf("expected next due 2024-02-01, got %v", next)
	}

	// Step 4: The payment is linked to the rule
	rec = app.request("GET", "/api/v1/transactions?recurring_expense_id="+ruleID, "", token)
	expectStatus(t, rec, http.StatusOK, "list payments")
	if total := parseJSON(t, rec)["total_items"].(float64); total != 1 {
		t.Errorf("expected 1 linked transaction, got %.0f", total)
	}

	// Step 5: The paid occurrence is not counted twice
	rec = app.request("GET", "/api/v1/reports/dashboard?today=2024-01-31", "", token)
	expectStatus(t, rec, http.StatusOK, "dashboard")
	report := parseJSON(t, rec)["report"].(map[string]interface{})
	if report["expenses_ytd"].(float64) != 150000 {
		t.Errorf("expected expenses_ytd 150000, got %v", report["expenses_ytd"])
	}
	if report["month_expenses"].(float64) != 150000 {
		t.Errorf("expected month_expenses 150000, got %v", report["month_expenses"])
	}

	// Step 6: Skip February
	rec = app.request("POST", "/api/v1/recurring-expenses/"+ruleID+"/skip", "", token)
	expectStatus(t, rec, http.StatusOK, "skip recurring expense")
	if next := parseJSON(t, rec)["recurring_expense"].(map[string]interface{})["next_due_date"]; next != "2024-03-01" {
		t.Errorf("expected next due 2024-03-01 after skip, got %v", next)
	}

	// Step 7: Pay March with an override amount and date
	rec = app.request("POST", "/api/v1/recurring-expenses/"+ruleID+"/pay",
		`{"amount":155000,"date":"2024-03-03"}`, token)
	expectStatus(t, rec, http.StatusCreated, "pay with overrides")
	payment = parseJSON(t, rec)["transaction"].(map[string]interface{})
	if payment["amount"].(float64) != 155000 || payment["date"] != "2024-03-03" {
		t.Errorf("expected overrides to apply, got %v", payment)
	}

	// Step 8: Stop the rule; further payments are refused
	rec = app.request("POST", "/api/v1/recurring-expenses/"+ruleID+"/stop?today=2024-03-15", "", token)
	expectStatus(t, rec, http.StatusOK, "stop recurring expense")
	stopped := parseJSON(t, rec)["recurring_expense"].(map[string]interface{})
	if stopped["is_active"] != false || stopped["end_date"] != "2024-03-15" {
		t.Errorf("unexpected stopped rule: %v", stopped)
	}

	rec = app.request("POST", "/api/v1/recurring-expenses/"+ruleID+"/pay", "", token)
	expectStatus(t, rec, http.StatusConflict, "pay stopped rule")
	if code := errorCode(t, rec); code != "RECURRING_EXPENSE_INACTIVE" {
		t.Errorf("expected RECURRING_EXPENSE_INACTIVE, got %s", code)
	}

	rec = app.request("GET", "/api/v1/recurring-expenses?active=true", "", token)
	expectStatus(t, rec, http.StatusOK, "list active rules")
	if rules := parseJSON(t, rec)["recurring_expenses"].([]interface{}); len(rules) != 0 {
		t.Errorf("expected no active rules, got %d", len(rules))
	}

	// Step 9: Deleting the rule keeps its payments
	rec = app.request("DELETE", "/api/v1/recurring-expenses/"+ruleID, "", token)
	expectStatus(t, rec, http.StatusOK, "delete recurring expense")

	rec = app.request("GET", "/api/v1/transactions?from=2024-01-01&to=2024-12-31", "", token)
	expectStatus(t, rec, http.StatusOK, "list transactions")
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 2 {
		t.Fatalf("expected 2 transactions to survive, got %v", list["total_items"])
	}
	for _, item := range list["data"].([]interface{}) {
		if ref, ok := item.(map[string]interface{})["recurring_expense_id"]; ok {
			t.Errorf("expected rule reference to be cleared, got %v", ref)
		}
	}
}

func TestRecurringExpenseFlow_RejectsUnsupportedFrequency(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "user-frequency")

	rec := app.request("POST", "/api/v1/recurring-expenses",
		`{"description":"Coffee","amount":500,"frequency":"WEEKLY","start_date":"2024-01-01"}`, token)
	expectStatus(t, rec, http.StatusBadRequest, "create weekly rule")
	if code := errorCode(t, rec); code != "INVALID_FREQUENCY" {
		t.Errorf("expected INVALID_FREQUENCY, got %s", code)
	}
}
