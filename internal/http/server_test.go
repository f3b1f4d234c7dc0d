package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"hushbudget/internal/core"
	"hushbudget/internal/kv/memory"
	"hushbudget/internal/ledger"
	"hushbudget/internal/prefs"
	"hushbudget/internal/services"
)

func newTestServer() *Server {
	kvs := memory.New()
	svc := services.NewLedgerService(ledger.NewStore(kvs), nil)
	return NewServer(":0", svc, prefs.NewThemeStore(kvs))
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)
	return w
}

func do(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)
	return w
}

func createTx(t *testing.T, s *Server, desc, amount, category, date string) {
	t.Helper()
	w := postForm(t, s, "/transactions", url.Values{
		"description": {desc},
		"amount":      {amount},
		"category":    {category},
		"date":        {date},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create %q: status %d body %s", desc, w.Code, w.Body.String())
	}
}

func TestCreateAndListTransactions(t *testing.T) {
	s := newTestServer()
	createTx(t, s, "Salary", "2500", "Other", "2024-01-01")
	createTx(t, s, "Groceries", "-52.75", "Food", "2024-01-05")

	w := do(s, http.MethodGet, "/transactions")
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var resp struct {
		Transactions []core.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(resp.Transactions))
	}
	// Date descending.
	if resp.Transactions[0].Description != "Groceries" {
		t.Fatalf("expected newest first, got %q", resp.Transactions[0].Description)
	}
}

func TestCreateRejectedWithSingleNotice(t *testing.T) {
	s := newTestServer()
	cases := []url.Values{
		{"description": {"  "}, "amount": {"10"}, "category": {"Food"}, "date": {"2024-01-05"}},
		{"description": {"a"}, "amount": {"abc"}, "category": {"Food"}, "date": {"2024-01-05"}},
		{"description": {"a"}, "amount": {"10"}, "category": {"Food"}, "date": {""}},
	}
	for i, form := range cases {
		w := postForm(t, s, "/transactions", form)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("case %d: status %d", i, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("case %d decode: %v", i, err)
		}
		if resp["error"] != fillAllFieldsNotice {
			t.Fatalf("case %d: expected consolidated notice, got %q", i, resp["error"])
		}
	}

	// Nothing entered the store.
	w := do(s, http.MethodGet, "/transactions")
	if !strings.Contains(w.Body.String(), `"transactions":[]`) {
		t.Fatalf("store should be untouched, got %s", w.Body.String())
	}
}

func TestCreateJSONBody(t *testing.T) {
	s := newTestServer()
	body := `{"description":"Cinema","amount":-12,"category":"Entertainment","date":"2024-02-10"}`
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"Cinema"`) {
		t.Fatalf("response missing record: %s", w.Body.String())
	}
}

func TestDeleteTransactionAndMiss(t *testing.T) {
	s := newTestServer()
	createTx(t, s, "Coffee", "-4", "Food", "2024-01-05")

	var listResp struct {
		Transactions []core.Transaction `json:"transactions"`
	}
	w := do(s, http.MethodGet, "/transactions")
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := listResp.Transactions[0].ID

	// Miss first: silently ignored.
	w = do(s, http.MethodDelete, "/transactions/999")
	if w.Code != http.StatusOK {
		t.Fatalf("delete miss: status %d", w.Code)
	}

	w = do(s, http.MethodDelete, "/transactions/"+strconv.FormatInt(id, 10))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d", w.Code)
	}

	w = do(s, http.MethodGet, "/transactions")
	if !strings.Contains(w.Body.String(), `"transactions":[]`) {
		t.Fatalf("record not deleted: %s", w.Body.String())
	}
}

func TestSummary(t *testing.T) {
	s := newTestServer()
	createTx(t, s, "Salary", "100", "Other", "2024-01-05")
	createTx(t, s, "Groceries", "-30", "Food", "2024-01-20")
	createTx(t, s, "Interest", "10", "Other", "2024-02-01")

	w := do(s, http.MethodGet, "/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("summary: status %d", w.Code)
	}
	var resp struct {
		Balance        float64            `json:"balance"`
		BalanceDisplay string             `json:"balance_display"`
		CategoryTotals map[string]float64 `json:"category_totals"`
		MonthlyBalance map[string]float64 `json:"monthly_balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Balance != 80 {
		t.Fatalf("expected balance 80, got %v", resp.Balance)
	}
	if resp.BalanceDisplay != "₹80.00" {
		t.Fatalf("unexpected balance display %q", resp.BalanceDisplay)
	}
	if resp.CategoryTotals["Food"] != 30 {
		t.Fatalf("expected Food total 30, got %v", resp.CategoryTotals)
	}
	if resp.MonthlyBalance["2024-01"] != 70 || resp.MonthlyBalance["2024-02"] != 80 {
		t.Fatalf("unexpected monthly balances %v", resp.MonthlyBalance)
	}
}

func TestExport(t *testing.T) {
	s := newTestServer()
	createTx(t, s, `He said "hi"`, "-1", "Other", "2024-01-05")

	w := do(s, http.MethodGet, "/export")
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "transactions.csv") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "id,description,amount,category,date\n") {
		t.Fatalf("missing header row: %q", body)
	}
	if !strings.Contains(body, `"He said ""hi"""`) {
		t.Fatalf("quotes not doubled: %q", body)
	}
}

func TestExportEmptyIsBlocked(t *testing.T) {
	s := newTestServer()
	w := do(s, http.MethodGet, "/export")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if strings.Contains(w.Header().Get("Content-Type"), "text/csv") {
		t.Fatal("no file content expected for empty export")
	}
}

func TestThemeEndpoint(t *testing.T) {
	s := newTestServer()

	w := do(s, http.MethodGet, "/theme")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "light") {
		t.Fatalf("default theme: %d %s", w.Code, w.Body.String())
	}

	w = postForm(t, s, "/theme", url.Values{"theme": {"dark"}})
	if w.Code != http.StatusOK {
		t.Fatalf("set theme: %d %s", w.Code, w.Body.String())
	}

	w = do(s, http.MethodGet, "/theme")
	if !strings.Contains(w.Body.String(), "dark") {
		t.Fatalf("theme not saved: %s", w.Body.String())
	}

	w = postForm(t, s, "/theme", url.Values{"theme": {"sepia"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid theme should be rejected, got %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer()
	if w := do(s, http.MethodGet, "/healthz"); w.Code != http.StatusOK {
		t.Fatalf("healthz: %d", w.Code)
	}
	if w := do(s, http.MethodGet, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz: %d", w.Code)
	}
}
