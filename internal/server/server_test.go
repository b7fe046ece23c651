package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/dataset"
	"github.com/mreyes/finboard/internal/logging"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	bundle := dataset.Load(logging.Nop(), dataset.Options{Seed: 1})
	return New(logging.Nop(), config.Default(), bundle, "test-secret")
}

func do(t *testing.T, s *Server, method, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echoContentType, "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Status string `json:"status"`
		RunID  string `json:"run_id"`
	}
	decode(t, rec, &body)
	if body.Status != "ok" || body.RunID == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestDashboard(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/dashboard", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var snap struct {
		Departments []struct {
			Department string `json:"department"`
		} `json:"departments"`
		Trend []any `json:"trend"`
	}
	decode(t, rec, &snap)
	if len(snap.Departments) != 4 {
		t.Errorf("got %d departments, want 4", len(snap.Departments))
	}
	if len(snap.Trend) == 0 {
		t.Error("trend should not be empty")
	}
}

func TestVarianceValidation(t *testing.T) {
	s := testServer(t)

	if rec := do(t, s, http.MethodGet, "/api/variance", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing department: status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/variance?department=Radiology", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown department: status = %d, want 404", rec.Code)
	}
}

func TestVariance(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/variance?department=Cardiology", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Department string `json:"department"`
		Analyses   []struct {
			GLDescription string `json:"gl_description"`
			Severity      string `json:"severity"`
			Narrative     string `json:"narrative"`
		} `json:"analyses"`
	}
	decode(t, rec, &body)
	if len(body.Analyses) != 4 {
		t.Fatalf("got %d analyses, want 4 GL lines", len(body.Analyses))
	}
	for _, a := range body.Analyses {
		if a.Narrative == "" || a.Severity == "" {
			t.Errorf("%s: incomplete analysis %+v", a.GLDescription, a)
		}
	}
}

func TestForecastNeutralDrivers(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodPost, "/api/forecast", `{"department":"Cardiology","drivers":{}}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Result struct {
			Revenue         float64 `json:"revenue"`
			BaselineRevenue float64 `json:"baseline_revenue"`
			Cost            float64 `json:"cost"`
			BaselineCost    float64 `json:"baseline_cost"`
		} `json:"result"`
		Projection []any `json:"projection"`
	}
	decode(t, rec, &body)
	if math.Abs(body.Result.Revenue-body.Result.BaselineRevenue) > 1e-6 {
		t.Errorf("neutral drivers: revenue %v != baseline %v", body.Result.Revenue, body.Result.BaselineRevenue)
	}
	if math.Abs(body.Result.Cost-body.Result.BaselineCost) > 1e-6 {
		t.Errorf("neutral drivers: cost %v != baseline %v", body.Result.Cost, body.Result.BaselineCost)
	}
	if len(body.Projection) != 12 {
		t.Errorf("got %d projection points, want 12", len(body.Projection))
	}
}

func TestForecastValidation(t *testing.T) {
	s := testServer(t)

	if rec := do(t, s, http.MethodPost, "/api/forecast", `{"drivers":{}}`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing department: status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/forecast", `{"department":"Radiology"}`, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown department: status = %d, want 404", rec.Code)
	}
}

func TestScorecard(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/scorecard", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cards []struct {
		Department string  `json:"department"`
		Composite  float64 `json:"composite"`
		Rank       int     `json:"rank"`
	}
	decode(t, rec, &cards)
	if len(cards) != 4 {
		t.Fatalf("got %d cards, want 4", len(cards))
	}
	for i, c := range cards {
		if c.Rank != i+1 {
			t.Errorf("card %d Rank = %d", i, c.Rank)
		}
		if i > 0 && cards[i-1].Composite < c.Composite {
			t.Errorf("cards not sorted by composite at %d", i)
		}
	}
}

func TestEquity(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/equity/Primary%20Care", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		BaseBudget   float64 `json:"base_monthly_budget"`
		EquityBudget float64 `json:"equity_budget"`
		Adjustments  []any   `json:"adjustments"`
	}
	decode(t, rec, &body)
	if body.EquityBudget <= body.BaseBudget {
		t.Errorf("Primary Care profile should earn adjustments: base %v, equity %v", body.BaseBudget, body.EquityBudget)
	}

	if rec := do(t, s, http.MethodGet, "/api/equity/Radiology", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown department: status = %d, want 404", rec.Code)
	}
}

func TestInitiatives(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/initiatives", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Total       int   `json:"total"`
		Active      int   `json:"active"`
		Initiatives []any `json:"initiatives"`
	}
	decode(t, rec, &body)
	if body.Total != 4 || len(body.Initiatives) != 4 {
		t.Errorf("portfolio = %+v, want 4 initiatives", body)
	}
}

func TestDatasets(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodGet, "/api/datasets", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report struct {
		Slots []struct {
			Dataset string `json:"dataset"`
			Source  string `json:"source"`
		} `json:"slots"`
	}
	decode(t, rec, &report)
	if len(report.Slots) != 6 {
		t.Errorf("got %d slots, want 6", len(report.Slots))
	}
}

func TestChangeRequestLifecycle(t *testing.T) {
	s := testServer(t)

	body := `{"department":"Cardiology","request_type":"Add FTE","details":"Add 1.0 RN","justification":"Volume growth","effective_date":"2024-09-01T00:00:00Z"}`
	rec := do(t, s, http.MethodPost, "/api/change-requests", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var stored struct {
		ID     string `json:"request_id"`
		Status string `json:"status"`
	}
	decode(t, rec, &stored)
	if stored.ID != "CR-0001" || stored.Status != "Pending" {
		t.Errorf("stored = %+v", stored)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("submission should set a session cookie")
	}

	rec = do(t, s, http.MethodGet, "/api/change-requests", "", cookies)
	var list struct {
		Requests []any `json:"requests"`
		Counts   struct {
			Total   int `json:"total"`
			Pending int `json:"pending"`
		} `json:"counts"`
	}
	decode(t, rec, &list)
	if len(list.Requests) != 1 || list.Counts.Pending != 1 {
		t.Errorf("list = %+v", list)
	}

	rec = do(t, s, http.MethodPatch, "/api/change-requests/CR-0001", `{"status":"Approved"}`, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("review: status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &stored)
	if stored.Status != "Approved" {
		t.Errorf("Status = %q, want Approved", stored.Status)
	}
}

func TestChangeRequestSessionIsolation(t *testing.T) {
	s := testServer(t)

	body := `{"department":"Cardiology","request_type":"Other","details":"Shift budget","justification":"Realignment"}`
	if rec := do(t, s, http.MethodPost, "/api/change-requests", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("submit: status = %d", rec.Code)
	}

	// A request with no session cookie sees an empty log.
	rec := do(t, s, http.MethodGet, "/api/change-requests", "", nil)
	var list struct {
		Requests []any `json:"requests"`
	}
	decode(t, rec, &list)
	if len(list.Requests) != 0 {
		t.Errorf("fresh session should see an empty log, got %d requests", len(list.Requests))
	}
}

func TestChangeRequestValidation(t *testing.T) {
	s := testServer(t)

	cases := []string{
		`{"request_type":"Add FTE","details":"x","justification":"y"}`,
		`{"department":"Radiology","request_type":"Add FTE","details":"x","justification":"y"}`,
		`{"department":"Cardiology","request_type":"Reorg","details":"x","justification":"y"}`,
		`{"department":"Cardiology","request_type":"Add FTE","details":"","justification":"y"}`,
		`{"department":"Cardiology","request_type":"Add FTE","details":"x","justification":""}`,
	}
	for i, body := range cases {
		if rec := do(t, s, http.MethodPost, "/api/change-requests", body, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rec.Code)
		}
	}

	if rec := do(t, s, http.MethodPatch, "/api/change-requests/CR-0001", `{"status":"Escalated"}`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodPatch, "/api/change-requests/CR-9999", `{"status":"Approved"}`, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}
}
