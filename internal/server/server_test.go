package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
	"go.uber.org/zap"
)

const resaleBody = `{
  "objective": "resell",
  "appraisalValue": 250000,
  "auctionValue": 200000,
  "estimatedResaleValue": 300000
}`

const rentalBody = `{
  "objective": "rent",
  "appraisalValue": 250000,
  "auctionValue": 180000,
  "financed": true,
  "annualInterestRate": 10.5,
  "downPayment": 36000,
  "financingTermYears": 30,
  "monthlyRent": 1800,
  "condoFee": 300,
  "otherMonthlyExpenses": 50
}`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), nil, constants.DefaultMaxUploadSizeBytes, "test")
}

func postCalculate(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleCalculateSuccess(t *testing.T) {
	rr := postCalculate(t, newTestHandler(t), resaleBody)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.RequestID == "" {
		t.Fatal("expected request id in response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
	if resp.Input.ITBIPercent != constants.DefaultITBIPercent {
		t.Fatalf("expected default ITBI %v, got %v", constants.DefaultITBIPercent, resp.Input.ITBIPercent)
	}
	if resp.Input.AnalysisPeriodMonths != constants.DefaultAnalysisPeriodMonths {
		t.Fatalf("expected default analysis period, got %d", resp.Input.AnalysisPeriodMonths)
	}
	if !mathutil.WithinTolerance(resp.Result.TotalAcquisitionCost, 216000, constants.CurrencyTolerance) {
		t.Fatalf("expected total acquisition cost 216000, got %v", resp.Result.TotalAcquisitionCost)
	}
	if resp.Result.NetGain == nil || !mathutil.WithinTolerance(*resp.Result.NetGain, 71400, constants.CurrencyTolerance) {
		t.Fatalf("expected net gain 71400, got %v", resp.Result.NetGain)
	}
	if resp.Formatted["netGain"] != "R$ 71.400,00" {
		t.Fatalf("expected formatted net gain, got %q", resp.Formatted["netGain"])
	}
	if len(resp.Result.Alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", resp.Result.Alerts)
	}
}

func TestHandleCalculateAlerts(t *testing.T) {
	rr := postCalculate(t, newTestHandler(t), rentalBody)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	want := []string{
		calculator.TitleLowRentalReturn,
		calculator.TitleNegativeCashFlow,
		calculator.TitleGoodOpportunity,
	}
	if len(resp.Result.Alerts) != len(want) {
		t.Fatalf("expected %d alerts, got %+v", len(want), resp.Result.Alerts)
	}
	for i, title := range want {
		if resp.Result.Alerts[i].Title != title {
			t.Errorf("alert %d = %q, want %q", i, resp.Result.Alerts[i].Title, title)
		}
	}
	if resp.Result.FirstInstallment == nil {
		t.Fatal("expected financing figures in response")
	}
}

func TestHandleCalculateSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", `{"objective":`},
		{"not an object", `[1, 2, 3]`},
		{"unknown objective", `{"objective": "flip", "appraisalValue": 1, "auctionValue": 1}`},
		{"missing auction value", `{"objective": "own_use", "appraisalValue": 1}`},
		{"negative amount", `{"objective": "own_use", "appraisalValue": 1, "auctionValue": 1, "condoFee": -5}`},
		{"unknown field", `{"objective": "own_use", "appraisalValue": 1, "auctionValue": 1, "color": "blue"}`},
		{"resale without resale value", `{"objective": "resell", "appraisalValue": 1, "auctionValue": 1}`},
		{"rent without rent", `{"objective": "rent", "appraisalValue": 1, "auctionValue": 1}`},
		{"financed without rate", `{"objective": "own_use", "appraisalValue": 1, "auctionValue": 1, "financed": true}`},
		{"fractional term", `{"objective": "own_use", "appraisalValue": 1, "auctionValue": 1, "financingTermYears": 2.5}`},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postCalculate(t, handler, tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] == "" {
				t.Fatal("expected error message in response")
			}
		})
	}
}

func TestHandleCalculateBusinessValidation(t *testing.T) {
	body := `{
  "objective": "own_use",
  "appraisalValue": 250000,
  "auctionValue": 200000,
  "financed": true,
  "annualInterestRate": 9,
  "downPayment": 250000,
  "itbiPercent": 5
}`
	rr := postCalculate(t, newTestHandler(t), body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
	for _, want := range []string{"downPayment", "itbiPercent"} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Errorf("expected error to mention %s, got %s", want, rr.Body.String())
		}
	}
}

func TestHandleCalculateMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/calculate", nil)
	rr := httptest.NewRecorder()

	newTestHandler(t).ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error"`) {
		t.Fatalf("expected JSON error body, got %s", rr.Body.String())
	}
}

func TestHandleCalculateTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, 64, "test")

	rr := postCalculate(t, handler, resaleBody+strings.Repeat(" ", 128))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleRates(t *testing.T) {
	rates := calculator.DefaultRates()
	rates.AdministrativeFeeMonthly = 40
	calc, err := calculator.New(rates)
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
	rr := httptest.NewRecorder()
	NewHandler(zap.NewNop(), calc, 0, "").ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		AdministrativeFeeMonthly float64 `json:"administrativeFeeMonthly"`
		PropertyTaxBrackets      []struct {
			MaxValue *float64 `json:"maxValue"`
		} `json:"propertyTaxBrackets"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AdministrativeFeeMonthly != 40 {
		t.Fatalf("expected administrative fee 40, got %v", resp.AdministrativeFeeMonthly)
	}
	if len(resp.PropertyTaxBrackets) != len(rates.PropertyTaxBrackets) {
		t.Fatalf("expected %d brackets, got %d", len(rates.PropertyTaxBrackets), len(resp.PropertyTaxBrackets))
	}
	if last := resp.PropertyTaxBrackets[len(resp.PropertyTaxBrackets)-1]; last.MaxValue != nil {
		t.Fatalf("expected unbounded last bracket, got %v", *last.MaxValue)
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"  ", "dev"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
		rr := httptest.NewRecorder()
		NewHandler(zap.NewNop(), nil, 0, tt.version).ServeHTTP(rr, req)

		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["version"] != tt.want {
			t.Errorf("version = %q, want %q", resp["version"], tt.want)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	generated := rr.Header().Get(constants.RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected generated UUID request id, got %q", generated)
	}

	supplied := uuid.New().String()
	req = httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString(resaleBody))
	req.Header.Set(constants.RequestIDHeader, supplied)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if got := rr.Header().Get(constants.RequestIDHeader); got != supplied {
		t.Fatalf("expected supplied request id %q, got %q", supplied, got)
	}
	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RequestID != supplied {
		t.Fatalf("expected response request id %q, got %q", supplied, resp.RequestID)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(constants.RequestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if got := rr.Header().Get(constants.RequestIDHeader); got == "not-a-uuid" {
		t.Fatal("expected invalid request id to be replaced")
	}
}

func TestUnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
	rr := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleCalculateMaxBid(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate?maxBidMetric=savingsPercent&maxBidTarget=20", strings.NewReader(resaleBody))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp calculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MaxBid == nil {
		t.Fatal("expected maxBid in response")
	}
	if math.Abs(resp.MaxBid.Value-200000) > 0.02 {
		t.Fatalf("expected max bid near 200000, got %v", resp.MaxBid.Value)
	}

	for _, query := range []string{"?maxBidMetric=irr", "?maxBidMetric=savings&maxBidTarget=abc", "?maxBidMetric=annualReturn"} {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate"+query, strings.NewReader(resaleBody))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", query, rr.Code)
		}
	}
}
