package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/helio"
	"storefront/internal/pricing"
	basketrepo "storefront/internal/repository/basket"
	basketsvc "storefront/internal/service/basket"
	checkoutsvc "storefront/internal/service/checkout"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	baskets := basketsvc.New(basketrepo.NewMemory(), pricing.Default(), logger)
	checkout := checkoutsvc.New(baskets, helio.DefaultConfig(), nil, logger)
	return buildRouter(logger, []string{"*"}, Deps{
		Baskets:  baskets,
		Checkout: checkout,
	})
}

func do(t *testing.T, router *gin.Engine, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutStorePing(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/readyz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCatalogListsAllSKUs(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/api/catalog", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Items []struct {
			SKU     string `json:"sku"`
			UnitUSD int64  `json:"unitUsd"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(resp.Items))
	}
}

func TestBasketRequiresSessionHeader(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/api/basket", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/sessions", "", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("empty session id")
	}
}

func decodeBasket(t *testing.T, rec *httptest.ResponseRecorder) basketResponse {
	t.Helper()
	var resp basketResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode basket response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestBasketFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/basket/items", "s1", `{"sku":"aluminium","quantity":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add aluminium: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodPost, "/api/basket/items", "s1", `{"sku":"plastic","quantity":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add plastic: expected 200, got %d", rec.Code)
	}
	resp := decodeBasket(t, rec)
	if resp.Totals.SubtotalUSD != 111 || resp.Totals.ShippingUSD != 10 || resp.Totals.TotalUSD != 121 {
		t.Fatalf("unexpected totals: %+v", resp.Totals)
	}

	rec = do(t, router, http.MethodPut, "/api/basket/items/plastic", "s1", `{"quantity":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set quantity: expected 200, got %d", rec.Code)
	}
	resp = decodeBasket(t, rec)
	if len(resp.Lines) != 1 || resp.Lines[0].SKU != domain.SKUAluminium {
		t.Fatalf("plastic should be removed: %+v", resp.Lines)
	}

	rec = do(t, router, http.MethodDelete, "/api/basket/items/aluminium", "s1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rec.Code)
	}
	resp = decodeBasket(t, rec)
	if len(resp.Lines) != 0 || resp.Totals.ItemCount != 0 {
		t.Fatalf("expected empty basket: %+v", resp)
	}
}

func TestAddUnknownSKUReturns400(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/basket/items", "s1", `{"sku":"titanium"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutGuardEmptyBasket(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/checkout", "s1", `{"method":"crypto"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/checkout", "s1", "")
	var state struct {
		Stage      string `json:"stage"`
		DialogOpen bool   `json:"dialogOpen"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Stage != "buy" || state.DialogOpen {
		t.Fatalf("guarded checkout changed state: %+v", state)
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	router := newTestRouter(t)

	if rec := do(t, router, http.MethodPost, "/api/basket/items", "s1", `{"sku":"bundle","quantity":1}`); rec.Code != http.StatusOK {
		t.Fatalf("add: %d", rec.Code)
	}

	rec := do(t, router, http.MethodPost, "/api/checkout", "s1", `{"method":"crypto"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("open: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var open struct {
		Checkout struct {
			PaylinkID string `json:"paylinkId"`
			Amount    string `json:"amount"`
			Lines     []struct {
				SKU string `json:"sku"`
			} `json:"lines"`
		} `json:"checkout"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &open); err != nil {
		t.Fatalf("decode open: %v", err)
	}
	if open.Checkout.Amount != "109" {
		t.Fatalf("amount = %q, want \"109\"", open.Checkout.Amount)
	}
	if len(open.Checkout.Lines) != 2 || open.Checkout.Lines[1].SKU != "shipping" {
		t.Fatalf("unexpected lines: %+v", open.Checkout.Lines)
	}

	rec = do(t, router, http.MethodPost, "/api/checkout/events", "s1", `{"type":"success"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("success event: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var state struct {
		Stage     string `json:"stage"`
		Purchased *struct {
			TotalUSD int64 `json:"totalUsd"`
		} `json:"purchased"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Stage != "ship" {
		t.Fatalf("stage = %q, want ship", state.Stage)
	}
	if state.Purchased == nil || state.Purchased.TotalUSD != 99 {
		t.Fatalf("unexpected snapshot: %+v", state.Purchased)
	}

	// Basket is empty after success.
	rec = do(t, router, http.MethodGet, "/api/basket", "s1", "")
	resp := decodeBasket(t, rec)
	if resp.Totals.ItemCount != 0 {
		t.Fatalf("basket not cleared: %+v", resp.Totals)
	}

	rec = do(t, router, http.MethodPost, "/api/checkout/continue", "s1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("continue: expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Stage != "summary" {
		t.Fatalf("stage = %q, want summary", state.Stage)
	}
}

func TestCheckoutInvalidMethod(t *testing.T) {
	router := newTestRouter(t)
	if rec := do(t, router, http.MethodPost, "/api/basket/items", "s1", `{"sku":"plastic"}`); rec.Code != http.StatusOK {
		t.Fatalf("add: %d", rec.Code)
	}
	rec := do(t, router, http.MethodPost, "/api/checkout", "s1", `{"method":"barter"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQuoteUnconfigured(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/api/quote", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
