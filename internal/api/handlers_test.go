package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/app"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/config"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/domain"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/store"
)

// stubProvider drives the full HTTP stack without network access.
type stubProvider struct {
	payoutErr   error
	payoutCalls int
}

func (s *stubProvider) CreateContact(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactResponse, error) {
	return &domain.ContactResponse{ID: "cust_1"}, nil
}

func (s *stubProvider) CreateFundAccount(ctx context.Context, req domain.CreateFundAccountRequest) (*domain.FundAccountResponse, error) {
	return &domain.FundAccountResponse{ID: "fa_1"}, nil
}

func (s *stubProvider) CreatePayout(ctx context.Context, req domain.CreatePayoutRequest, idempotencyKey string) (*domain.PayoutResponse, error) {
	s.payoutCalls++
	if s.payoutErr != nil {
		return nil, s.payoutErr
	}
	return &domain.PayoutResponse{ID: "pout_1", Amount: req.Amount, Currency: req.Currency, Status: "processing"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubProvider) {
	t.Helper()
	repo := store.NewFileRepository(filepath.Join(t.TempDir(), "users.json"))
	if err := repo.EnsureInitialized(context.Background(), "user1"); err != nil {
		t.Fatalf("EnsureInitialized returned error: %v", err)
	}
	cfg := &config.Config{
		RazorpayAccountNumber: "2323230099089860",
		DefaultUserID:         "user1",
		DefaultPayoutAmount:   1000,
		DefaultPayoutCurrency: "INR",
		PayoutMode:            "IMPS",
		ContactEmail:          "user@example.com",
		ContactPhone:          "9876543210",
	}
	provider := &stubProvider{}
	service := app.NewPayoutService(repo, provider, cfg)
	return NewRouter(NewHandler(service, cfg.DefaultUserID)), provider
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func linkAccount(t *testing.T, router http.Handler) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/link-bank", map[string]string{
		"accountNumber":     "12345",
		"ifscCode":          "SBIN0001",
		"accountHolderName": "A",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("link-bank returned status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBankStatusEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/user/bank-status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["hasBankAccount"] != false {
		t.Fatalf("expected hasBankAccount false, got %v", body["hasBankAccount"])
	}
	accounts, ok := body["accounts"].([]interface{})
	if !ok || len(accounts) != 0 {
		t.Fatalf("expected empty accounts array, got %v", body["accounts"])
	}
}

func TestLinkBankRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/link-bank", map[string]string{
		"accountNumber":     "12345",
		"ifscCode":          "SBIN0001",
		"accountHolderName": "A",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["fundAccountId"] != "fa_1" {
		t.Fatalf("unexpected link response: %v", body)
	}

	rec = doJSON(t, router, http.MethodGet, "/user/bank-status", nil)
	status := decodeBody(t, rec)
	if status["hasBankAccount"] != true {
		t.Fatalf("expected hasBankAccount true, got %v", status)
	}
	accounts := status["accounts"].([]interface{})
	if len(accounts) != 1 {
		t.Fatalf("expected one account, got %v", accounts)
	}
	account := accounts[0].(map[string]interface{})
	if account["fundAccountId"] != "fa_1" || account["accountNumber"] != "12345" ||
		account["ifscCode"] != "SBIN0001" || account["accountHolderName"] != "A" {
		t.Fatalf("unexpected account payload: %v", account)
	}
}

func TestLinkBankFailures(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		setup      func(t *testing.T, router http.Handler)
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing fields",
			body:       map[string]string{"accountNumber": "12345"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing bank details",
		},
		{
			name: "duplicate account",
			body: map[string]string{
				"accountNumber":     "12345",
				"ifscCode":          "SBIN0001",
				"accountHolderName": "A",
			},
			setup:      func(t *testing.T, router http.Handler) { linkAccount(t, router) },
			wantStatus: http.StatusBadRequest,
			wantError:  "Bank account already linked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			if tt.setup != nil {
				tt.setup(t, router)
			}

			rec := doJSON(t, router, http.MethodPost, "/link-bank", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Fatalf("expected error %q, got %v", tt.wantError, body["error"])
			}
		})
	}
}

func TestClaimMoneySuccess(t *testing.T) {
	router, _ := newTestRouter(t)
	linkAccount(t, router)

	rec := doJSON(t, router, http.MethodPost, "/claim-money", map[string]interface{}{
		"fundAccountId": "fa_1",
		"amount":        50000,
		"currency":      "INR",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["payoutId"] != "pout_1" || body["status"] != "processing" {
		t.Fatalf("unexpected claim response: %v", body)
	}
	if body["amount"] != float64(500) {
		t.Fatalf("expected display amount 500, got %v", body["amount"])
	}

	rec = doJSON(t, router, http.MethodGet, "/user/transactions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	history := decodeBody(t, rec)
	transactions := history["transactions"].([]interface{})
	if len(transactions) != 1 {
		t.Fatalf("expected one transaction, got %v", transactions)
	}
	tx := transactions[0].(map[string]interface{})
	if tx["payoutId"] != "pout_1" || tx["fundAccountId"] != "fa_1" || tx["amount"] != float64(50000) {
		t.Fatalf("unexpected transaction payload: %v", tx)
	}
}

func TestClaimMoneyFailures(t *testing.T) {
	tests := []struct {
		name       string
		linkFirst  bool
		payoutErr  error
		body       map[string]interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "no linked account",
			body:       map[string]interface{}{"fundAccountId": "fa_1"},
			wantStatus: http.StatusBadRequest,
			wantError:  "No bank account linked",
		},
		{
			name:       "invalid destination",
			linkFirst:  true,
			body:       map[string]interface{}{"fundAccountId": "fa_other"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid or unselected fund account",
		},
		{
			name:       "provider failure",
			linkFirst:  true,
			payoutErr:  domain.ErrProvider,
			body:       map[string]interface{}{"fundAccountId": "fa_1"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process payout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, provider := newTestRouter(t)
			if tt.linkFirst {
				linkAccount(t, router)
			}
			provider.payoutErr = tt.payoutErr

			rec := doJSON(t, router, http.MethodPost, "/claim-money", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Fatalf("expected error %q, got %v", tt.wantError, body["error"])
			}
		})
	}
}

func TestClaimMoneyIdempotencyKeyReplay(t *testing.T) {
	router, provider := newTestRouter(t)
	linkAccount(t, router)

	claim := map[string]interface{}{
		"fundAccountId":  "fa_1",
		"amount":         50000,
		"idempotencyKey": "claim-key-1",
	}

	first := doJSON(t, router, http.MethodPost, "/claim-money", claim)
	second := doJSON(t, router, http.MethodPost, "/claim-money", claim)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected both claims to succeed, got %d and %d", first.Code, second.Code)
	}
	if provider.payoutCalls != 1 {
		t.Fatalf("expected a single provider payout across replays, got %d", provider.payoutCalls)
	}

	rec := doJSON(t, router, http.MethodGet, "/user/transactions", nil)
	history := decodeBody(t, rec)
	if transactions := history["transactions"].([]interface{}); len(transactions) != 1 {
		t.Fatalf("expected one transaction after replay, got %d", len(transactions))
	}
}
