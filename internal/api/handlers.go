/**
 * @description
 * This file defines the HTTP handlers for the payout backend's API
 * endpoints. Handlers are responsible for parsing requests, calling the
 * appropriate service method, and writing the response.
 *
 * @notes
 * - The wire contract serves a single configured user; handlers resolve that
 *   user id and pass it down, keeping the service layer user-id parametric.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/app"
	"github.com/SagarAhir/razorpay-claim-money-poc/internal/domain"
)

// Handler holds the dependencies for the payout endpoints.
type Handler struct {
	service *app.PayoutService
	userID  string
}

// NewHandler creates a new Handler serving the given default user.
func NewHandler(service *app.PayoutService, userID string) *Handler {
	return &Handler{service: service, userID: userID}
}

// GetBankStatus handles GET /user/bank-status.
func (h *Handler) GetBankStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetBankStatus(r.Context(), h.userID)
	if err != nil {
		writeError(w, "fetch bank status", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// LinkBankRequest defines the expected JSON body for linking a bank account.
type LinkBankRequest struct {
	AccountNumber     string `json:"accountNumber"`
	IfscCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
}

// LinkBank handles POST /link-bank.
func (h *Handler) LinkBank(w http.ResponseWriter, r *http.Request) {
	var req LinkBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	fundAccountID, err := h.service.LinkBankAccount(r.Context(), app.LinkBankAccountInput{
		UserID:            h.userID,
		AccountNumber:     req.AccountNumber,
		IfscCode:          req.IfscCode,
		AccountHolderName: req.AccountHolderName,
	})
	if err != nil {
		writeError(w, "link bank account", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"fundAccountId": fundAccountID,
	})
}

// ClaimMoneyRequest defines the expected JSON body for claiming a payout,
// typically decoded from a scanned QR code.
type ClaimMoneyRequest struct {
	FundAccountID  string `json:"fundAccountId"`
	Amount         int64  `json:"amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// ClaimMoney handles POST /claim-money.
func (h *Handler) ClaimMoney(w http.ResponseWriter, r *http.Request) {
	var req ClaimMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	result, err := h.service.ClaimMoney(r.Context(), app.ClaimMoneyInput{
		UserID:         h.userID,
		FundAccountID:  req.FundAccountID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		writeError(w, "process payout", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"payoutId": result.PayoutID,
		"amount":   result.Amount,
		"status":   result.Status,
	})
}

// GetTransactions handles GET /user/transactions.
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.GetTransactions(r.Context(), h.userID)
	if err != nil {
		writeError(w, "fetch transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
	})
}

// writeError maps workflow errors onto the HTTP surface: client-fixable
// failures become 400 with the failure detail, infrastructure failures
// become 500 with a generic message and a logged detail line.
func writeError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing bank details"})
	case errors.Is(err, domain.ErrDuplicateAccount):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bank account already linked"})
	case errors.Is(err, domain.ErrNoLinkedAccount):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No bank account linked"})
	case errors.Is(err, domain.ErrInvalidDestination):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid or unselected fund account"})
	default:
		log.Printf("Error during %s: %v", operation, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to " + operation})
	}
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, we can't send a JSON error, so just log it.
		log.Printf("Failed to encode response: %v", err)
	}
}
