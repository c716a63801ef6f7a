/**
 * @description
 * This file defines the Go structs that map to the Razorpay X payout API
 * payloads: contacts (payee identities), fund accounts (payout
 * destinations), and payouts.
 *
 * @notes
 * - These structs are used by the Razorpay client to serialize requests and
 *   deserialize responses. Field names follow Razorpay's snake_case wire
 *   format.
 */
package domain

// --- Contacts ---

// CreateContactRequest is the payload for registering a payee identity.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Type    string `json:"type"` // "customer"
}

// ContactResponse is Razorpay's representation of a created contact.
type ContactResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Type    string `json:"type"`
}

// --- Fund accounts ---

// BankAccountDetails carries the bank destination tied to a fund account.
type BankAccountDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

// CreateFundAccountRequest is the payload for registering a payout
// destination against an existing contact.
type CreateFundAccountRequest struct {
	ContactID   string             `json:"contact_id"`
	AccountType string             `json:"account_type"` // "bank_account"
	BankAccount BankAccountDetails `json:"bank_account"`
}

// FundAccountResponse is Razorpay's representation of a created fund account.
type FundAccountResponse struct {
	ID          string `json:"id"`
	ContactID   string `json:"contact_id"`
	AccountType string `json:"account_type"`
}

// --- Payouts ---

// CreatePayoutRequest is the payload for executing a payout from the
// configured settlement account to a fund account.
type CreatePayoutRequest struct {
	AccountNumber string `json:"account_number"` // source settlement account
	FundAccountID string `json:"fund_account_id"`
	Amount        int64  `json:"amount"` // in paise
	Currency      string `json:"currency"`
	Mode          string `json:"mode"` // e.g. "IMPS"
	Purpose       string `json:"purpose"`
	ReferenceID   string `json:"reference_id,omitempty"`
}

// PayoutResponse is Razorpay's representation of a created payout.
type PayoutResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}
