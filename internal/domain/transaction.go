/**
 * @description
 * This file defines the Transaction domain model. A transaction is an
 * append-only snapshot of a Razorpay payout taken at claim time: the status
 * is the provider-reported status at creation and is never refreshed.
 *
 * @notes
 * - Amounts are stored as `int64` in the smallest currency unit (paise) to
 *   avoid floating-point inaccuracies with financial data.
 * - The timestamp is an RFC 3339 UTC string, which sorts lexicographically.
 */
package domain

// Transaction records one completed payout claim.
type Transaction struct {
	PayoutID      string `json:"payoutId"`
	FundAccountID string `json:"fundAccountId"`
	Amount        int64  `json:"amount"` // in paise
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	// IdempotencyKey is the caller-supplied claim key, kept so a replayed
	// claim can be answered from the stored snapshot instead of paying twice.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}
