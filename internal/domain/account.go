/**
 * @description
 * This file defines the core domain models around a user's linked bank
 * accounts. A linked account represents a Razorpay fund account (the payout
 * destination) together with the bank details the user submitted when
 * linking it.
 *
 * @notes
 * - The JSON field names match the on-disk users file and the API responses
 *   one-to-one, so the same structs serve storage and transport.
 * - Account numbers and IFSC codes are stored as entered; the system only
 *   validates presence, not format.
 */
package domain

// LinkedAccount represents a payout destination registered with Razorpay.
type LinkedAccount struct {
	FundAccountID     string `json:"fundAccountId"`
	AccountNumber     string `json:"accountNumber"`
	IfscCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
}

// UserRecord holds everything persisted for a single user: the accounts they
// have linked and the payouts they have claimed, both in insertion order.
type UserRecord struct {
	BankAccounts []LinkedAccount `json:"bankAccounts"`
	Transactions []Transaction   `json:"transactions"`
}

// NewUserRecord returns an empty record with non-nil slices so that a
// freshly bootstrapped user serializes as empty arrays, not null.
func NewUserRecord() *UserRecord {
	return &UserRecord{
		BankAccounts: []LinkedAccount{},
		Transactions: []Transaction{},
	}
}

// FindAccountByFundAccountID returns the linked account with the given fund
// account id, or nil if the user has not linked it.
func (r *UserRecord) FindAccountByFundAccountID(fundAccountID string) *LinkedAccount {
	for i := range r.BankAccounts {
		if r.BankAccounts[i].FundAccountID == fundAccountID {
			return &r.BankAccounts[i]
		}
	}
	return nil
}

// HasAccount reports whether the user already linked the given bank account.
// Duplicate detection is on the (accountNumber, ifscCode) pair.
func (r *UserRecord) HasAccount(accountNumber, ifscCode string) bool {
	for _, acc := range r.BankAccounts {
		if acc.AccountNumber == accountNumber && acc.IfscCode == ifscCode {
			return true
		}
	}
	return false
}

// UserStore is the full persisted record: user id mapped to that user's
// linked accounts and transactions.
type UserStore map[string]*UserRecord
