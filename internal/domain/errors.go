/**
 * @description
 * This file defines the error taxonomy shared by the store, the payout
 * workflow, and the API layer. Callers classify failures with `errors.Is`
 * and wrap these sentinels with `fmt.Errorf("...: %w", ...)` for context.
 */
package domain

import "errors"

var (
	// ErrValidation indicates missing or malformed client input.
	ErrValidation = errors.New("missing or invalid input")

	// ErrDuplicateAccount indicates the (accountNumber, ifscCode) pair is
	// already linked for the user.
	ErrDuplicateAccount = errors.New("bank account already linked")

	// ErrNoLinkedAccount indicates a claim was attempted with zero linked
	// accounts.
	ErrNoLinkedAccount = errors.New("no bank account linked")

	// ErrInvalidDestination indicates the claimed fund account id is absent
	// or does not belong to the user.
	ErrInvalidDestination = errors.New("invalid or unselected fund account")

	// ErrProvider indicates a Razorpay call failed or was rejected.
	ErrProvider = errors.New("payment provider request failed")

	// ErrStorageUnavailable indicates the users file could not be read,
	// parsed, or written.
	ErrStorageUnavailable = errors.New("user store unavailable")
)
