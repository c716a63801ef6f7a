/**
 * @description
 * This file defines the `Repository` interface, the contract for durable
 * access to the users record. Defining an interface decouples the payout
 * workflow from the concrete file-backed implementation and allows tests to
 * substitute their own storage.
 *
 * @notes
 * - The store is whole-record: every access reads or replaces the full users
 *   document. There is no partial-update or indexed access.
 */
package store

import (
	"context"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/domain"
)

// Repository defines durable access to the users record.
type Repository interface {
	// EnsureInitialized creates the record with an empty entry for the given
	// user if no record exists yet. It never overwrites an existing record
	// and is safe to call on every startup.
	EnsureInitialized(ctx context.Context, userID string) error

	// Load returns the current full record. It fails with
	// domain.ErrStorageUnavailable if the record cannot be read or parsed.
	Load(ctx context.Context) (domain.UserStore, error)

	// Save replaces the full record. It fails with
	// domain.ErrStorageUnavailable on write failure.
	Save(ctx context.Context, users domain.UserStore) error

	// Update runs fn against the given user's record inside a
	// load-mutate-save cycle that is serialized per store instance, so
	// overlapping mutations cannot lose each other's writes. An unknown
	// user id gets an empty record before fn runs. If fn returns an error
	// the record is not saved.
	Update(ctx context.Context, userID string, fn func(*domain.UserRecord) error) error
}
