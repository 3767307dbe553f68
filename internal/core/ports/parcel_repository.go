// Package ports defines the contracts between the parcel core and its
// infrastructure: persistence, the transactional outbox, party locations and
// event publishing.
package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel. A duplicate reference, or a second active parcel
	// for the same courier, is reported as *errs.ConflictError.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel.
	// Returns *errs.ObjectNotFoundError when the parcel no longer exists and
	// *errs.ConflictError when the storage exclusivity rule for couriers is violated.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Delete removes the parcel. Domain events raised on it are still recorded.
	Delete(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by id without locking it.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate retrieves a parcel and locks its row until the transaction ends.
	// Mutating commands use it so concurrent changes to one parcel are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetActiveByCourier lists the parcels of a courier in PICKED_UP or IN_TRANSIT.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error)

	// ExistsByReference reports whether a reference is already taken.
	ExistsByReference(ctx context.Context, reference parcel.Reference) (bool, error)
}
