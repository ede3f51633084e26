// Package usecases implements the rental lifecycle operations. Each
// transition is an atomic unit: the status write and any asset status
// side effect commit together or not at all.
package usecases

import (
	"context"

	"rentra/internal/domain/rental"
)

// Transactor runs a function inside one database transaction. The
// shared db.TransactionManager satisfies it.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers rental lifecycle notifications. Calls happen after
// the transaction commits; delivery failures are logged and never roll
// back the transition.
type Notifier interface {
	RentalApproved(ctx context.Context, r *rental.Rental) error
	RentalRejected(ctx context.Context, r *rental.Rental) error
	RentalReturned(ctx context.Context, r *rental.Rental) error
}
