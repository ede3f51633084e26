package rental

import (
	"context"

	vo "rentra/internal/domain/rental/valueobjects"
)

// Repository is the persistence contract for rentals. Get methods return
// (nil, nil) when no row matches. Update performs an optimistic version
// check and returns a concurrency conflict error when the row was
// modified since it was read, so exactly one of two racing transitions
// wins.
type Repository interface {
	Create(ctx context.Context, rental *Rental) error
	GetByID(ctx context.Context, id uint) (*Rental, error)
	GetByRentalNumber(ctx context.Context, number string) (*Rental, error)
	Update(ctx context.Context, rental *Rental) error
	List(ctx context.Context, filter Filter) ([]*Rental, int64, error)
}

// Filter narrows rental listings.
type Filter struct {
	Status   *vo.RentalStatus
	ClientID *uint
	AssetID  *uint
	Page     int
	PageSize int
}
