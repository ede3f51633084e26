package timesheet

import (
	"context"
	"time"

	vo "rentra/internal/domain/timesheet/valueobjects"
)

// Repository is the persistence contract for timesheets. Get methods
// return (nil, nil) when no row matches. Update performs an optimistic
// version check and returns a concurrency conflict error on a lost
// update.
type Repository interface {
	Create(ctx context.Context, sheet *Timesheet) error
	GetByID(ctx context.Context, id uint) (*Timesheet, error)
	GetByRentalAndDate(ctx context.Context, rentalID uint, workDate time.Time) (*Timesheet, error)
	Update(ctx context.Context, sheet *Timesheet) error
	List(ctx context.Context, filter Filter) ([]*Timesheet, int64, error)
}

// Filter narrows timesheet listings.
type Filter struct {
	RentalID *uint
	Status   *vo.TimesheetStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// ClientContactRepository is the persistence contract for client contacts.
type ClientContactRepository interface {
	GetByID(ctx context.Context, id uint) (*ClientContact, error)
	GetPrimaryByClientID(ctx context.Context, clientID uint) (*ClientContact, error)
	ListByClientID(ctx context.Context, clientID uint) ([]*ClientContact, error)
}
