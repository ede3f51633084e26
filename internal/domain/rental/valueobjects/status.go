package valueobjects

// RentalStatus is the closed set of rental lifecycle states. Raw strings
// are validated once at the persistence/transport boundary; inside the
// domain only these variants exist.
type RentalStatus string

const (
	StatusRequested  RentalStatus = "requested"
	StatusApproved   RentalStatus = "approved"
	StatusDispatched RentalStatus = "dispatched"
	StatusReturned   RentalStatus = "returned"
	StatusClosed     RentalStatus = "closed"
	StatusRejected   RentalStatus = "rejected"
)

func (s RentalStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s RentalStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusRejected
}

// CanTransitionTo reports whether the transition graph permits moving to
// target. The graph is strictly acyclic; no transition can be applied
// twice or out of order.
func (s RentalStatus) CanTransitionTo(target RentalStatus) bool {
	transitions := map[RentalStatus][]RentalStatus{
		StatusRequested:  {StatusApproved, StatusRejected},
		StatusApproved:   {StatusDispatched},
		StatusDispatched: {StatusReturned},
		StatusReturned:   {StatusClosed},
		StatusClosed:     {},
		StatusRejected:   {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[RentalStatus]bool{
	StatusRequested:  true,
	StatusApproved:   true,
	StatusDispatched: true,
	StatusReturned:   true,
	StatusClosed:     true,
	StatusRejected:   true,
}
