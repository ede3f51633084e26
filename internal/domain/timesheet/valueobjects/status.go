package valueobjects

// TimesheetStatus is the overall status of a daily timesheet. It advances
// draft -> submitted -> verified/disputed -> approved, with revised
// reachable from disputed when the checker corrects and resubmits.
type TimesheetStatus string

const (
	StatusDraft     TimesheetStatus = "draft"
	StatusSubmitted TimesheetStatus = "submitted"
	StatusVerified  TimesheetStatus = "verified"
	StatusApproved  TimesheetStatus = "approved"
	StatusDisputed  TimesheetStatus = "disputed"
	StatusRevised   TimesheetStatus = "revised"
)

func (s TimesheetStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the overall status may move to target.
// The disputed -> revised -> submitted loop lets the checker correct and
// resubmit as many times as needed.
func (s TimesheetStatus) CanTransitionTo(target TimesheetStatus) bool {
	transitions := map[TimesheetStatus][]TimesheetStatus{
		StatusDraft:     {StatusSubmitted},
		StatusSubmitted: {StatusVerified, StatusDisputed},
		StatusVerified:  {StatusApproved},
		StatusDisputed:  {StatusRevised},
		StatusRevised:   {StatusSubmitted},
		StatusApproved:  {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[TimesheetStatus]bool{
	StatusDraft:     true,
	StatusSubmitted: true,
	StatusVerified:  true,
	StatusApproved:  true,
	StatusDisputed:  true,
	StatusRevised:   true,
}

// VerifierStatus is the supervisor verification track, independent of the
// client approval track.
type VerifierStatus string

const (
	VerifierPending  VerifierStatus = "pending"
	VerifierApproved VerifierStatus = "approved"
	VerifierDisputed VerifierStatus = "disputed"
)

func (s VerifierStatus) String() string {
	return string(s)
}

var ValidVerifierStatuses = map[VerifierStatus]bool{
	VerifierPending:  true,
	VerifierApproved: true,
	VerifierDisputed: true,
}

// OperationStatus describes what the asset did on the recorded day. It is
// an axis independent of the approval status.
type OperationStatus string

const (
	OperationOperating   OperationStatus = "operating"
	OperationStandby     OperationStatus = "standby"
	OperationBreakdown   OperationStatus = "breakdown"
	OperationNoOperation OperationStatus = "no_operation"
)

func (s OperationStatus) String() string {
	return string(s)
}

var ValidOperationStatuses = map[OperationStatus]bool{
	OperationOperating:   true,
	OperationStandby:     true,
	OperationBreakdown:   true,
	OperationNoOperation: true,
}
