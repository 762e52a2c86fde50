package jobapp

// Status is the hiring-pipeline stage of an application.
type Status string

const (
	StatusNew          Status = "new"
	StatusReviewing    Status = "reviewing"
	StatusShortlisted  Status = "shortlisted"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusHired        Status = "hired"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// Statuses lists the closed enumeration in pipeline order.
var Statuses = []Status{
	StatusNew,
	StatusReviewing,
	StatusShortlisted,
	StatusInterviewing,
	StatusOffered,
	StatusHired,
	StatusRejected,
	StatusWithdrawn,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the pipeline has no forward step from s.
// Transitions out of a terminal status are still accepted as admin overrides.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusHired, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Priority is the admin-assigned urgency of an application.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)
