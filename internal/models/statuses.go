package models

type UserRole string
type RequestStatus string
type BidStatus string
type RequestPriority string

const (
	UserRoleUser     UserRole = "user"
	UserRoleMechanic UserRole = "mechanic"
	UserRoleAdmin    UserRole = "admin"

	RequestStatusPending    RequestStatus = "pending"
	RequestStatusAccepted   RequestStatus = "accepted"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCanceled   RequestStatus = "canceled"

	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"

	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
)

// requestTransitions is the allowed transition graph for a service
// request. "accepted" is only reachable through bid acceptance, which
// is why it never appears as a target here; UpdateStatus callers can
// only move a request forward from accepted or cancel it. Completed
// and canceled are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusCanceled},
	RequestStatusAccepted:   {RequestStatusInProgress, RequestStatusCanceled},
	RequestStatusInProgress: {RequestStatusCompleted, RequestStatusCanceled},
	RequestStatusCompleted:  {},
	RequestStatusCanceled:   {},
}

// IsValid reports whether s is one of the known request statuses.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCanceled
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether p is a known priority level.
func (p RequestPriority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
