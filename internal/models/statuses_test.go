package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusIsValid(t *testing.T) {
	for _, s := range []RequestStatus{
		RequestStatusPending, RequestStatusAccepted, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCanceled,
	} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, RequestStatus("paused").IsValid())
	assert.False(t, RequestStatus("").IsValid())
}

func TestRequestStatusTransitions(t *testing.T) {
	allowed := map[RequestStatus][]RequestStatus{
		RequestStatusPending:    {RequestStatusCanceled},
		RequestStatusAccepted:   {RequestStatusInProgress, RequestStatusCanceled},
		RequestStatusInProgress: {RequestStatusCompleted, RequestStatusCanceled},
		RequestStatusCompleted:  {},
		RequestStatusCanceled:   {},
	}

	all := []RequestStatus{
		RequestStatusPending, RequestStatusAccepted, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCanceled,
	}

	for from, targets := range allowed {
		allowedSet := make(map[RequestStatus]bool)
		for _, to := range targets {
			allowedSet[to] = true
		}
		for _, to := range all {
			assert.Equal(t, allowedSet[to], from.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestAcceptedNeverReachableViaTransition(t *testing.T) {
	// Acceptance happens exclusively through bid resolution.
	for _, from := range []RequestStatus{
		RequestStatusPending, RequestStatusAccepted, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCanceled,
	} {
		assert.False(t, from.CanTransitionTo(RequestStatusAccepted), string(from))
	}
}

func TestRequestStatusIsTerminal(t *testing.T) {
	assert.True(t, RequestStatusCompleted.IsTerminal())
	assert.True(t, RequestStatusCanceled.IsTerminal())
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.False(t, RequestStatusAccepted.IsTerminal())
	assert.False(t, RequestStatusInProgress.IsTerminal())
}

func TestRequestPriorityIsValid(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, RequestPriority("urgent").IsValid())
}
