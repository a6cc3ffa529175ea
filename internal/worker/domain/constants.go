package domain

import (
	"slices"

	apidomain "github.com/highcastle01/WSD-Assignment-03/internal/api/domain"
)

// HandledEventTypes are the routing keys the history worker records
var HandledEventTypes = []string{
	apidomain.EventApplicationSubmitted,
	apidomain.EventApplicationStatusChanged,
	apidomain.EventApplicationWithdrawn,
	apidomain.EventApplicationInterviewScheduled,
}

func IsHandledEventType(t string) bool {
	return slices.Contains(HandledEventTypes, t)
}
