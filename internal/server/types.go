package server

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// PlanRequest is the body accepted by every POST endpoint: the plan inputs
// with an optional switch to the conservative assumption set.
type PlanRequest struct {
	domain.Inputs
	Conservative bool `json:"conservative,omitempty"`
}

// ProjectResponse is returned by /v1/project
type ProjectResponse struct {
	RequestID    string         `json:"requestId"`
	Conservative bool           `json:"conservative"`
	Inputs       domain.Inputs  `json:"inputs"`
	Results      domain.Results `json:"results"`
}

// CoastResponse is returned by /v1/coast
type CoastResponse struct {
	RequestID string             `json:"requestId"`
	Coast     domain.CoastResult `json:"coast"`
}

// StopAgeResponse is returned by /v1/stop-age
type StopAgeResponse struct {
	RequestID string               `json:"requestId"`
	StopAge   domain.StopAgeResult `json:"stopAge"`
}

// StressResponse is returned by /v1/stress
type StressResponse struct {
	RequestID string                 `json:"requestId"`
	Scenarios domain.StressScenarios `json:"scenarios"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}
