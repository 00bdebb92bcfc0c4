// Package tuimsg holds the messages scenes send back to the dashboard.
// It sits below package tui so scenes can emit them without an import cycle.
package tuimsg

import (
	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// InputsChangedMsg carries the plan after a parameter edit
type InputsChangedMsg struct {
	Inputs domain.Inputs
}

// InputsRejectedMsg reports an edit that would make the plan invalid
type InputsRejectedMsg struct {
	Err error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ComparisonCompleteMsg carries the template comparison for one plan revision
type ComparisonCompleteMsg struct {
	Revision int
	Set      *compare.ComparisonSet
	Err      error
}

// OptimizationCompleteMsg carries the break-even solve for one plan revision
type OptimizationCompleteMsg struct {
	Revision int
	Result   *breakeven.MultiDimensionalResult
	Err      error
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
