// ABOUTME: Error kinds for the analysis core
// ABOUTME: Each recovered-or-propagated site maps to exactly one of these
package eda

import "errors"

// Error kinds. Callers classify failures with errors.Is; the recovery
// policy per kind is fixed: MalformedInput and InsufficientData abort the
// operation, ErrGenerator aborts direct question answering but is replaced
// by a fallback marker during insight generation, ErrPersistence and
// ErrRender are always recovered locally.
var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrInsufficientData = errors.New("insufficient data")
	ErrGenerator        = errors.New("external generator failure")
	ErrPersistence      = errors.New("persistence failure")
	ErrRender           = errors.New("render failure")
)
