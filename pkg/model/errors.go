/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for the Akaylee Bayes model layer. Defines the sentinel
errors shared by network construction, training, evidence handling, and inference
so callers can match failure classes with errors.Is.
*/

package model

import "errors"

var (
	// ErrDuplicateVariable is returned when a variable identifier is already registered
	ErrDuplicateVariable = errors.New("duplicate variable")

	// ErrCycleDetected is returned when an edge addition would create a directed cycle
	// The graph is left unmodified when this error is returned.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrUnknownVariable is returned when evidence, training, or a query references
	// an identifier not present in the network
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrUnknownState is returned when evidence or a direct probability assignment
	// references a state outside a variable's state set
	ErrUnknownState = errors.New("unknown state")

	// ErrMalformedExample is returned when a training example omits a value for a
	// variable that requires one
	ErrMalformedExample = errors.New("malformed example")

	// ErrMissingProbability is returned when a CPT cell that was never set or
	// trained is needed; there is no query-time fallback
	ErrMissingProbability = errors.New("missing probability")
)
