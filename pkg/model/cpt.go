/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cpt.go
Description: Conditional probability table for the Akaylee Bayes engine. Maps
canonical parent-state combination keys to probability vectors over a variable's
own states, tracks training counts per combination, and normalizes counts into
probabilities with a uniform fallback for unobserved combinations.
*/

package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ProbabilityTolerance is the numerical tolerance used when checking that a
// probability vector sums to 1.0 and when comparing CPT values for equality
const ProbabilityTolerance = 1e-6

// comboKey builds the canonical, order-independent key for a parent-state
// assignment: (parent identifier, state) pairs sorted by parent identifier.
// The empty assignment produces the empty key.
func comboKey(assignment map[string]string) string {
	if len(assignment) == 0 {
		return ""
	}
	names := make([]string, 0, len(assignment))
	for name := range assignment {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+assignment[name])
	}
	return strings.Join(parts, "|")
}

// CPT is a conditional probability table over a fixed, ordered set of states
type CPT struct {
	states map[string]int // state name -> vector index
	order  []string       // states in declaration order

	probs  map[string][]float64 // combination key -> probability vector
	counts map[string][]float64 // combination key -> observation counts
}

// NewCPT creates an empty table over the given ordered state set
func NewCPT(states []string) *CPT {
	c := &CPT{
		states: make(map[string]int, len(states)),
		order:  append([]string{}, states...),
		probs:  make(map[string][]float64),
		counts: make(map[string][]float64),
	}
	for i, s := range states {
		c.states[s] = i
	}
	return c
}

// States returns the ordered state set the table is defined over
func (c *CPT) States() []string {
	return append([]string{}, c.order...)
}

// SetStates replaces the state set and drops all probabilities and counts.
// Used by numeric variables when discretization boundaries change.
func (c *CPT) SetStates(states []string) {
	c.states = make(map[string]int, len(states))
	c.order = append([]string{}, states...)
	for i, s := range states {
		c.states[s] = i
	}
	c.probs = make(map[string][]float64)
	c.counts = make(map[string][]float64)
}

// Set writes a single probability cell for the given combination key and state
func (c *CPT) Set(key string, state string, p float64) error {
	idx, ok := c.states[state]
	if !ok {
		return fmt.Errorf("state %q: %w", state, ErrUnknownState)
	}
	vec, ok := c.probs[key]
	if !ok {
		vec = make([]float64, len(c.order))
		c.probs[key] = vec
	}
	vec[idx] = p
	return nil
}

// SetVector writes the full probability vector for a combination key
func (c *CPT) SetVector(key string, probs []float64) error {
	if len(probs) != len(c.order) {
		return fmt.Errorf("expected %d probabilities, got %d", len(c.order), len(probs))
	}
	c.probs[key] = append([]float64{}, probs...)
	return nil
}

// Probability looks up a single cell; the combination key must have been set
// or trained, otherwise ErrMissingProbability is returned
func (c *CPT) Probability(key string, state string) (float64, error) {
	idx, ok := c.states[state]
	if !ok {
		return 0, fmt.Errorf("state %q: %w", state, ErrUnknownState)
	}
	vec, ok := c.probs[key]
	if !ok {
		return 0, fmt.Errorf("combination %q: %w", key, ErrMissingProbability)
	}
	return vec[idx], nil
}

// Vector returns the probability vector for a combination key
func (c *CPT) Vector(key string) ([]float64, error) {
	vec, ok := c.probs[key]
	if !ok {
		return nil, fmt.Errorf("combination %q: %w", key, ErrMissingProbability)
	}
	return append([]float64{}, vec...), nil
}

// AddCount increments the observation count for (state, combination)
func (c *CPT) AddCount(key string, state string) error {
	idx, ok := c.states[state]
	if !ok {
		return fmt.Errorf("state %q: %w", state, ErrUnknownState)
	}
	vec, ok := c.counts[key]
	if !ok {
		vec = make([]float64, len(c.order))
		c.counts[key] = vec
	}
	vec[idx]++
	return nil
}

// Count returns the accumulated count for (state, combination)
func (c *CPT) Count(key string, state string) float64 {
	idx, ok := c.states[state]
	if !ok {
		return 0
	}
	vec, ok := c.counts[key]
	if !ok {
		return 0
	}
	return vec[idx]
}

// ResetCounts clears all accumulated observation counts
func (c *CPT) ResetCounts() {
	c.counts = make(map[string][]float64)
}

// Finalize converts counts into probabilities for every given combination key.
// Combinations with at least one observation get count/total per state;
// combinations with zero observations fall back to a uniform distribution.
func (c *CPT) Finalize(keys []string) {
	n := len(c.order)
	for _, key := range keys {
		vec := c.counts[key]
		total := 0.0
		for _, count := range vec {
			total += count
		}
		probs := make([]float64, n)
		if total > 0 {
			for i, count := range vec {
				probs[i] = count / total
			}
		} else {
			for i := range probs {
				probs[i] = 1.0 / float64(n)
			}
		}
		c.probs[key] = probs
	}
}

// Keys returns all combination keys with an assigned probability vector
func (c *CPT) Keys() []string {
	keys := make([]string, 0, len(c.probs))
	for key := range c.probs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether two tables hold the same states and the same
// probability vectors within ProbabilityTolerance. Counts are excluded:
// training history is not part of table identity.
func (c *CPT) Equal(other *CPT) bool {
	if other == nil {
		return false
	}
	if len(c.order) != len(other.order) {
		return false
	}
	for i, s := range c.order {
		if other.order[i] != s {
			return false
		}
	}
	if len(c.probs) != len(other.probs) {
		return false
	}
	for key, vec := range c.probs {
		ovec, ok := other.probs[key]
		if !ok {
			return false
		}
		for i := range vec {
			if math.Abs(vec[i]-ovec[i]) > ProbabilityTolerance {
				return false
			}
		}
	}
	return true
}
