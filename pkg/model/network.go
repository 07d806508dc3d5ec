/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: network.go
Description: Bayesian network orchestration for the Akaylee Bayes engine. Owns
the variable arena, wires edges, validates and applies evidence atomically,
runs cumulative training with full-history replay, and dispatches posterior
queries to an injected inference engine.
*/

package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InferenceEngine estimates the posterior distribution of a target variable
// given the network's current evidence. Implemented by pkg/inference.
type InferenceEngine interface {
	Posterior(net *Network, target string) (map[string]float64, error)
}

// Network owns a uniquely-named collection of variables forming a DAG.
// Single-threaded by design: callers must serialize access externally when
// sharing a network across goroutines.
type Network struct {
	name      string
	variables map[string]Variable
	order     []string // registration order, drives iteration and serialization
	evidence  map[string]string
	history   []Example // every example ever trained, replayed on each Train call

	engine InferenceEngine
	logger *logrus.Logger
}

// NewNetwork creates an empty network. An empty name gets a generated
// identifier; generation is uuid-based rather than a process-wide counter.
func NewNetwork(name string) *Network {
	if name == "" {
		name = "network_" + uuid.NewString()[:8]
	}
	return &Network{
		name:      name,
		variables: make(map[string]Variable),
		evidence:  make(map[string]string),
		logger:    logrus.New(),
	}
}

// Name returns the network identifier
func (n *Network) Name() string { return n.name }

// SetLogger replaces the network's logger
func (n *Network) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		n.logger = logger
	}
}

// SetEngine injects the inference engine used by QueryVariable
func (n *Network) SetEngine(engine InferenceEngine) {
	n.engine = engine
}

// AddVariable registers a variable under its identifier.
// Fails with ErrDuplicateVariable if the identifier is already taken.
func (n *Network) AddVariable(v Variable) error {
	name := v.Name()
	if name == "" {
		return fmt.Errorf("variable has no identifier: %w", ErrUnknownVariable)
	}
	if _, exists := n.variables[name]; exists {
		return fmt.Errorf("variable %q: %w", name, ErrDuplicateVariable)
	}
	n.variables[name] = v
	n.order = append(n.order, name)
	return nil
}

// Variable resolves an identifier, returning nil if absent
func (n *Network) Variable(name string) Variable {
	return n.variables[name]
}

// Variables returns all variables in registration order
func (n *Network) Variables() []Variable {
	vars := make([]Variable, 0, len(n.order))
	for _, name := range n.order {
		vars = append(vars, n.variables[name])
	}
	return vars
}

// SamplingVariables returns the variables that participate in inference:
// everything except string managers, whose probability mass lives in their
// covariables
func (n *Network) SamplingVariables() []Variable {
	vars := make([]Variable, 0, len(n.order))
	for _, name := range n.order {
		v := n.variables[name]
		if v.Kind() == KindString {
			continue
		}
		vars = append(vars, v)
	}
	return vars
}

// reachable reports whether `to` can be reached from `from` by following
// parent-to-child edges
func (n *Network) reachable(from, to string) bool {
	if from == to {
		return true
	}
	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[name] {
			continue
		}
		visited[name] = true
		v := n.variables[name]
		if v == nil {
			continue
		}
		for _, child := range v.base().children {
			if child == to {
				return true
			}
			stack = append(stack, child)
		}
	}
	return false
}

// SetEvidence validates and transforms every entry, then replaces the entire
// evidence set atomically. Any invalid entry fails the call and leaves the
// prior evidence unchanged.
func (n *Network) SetEvidence(observations map[string]interface{}) error {
	next := make(map[string]string, len(observations))
	for name, raw := range observations {
		v, ok := n.variables[name]
		if !ok {
			return fmt.Errorf("evidence for %q: %w", name, ErrUnknownVariable)
		}
		state, err := v.TransformEvidence(raw)
		if err != nil {
			return fmt.Errorf("evidence for %q: %w", name, err)
		}
		next[name] = state
	}
	n.evidence = next
	return nil
}

// HistorySize returns the number of retained training examples
func (n *Network) HistorySize() int { return len(n.history) }

// Evidence returns a copy of the current evidence assignment
func (n *Network) Evidence() map[string]string {
	out := make(map[string]string, len(n.evidence))
	for name, state := range n.evidence {
		out[name] = state
	}
	return out
}

// Train accumulates a batch of fully-observed examples. Every example must
// supply a value for every variable (covariables derive theirs from their
// manager's string). The batch is validated before any state changes, so a
// failed batch has no effect. Training is cumulative: retained history is
// replayed in full, which re-bins numeric observations under fresh boundaries
// and records absence symmetrically for covariables created at any point.
func (n *Network) Train(examples []Example) error {
	for i, ex := range examples {
		if err := n.validateExample(ex); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
	}

	// Pass 1: fold new examples into running statistics and covariable sets
	roots := n.Variables()
	for _, ex := range examples {
		for _, v := range roots {
			if v.Kind() == KindCovariable {
				continue
			}
			if err := v.observe(ex); err != nil {
				return err
			}
		}
	}
	n.history = append(n.history, examples...)

	// Pass 2: latest statistics win, so recompute numeric bins before counting
	for _, v := range n.Variables() {
		if num, ok := v.(*NumericVariable); ok {
			num.rediscretize()
		}
	}

	// Pass 3: rebuild counts by replaying the full history
	for _, v := range n.Variables() {
		v.base().cpt.ResetCounts()
	}
	for _, ex := range n.history {
		for _, v := range n.Variables() {
			if v.Kind() == KindCovariable {
				continue // accumulated through its manager
			}
			if err := v.accumulate(ex); err != nil {
				return err
			}
		}
	}

	// Pass 4: normalize counts into CPTs
	for _, v := range n.Variables() {
		if v.Kind() == KindCovariable {
			continue // finalized through its manager
		}
		if err := v.finalizeTraining(); err != nil {
			return err
		}
	}

	n.logger.WithFields(logrus.Fields{
		"network":   n.name,
		"examples":  len(examples),
		"history":   len(n.history),
		"variables": len(n.variables),
	}).Info("Training pass completed")
	return nil
}

// validateExample checks completeness and value validity without mutating
// anything. Covariables are skipped: their values derive from their manager.
func (n *Network) validateExample(ex Example) error {
	for name := range ex {
		if _, ok := n.variables[name]; !ok {
			return fmt.Errorf("example references %q: %w", name, ErrUnknownVariable)
		}
	}
	for _, v := range n.Variables() {
		var err error
		switch tv := v.(type) {
		case *Covariable:
			continue
		case *StringVariable:
			_, err = tv.observedString(ex)
		case *NumericVariable:
			_, err = tv.observedValue(ex)
		default:
			_, err = v.trainingState(ex)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// QueryVariable estimates the posterior of the named variable under the
// current evidence, returning a normalized state-to-probability mapping
func (n *Network) QueryVariable(name string) (map[string]float64, error) {
	v, ok := n.variables[name]
	if !ok {
		return nil, fmt.Errorf("query for %q: %w", name, ErrUnknownVariable)
	}
	if v.Kind() == KindString {
		return nil, fmt.Errorf("string variable %q is queried through its covariables", name)
	}
	if n.engine == nil {
		return nil, fmt.Errorf("network %q has no inference engine configured", n.name)
	}
	posterior, err := n.engine.Posterior(n, name)
	if err != nil {
		return nil, err
	}
	n.logger.WithFields(logrus.Fields{
		"network":   n.name,
		"variable":  name,
		"posterior": posterior,
	}).Debug("Query completed")
	return posterior, nil
}

// Equal reports deep equality: same identifier, same variable identifier set,
// and each corresponding variable pair deep-equal (states, CPT values within
// tolerance, parent/child identifier sets). Training history is excluded.
func (n *Network) Equal(other *Network) bool {
	if other == nil {
		return false
	}
	if n.name != other.name {
		return false
	}
	if len(n.variables) != len(other.variables) {
		return false
	}
	for name, v := range n.variables {
		ov, ok := other.variables[name]
		if !ok {
			return false
		}
		if !variablesEqual(v, ov) {
			return false
		}
	}
	return true
}

func (n *Network) logCovariable(owner, gram, name string) {
	n.logger.WithFields(logrus.Fields{
		"network":    n.name,
		"owner":      owner,
		"ngram":      gram,
		"covariable": name,
	}).Debug("Covariable created")
}

func (n *Network) logDiscretization(variable string, bins int, boundaries []float64) {
	n.logger.WithFields(logrus.Fields{
		"network":    n.name,
		"variable":   variable,
		"bins":       bins,
		"boundaries": boundaries,
	}).Debug("Discretization recomputed")
}
