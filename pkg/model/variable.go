/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: variable.go
Description: Shared variable contract for the Akaylee Bayes engine. Defines the
Variable interface implemented by the discrete, string, numeric, and covariable
variants, plus the base implementation covering edges with cycle detection,
direct and bulk CPT assignment, probability lookup, and training finalization.
*/

package model

import (
	"fmt"
	"strconv"
)

// Kind identifies the closed set of variable variants
type Kind string

const (
	KindDiscrete   Kind = "discrete"
	KindString     Kind = "string"
	KindNumeric    Kind = "numeric"
	KindCovariable Kind = "covariable"
)

// Example is a single fully-observed training example: variable identifier to
// raw observed value (state name, raw string, or numeric value per variant)
type Example map[string]interface{}

// Variable is the contract shared by all variants. Variables are created
// through their constructors, which register them with exactly one owning
// network; parent and child references are held as stable identifiers and
// resolved through that network.
type Variable interface {
	Name() string
	Kind() Kind
	States() []string
	Parents() []string
	Children() []string

	// AddChild establishes other as a child of this variable and this variable
	// as a parent of other, atomically. Fails with ErrCycleDetected and leaves
	// both edge lists unchanged if the edge would create a directed cycle.
	AddChild(other Variable) error

	// SetProbability writes p into every CPT cell matching the combination:
	// the variable's own target state plus a possibly partial assignment of
	// parent states. Direct and trained assignment override each other; the
	// last write wins.
	SetProbability(p float64, combination map[string]string) error

	// SetProbabilities assigns the full table from a flat array. Values
	// alternate fastest over the variable's own states, then over the most
	// recently added parent's states, then earlier parents.
	SetProbabilities(probs []float64) error

	// Probability looks up a single CPT cell; fails with ErrMissingProbability
	// if the exact combination was never set or trained.
	Probability(state string, parentAssignment map[string]string) (float64, error)

	// TransformEvidence converts a raw observed value into a canonical state,
	// validating it against the variable's state set.
	TransformEvidence(raw interface{}) (string, error)

	// CPT exposes the variable's conditional probability table
	CPT() *CPT

	base() *baseVariable
	observe(ex Example) error
	accumulate(ex Example) error
	trainingState(ex Example) (string, error)
	finalizeTraining() error
}

// baseVariable carries the state shared by every variant
type baseVariable struct {
	name     string
	kind     Kind
	net      *Network
	parents  []string // insertion order; most recently added last
	children []string
	cpt      *CPT
}

func (b *baseVariable) base() *baseVariable { return b }

// Name returns the variable's identifier, unique within its network
func (b *baseVariable) Name() string { return b.name }

// Kind returns the variant tag
func (b *baseVariable) Kind() Kind { return b.kind }

// States returns the ordered state set
func (b *baseVariable) States() []string { return b.cpt.States() }

// Parents returns the ordered parent identifiers
func (b *baseVariable) Parents() []string { return append([]string{}, b.parents...) }

// Children returns the ordered child identifiers
func (b *baseVariable) Children() []string { return append([]string{}, b.children...) }

// CPT exposes the conditional probability table
func (b *baseVariable) CPT() *CPT { return b.cpt }

// observe is the pre-accumulation hook; the base variant has nothing to do
func (b *baseVariable) observe(ex Example) error { return nil }

// finalizeTraining normalizes accumulated counts into the CPT for every
// parent-state combination, with a uniform fallback for combinations that
// were never observed
func (b *baseVariable) finalizeTraining() error {
	b.cpt.Finalize(b.combinationKeys())
	return nil
}

// AddChild wires the bidirectional parent/child edge after verifying the
// edge keeps the graph acyclic
func (b *baseVariable) AddChild(other Variable) error {
	ob := other.base()
	if ob.net != b.net {
		return fmt.Errorf("cannot link %q and %q: variables belong to different networks", b.name, ob.name)
	}
	if b.name == ob.name || b.net.reachable(ob.name, b.name) {
		return fmt.Errorf("edge %s -> %s: %w", b.name, ob.name, ErrCycleDetected)
	}
	if containsString(b.children, ob.name) {
		return nil
	}
	b.children = append(b.children, ob.name)
	ob.parents = append(ob.parents, b.name)
	return nil
}

// samplingParents resolves this variable's parents, skipping string managers:
// a string variable's probability mass lives in its covariables, which are
// wired as parents in their own right
func (b *baseVariable) samplingParents() []Variable {
	parents := make([]Variable, 0, len(b.parents))
	for _, name := range b.parents {
		p := b.net.variables[name]
		if p == nil || p.Kind() == KindString {
			continue
		}
		parents = append(parents, p)
	}
	return parents
}

// samplingChildren resolves this variable's children, skipping string managers
func (b *baseVariable) samplingChildren() []Variable {
	children := make([]Variable, 0, len(b.children))
	for _, name := range b.children {
		c := b.net.variables[name]
		if c == nil || c.Kind() == KindString {
			continue
		}
		children = append(children, c)
	}
	return children
}

// combinationKeys enumerates the canonical keys of every parent-state
// combination over the sampling parents
func (b *baseVariable) combinationKeys() []string {
	assignments := EnumerateAssignments(b.samplingParents())
	keys := make([]string, 0, len(assignments))
	for _, a := range assignments {
		keys = append(keys, comboKey(a))
	}
	return keys
}

// SetProbability writes p into every full CPT cell consistent with the given
// combination. The combination must name this variable's own target state;
// parent states may be partial and unspecified parents are expanded over
// their full state sets.
func (b *baseVariable) SetProbability(p float64, combination map[string]string) error {
	own, ok := combination[b.name]
	if !ok {
		return fmt.Errorf("combination for %q must include the variable's own state: %w", b.name, ErrUnknownState)
	}
	if !containsString(b.cpt.States(), own) {
		return fmt.Errorf("variable %q has no state %q: %w", b.name, own, ErrUnknownState)
	}

	parents := b.samplingParents()
	fixed := make(map[string]string)
	free := make([]Variable, 0, len(parents))
	for _, parent := range parents {
		state, given := combination[parent.Name()]
		if !given {
			free = append(free, parent)
			continue
		}
		if !containsString(parent.States(), state) {
			return fmt.Errorf("parent %q has no state %q: %w", parent.Name(), state, ErrUnknownState)
		}
		fixed[parent.Name()] = state
	}
	for name := range combination {
		if name == b.name {
			continue
		}
		isParent := false
		for _, parent := range parents {
			if parent.Name() == name {
				isParent = true
				break
			}
		}
		if !isParent {
			return fmt.Errorf("%q is not a parent of %q: %w", name, b.name, ErrUnknownVariable)
		}
	}

	for _, assignment := range EnumerateAssignments(free) {
		for name, state := range fixed {
			assignment[name] = state
		}
		if err := b.cpt.Set(comboKey(assignment), own, p); err != nil {
			return err
		}
	}
	return nil
}

// SetProbabilities assigns the full table from a flat array in the documented
// nested iteration order: own states fastest, then the most recently added
// parent's states, then earlier parents
func (b *baseVariable) SetProbabilities(probs []float64) error {
	states := b.cpt.States()
	assignments := EnumerateAssignments(b.samplingParents())
	expected := len(assignments) * len(states)
	if len(probs) != expected {
		return fmt.Errorf("variable %q expects %d probabilities, got %d", b.name, expected, len(probs))
	}
	i := 0
	for _, assignment := range assignments {
		if err := b.cpt.SetVector(comboKey(assignment), probs[i:i+len(states)]); err != nil {
			return err
		}
		i += len(states)
	}
	return nil
}

// Probability looks up a single CPT cell from a full parent assignment
func (b *baseVariable) Probability(state string, parentAssignment map[string]string) (float64, error) {
	assignment := make(map[string]string)
	for _, parent := range b.samplingParents() {
		ps, ok := parentAssignment[parent.Name()]
		if !ok {
			return 0, fmt.Errorf("variable %q: no state given for parent %q: %w", b.name, parent.Name(), ErrMissingProbability)
		}
		assignment[parent.Name()] = ps
	}
	p, err := b.cpt.Probability(comboKey(assignment), state)
	if err != nil {
		return 0, fmt.Errorf("variable %q: %w", b.name, err)
	}
	return p, nil
}

// EnumerateAssignments produces every full parent-state assignment in the bulk
// specification order: the most recently added parent (last in the slice)
// varies fastest, earlier parents slower. Returns a single empty assignment
// for an empty parent set.
func EnumerateAssignments(parents []Variable) []map[string]string {
	total := 1
	for _, p := range parents {
		if len(p.States()) == 0 {
			return nil
		}
		total *= len(p.States())
	}
	assignments := make([]map[string]string, 0, total)
	indices := make([]int, len(parents))
	for {
		assignment := make(map[string]string, len(parents))
		for i, p := range parents {
			assignment[p.Name()] = p.States()[indices[i]]
		}
		assignments = append(assignments, assignment)

		// odometer increment, last parent fastest
		pos := len(parents) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(parents[pos].States()) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return assignments
}

// accumulateExample increments the count for the (observed own state,
// observed parent states) combination derived from the example
func accumulateExample(v Variable, ex Example) error {
	own, err := v.trainingState(ex)
	if err != nil {
		return err
	}
	b := v.base()
	assignment := make(map[string]string)
	for _, parent := range b.samplingParents() {
		state, err := parent.trainingState(ex)
		if err != nil {
			return err
		}
		assignment[parent.Name()] = state
	}
	return b.cpt.AddCount(comboKey(assignment), own)
}

// variablesEqual is the deep equality used by Network.Equal: same states,
// same CPT values within tolerance, same parent/child identifier sets
func variablesEqual(a, b Variable) bool {
	if a.Name() != b.Name() {
		return false
	}
	as, bs := a.States(), b.States()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	if !sameStringSet(a.Parents(), b.Parents()) || !sameStringSet(a.Children(), b.Children()) {
		return false
	}
	return a.CPT().Equal(b.CPT())
}

// coerceState renders a raw evidence or training value as a candidate state name
func coerceState(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", raw)
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		seen[s]--
		if seen[s] < 0 {
			return false
		}
	}
	return true
}
