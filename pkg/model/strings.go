/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: strings.go
Description: String variable variant for the Akaylee Bayes engine. Decomposes
observed strings into overlapping n-grams and manages one binary covariable per
distinct n-gram. Covariables inherit the manager's parent and child edges at
creation and every covariable records presence or absence for every example.
*/

package model

import (
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-bayes/pkg/utils"
)

// DefaultNGramSize is the n-gram length used when none is configured
const DefaultNGramSize = 2

// StringVariable manages a dynamic set of binary covariables, one per distinct
// n-gram observed during training. The manager itself carries no probability
// mass: it is skipped during sampling and cannot be evidenced directly.
// Evidence applies at the covariable level.
type StringVariable struct {
	baseVariable
	ngramSize   int
	covariables map[string]string // n-gram -> covariable identifier
	covOrder    []string          // n-grams in creation order
}

// NewStringVariable creates a string variable and registers it with the
// network. A non-positive ngramSize defaults to DefaultNGramSize.
func NewStringVariable(net *Network, name string, ngramSize int) (*StringVariable, error) {
	if ngramSize <= 0 {
		ngramSize = DefaultNGramSize
	}
	v := &StringVariable{
		baseVariable: baseVariable{
			name: name,
			kind: KindString,
			net:  net,
			cpt:  NewCPT([]string{"true", "false"}),
		},
		ngramSize:   ngramSize,
		covariables: make(map[string]string),
	}
	if err := net.AddVariable(v); err != nil {
		return nil, err
	}
	return v, nil
}

// NGramSize returns the configured n-gram length
func (s *StringVariable) NGramSize() int { return s.ngramSize }

// Covariables returns the owned covariables in creation order
func (s *StringVariable) Covariables() []*Covariable {
	covs := make([]*Covariable, 0, len(s.covOrder))
	for _, gram := range s.covOrder {
		if cov, ok := s.net.variables[s.covariables[gram]].(*Covariable); ok {
			covs = append(covs, cov)
		}
	}
	return covs
}

// TransformEvidence always fails: string variables are not evidenced with raw
// strings; evidence applies to their covariables
func (s *StringVariable) TransformEvidence(raw interface{}) (string, error) {
	return "", fmt.Errorf("string variable %q takes evidence through its covariables: %w", s.name, ErrUnknownState)
}

// trainingState is never meaningful for the manager itself
func (s *StringVariable) trainingState(ex Example) (string, error) {
	return "", fmt.Errorf("string variable %q has no state of its own: %w", s.name, ErrMissingProbability)
}

// observedString extracts and validates this variable's raw value from an example
func (s *StringVariable) observedString(ex Example) (string, error) {
	raw, ok := ex[s.name]
	if !ok {
		return "", fmt.Errorf("example missing value for %q: %w", s.name, ErrMalformedExample)
	}
	str, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("variable %q requires a string value, got %T: %w", s.name, raw, ErrMalformedExample)
	}
	return str, nil
}

// observe lazily creates a covariable for each previously unseen n-gram in the
// example's string. Each new covariable replicates the manager's current
// parent and child edges.
func (s *StringVariable) observe(ex Example) error {
	str, err := s.observedString(ex)
	if err != nil {
		return err
	}
	for _, gram := range utils.NGrams(str, s.ngramSize) {
		if _, exists := s.covariables[gram]; exists {
			continue
		}
		if err := s.createCovariable(gram); err != nil {
			return err
		}
	}
	return nil
}

// createCovariable registers a new two-state covariable for an n-gram and
// wires it into the manager's current edge set
func (s *StringVariable) createCovariable(gram string) error {
	name := s.covariableName(gram)
	cov := &Covariable{
		baseVariable: baseVariable{
			name: name,
			kind: KindCovariable,
			net:  s.net,
			cpt:  NewCPT([]string{"true", "false"}),
		},
		owner: s.name,
		ngram: gram,
	}
	if err := s.net.AddVariable(cov); err != nil {
		return err
	}
	for _, pname := range s.parents {
		parent := s.net.variables[pname]
		if parent == nil {
			continue
		}
		if err := parent.AddChild(cov); err != nil {
			return err
		}
	}
	for _, cname := range s.children {
		child := s.net.variables[cname]
		if child == nil {
			continue
		}
		if err := cov.AddChild(child); err != nil {
			return err
		}
	}
	s.covariables[gram] = name
	s.covOrder = append(s.covOrder, gram)
	s.net.logCovariable(s.name, gram, name)
	return nil
}

// covariableName derives a unique network identifier for an n-gram covariable
func (s *StringVariable) covariableName(gram string) string {
	norm := utils.NormalizeName(gram)
	if norm == "" {
		norm = fmt.Sprintf("g%d", len(s.covOrder))
	}
	name := s.name + "__" + norm
	for i := 2; ; i++ {
		if _, taken := s.net.variables[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s__%s_%d", s.name, norm, i)
	}
}

// accumulate routes the example into every covariable created so far, not just
// the ones present in the current string, so absence is recorded symmetrically
// with presence
func (s *StringVariable) accumulate(ex Example) error {
	for _, gram := range s.covOrder {
		cov := s.net.variables[s.covariables[gram]]
		if cov == nil {
			continue
		}
		if err := cov.accumulate(ex); err != nil {
			return err
		}
	}
	return nil
}

// finalizeTraining delegates to each owned covariable
func (s *StringVariable) finalizeTraining() error {
	for _, cov := range s.Covariables() {
		if err := cov.finalizeTraining(); err != nil {
			return err
		}
	}
	return nil
}

// Covariable is an auxiliary two-state variable representing presence or
// absence of one n-gram, owned and managed by a string variable
type Covariable struct {
	baseVariable
	owner string
	ngram string
}

// Owner returns the identifier of the managing string variable
func (c *Covariable) Owner() string { return c.owner }

// NGram returns the n-gram this covariable tracks
func (c *Covariable) NGram() string { return c.ngram }

// TransformEvidence validates a raw value against the observed/not-observed pair
func (c *Covariable) TransformEvidence(raw interface{}) (string, error) {
	state := coerceState(raw)
	if !containsString(c.cpt.States(), state) {
		return "", fmt.Errorf("covariable %q has no state %q: %w", c.name, state, ErrUnknownState)
	}
	return state, nil
}

// trainingState reports whether this covariable's n-gram appears in the
// owner's observed string for the example
func (c *Covariable) trainingState(ex Example) (string, error) {
	raw, ok := ex[c.owner]
	if !ok {
		return "", fmt.Errorf("example missing value for %q: %w", c.owner, ErrMalformedExample)
	}
	str, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("variable %q requires a string value, got %T: %w", c.owner, raw, ErrMalformedExample)
	}
	if strings.Contains(str, c.ngram) {
		return "true", nil
	}
	return "false", nil
}

// accumulate records the example's presence/absence observation
func (c *Covariable) accumulate(ex Example) error {
	return accumulateExample(c, ex)
}
