/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: discrete.go
Description: Discrete variable variant for the Akaylee Bayes engine. States are
fixed at construction (explicit list or the default true/false pair) and raw
evidence or training values are validated by membership in the state set.
*/

package model

import "fmt"

// DiscreteVariable is a random variable over a fixed, explicit state set
type DiscreteVariable struct {
	baseVariable
}

// NewDiscreteVariable creates a discrete variable and registers it with the
// network. A nil or empty state list defaults to the true/false pair.
func NewDiscreteVariable(net *Network, name string, states []string) (*DiscreteVariable, error) {
	if len(states) == 0 {
		states = []string{"true", "false"}
	}
	v := &DiscreteVariable{
		baseVariable: baseVariable{
			name: name,
			kind: KindDiscrete,
			net:  net,
			cpt:  NewCPT(states),
		},
	}
	if err := net.AddVariable(v); err != nil {
		return nil, err
	}
	return v, nil
}

// TransformEvidence validates membership of the raw value in the state set
func (d *DiscreteVariable) TransformEvidence(raw interface{}) (string, error) {
	state := coerceState(raw)
	if !containsString(d.cpt.States(), state) {
		return "", fmt.Errorf("variable %q has no state %q: %w", d.name, state, ErrUnknownState)
	}
	return state, nil
}

// trainingState resolves the observed state for this variable from an example
func (d *DiscreteVariable) trainingState(ex Example) (string, error) {
	raw, ok := ex[d.name]
	if !ok {
		return "", fmt.Errorf("example missing value for %q: %w", d.name, ErrMalformedExample)
	}
	return d.TransformEvidence(raw)
}

// accumulate records the example's (own state, parent states) observation
func (d *DiscreteVariable) accumulate(ex Example) error {
	return accumulateExample(d, ex)
}
