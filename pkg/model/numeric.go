/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: numeric.go
Description: Numeric variable variant for the Akaylee Bayes engine. Maintains
running count, mean, and variance with Welford's algorithm, derives a fixed
number of discretization bins from the current statistics after each training
batch, and retains every raw observation so the full history can be re-binned
whenever the boundaries move.
*/

package model

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultNumericBins is the discretization bin count used when none is configured
const DefaultNumericBins = 2

// NumericVariable discretizes continuous observations into bin states computed
// from running statistics. Retained observations grow without bound by design;
// there is no eviction policy.
type NumericVariable struct {
	baseVariable
	bins int

	// Welford running statistics
	count int64
	mean  float64
	m2    float64

	values     []float64 // all raw observations, kept for re-binning
	boundaries []float64 // bin cut points, ascending; len == bins-1
}

// NewNumericVariable creates a numeric variable and registers it with the
// network. A non-positive bin count defaults to DefaultNumericBins. The
// variable has no states until it has been trained.
func NewNumericVariable(net *Network, name string, bins int) (*NumericVariable, error) {
	if bins <= 0 {
		bins = DefaultNumericBins
	}
	v := &NumericVariable{
		baseVariable: baseVariable{
			name: name,
			kind: KindNumeric,
			net:  net,
			cpt:  NewCPT(nil),
		},
		bins: bins,
	}
	if err := net.AddVariable(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Bins returns the configured discretization bin count
func (n *NumericVariable) Bins() int { return n.bins }

// Mean returns the running mean over all observations seen so far
func (n *NumericVariable) Mean() float64 { return n.mean }

// Variance returns the running sample variance over all observations
func (n *NumericVariable) Variance() float64 {
	if n.count < 2 {
		return 0
	}
	return n.m2 / float64(n.count-1)
}

// Boundaries returns the current bin cut points
func (n *NumericVariable) Boundaries() []float64 {
	return append([]float64{}, n.boundaries...)
}

// observedValue extracts and parses this variable's numeric value from an example
func (n *NumericVariable) observedValue(ex Example) (float64, error) {
	raw, ok := ex[n.name]
	if !ok {
		return 0, fmt.Errorf("example missing value for %q: %w", n.name, ErrMalformedExample)
	}
	v, err := toFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("variable %q: %v: %w", n.name, err, ErrMalformedExample)
	}
	return v, nil
}

// observe folds the example's value into the running statistics and retains it.
// Welford's update avoids the catastrophic cancellation of a naive
// sum-of-squares accumulator.
func (n *NumericVariable) observe(ex Example) error {
	v, err := n.observedValue(ex)
	if err != nil {
		return err
	}
	n.count++
	delta := v - n.mean
	n.mean += delta / float64(n.count)
	n.m2 += delta * (v - n.mean)
	n.values = append(n.values, v)
	return nil
}

// rediscretize recomputes the bin boundaries and state labels from the current
// statistics. Cut points are equal-width over [mean-2*stddev, mean+2*stddev]
// with open-ended outer bins; for the default two bins this is a single cut at
// the mean. Replacing the states drops all probabilities and counts, which the
// training pass rebuilds from retained history.
func (n *NumericVariable) rediscretize() {
	if n.count == 0 {
		return
	}
	stddev := math.Sqrt(n.Variance())
	lo := n.mean - 2*stddev
	hi := n.mean + 2*stddev
	width := (hi - lo) / float64(n.bins)

	n.boundaries = make([]float64, n.bins-1)
	for i := range n.boundaries {
		n.boundaries[i] = lo + width*float64(i+1)
	}

	// near-zero variance can collapse adjacent boundaries onto the same
	// formatted label; suffix the bin index to keep state names unique
	states := make([]string, n.bins)
	seen := make(map[string]bool, n.bins)
	for i := range states {
		label := n.stateLabel(i)
		if seen[label] {
			label = fmt.Sprintf("%s_%d", label, i)
		}
		seen[label] = true
		states[i] = label
	}
	n.cpt.SetStates(states)
	n.net.logDiscretization(n.name, n.bins, n.boundaries)
}

// stateLabel names the i-th bin, embedding the boundary values so a boundary
// move always produces fresh state names
func (n *NumericVariable) stateLabel(i int) string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	switch {
	case len(n.boundaries) == 0:
		return "all"
	case i == 0:
		return "below_" + format(n.boundaries[0])
	case i == len(n.boundaries):
		return "above_" + format(n.boundaries[len(n.boundaries)-1])
	default:
		return "from_" + format(n.boundaries[i-1]) + "_to_" + format(n.boundaries[i])
	}
}

// binFor maps a value to its bin state under the current boundaries
func (n *NumericVariable) binFor(v float64) (string, error) {
	states := n.cpt.States()
	if len(states) == 0 {
		return "", fmt.Errorf("variable %q has no discretization yet: %w", n.name, ErrUnknownState)
	}
	for i, boundary := range n.boundaries {
		if v < boundary {
			return states[i], nil
		}
	}
	return states[len(states)-1], nil
}

// TransformEvidence accepts either a raw numeric value, which is mapped to its
// bin, or an existing bin state label
func (n *NumericVariable) TransformEvidence(raw interface{}) (string, error) {
	if s, ok := raw.(string); ok && containsString(n.cpt.States(), s) {
		return s, nil
	}
	v, err := toFloat(raw)
	if err != nil {
		return "", fmt.Errorf("variable %q: %v: %w", n.name, err, ErrUnknownState)
	}
	return n.binFor(v)
}

// trainingState resolves the example's value to a bin under current boundaries
func (n *NumericVariable) trainingState(ex Example) (string, error) {
	v, err := n.observedValue(ex)
	if err != nil {
		return "", err
	}
	return n.binFor(v)
}

// accumulate records the example's (bin, parent states) observation
func (n *NumericVariable) accumulate(ex Example) error {
	return accumulateExample(n, ex)
}

// toFloat parses the numeric value kinds accepted in examples and evidence
func toFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", raw, raw)
	}
}
