/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: model_test.go
Description: Comprehensive unit tests for the core model components. Tests CPT
normalization, edge wiring with cycle detection, evidence handling, cumulative
training, string covariables, and numeric discretization with proper test
coverage and edge case handling.
*/

package model_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/kleascm/akaylee-bayes/pkg/model"
	"github.com/kleascm/akaylee-bayes/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Juicy metrics registry ---
type TestResult struct {
	Name       string  `json:"name"`
	Passed     bool    `json:"passed"`
	Error      string  `json:"error,omitempty"`
	DurationMs float64 `json:"duration_ms"`
}

var (
	testResults []TestResult
	suiteStart  time.Time
	suiteEnd    time.Time
)

func recordTestResult(name string, passed bool, errMsg string, duration time.Duration) {
	testResults = append(testResults, TestResult{
		Name:       name,
		Passed:     passed,
		Error:      errMsg,
		DurationMs: float64(duration.Microseconds()) / 1000.0,
	})
}

// --- Test wrappers ---

func runTest(t *testing.T, name string, testFunc func(t *testing.T)) {
	start := time.Now()
	var errMsg string
	passed := true
	defer func() {
		if r := recover(); r != nil {
			errMsg = fmt.Sprintf("panic: %v", r)
			passed = false
		}
		dur := time.Since(start)
		recordTestResult(name, passed && !t.Failed(), errMsg, dur)
	}()
	testFunc(t)
	if t.Failed() {
		passed = false
	}
}

// TestDiscreteVariableDefaults tests default state assignment for discrete variables
func TestDiscreteVariableDefaults(t *testing.T) {
	runTest(t, "TestDiscreteVariableDefaults", func(t *testing.T) {
		net := model.NewNetwork("defaults")
		v, err := model.NewDiscreteVariable(net, "flag", nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"true", "false"}, v.States())
		assert.Equal(t, model.KindDiscrete, v.Kind())
		assert.Empty(t, v.Parents())
		assert.Empty(t, v.Children())
	})
}

// TestDuplicateVariableRejected tests identifier uniqueness within a network
func TestDuplicateVariableRejected(t *testing.T) {
	runTest(t, "TestDuplicateVariableRejected", func(t *testing.T) {
		net := model.NewNetwork("dupes")
		_, err := model.NewDiscreteVariable(net, "flag", nil)
		require.NoError(t, err)

		_, err = model.NewDiscreteVariable(net, "flag", []string{"a", "b"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrDuplicateVariable)
	})
}

// TestAddChildSymmetry tests that edges update both endpoints atomically
func TestAddChildSymmetry(t *testing.T) {
	runTest(t, "TestAddChildSymmetry", func(t *testing.T) {
		net := model.NewNetwork("edges")
		a, err := model.NewDiscreteVariable(net, "a", nil)
		require.NoError(t, err)
		b, err := model.NewDiscreteVariable(net, "b", nil)
		require.NoError(t, err)

		require.NoError(t, a.AddChild(b))
		assert.Contains(t, a.Children(), "b")
		assert.Contains(t, b.Parents(), "a")

		// duplicate edges are a no-op
		require.NoError(t, a.AddChild(b))
		assert.Len(t, a.Children(), 1)
		assert.Len(t, b.Parents(), 1)
	})
}

// TestCycleDetection tests that cycle-creating edges fail and change nothing
func TestCycleDetection(t *testing.T) {
	runTest(t, "TestCycleDetection", func(t *testing.T) {
		net := model.NewNetwork("cycles")
		a, _ := model.NewDiscreteVariable(net, "a", nil)
		b, _ := model.NewDiscreteVariable(net, "b", nil)
		c, _ := model.NewDiscreteVariable(net, "c", nil)

		require.NoError(t, a.AddChild(b))
		require.NoError(t, b.AddChild(c))

		err := c.AddChild(a)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrCycleDetected)

		// both endpoints untouched by the failed edge
		assert.Empty(t, c.Children())
		assert.Empty(t, a.Parents())

		// self-edges are cycles too
		err = a.AddChild(a)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrCycleDetected)
	})
}

// TestSetProbabilityPartialCombination tests expansion of partial parent assignments
func TestSetProbabilityPartialCombination(t *testing.T) {
	runTest(t, "TestSetProbabilityPartialCombination", func(t *testing.T) {
		net := model.NewNetwork("partial")
		a, _ := model.NewDiscreteVariable(net, "a", nil)
		b, _ := model.NewDiscreteVariable(net, "b", nil)
		c, _ := model.NewDiscreteVariable(net, "c", nil)
		require.NoError(t, a.AddChild(c))
		require.NoError(t, b.AddChild(c))

		// fix only parent a; the assignment expands over both states of b
		require.NoError(t, c.SetProbability(0.7, map[string]string{"c": "true", "a": "true"}))

		for _, bState := range []string{"true", "false"} {
			p, err := c.Probability("true", map[string]string{"a": "true", "b": bState})
			require.NoError(t, err)
			assert.InDelta(t, 0.7, p, model.ProbabilityTolerance)
		}

		// unknown states and non-parents are rejected
		err := c.SetProbability(0.5, map[string]string{"c": "maybe"})
		assert.ErrorIs(t, err, model.ErrUnknownState)
		err = c.SetProbability(0.5, map[string]string{"a": "true"})
		assert.ErrorIs(t, err, model.ErrUnknownState)
		err = c.SetProbability(0.5, map[string]string{"c": "true", "unrelated": "true"})
		assert.ErrorIs(t, err, model.ErrUnknownVariable)
	})
}

// TestSetProbabilitiesBulkOrder tests the flat-array assignment order: own
// states fastest, most recently added parent next
func TestSetProbabilitiesBulkOrder(t *testing.T) {
	runTest(t, "TestSetProbabilitiesBulkOrder", func(t *testing.T) {
		net := model.NewNetwork("bulk")
		a, _ := model.NewDiscreteVariable(net, "a", nil)
		b, _ := model.NewDiscreteVariable(net, "b", nil)
		c, _ := model.NewDiscreteVariable(net, "c", nil)
		require.NoError(t, a.AddChild(c))
		require.NoError(t, b.AddChild(c))

		// order: (a=true,b=true), (a=true,b=false), (a=false,b=true), (a=false,b=false)
		require.NoError(t, c.SetProbabilities([]float64{
			0.99, 0.01,
			0.9, 0.1,
			0.8, 0.2,
			0.0, 1.0,
		}))

		p, err := c.Probability("true", map[string]string{"a": "true", "b": "false"})
		require.NoError(t, err)
		assert.InDelta(t, 0.9, p, model.ProbabilityTolerance)

		p, err = c.Probability("false", map[string]string{"a": "false", "b": "false"})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p, model.ProbabilityTolerance)

		// wrong length is rejected
		err = c.SetProbabilities([]float64{0.5, 0.5})
		require.Error(t, err)
	})
}

// TestProbabilityMissing tests that unpopulated cells fail rather than default
func TestProbabilityMissing(t *testing.T) {
	runTest(t, "TestProbabilityMissing", func(t *testing.T) {
		net := model.NewNetwork("missing")
		v, _ := model.NewDiscreteVariable(net, "v", nil)

		_, err := v.Probability("true", map[string]string{})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrMissingProbability)
	})
}

// TestEvidenceAtomicity tests validate-then-apply semantics for evidence
func TestEvidenceAtomicity(t *testing.T) {
	runTest(t, "TestEvidenceAtomicity", func(t *testing.T) {
		net := model.NewNetwork("evidence")
		_, err := model.NewDiscreteVariable(net, "weather", []string{"sunny", "rainy"})
		require.NoError(t, err)

		require.NoError(t, net.SetEvidence(map[string]interface{}{"weather": "rainy"}))
		assert.Equal(t, map[string]string{"weather": "rainy"}, net.Evidence())

		// one bad entry fails the whole call and keeps the prior evidence
		err = net.SetEvidence(map[string]interface{}{"weather": "snowy"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknownState)
		assert.Equal(t, map[string]string{"weather": "rainy"}, net.Evidence())

		err = net.SetEvidence(map[string]interface{}{"nope": "sunny"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknownVariable)
		assert.Equal(t, map[string]string{"weather": "rainy"}, net.Evidence())

		// replacement is wholesale, not a merge
		require.NoError(t, net.SetEvidence(map[string]interface{}{}))
		assert.Empty(t, net.Evidence())
	})
}

// TestTrainingNormalization tests that trained CPT vectors sum to one
func TestTrainingNormalization(t *testing.T) {
	runTest(t, "TestTrainingNormalization", func(t *testing.T) {
		net := model.NewNetwork("normalization")
		a, _ := model.NewDiscreteVariable(net, "a", nil)
		b, _ := model.NewDiscreteVariable(net, "b", nil)
		require.NoError(t, a.AddChild(b))

		examples := []model.Example{
			{"a": "true", "b": "true"},
			{"a": "true", "b": "true"},
			{"a": "true", "b": "false"},
			{"a": "false", "b": "false"},
		}
		require.NoError(t, net.Train(examples))

		for _, v := range net.Variables() {
			for _, key := range v.CPT().Keys() {
				vec, err := v.CPT().Vector(key)
				require.NoError(t, err)
				assert.InDelta(t, 1.0, utils.Sum(vec), model.ProbabilityTolerance,
					"vector for %s/%s must sum to one", v.Name(), key)
			}
		}

		p, err := b.Probability("true", map[string]string{"a": "true"})
		require.NoError(t, err)
		assert.InDelta(t, 2.0/3.0, p, model.ProbabilityTolerance)
	})
}

// TestTrainingUniformFallback tests unobserved combinations finalize uniformly
func TestTrainingUniformFallback(t *testing.T) {
	runTest(t, "TestTrainingUniformFallback", func(t *testing.T) {
		net := model.NewNetwork("fallback")
		a, _ := model.NewDiscreteVariable(net, "a", nil)
		b, _ := model.NewDiscreteVariable(net, "b", nil)
		require.NoError(t, a.AddChild(b))

		// a=false never appears, so that combination of b falls back to uniform
		require.NoError(t, net.Train([]model.Example{
			{"a": "true", "b": "true"},
			{"a": "true", "b": "false"},
		}))

		p, err := b.Probability("true", map[string]string{"a": "false"})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, p, model.ProbabilityTolerance)
	})
}

// TestTrainingCumulative tests that later batches fold into retained history
func TestTrainingCumulative(t *testing.T) {
	runTest(t, "TestTrainingCumulative", func(t *testing.T) {
		net := model.NewNetwork("cumulative")
		v, _ := model.NewDiscreteVariable(net, "v", nil)

		require.NoError(t, net.Train([]model.Example{
			{"v": "true"}, {"v": "true"}, {"v": "true"}, {"v": "false"},
		}))
		p, err := v.Probability("true", map[string]string{})
		require.NoError(t, err)
		assert.InDelta(t, 0.75, p, model.ProbabilityTolerance)

		require.NoError(t, net.Train([]model.Example{
			{"v": "false"}, {"v": "false"}, {"v": "false"}, {"v": "false"},
		}))
		p, err = v.Probability("true", map[string]string{})
		require.NoError(t, err)
		assert.InDelta(t, 3.0/8.0, p, model.ProbabilityTolerance)
	})
}

// TestTrainingMalformedBatchAtomic tests that an invalid batch changes nothing
func TestTrainingMalformedBatchAtomic(t *testing.T) {
	runTest(t, "TestTrainingMalformedBatchAtomic", func(t *testing.T) {
		net := model.NewNetwork("atomic")
		v, _ := model.NewDiscreteVariable(net, "v", nil)

		require.NoError(t, net.Train([]model.Example{
			{"v": "true"}, {"v": "false"},
		}))

		// second example carries an unknown state, first example must not count
		err := net.Train([]model.Example{
			{"v": "true"},
			{"v": "bogus"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknownState)

		p, err := v.Probability("true", map[string]string{})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, p, model.ProbabilityTolerance)

		// a missing value is malformed as well
		err = net.Train([]model.Example{{}})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrMalformedExample)
	})
}

// TestStringCovariableCreation tests lazy covariable creation per distinct n-gram
func TestStringCovariableCreation(t *testing.T) {
	runTest(t, "TestStringCovariableCreation", func(t *testing.T) {
		net := model.NewNetwork("covariables")
		s, err := model.NewStringVariable(net, "message", 2)
		require.NoError(t, err)

		require.NoError(t, net.Train([]model.Example{
			{"message": "THIS IS A STRING"},
		}))

		// 15 overlapping bigrams, 13 distinct
		covs := s.Covariables()
		assert.Len(t, covs, 13)
		assert.Len(t, net.Variables(), 14)

		for _, cov := range covs {
			assert.Equal(t, model.KindCovariable, cov.Kind())
			assert.Equal(t, "message", cov.Owner())
			assert.Len(t, cov.NGram(), 2)

			// every gram appears in the only example
			p, err := cov.Probability("true", map[string]string{})
			require.NoError(t, err)
			assert.InDelta(t, 1.0, p, model.ProbabilityTolerance)
		}
	})
}

// TestStringCovariableSymmetricAbsence tests that covariables count absence for
// examples that predate their creation
func TestStringCovariableSymmetricAbsence(t *testing.T) {
	runTest(t, "TestStringCovariableSymmetricAbsence", func(t *testing.T) {
		net := model.NewNetwork("absence")
		s, _ := model.NewStringVariable(net, "message", 2)

		require.NoError(t, net.Train([]model.Example{{"message": "ab"}}))
		require.NoError(t, net.Train([]model.Example{{"message": "cd"}}))

		require.Len(t, s.Covariables(), 2)
		for _, cov := range s.Covariables() {
			// each gram appears in exactly one of the two retained examples,
			// regardless of which training pass created the covariable
			p, err := cov.Probability("true", map[string]string{})
			require.NoError(t, err)
			assert.InDelta(t, 0.5, p, model.ProbabilityTolerance, "gram %q", cov.NGram())
		}
	})
}

// TestStringCovariableEdgeInheritance tests that new covariables replicate the
// manager's parent and child edges
func TestStringCovariableEdgeInheritance(t *testing.T) {
	runTest(t, "TestStringCovariableEdgeInheritance", func(t *testing.T) {
		net := model.NewNetwork("inheritance")
		lang, _ := model.NewDiscreteVariable(net, "lang", []string{"en", "de"})
		subject, _ := model.NewStringVariable(net, "subject", 2)
		spam, _ := model.NewDiscreteVariable(net, "spam", nil)
		require.NoError(t, lang.AddChild(subject))
		require.NoError(t, subject.AddChild(spam))

		require.NoError(t, net.Train([]model.Example{
			{"lang": "en", "subject": "hi", "spam": "true"},
			{"lang": "de", "subject": "hi", "spam": "false"},
		}))

		covs := subject.Covariables()
		require.Len(t, covs, 1)
		cov := covs[0]

		assert.Contains(t, cov.Parents(), "lang")
		assert.Contains(t, cov.Children(), "spam")
		assert.Contains(t, lang.Children(), cov.Name())
		assert.Contains(t, spam.Parents(), cov.Name())
	})
}

// TestStringManagerExcluded tests that the manager itself carries no mass
func TestStringManagerExcluded(t *testing.T) {
	runTest(t, "TestStringManagerExcluded", func(t *testing.T) {
		net := model.NewNetwork("manager")
		_, err := model.NewStringVariable(net, "text", 2)
		require.NoError(t, err)

		// not evidenced directly
		err = net.SetEvidence(map[string]interface{}{"text": "raw"})
		require.Error(t, err)

		// not queried directly
		_, err = net.QueryVariable("text")
		require.Error(t, err)

		// excluded from the sampling set
		for _, v := range net.SamplingVariables() {
			assert.NotEqual(t, model.KindString, v.Kind())
		}
	})
}

// TestNumericDiscretization tests bin derivation from running statistics
func TestNumericDiscretization(t *testing.T) {
	runTest(t, "TestNumericDiscretization", func(t *testing.T) {
		net := model.NewNetwork("numeric")
		v, err := model.NewNumericVariable(net, "temp", 2)
		require.NoError(t, err)
		assert.Empty(t, v.States(), "no states before training")

		require.NoError(t, net.Train([]model.Example{
			{"temp": 1.0}, {"temp": 2.0}, {"temp": 3.0}, {"temp": 4.0},
		}))

		// two bins cut at the mean
		require.Len(t, v.States(), 2)
		boundaries := v.Boundaries()
		require.Len(t, boundaries, 1)
		assert.InDelta(t, 2.5, boundaries[0], 1e-9)
		assert.InDelta(t, 2.5, v.Mean(), 1e-9)

		for _, state := range v.States() {
			p, err := v.Probability(state, map[string]string{})
			require.NoError(t, err)
			assert.InDelta(t, 0.5, p, model.ProbabilityTolerance)
		}
	})
}

// TestNumericRebinning tests that new data moves boundaries and replays history
func TestNumericRebinning(t *testing.T) {
	runTest(t, "TestNumericRebinning", func(t *testing.T) {
		net := model.NewNetwork("rebinning")
		v, _ := model.NewNumericVariable(net, "temp", 2)

		require.NoError(t, net.Train([]model.Example{
			{"temp": 1.0}, {"temp": 2.0}, {"temp": 3.0}, {"temp": 4.0},
		}))
		firstStates := v.States()

		require.NoError(t, net.Train([]model.Example{{"temp": 10.0}}))

		// mean moved to 4, so the cut point and the state labels moved with it
		require.Len(t, v.Boundaries(), 1)
		assert.InDelta(t, 4.0, v.Boundaries()[0], 1e-9)
		assert.NotEqual(t, firstStates, v.States())

		// full history re-binned: 1, 2, 3 below the cut; 4, 10 at or above it
		states := v.States()
		pBelow, err := v.Probability(states[0], map[string]string{})
		require.NoError(t, err)
		assert.InDelta(t, 0.6, pBelow, model.ProbabilityTolerance)
		pAbove, err := v.Probability(states[1], map[string]string{})
		require.NoError(t, err)
		assert.InDelta(t, 0.4, pAbove, model.ProbabilityTolerance)

		// raw evidence values map onto the current bins
		state, err := v.TransformEvidence(3.2)
		require.NoError(t, err)
		assert.Equal(t, states[0], state)
		state, err = v.TransformEvidence(states[1])
		require.NoError(t, err)
		assert.Equal(t, states[1], state)
	})
}

// TestNumericZeroVarianceLabelsUnique tests that degenerate statistics still
// produce distinct bin state names
func TestNumericZeroVarianceLabelsUnique(t *testing.T) {
	runTest(t, "TestNumericZeroVarianceLabelsUnique", func(t *testing.T) {
		net := model.NewNetwork("degenerate")
		v, _ := model.NewNumericVariable(net, "constant", 4)

		// identical observations give zero variance, so all cut points land
		// on the mean and the interior labels would otherwise collide
		require.NoError(t, net.Train([]model.Example{
			{"constant": 5.0}, {"constant": 5.0}, {"constant": 5.0},
		}))

		states := v.States()
		require.Len(t, states, 4)
		seen := make(map[string]bool, len(states))
		for _, s := range states {
			assert.False(t, seen[s], "duplicate state label %q", s)
			seen[s] = true
		}

		// with distinct labels the trained vector still sums to one
		vec, err := v.CPT().Vector("")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, utils.Sum(vec), model.ProbabilityTolerance)
	})
}

// TestTrainingRejectsUnknownKeys tests that stray example keys fail loudly
func TestTrainingRejectsUnknownKeys(t *testing.T) {
	runTest(t, "TestTrainingRejectsUnknownKeys", func(t *testing.T) {
		net := model.NewNetwork("strays")
		v, _ := model.NewDiscreteVariable(net, "v", nil)

		require.NoError(t, net.Train([]model.Example{{"v": "true"}}))

		// a misspelled column name must not be silently dropped
		err := net.Train([]model.Example{{"v": "false", "vv": "false"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknownVariable)

		// and the rejected batch left the table untouched
		p, err := v.Probability("true", map[string]string{})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, p, model.ProbabilityTolerance)
	})
}

// TestNumericValueParsing tests the accepted raw value kinds
func TestNumericValueParsing(t *testing.T) {
	runTest(t, "TestNumericValueParsing", func(t *testing.T) {
		net := model.NewNetwork("parsing")
		v, _ := model.NewNumericVariable(net, "x", 2)

		// ints and numeric strings both observe cleanly
		require.NoError(t, net.Train([]model.Example{
			{"x": 1}, {"x": "2.5"}, {"x": 4.0},
		}))
		require.Len(t, v.States(), 2)

		err := net.Train([]model.Example{{"x": "not-a-number"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrMalformedExample)
	})
}

// TestNetworkEqual tests deep equality over variables, edges, and CPT values
func TestNetworkEqual(t *testing.T) {
	runTest(t, "TestNetworkEqual", func(t *testing.T) {
		build := func(p float64) *model.Network {
			net := model.NewNetwork("twin")
			a, _ := model.NewDiscreteVariable(net, "a", nil)
			b, _ := model.NewDiscreteVariable(net, "b", nil)
			_ = a.AddChild(b)
			_ = a.SetProbabilities([]float64{0.3, 0.7})
			_ = b.SetProbabilities([]float64{p, 1 - p, 0.5, 0.5})
			return net
		}

		net := build(0.8)
		assert.True(t, net.Equal(net), "equality is reflexive")

		same := build(0.8)
		assert.True(t, net.Equal(same))
		assert.True(t, same.Equal(net), "equality is symmetric")

		// a single cell off by more than the tolerance breaks equality
		different := build(0.8 + 1e-3)
		assert.False(t, net.Equal(different))

		// within tolerance still compares equal
		near := build(0.8 + 1e-8)
		assert.True(t, net.Equal(near))

		other := model.NewNetwork("other")
		assert.False(t, net.Equal(other))
		assert.False(t, net.Equal(nil))
	})
}

// TestQueryVariableErrors tests query dispatch failure modes
func TestQueryVariableErrors(t *testing.T) {
	runTest(t, "TestQueryVariableErrors", func(t *testing.T) {
		net := model.NewNetwork("queries")
		_, err := model.NewDiscreteVariable(net, "v", nil)
		require.NoError(t, err)

		_, err = net.QueryVariable("ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknownVariable)

		// no engine configured
		_, err = net.QueryVariable("v")
		require.Error(t, err)
	})
}

// TestEnumerateAssignments tests the bulk enumeration order and edge cases
func TestEnumerateAssignments(t *testing.T) {
	runTest(t, "TestEnumerateAssignments", func(t *testing.T) {
		net := model.NewNetwork("enumeration")
		a, _ := model.NewDiscreteVariable(net, "a", []string{"a1", "a2"})
		b, _ := model.NewDiscreteVariable(net, "b", []string{"b1", "b2", "b3"})

		assignments := model.EnumerateAssignments([]model.Variable{a, b})
		require.Len(t, assignments, 6)

		// last variable varies fastest
		assert.Equal(t, map[string]string{"a": "a1", "b": "b1"}, assignments[0])
		assert.Equal(t, map[string]string{"a": "a1", "b": "b2"}, assignments[1])
		assert.Equal(t, map[string]string{"a": "a2", "b": "b1"}, assignments[3])

		empty := model.EnumerateAssignments(nil)
		require.Len(t, empty, 1)
		assert.Empty(t, empty[0])
	})
}

// TestMain for model tests to collect and write metrics
func TestMain(m *testing.M) {
	suiteStart = time.Now()
	code := m.Run()
	suiteEnd = time.Now()

	total := len(testResults)
	passed := 0
	failed := 0
	for _, r := range testResults {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	summary := map[string]interface{}{
		"timestamp":        suiteStart.Format("2006-01-02 15:04:05"),
		"version":          "1.0.0",
		"total_tests":      total,
		"passed":           passed,
		"failed":           failed,
		"start_time":       suiteStart.Format(time.RFC3339),
		"end_time":         suiteEnd.Format(time.RFC3339),
		"duration_seconds": suiteEnd.Sub(suiteStart).Seconds(),
		"tests":            testResults,
	}

	if _, err := utils.WriteMetricsResult("model", "1.0.0", summary); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write metrics: %v\n", err)
	}

	os.Exit(code)
}
