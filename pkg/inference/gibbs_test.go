/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: gibbs_test.go
Description: Tests for the Gibbs-sampling inference engine. Exercises the
classic sprinkler network against known posteriors, evidence pinning, seeded
reproducibility, and hard failure on missing probability cells.
*/

package inference_test

import (
	"math/rand"
	"testing"

	"github.com/kleascm/akaylee-bayes/pkg/inference"
	"github.com/kleascm/akaylee-bayes/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sprinklerNetwork builds the textbook cloudy/sprinkler/rain/grass-wet network
// with directly assigned CPTs
func sprinklerNetwork(t *testing.T) *model.Network {
	t.Helper()

	net := model.NewNetwork("sprinkler")
	cloudy, err := model.NewDiscreteVariable(net, "cloudy", nil)
	require.NoError(t, err)
	sprinkler, err := model.NewDiscreteVariable(net, "sprinkler", nil)
	require.NoError(t, err)
	rain, err := model.NewDiscreteVariable(net, "rain", nil)
	require.NoError(t, err)
	grassWet, err := model.NewDiscreteVariable(net, "grass_wet", nil)
	require.NoError(t, err)

	require.NoError(t, cloudy.AddChild(sprinkler))
	require.NoError(t, cloudy.AddChild(rain))
	require.NoError(t, sprinkler.AddChild(grassWet))
	require.NoError(t, rain.AddChild(grassWet))

	require.NoError(t, cloudy.SetProbabilities([]float64{0.5, 0.5}))
	require.NoError(t, sprinkler.SetProbabilities([]float64{0.1, 0.9, 0.5, 0.5}))
	require.NoError(t, rain.SetProbabilities([]float64{0.8, 0.2, 0.2, 0.8}))
	require.NoError(t, grassWet.SetProbabilities([]float64{
		0.99, 0.01, // sprinkler=true,  rain=true
		0.9, 0.1, // sprinkler=true,  rain=false
		0.9, 0.1, // sprinkler=false, rain=true
		0.0, 1.0, // sprinkler=false, rain=false
	}))
	return net
}

func TestSamplerDefaults(t *testing.T) {
	sampler := inference.New(nil)
	require.NotNil(t, sampler)

	result, err := sampler.Query(sprinklerNetwork(t), "cloudy")
	require.NoError(t, err)
	assert.Equal(t, inference.DefaultBurnIn, result.BurnIn)
	assert.Equal(t, inference.DefaultSamples, result.Samples)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "cloudy", result.Variable)
}

func TestSprinklerPosteriorWithEvidence(t *testing.T) {
	net := sprinklerNetwork(t)
	require.NoError(t, net.SetEvidence(map[string]interface{}{
		"sprinkler": "false",
		"rain":      "true",
	}))

	sampler := inference.New(&inference.Config{
		BurnIn:  1000,
		Samples: 10000,
		Rand:    rand.New(rand.NewSource(42)),
	})

	posterior, err := sampler.Posterior(net, "grass_wet")
	require.NoError(t, err)

	// P(grass_wet=true | sprinkler=false, rain=true) = 0.9 exactly
	assert.InDelta(t, 0.9, posterior["true"], 0.02)
	assert.InDelta(t, 0.1, posterior["false"], 0.02)
	assert.InDelta(t, 1.0, posterior["true"]+posterior["false"], 1e-9)
}

func TestSprinklerMarginal(t *testing.T) {
	net := sprinklerNetwork(t)

	sampler := inference.New(&inference.Config{
		Rand: rand.New(rand.NewSource(7)),
	})

	// with no evidence the cloudy marginal is its prior
	posterior, err := sampler.Posterior(net, "cloudy")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, posterior["true"], 0.02)
}

func TestEvidenceVariablesStayPinned(t *testing.T) {
	net := sprinklerNetwork(t)
	require.NoError(t, net.SetEvidence(map[string]interface{}{"cloudy": "true"}))

	sampler := inference.New(&inference.Config{
		BurnIn:  500,
		Samples: 5000,
		Rand:    rand.New(rand.NewSource(3)),
	})

	// querying the evidence variable itself returns a point mass
	posterior, err := sampler.Posterior(net, "cloudy")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, posterior["true"], 1e-9)
	assert.InDelta(t, 0.0, posterior["false"], 1e-9)

	// and conditions the rest of the network
	posterior, err = sampler.Posterior(net, "rain")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, posterior["true"], 0.02)
}

func TestSeededRunsAreReproducible(t *testing.T) {
	net := sprinklerNetwork(t)

	first := inference.New(&inference.Config{Seed: 99, BurnIn: 200, Samples: 2000})
	second := inference.New(&inference.Config{Seed: 99, BurnIn: 200, Samples: 2000})

	a, err := first.Posterior(net, "rain")
	require.NoError(t, err)
	b, err := second.Posterior(net, "rain")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMissingProbabilityFailsQuery(t *testing.T) {
	net := model.NewNetwork("incomplete")
	a, err := model.NewDiscreteVariable(net, "a", nil)
	require.NoError(t, err)
	b, err := model.NewDiscreteVariable(net, "b", nil)
	require.NoError(t, err)
	require.NoError(t, a.AddChild(b))
	require.NoError(t, a.SetProbabilities([]float64{0.5, 0.5}))
	// b's table is never populated

	sampler := inference.New(&inference.Config{Seed: 1, BurnIn: 10, Samples: 10})
	_, err = sampler.Posterior(net, "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMissingProbability)
}

func TestQueryUnknownAndStringTargets(t *testing.T) {
	net := model.NewNetwork("targets")
	_, err := model.NewStringVariable(net, "text", 2)
	require.NoError(t, err)

	sampler := inference.New(&inference.Config{Seed: 1})

	_, err = sampler.Query(net, "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownVariable)

	// string managers are queried through their covariables
	_, err = sampler.Query(net, "text")
	require.Error(t, err)
}

func TestEngineIntegrationWithNetwork(t *testing.T) {
	net := sprinklerNetwork(t)
	net.SetEngine(inference.New(&inference.Config{
		Rand: rand.New(rand.NewSource(11)),
	}))
	require.NoError(t, net.SetEvidence(map[string]interface{}{"grass_wet": "true"}))

	// wet grass makes rain more likely than its prior
	posterior, err := net.QueryVariable("rain")
	require.NoError(t, err)
	assert.Greater(t, posterior["true"], 0.5)
}
