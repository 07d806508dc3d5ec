/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: query.go
Description: Implementation of the query command for the Akaylee Bayes engine.
Loads a network from an XMLBIF document, pins the given evidence, runs the
Gibbs sampler, and prints the posterior estimate of the target variable.
*/

package commands

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kleascm/akaylee-bayes/pkg/inference"
	"github.com/kleascm/akaylee-bayes/pkg/xmlbif"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunQuery executes the query command
func RunQuery(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	path := viper.GetString("query.network")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read network %s: %w", path, err)
	}
	net, err := xmlbif.Decode(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse network %s: %w", path, err)
	}

	evidence := make(map[string]interface{})
	for _, decl := range viper.GetStringSlice("query.evidence") {
		name, state, err := parseNameValue(decl)
		if err != nil {
			return err
		}
		evidence[name] = state
	}
	if err := net.SetEvidence(evidence); err != nil {
		return fmt.Errorf("failed to set evidence: %w", err)
	}
	net.SetLogger(logger.GetLogger())
	logger.LogEvidence(net.Name(), net.Evidence(), nil)

	sampler := inference.New(&inference.Config{
		BurnIn:  viper.GetInt("burn_in"),
		Samples: viper.GetInt("samples"),
		Seed:    viper.GetInt64("seed"),
	})
	sampler.SetLogger(logger.GetLogger())
	net.SetEngine(sampler)

	variable := viper.GetString("query.variable")
	start := time.Now()
	posterior, err := net.QueryVariable(variable)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	logger.LogQuery(variable, posterior, viper.GetInt("samples"), map[string]interface{}{
		"network":  net.Name(),
		"duration": time.Since(start),
	})

	fmt.Printf("Posterior of %q given %v:\n", variable, net.Evidence())
	states := make([]string, 0, len(posterior))
	for state := range posterior {
		states = append(states, state)
	}
	sort.Strings(states)
	for _, state := range states {
		fmt.Printf("  %-20s %.4f\n", state, posterior[state])
	}
	return nil
}
