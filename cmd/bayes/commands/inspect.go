/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inspect.go
Description: Implementation of the inspect command for the Akaylee Bayes engine.
Loads a network from an XMLBIF document and prints its structure: variables,
states, parent edges, and optionally the full conditional probability tables.
*/

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/kleascm/akaylee-bayes/pkg/model"
	"github.com/kleascm/akaylee-bayes/pkg/xmlbif"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunInspect executes the inspect command
func RunInspect(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := viper.GetString("inspect.network")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read network %s: %w", path, err)
	}
	net, err := xmlbif.Decode(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse network %s: %w", path, err)
	}

	fmt.Printf("Network: %s\n", net.Name())
	fmt.Printf("Variables: %d\n\n", len(net.Variables()))

	for _, v := range net.Variables() {
		fmt.Printf("%s (%s)\n", v.Name(), v.Kind())
		fmt.Printf("  states:  %s\n", strings.Join(v.States(), ", "))
		if parents := v.Parents(); len(parents) > 0 {
			fmt.Printf("  parents: %s\n", strings.Join(parents, ", "))
		}
		if children := v.Children(); len(children) > 0 {
			fmt.Printf("  children: %s\n", strings.Join(children, ", "))
		}
		if viper.GetBool("inspect.tables") {
			if err := printTable(net, v); err != nil {
				return err
			}
		}
		fmt.Println()
	}
	return nil
}

// printTable prints every populated CPT row of a variable
func printTable(net *model.Network, v model.Variable) error {
	parents := make([]model.Variable, 0, len(v.Parents()))
	for _, name := range v.Parents() {
		if p := net.Variable(name); p != nil && p.Kind() != model.KindString {
			parents = append(parents, p)
		}
	}

	for _, assignment := range model.EnumerateAssignments(parents) {
		condition := make([]string, 0, len(parents))
		for _, p := range parents {
			condition = append(condition, fmt.Sprintf("%s=%s", p.Name(), assignment[p.Name()]))
		}
		for _, state := range v.States() {
			prob, err := v.Probability(state, assignment)
			if err != nil {
				// untrained combination, nothing to print
				continue
			}
			if len(condition) > 0 {
				fmt.Printf("  P(%s=%s | %s) = %.4f\n", v.Name(), state, strings.Join(condition, ", "), prob)
			} else {
				fmt.Printf("  P(%s=%s) = %.4f\n", v.Name(), state, prob)
			}
		}
	}
	return nil
}
