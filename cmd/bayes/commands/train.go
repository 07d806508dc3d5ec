/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: train.go
Description: Implementation of the train command for the Akaylee Bayes engine.
Builds a network from variable and edge declarations or an existing XMLBIF
document, ingests CSV or JSON training data, runs a cumulative training pass,
and writes the trained network back out as XMLBIF.
*/

package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kleascm/akaylee-bayes/pkg/model"
	"github.com/kleascm/akaylee-bayes/pkg/xmlbif"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunTrain executes the train command
func RunTrain(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	net, err := buildNetwork()
	if err != nil {
		return err
	}
	net.SetLogger(logger.GetLogger())

	examples, err := loadExamples(viper.GetString("train.data"))
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		return fmt.Errorf("training data contains no examples")
	}

	start := time.Now()
	if err := net.Train(examples); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	logger.LogTraining(net.Name(), len(examples), net.HistorySize(), map[string]interface{}{
		"variables": len(net.Variables()),
		"duration":  time.Since(start),
	})

	text, err := xmlbif.Encode(net)
	if err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}

	output := viper.GetString("train.output")
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write network to %s: %w", output, err)
	}

	fmt.Printf("Trained network %q on %d examples, written to %s\n", net.Name(), len(examples), output)
	return nil
}

// buildNetwork loads an existing XMLBIF network or assembles a fresh one from
// the variable and edge declarations
func buildNetwork() (*model.Network, error) {
	var net *model.Network
	if path := viper.GetString("train.network"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read network %s: %w", path, err)
		}
		net, err = xmlbif.Decode(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse network %s: %w", path, err)
		}
	} else {
		net = model.NewNetwork("")
	}

	for _, decl := range viper.GetStringSlice("train.discrete") {
		name, stateList, err := parseNameValue(decl)
		if err != nil {
			return nil, err
		}
		states := strings.Split(stateList, ",")
		for i := range states {
			states[i] = strings.TrimSpace(states[i])
		}
		if _, err := model.NewDiscreteVariable(net, name, states); err != nil {
			return nil, err
		}
	}

	for _, decl := range viper.GetStringSlice("train.string") {
		name, ngramSize, err := parseNameCount(decl)
		if err != nil {
			return nil, err
		}
		if ngramSize == 0 {
			ngramSize = viper.GetInt("ngram_size")
		}
		if _, err := model.NewStringVariable(net, name, ngramSize); err != nil {
			return nil, err
		}
	}

	for _, decl := range viper.GetStringSlice("train.numeric") {
		name, bins, err := parseNameCount(decl)
		if err != nil {
			return nil, err
		}
		if bins == 0 {
			bins = viper.GetInt("bins")
		}
		if _, err := model.NewNumericVariable(net, name, bins); err != nil {
			return nil, err
		}
	}

	for _, decl := range viper.GetStringSlice("train.edge") {
		parts := strings.Split(decl, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid edge %q, expected Parent:Child", decl)
		}
		parent := net.Variable(strings.TrimSpace(parts[0]))
		child := net.Variable(strings.TrimSpace(parts[1]))
		if parent == nil || child == nil {
			return nil, fmt.Errorf("edge %q references an unknown variable: %w", decl, model.ErrUnknownVariable)
		}
		if err := parent.AddChild(child); err != nil {
			return nil, err
		}
	}

	return net, nil
}

// loadExamples reads training examples from a CSV file with a header row or a
// JSON array of objects, keyed by variable identifier
func loadExamples(path string) ([]model.Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training data %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSONExamples(data)
	default:
		return parseCSVExamples(data)
	}
}

// parseJSONExamples parses a JSON array of observation objects
func parseJSONExamples(data []byte) ([]model.Example, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON training data: %w", err)
	}
	examples := make([]model.Example, 0, len(rows))
	for _, row := range rows {
		examples = append(examples, model.Example(row))
	}
	return examples, nil
}

// parseCSVExamples parses CSV rows under a header of variable identifiers.
// Values stay strings; numeric variables parse them during observation.
func parseCSVExamples(data []byte) ([]model.Example, error) {
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV training data: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV training data needs a header row and at least one example")
	}

	header := records[0]
	examples := make([]model.Example, 0, len(records)-1)
	for _, record := range records[1:] {
		ex := make(model.Example, len(header))
		for i, name := range header {
			ex[strings.TrimSpace(name)] = record[i]
		}
		examples = append(examples, ex)
	}
	return examples, nil
}
