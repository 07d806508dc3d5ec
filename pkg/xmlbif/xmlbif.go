/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: xmlbif.go
Description: XMLBIF serialization for the Akaylee Bayes engine. Encodes a
network's identifier, variables, states, parents, and CPT values into the
XMLBIF interchange schema and parses such documents back into networks.
CPT values survive the round trip; accumulated training history does not.
*/

package xmlbif

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-bayes/pkg/model"
)

// Version is the XMLBIF schema version emitted by Encode
const Version = "0.3"

type document struct {
	XMLName xml.Name   `xml:"BIF"`
	Version string     `xml:"VERSION,attr"`
	Network networkXML `xml:"NETWORK"`
}

type networkXML struct {
	Name        string          `xml:"NAME"`
	Variables   []variableXML   `xml:"VARIABLE"`
	Definitions []definitionXML `xml:"DEFINITION"`
}

type variableXML struct {
	Type     string   `xml:"TYPE,attr"`
	Name     string   `xml:"NAME"`
	Outcomes []string `xml:"OUTCOME"`
}

type definitionXML struct {
	For   string   `xml:"FOR"`
	Given []string `xml:"GIVEN"`
	Table string   `xml:"TABLE"`
}

// Encode produces the XMLBIF document for a network. Variables appear in
// registration order; each DEFINITION's GIVEN list preserves parent insertion
// order and its TABLE uses the bulk specification order (own states fastest,
// most recently added parent next). Variables with an empty CPT, such as
// untrained string managers, get no DEFINITION.
func Encode(net *model.Network) (string, error) {
	doc := document{
		Version: Version,
		Network: networkXML{Name: net.Name()},
	}

	for _, v := range net.Variables() {
		doc.Network.Variables = append(doc.Network.Variables, variableXML{
			Type:     "nature",
			Name:     v.Name(),
			Outcomes: v.States(),
		})

		table, err := flattenCPT(net, v)
		if err != nil {
			return "", err
		}
		if table == "" {
			continue
		}
		doc.Network.Definitions = append(doc.Network.Definitions, definitionXML{
			For:   v.Name(),
			Given: samplingParentNames(net, v),
			Table: table,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode network %q: %w", net.Name(), err)
	}
	return xml.Header + string(out), nil
}

// Decode parses an XMLBIF document into a network. All variables come back as
// discrete variables over the document's outcomes: variant-specific training
// state (raw observations, n-gram sets) is not part of the interchange format.
func Decode(text string) (*model.Network, error) {
	var doc document
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XMLBIF document: %w", err)
	}

	net := model.NewNetwork(doc.Network.Name)
	for _, vx := range doc.Network.Variables {
		if _, err := model.NewDiscreteVariable(net, vx.Name, vx.Outcomes); err != nil {
			return nil, err
		}
	}

	// Wire edges first so every variable's parent order matches its GIVEN
	// list, then assign tables in the same bulk order they were emitted in
	for _, def := range doc.Network.Definitions {
		v := net.Variable(def.For)
		if v == nil {
			return nil, fmt.Errorf("definition for %q: %w", def.For, model.ErrUnknownVariable)
		}
		for _, parentName := range def.Given {
			parent := net.Variable(parentName)
			if parent == nil {
				return nil, fmt.Errorf("definition for %q references parent %q: %w", def.For, parentName, model.ErrUnknownVariable)
			}
			if err := parent.AddChild(v); err != nil {
				return nil, err
			}
		}
	}
	for _, def := range doc.Network.Definitions {
		probs, err := parseTable(def.Table)
		if err != nil {
			return nil, fmt.Errorf("definition for %q: %w", def.For, err)
		}
		if len(probs) == 0 {
			continue
		}
		if err := net.Variable(def.For).SetProbabilities(probs); err != nil {
			return nil, err
		}
	}

	return net, nil
}

// flattenCPT reads the variable's table in bulk specification order.
// Returns empty if the variable has no populated combinations.
func flattenCPT(net *model.Network, v model.Variable) (string, error) {
	states := v.States()
	if len(states) == 0 || len(v.CPT().Keys()) == 0 {
		return "", nil
	}

	parents := make([]model.Variable, 0)
	for _, name := range samplingParentNames(net, v) {
		parents = append(parents, net.Variable(name))
	}

	values := make([]string, 0, len(states))
	for _, assignment := range model.EnumerateAssignments(parents) {
		for _, s := range states {
			p, err := v.Probability(s, assignment)
			if err != nil {
				return "", fmt.Errorf("variable %q: %w", v.Name(), err)
			}
			values = append(values, strconv.FormatFloat(p, 'g', -1, 64))
		}
	}
	return strings.Join(values, " "), nil
}

// samplingParentNames lists the variable's parents that carry probability
// mass, preserving insertion order
func samplingParentNames(net *model.Network, v model.Variable) []string {
	names := make([]string, 0, len(v.Parents()))
	for _, name := range v.Parents() {
		p := net.Variable(name)
		if p == nil || p.Kind() == model.KindString {
			continue
		}
		names = append(names, name)
	}
	return names
}

// parseTable splits a TABLE element into probabilities
func parseTable(table string) ([]float64, error) {
	fields := strings.Fields(table)
	probs := make([]float64, 0, len(fields))
	for _, field := range fields {
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid table entry %q", field)
		}
		probs = append(probs, p)
	}
	return probs, nil
}
