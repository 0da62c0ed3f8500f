package planner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Query is a declarative graph pattern query:
//
//	match: {alias: p, label: Person}
//	where:
//	  - exists:
//	      from: p
//	      hops:
//	        - {edge: KNOWS, to: {alias: f, label: Person}}
//	      where:
//	        - not_exists: {from: f, hops: [{edge: BLOCKED}]}
//	return: [p]
//
// Aliases bound inside an exists or not_exists pattern are only visible to
// the conditions nested in that pattern.
type Query struct {
	Match  NodePattern `yaml:"match"`
	Where  []Condition `yaml:"where"`
	Return []string    `yaml:"return"`
}

// NodePattern matches a node by label and property values.
type NodePattern struct {
	Alias      string         `yaml:"alias"`
	Label      string         `yaml:"label"`
	Properties map[string]any `yaml:"properties"`
}

// Condition filters on the existence of a path. Exactly one of Exists and
// NotExists must be set.
type Condition struct {
	Exists    *PathPattern `yaml:"exists"`
	NotExists *PathPattern `yaml:"not_exists"`
}

// PathPattern is a path starting at an already bound alias.
type PathPattern struct {
	From  string      `yaml:"from"`
	Hops  []Hop       `yaml:"hops"`
	Where []Condition `yaml:"where"`
}

// Hop follows outgoing edges of a type to a node matching a pattern. An empty
// edge type follows edges of every type.
type Hop struct {
	Edge string      `yaml:"edge"`
	To   NodePattern `yaml:"to"`
}

// ParseQuery parses a query document. Unknown fields are rejected.
func ParseQuery(r io.Reader) (Query, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var q Query
	if err := decoder.Decode(&q); err != nil {
		if errors.Is(err, io.EOF) {
			return Query{}, fmt.Errorf("unable to parse query: %w", ErrEmptyQuery)
		}
		return Query{}, fmt.Errorf("unable to parse query: %w", err)
	}
	return q, nil
}

// LoadQueryFile parses the query document at path.
func LoadQueryFile(path string) (Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return Query{}, fmt.Errorf("unable to open query: %w", err)
	}
	defer f.Close()

	return ParseQuery(f)
}
