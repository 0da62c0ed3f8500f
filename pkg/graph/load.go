package graph

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/authzed/graphexec/internal/logging"
)

// Document is the YAML representation of a graph.
//
//	nodes:
//	  - {id: 1, labels: [Person], properties: {name: Alice}}
//	edges:
//	  - {type: KNOWS, src: 1, dst: 2}
type Document struct {
	Nodes []NodeDocument `yaml:"nodes"`
	Edges []EdgeDocument `yaml:"edges"`
}

type NodeDocument struct {
	ID         uint64         `yaml:"id"`
	Labels     []string       `yaml:"labels"`
	Properties map[string]any `yaml:"properties"`
}

type EdgeDocument struct {
	ID         uint64         `yaml:"id"`
	Type       string         `yaml:"type"`
	Src        uint64         `yaml:"src"`
	Dst        uint64         `yaml:"dst"`
	Properties map[string]any `yaml:"properties"`
}

// DecodeDocument parses a graph document. Unknown fields are rejected.
func DecodeDocument(r io.Reader) (Document, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("unable to parse graph document: %w", err)
	}
	return doc, nil
}

// LoadYAML builds a store from a YAML graph document.
func LoadYAML(r io.Reader) (*Store, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// LoadFile builds a store from the YAML graph document at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open graph file: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}

// FromDocument builds a store from a decoded graph document. All nodes are
// inserted before any edge.
func FromDocument(doc Document) (*Store, error) {
	store, err := NewStore()
	if err != nil {
		return nil, err
	}

	for i, n := range doc.Nodes {
		if _, err := store.AddNode(Node(n)); err != nil {
			return nil, fmt.Errorf("node #%d: %w", i, err)
		}
	}
	for i, e := range doc.Edges {
		if _, err := store.AddEdge(Edge(e)); err != nil {
			return nil, fmt.Errorf("edge #%d: %w", i, err)
		}
	}

	logging.Debug().Int("nodes", len(doc.Nodes)).Int("edges", len(doc.Edges)).Msg("loaded graph")
	return store, nil
}
