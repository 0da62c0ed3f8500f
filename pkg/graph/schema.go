package graph

import (
	"github.com/hashicorp/go-memdb"
	"github.com/rs/zerolog"
)

const (
	tableNode = "node"
	tableEdge = "edge"

	indexID    = "id"
	indexLabel = "label"
	indexSrc   = "src"
	indexDst   = "dst"
)

type node struct {
	id         uint64
	labels     []string
	properties map[string]any
}

func (n node) Node() Node {
	return Node{ID: n.id, Labels: n.labels, Properties: n.properties}
}

func (n node) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("id", n.id).Strs("labels", n.labels)
}

type edge struct {
	id         uint64
	typ        string
	src        uint64
	dst        uint64
	properties map[string]any
}

func (e edge) Edge() Edge {
	return Edge{ID: e.id, Type: e.typ, Src: e.src, Dst: e.dst, Properties: e.properties}
}

func (e edge) MarshalZerologObject(ev *zerolog.Event) {
	ev.Uint64("id", e.id).Str("type", e.typ).Uint64("src", e.src).Uint64("dst", e.dst)
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableNode: {
			Name: tableNode,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "id"},
				},
				indexLabel: {
					Name:         indexLabel,
					Unique:       false,
					AllowMissing: true,
					Indexer:      &memdb.StringSliceFieldIndex{Field: "labels"},
				},
			},
		},
		tableEdge: {
			Name: tableEdge,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "id"},
				},
				indexSrc: {
					Name:    indexSrc,
					Unique:  false,
					Indexer: &memdb.UintFieldIndex{Field: "src"},
				},
				indexDst: {
					Name:    indexDst,
					Unique:  false,
					Indexer: &memdb.UintFieldIndex{Field: "dst"},
				},
			},
		},
	},
}
