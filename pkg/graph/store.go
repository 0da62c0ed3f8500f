package graph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/go-memdb"

	"github.com/authzed/graphexec/internal/logging"
)

var (
	// ErrNodeExists is returned when adding a node whose ID is already taken.
	ErrNodeExists = errors.New("node already exists")

	// ErrEdgeExists is returned when adding an edge whose ID is already taken.
	ErrEdgeExists = errors.New("edge already exists")

	// ErrMissingEndpoint is returned when an edge refers to an unknown node.
	ErrMissingEndpoint = errors.New("edge endpoint does not exist")
)

// Store is an in-memory property graph.
type Store struct {
	db *memdb.MemDB

	// writeLock serializes ID assignment across write transactions.
	writeLock  sync.Mutex
	nextNodeID uint64
	nextEdgeID uint64
}

var _ Reader = &Store{}

// NewStore creates an empty graph.
func NewStore() (*Store, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("unable to create graph store: %w", err)
	}
	return &Store{db: db, nextNodeID: 1, nextEdgeID: 1}, nil
}

// AddNode inserts a node. A zero ID is replaced with the next free ID, which
// is returned.
func (s *Store) AddNode(n Node) (uint64, error) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if n.ID == 0 {
		n.ID = s.nextNodeID
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tableNode, indexID, n.ID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("%w: %d", ErrNodeExists, n.ID)
	}

	row := &node{id: n.ID, labels: slices.Clone(n.Labels), properties: n.Properties}
	if err := txn.Insert(tableNode, row); err != nil {
		return 0, fmt.Errorf("unable to insert node %d: %w", n.ID, err)
	}
	txn.Commit()

	s.nextNodeID = max(s.nextNodeID, n.ID+1)
	logging.Trace().Object("node", row).Msg("added node")
	return n.ID, nil
}

// AddEdge inserts an edge between two existing nodes. A zero ID is replaced
// with the next free ID, which is returned.
func (s *Store) AddEdge(e Edge) (uint64, error) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if e.ID == 0 {
		e.ID = s.nextEdgeID
	}
	if e.Type == "" {
		return 0, fmt.Errorf("edge %d has no type", e.ID)
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tableEdge, indexID, e.ID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("%w: %d", ErrEdgeExists, e.ID)
	}

	for _, endpoint := range []uint64{e.Src, e.Dst} {
		found, err := txn.First(tableNode, indexID, endpoint)
		if err != nil {
			return 0, err
		}
		if found == nil {
			return 0, fmt.Errorf("%w: edge %d refers to node %d", ErrMissingEndpoint, e.ID, endpoint)
		}
	}

	row := &edge{id: e.ID, typ: e.Type, src: e.Src, dst: e.Dst, properties: e.Properties}
	if err := txn.Insert(tableEdge, row); err != nil {
		return 0, fmt.Errorf("unable to insert edge %d: %w", e.ID, err)
	}
	txn.Commit()

	s.nextEdgeID = max(s.nextEdgeID, e.ID+1)
	logging.Trace().Object("edge", row).Msg("added edge")
	return e.ID, nil
}

func (s *Store) Node(id uint64) (Node, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	found, err := txn.First(tableNode, indexID, id)
	if err != nil {
		return Node{}, false, err
	}
	if found == nil {
		return Node{}, false, nil
	}
	return found.(*node).Node(), true, nil
}

func (s *Store) Nodes(label string) ([]Node, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	var (
		it  memdb.ResultIterator
		err error
	)
	if label == "" {
		it, err = txn.Get(tableNode, indexID)
	} else {
		it, err = txn.Get(tableNode, indexLabel, label)
	}
	if err != nil {
		return nil, err
	}

	var nodes []Node
	for raw := it.Next(); raw != nil; raw = it.Next() {
		nodes = append(nodes, raw.(*node).Node())
	}

	// IDs are varint encoded in the index, so index order is not ID order.
	slices.SortFunc(nodes, func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
	return nodes, nil
}

func (s *Store) Edges(src uint64, edgeType string) ([]Edge, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEdge, indexSrc, src)
	if err != nil {
		return nil, err
	}

	filtered := memdb.NewFilterIterator(it, func(raw any) bool {
		return edgeType != "" && raw.(*edge).typ != edgeType
	})

	var edges []Edge
	for raw := filtered.Next(); raw != nil; raw = filtered.Next() {
		edges = append(edges, raw.(*edge).Edge())
	}

	slices.SortFunc(edges, func(a, b Edge) int { return cmp.Compare(a.ID, b.ID) })
	return edges, nil
}

// Counts returns the number of nodes and edges in the graph.
func (s *Store) Counts() (nodes int, edges int, err error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	for _, table := range []struct {
		name  string
		count *int
	}{{tableNode, &nodes}, {tableEdge, &edges}} {
		it, err := txn.Get(table.name, indexID)
		if err != nil {
			return 0, 0, err
		}
		for raw := it.Next(); raw != nil; raw = it.Next() {
			*table.count++
		}
	}
	return nodes, edges, nil
}
