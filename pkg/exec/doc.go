// Package exec provides the operators of a pull-based execution tree for graph pattern queries.
//
// Every operator is a node in a tree and hands records to its parent one at a time, when asked.
// A parent asks a child for its next record through Context.Consume; a child with nothing left
// returns a nil record, and keeps doing so until it is Reset.
//
// The interesting operators are Argument and SemiApply. An Argument is a leaf that yields one record
// which was injected into it from outside the pull protocol. A SemiApply drives a main branch, and
// for each main record it rewinds a match branch, injects the main record into the Argument at the
// bottom of that branch, and pulls the match branch once. The answer decides whether the main record
// is passed on, which is how `EXISTS` and `NOT EXISTS` pattern filters are evaluated without ever
// materializing the inner relation.
//
// Take the query:
//
//	MATCH (p:Person) WHERE EXISTS((p)-[:KNOWS]->(:Person)) RETURN p
//
// It is executed by the tree
//
//	SemiApply
//	├─ NodeScan(p:Person)
//	└─ Filter(f:Person)
//	   └─ ConditionalTraverse(p-[:KNOWS]->f)
//	      └─ Argument
//
// where the traversal is unaware that the `p` it expands was supplied by the SemiApply above it.
package exec
