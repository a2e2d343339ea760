package cograph

import (
	"strings"
)

const (

	// MaxVertices is the largest vertex count a single-byte graph6 size field can represent.
	MaxVertices = 62

	// DefaultBatchSize is the number of structures encoded per batch when streaming to a file.
	DefaultBatchSize = 50_000

	// DefaultOutputPath is used when no output path is given to a file generation run.
	DefaultOutputPath = "cographs_g6.txt"
)

// Op is the label of a cotree node: a leaf (single vertex), a join, or a disjoint union.
type Op byte

const (
	OpLeaf  Op = 'a'
	OpJoin  Op = 'J'
	OpUnion Op = 'U'
)

// Complement returns the operator used one level below op in a reduced cotree.
func (op Op) Complement() Op {
	switch op {
	case OpJoin:
		return OpUnion
	case OpUnion:
		return OpJoin
	}
	return op
}

func (op Op) IsValid() bool {
	return op == OpLeaf || op == OpJoin || op == OpUnion
}

// OpForDepth returns the operator a canonical structure uses at the given depth (JOIN on even depths).
func OpForDepth(depth int) Op {
	if depth&1 == 0 {
		return OpJoin
	}
	return OpUnion
}

// Node is one node of a cotree structure.
//
// Nodes are immutable once built and are freely shared between structures, so a child may appear
// under many parents (and more than once under the same parent).
type Node struct {
	Op       Op
	Children []*Node
	leaves   int
}

// Leaf is the single-vertex structure, "a".
var Leaf = &Node{Op: OpLeaf, leaves: 1}

// NewNode wraps the given children with op.
func NewNode(op Op, children []*Node) *Node {
	N := &Node{
		Op:       op,
		Children: children,
	}
	for _, child := range children {
		N.leaves += child.LeafCount()
	}
	return N
}

// LeafCount returns the number of leaves (vertices) under this node.
func (N *Node) LeafCount() int {
	if N.Op == OpLeaf {
		return 1
	}
	if N.leaves > 0 {
		return N.leaves
	}
	count := 0
	for _, child := range N.Children {
		count += child.LeafCount()
	}
	return count
}

// Validate checks that N is a well formed cotree: known operators, leaves without children, and
// internal nodes with two or more children.
func (N *Node) Validate() error {
	if N == nil {
		return ErrNilNode
	}
	switch N.Op {
	case OpLeaf:
		if len(N.Children) > 0 {
			return ErrLeafChildren
		}
	case OpJoin, OpUnion:
		if len(N.Children) < 2 {
			return ErrTooFewChildren
		}
		for _, child := range N.Children {
			if err := child.Validate(); err != nil {
				return err
			}
		}
	default:
		return ErrUnknownOp
	}
	return nil
}

// IsReduced reports if no internal node of N has an internal child carrying the same operator.
func (N *Node) IsReduced() bool {
	for _, child := range N.Children {
		if child.Op != OpLeaf && child.Op == N.Op {
			return false
		}
		if !child.IsReduced() {
			return false
		}
	}
	return true
}

// AppendText appends the canonical text form of N (e.g. "J(U(a,a),a)") to dst.
func (N *Node) AppendText(dst []byte) []byte {
	if N.Op == OpLeaf {
		return append(dst, byte(OpLeaf))
	}
	dst = append(dst, byte(N.Op), '(')
	for i, child := range N.Children {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = child.AppendText(dst)
	}
	return append(dst, ')')
}

func (N *Node) String() string {
	b := strings.Builder{}
	b.Grow(4 * N.LeafCount())
	b.Write(N.AppendText(nil))
	return b.String()
}

// StructureIterator is a pull-style sequence of canonical structures.
//
// Typical use:
//
//	for it.Next() {
//	    X := it.Node()
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type StructureIterator interface {

	// Next advances to the next structure, returning false when the sequence is exhausted or failed.
	Next() bool

	// Node returns the structure Next() advanced to.
	Node() *Node

	// Err returns the error that ended the sequence, if any.
	Err() error
}

// PrintOpts specifies what is printed for each structure of a StructureStream
type PrintOpts struct {
	Label    string // Prefix label
	Numbered bool   // If set, each row is prefixed with its one-based row number
}
