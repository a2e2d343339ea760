package graph6

import (
	"math/bits"

	"github.com/fine-structures/cograph/cograph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// MaxVertices is the largest vertex count this package encodes (single byte size field).
const MaxVertices = cograph.MaxVertices

// Graph is a simple undirected graph on at most MaxVertices vertices.
// Row v of the adjacency matrix is a bit set, so bit u of adj[v] is set iff u and v are adjacent.
type Graph struct {
	N   int
	adj []uint64
}

// NewGraph returns an edgeless graph on n vertices.
func NewGraph(n int) (*Graph, error) {
	if n < 0 || n > MaxVertices {
		return nil, &cograph.EncodingRangeError{N: n, Max: MaxVertices}
	}
	return &Graph{
		N:   n,
		adj: make([]uint64, n),
	}, nil
}

// FromNode derives the graph of a cotree: leaves become vertices in left to right order, a UNION
// adds nothing between its children, and a JOIN connects every vertex of each child to every vertex
// of its other children.
func FromNode(X *cograph.Node) (*Graph, error) {
	if err := X.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGraph(X.LeafCount())
	if err != nil {
		return nil, err
	}
	g.apply(X, 0)
	return g, nil
}

// apply lays out X's leaves starting at vertex lo and returns one past its last vertex.
func (g *Graph) apply(X *cograph.Node, lo int) int {
	if X.Op == cograph.OpLeaf {
		return lo + 1
	}

	hi := lo
	for _, child := range X.Children {
		hi = g.apply(child, hi)
	}

	if X.Op == cograph.OpJoin {
		whole := spanMask(lo, hi)
		childLo := lo
		for _, child := range X.Children {
			childHi := childLo + child.LeafCount()
			cross := whole &^ spanMask(childLo, childHi)
			for v := childLo; v < childHi; v++ {
				g.adj[v] |= cross
			}
			childLo = childHi
		}
	}
	return hi
}

func spanMask(lo, hi int) uint64 {
	return ((uint64(1) << uint(hi-lo)) - 1) << uint(lo)
}

func (g *Graph) AddEdge(u, v int) {
	if u == v {
		return
	}
	g.adj[u] |= 1 << uint(v)
	g.adj[v] |= 1 << uint(u)
}

func (g *Graph) HasEdge(u, v int) bool {
	return g.adj[u]&(1<<uint(v)) != 0
}

func (g *Graph) Degree(v int) int {
	return bits.OnesCount64(g.adj[v])
}

func (g *Graph) EdgeCount() int {
	total := 0
	for v := 0; v < g.N; v++ {
		total += g.Degree(v)
	}
	return total / 2
}

// Undirected exports g as a gonum graph whose node IDs are g's vertex indices.
func (g *Graph) Undirected() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for v := 0; v < g.N; v++ {
		ug.AddNode(simple.Node(v))
	}
	for j := 1; j < g.N; j++ {
		for i := 0; i < j; i++ {
			if g.HasEdge(i, j) {
				ug.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	return ug
}

// Connected reports if g has exactly one connected component (graphs with fewer than two vertices count as connected).
func (g *Graph) Connected() bool {
	if g.N < 2 {
		return true
	}
	return len(topo.ConnectedComponents(g.Undirected())) == 1
}

// Equal reports if g and other have the same vertex count and adjacency (not isomorphism).
func (g *Graph) Equal(other *Graph) bool {
	if g.N != other.N {
		return false
	}
	for v := 0; v < g.N; v++ {
		if g.adj[v] != other.adj[v] {
			return false
		}
	}
	return true
}
