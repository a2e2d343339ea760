package cotree

import (
	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/partition"
)

// Composer builds canonical reduced cotrees.
//
// Child pools (every structure of a smaller size rooted with a given operator) are built on first use
// and kept for the life of the Composer, so iterators from the same Composer share them.
// A Composer and its iterators are not safe for concurrent use.
type Composer struct {
	pools map[poolKey][]*cograph.Node
}

type poolKey struct {
	size int
	op   cograph.Op
}

var leafPool = []*cograph.Node{cograph.Leaf}

func NewComposer() *Composer {
	return &Composer{
		pools: make(map[poolKey][]*cograph.Node),
	}
}

// Compose emits every canonical structure with n leaves whose root operator is chosen by depth
// (JOIN on even depths, UNION on odd depths).
func (c *Composer) Compose(n, depth int) cograph.StructureIterator {
	return c.compose(n, cograph.OpForDepth(depth))
}

// Connected emits one structure per connected cograph on n vertices (root is JOIN for n >= 2).
func (c *Composer) Connected(n int) cograph.StructureIterator {
	return c.compose(n, cograph.OpJoin)
}

// All emits one structure per cograph on n vertices: every connected structure first, followed by
// every UNION of two or more connected components.
func (c *Composer) All(n int) cograph.StructureIterator {
	connected := c.compose(n, cograph.OpJoin)
	if n < 2 {
		return connected
	}
	return &chainIter{
		iters: []cograph.StructureIterator{
			connected,
			c.compose(n, cograph.OpUnion),
		},
	}
}

// Compose is a convenience for NewComposer().Compose(n, depth)
func Compose(n, depth int) cograph.StructureIterator {
	return NewComposer().Compose(n, depth)
}

// Connected is a convenience for NewComposer().Connected(n)
func Connected(n int) cograph.StructureIterator {
	return NewComposer().Connected(n)
}

// All is a convenience for NewComposer().All(n)
func All(n int) cograph.StructureIterator {
	return NewComposer().All(n)
}

// Structures returns All(n), or Connected(n) if connectedOnly is set.
func Structures(n int, connectedOnly bool) cograph.StructureIterator {
	if connectedOnly {
		return Connected(n)
	}
	return All(n)
}

// Count drains the given iterator and returns how many structures it emitted.
func Count(it cograph.StructureIterator) (int, error) {
	count := 0
	for it.Next() {
		count++
	}
	return count, it.Err()
}

// pool returns every structure of the given size rooted with op, building it on first use.
func (c *Composer) pool(size int, op cograph.Op) ([]*cograph.Node, error) {
	if size == 1 {
		return leafPool, nil
	}

	key := poolKey{size, op}
	if nodes, exists := c.pools[key]; exists {
		return nodes, nil
	}

	var nodes []*cograph.Node
	it := c.compose(size, op)
	for it.Next() {
		nodes = append(nodes, it.Node())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	c.pools[key] = nodes
	return nodes, nil
}

func (c *Composer) compose(n int, op cograph.Op) *composeIter {
	it := &composeIter{
		composer: c,
		n:        n,
		op:       op,
	}
	if n > 1 {
		it.parts, it.err = partition.New(n)
	} else if n < 1 {
		_, it.err = partition.New(n)
	}
	it.done = it.err != nil
	return it
}

// composeIter walks, for each partition of n, the Cartesian product of the per-group
// combinations with repetition.  The last group varies fastest.
type composeIter struct {
	composer *Composer
	n        int
	op       cograph.Op
	parts    *partition.Iterator
	groups   []groupCursor
	numParts int
	node     *cograph.Node
	err      error
	done     bool
}

// groupCursor selects Count children from pool as non-decreasing pool indices.
type groupCursor struct {
	pool []*cograph.Node
	idx  []int
}

func (gc *groupCursor) reset() {
	for i := range gc.idx {
		gc.idx[i] = 0
	}
}

// next advances to the next combination with repetition, returning false once wrapped around.
func (gc *groupCursor) next() bool {
	last := len(gc.pool) - 1
	for i := len(gc.idx) - 1; i >= 0; i-- {
		if gc.idx[i] < last {
			v := gc.idx[i] + 1
			for j := i; j < len(gc.idx); j++ {
				gc.idx[j] = v
			}
			return true
		}
	}
	return false
}

func (it *composeIter) Next() bool {
	if it.done {
		it.node = nil
		return false
	}

	if it.n == 1 {
		it.node = cograph.Leaf
		it.done = true
		return true
	}

	if len(it.groups) > 0 && it.advance() {
		it.node = it.emit()
		return true
	}

	for it.parts.Next() {
		if err := it.load(it.parts.Partition()); err != nil {
			it.err = err
			break
		}
		it.node = it.emit()
		return true
	}

	it.done = true
	it.node = nil
	return false
}

func (it *composeIter) Node() *cograph.Node {
	return it.node
}

func (it *composeIter) Err() error {
	return it.err
}

// load sets up the group cursors for the first product term of p.
func (it *composeIter) load(p partition.Partition) error {
	childOp := it.op.Complement()
	groups := p.Groups()

	it.groups = it.groups[:0]
	it.numParts = len(p)
	for _, grp := range groups {
		nodes, err := it.composer.pool(grp.Size, childOp)
		if err != nil {
			return err
		}
		it.groups = append(it.groups, groupCursor{
			pool: nodes,
			idx:  make([]int, grp.Count),
		})
	}
	return nil
}

func (it *composeIter) advance() bool {
	for g := len(it.groups) - 1; g >= 0; g-- {
		if it.groups[g].next() {
			return true
		}
		it.groups[g].reset()
	}
	return false
}

func (it *composeIter) emit() *cograph.Node {
	children := make([]*cograph.Node, 0, it.numParts)
	for _, gc := range it.groups {
		for _, i := range gc.idx {
			children = append(children, gc.pool[i])
		}
	}
	return cograph.NewNode(it.op, children)
}

// chainIter emits each of its iterators in turn.
type chainIter struct {
	iters []cograph.StructureIterator
	cur   int
	err   error
}

func (it *chainIter) Next() bool {
	for it.cur < len(it.iters) {
		if it.iters[it.cur].Next() {
			return true
		}
		if err := it.iters[it.cur].Err(); err != nil {
			it.err = err
			it.cur = len(it.iters)
			return false
		}
		it.cur++
	}
	return false
}

func (it *chainIter) Node() *cograph.Node {
	if it.cur < len(it.iters) {
		return it.iters[it.cur].Node()
	}
	return nil
}

func (it *chainIter) Err() error {
	return it.err
}
