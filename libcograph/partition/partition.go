package partition

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/cograph/cograph"
	"github.com/pkg/errors"
)

// Partition is a non-increasing sequence of positive parts.
type Partition []int

// Group is a run of equal parts within a Partition.
type Group struct {
	Size  int // part size
	Count int // multiplicity of Size
}

// Groups returns p's parts grouped by equal size, largest size first.
func (p Partition) Groups() []Group {
	sizes := treemap.NewWith(utils.IntComparator)
	for _, part := range p {
		count := 0
		if existing, found := sizes.Get(part); found {
			count = existing.(int)
		}
		sizes.Put(part, count+1)
	}

	groups := make([]Group, 0, sizes.Size())
	itr := sizes.Iterator()
	for itr.End(); itr.Prev(); {
		groups = append(groups, Group{
			Size:  itr.Key().(int),
			Count: itr.Value().(int),
		})
	}
	return groups
}

// Sum returns the total of p's parts.
func (p Partition) Sum() int {
	sum := 0
	for _, part := range p {
		sum += part
	}
	return sum
}

// Iterator emits every partition of n into two or more parts in reverse lexicographic order,
// e.g. for n = 4: [3 1], [2 2], [2 1 1], [1 1 1 1].
//
// Only the current partition is held, so the work per step is proportional to its length.
type Iterator struct {
	parts Partition
	done  bool
}

// New returns an Iterator over the multi-part partitions of n.
// For n = 1 the sequence is empty.
func New(n int) (*Iterator, error) {
	if n < 1 {
		return nil, errors.Wrapf(cograph.ErrPartition, "n = %d", n)
	}
	it := &Iterator{
		parts: make(Partition, 1, n),
	}

	// The trivial partition [n] is the starting point and is never emitted.
	it.parts[0] = n
	return it, nil
}

// Next advances to the next partition.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	p := it.parts

	// Find the rightmost part that can be decremented.
	i := len(p) - 1
	for i >= 0 && p[i] == 1 {
		i--
	}
	if i < 0 {
		it.done = true
		return false
	}

	// Decrement it, then refill the tail greedily with parts no larger than the new value.
	remain := len(p) - i
	p[i]--
	limit := p[i]
	p = p[:i+1]
	for remain > limit {
		p = append(p, limit)
		remain -= limit
	}
	if remain > 0 {
		p = append(p, remain)
	}

	it.parts = p
	return true
}

// Partition returns the current partition.
// The returned slice is only valid until the next call to Next().
func (it *Iterator) Partition() Partition {
	return it.parts
}

// Count returns the number of multi-part partitions of n.
func Count(n int) (int, error) {
	it, err := New(n)
	if err != nil {
		return 0, err
	}
	count := 0
	for it.Next() {
		count++
	}
	return count, nil
}
