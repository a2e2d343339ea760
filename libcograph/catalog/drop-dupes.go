package catalog

import (
	"github.com/cespare/xxhash/v2"
)

// DropDupes is an in-memory LineSet.  Keys are bucketed by their xxhash digest, and a bucket only
// holds more than one key when digests collide.
type DropDupes struct {
	buckets map[uint64][]string
	hash    func([]byte) uint64
	count   int
}

func NewDropDupes() *DropDupes {
	return &DropDupes{
		buckets: make(map[uint64][]string),
		hash:    xxhash.Sum64,
	}
}

// Len returns the number of keys added so far.
func (set *DropDupes) Len() int {
	return set.count
}

func (set *DropDupes) Close() error {
	set.buckets = nil
	set.count = 0
	return nil
}

func (set *DropDupes) TryAdd(key []byte) (bool, error) {
	digest := set.hash(key)
	bucket := set.buckets[digest]
	for _, existing := range bucket {
		if existing == string(key) {
			return false, nil
		}
	}

	// string(key) copies, so callers may reuse key.
	set.buckets[digest] = append(bucket, string(key))
	set.count++
	return true, nil
}
