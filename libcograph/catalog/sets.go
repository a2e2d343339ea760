package catalog

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// LineSet allows adding of encodings to an internal set and returning if a given encoding has already been added.
type LineSet interface {

	// TryAdd adds the given key if it is not already present.
	//
	// If key already is in this LineSet, false is returned and this call has no effect.
	// If key isn't in this LineSet, a copy of key is added and true is returned.
	TryAdd(key []byte) (bool, error)

	// Close releases all previously added items from this set.
	Close() error
}

// SetOpts specifies params for opening a LineSet
type SetOpts struct {
	DbPathName string // omit for an in-memory set
}

// OpenLineSet opens an on-disk badger set if opts.DbPathName is given, otherwise a hashed in-memory set.
func OpenLineSet(opts SetOpts) (LineSet, error) {
	if opts.DbPathName == "" {
		return NewDropDupes(), nil
	}
	return OpenLSMSet(opts)
}

// LSMSet is a LineSet backed by badger, for sets too large to hold in memory.
type LSMSet struct {
	db *badger.DB
}

// OpenLSMSet opens (or creates) a badger set at opts.DbPathName, or an in-memory badger db if omitted.
func OpenLSMSet(opts SetOpts) (*LSMSet, error) {
	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.DetectConflicts = false // single writer
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false
	if opts.DbPathName == "" {
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "open line set")
	}
	return &LSMSet{
		db: db,
	}, nil
}

func (set *LSMSet) TryAdd(key []byte) (bool, error) {
	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err == nil {
		return false, nil
	}
	if err != badger.ErrKeyNotFound {
		return false, err
	}

	if err = txn.Set(key, nil); err != nil {
		return false, err
	}
	if err = txn.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (set *LSMSet) Close() error {
	if set.db == nil {
		return nil
	}
	err := set.db.Close()
	set.db = nil
	return err
}
