package registry

import (
	"errors"

	"github.com/dgraph-io/badger/v2"

	"github.com/athanorlabs/go-blsag/types"
)

// BadgerRegistry persists key images in a badger store, surviving process
// restarts. Badger's serializable transactions provide the at-most-once
// registration guarantee under concurrency.
type BadgerRegistry struct {
	db *badger.DB
}

var _ Registry = &BadgerRegistry{}

// OpenBadgerRegistry opens (creating if needed) a registry at path.
func OpenBadgerRegistry(path string) (*BadgerRegistry, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerRegistry{
		db: db,
	}, nil
}

func (r *BadgerRegistry) Close() error {
	return r.db.Close()
}

func (r *BadgerRegistry) Register(image types.Point) error {
	key := image.Encode()

	for {
		err := r.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(key)
			if err == nil {
				return ErrImageAlreadyUsed
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			return txn.Set(key, []byte{1})
		})
		if errors.Is(err, badger.ErrConflict) {
			// Lost a race on this key; re-run to observe the winner.
			continue
		}
		return err
	}
}

func (r *BadgerRegistry) Contains(image types.Point) (bool, error) {
	key := image.Encode()

	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			found = true
			return nil
		}
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	return found, err
}
