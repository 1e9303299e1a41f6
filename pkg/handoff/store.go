package handoff

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var bucketPending = []byte("pending")

// ErrPendingNotFound is returned for an unknown pending transaction ID.
var ErrPendingNotFound = errors.New("handoff: pending transaction not found")

// Store keeps pending transactions between a prepare run and a later
// finalize run.
type Store struct {
	db *bbolt.DB
}

// OpenStore opens or creates the database at path. The parent directory is
// created if it does not exist.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "handoff: create directory")
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "handoff: open bolt db")
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPending)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "handoff: create bucket")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores p under its ID, replacing any previous record.
func (s *Store) Save(p *Pending) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "handoff: encode pending")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).Put([]byte(p.ID), data)
	})
}

// Load returns the pending transaction with the given ID.
func (s *Store) Load(id string) (*Pending, error) {
	var p Pending
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPending).Get([]byte(id))
		if data == nil {
			return errors.Wrap(ErrPendingNotFound, id)
		}
		return json.Unmarshal(data, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all pending transactions, oldest first.
func (s *Store) List() ([]*Pending, error) {
	var list []*Pending
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPending).ForEach(func(_, v []byte) error {
			var p Pending
			if err := json.Unmarshal(v, &p); err != nil {
				return errors.Wrap(err, "handoff: decode pending")
			}
			list = append(list, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// Delete removes the pending transaction with the given ID.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPending)
		if b.Get([]byte(id)) == nil {
			return errors.Wrap(ErrPendingNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}
