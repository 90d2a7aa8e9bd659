package database

import (
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

// BoltProfileStore persists fetched user profile records between runs,
// keyed by login. Implements github.ProfileStore.
type BoltProfileStore struct {
	db         *bbolt.DB
	bucketName []byte
}

// NewBoltProfileStore creates new BoltProfileStore instance.
func NewBoltProfileStore(dbPath string, bucketName string) (*BoltProfileStore, error) {
	db, err := bbolt.Open(dbPath, 0666, nil)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	if err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketName)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "creating database bucket")
	}

	return &BoltProfileStore{
		db:         db,
		bucketName: []byte(bucketName),
	}, nil
}

// ReadProfile returns the record saved for given login. Returns nil if there's no record stored.
func (s *BoltProfileStore) ReadProfile(login string) ([]byte, error) {
	var data []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		if v := b.Get([]byte(login)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "reading from db")
	}

	return data, nil
}

// SaveProfile stores given record under given login.
func (s *BoltProfileStore) SaveProfile(login string, data []byte) error {
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		return b.Put([]byte(login), data)
	}); err != nil {
		return errors.Wrap(err, "writing to db")
	}

	return nil
}

// Close closes database.
func (s *BoltProfileStore) Close() error {
	return s.db.Close()
}
