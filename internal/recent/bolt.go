package recent

import (
	"context"
	"fmt"
	"time"

	apperrors "clientele/internal/errors"

	bolt "go.etcd.io/bbolt"
)

var bucketRecent = []byte("recent")

// BoltBackend keeps every namespace as a JSON array under one bucket.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) a bbolt database at path.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "bbolt open", err)
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load(ctx context.Context, ns string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRecent)
		if bucket == nil {
			return nil
		}
		// bbolt slices are only valid inside the transaction.
		if v := bucket.Get([]byte(ns)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, fmt.Sprintf("read recent values for %s", ns), err)
	}
	if data == nil {
		return nil, nil
	}
	return decodeValues(ns, data)
}

func (b *BoltBackend) Save(ctx context.Context, ns string, values []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := encodeValues(values)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketRecent)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(ns), payload)
	})
	if err != nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, fmt.Sprintf("save recent values for %s", ns), err)
	}
	return nil
}

func (b *BoltBackend) Delete(ctx context.Context, ns string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRecent)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(ns))
	})
	if err != nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, fmt.Sprintf("delete recent values for %s", ns), err)
	}
	return nil
}

// Namespaces lists every stored namespace in key order.
func (b *BoltBackend) Namespaces(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketRecent)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "list recent namespaces", err)
	}
	return out, nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
