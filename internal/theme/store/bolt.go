// Package store persists the theme preference.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"countries/internal/theme"
	"countries/pkg/platform/sentinel"
)

var (
	bucketName = []byte("preferences")
	themeKey   = []byte("theme")
)

// BoltStore keeps the theme in a local bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create theme db directory: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open theme db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preferences bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(_ context.Context) (theme.Theme, error) {
	var raw string
	err := s.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(bucketName).Get(themeKey)
		if value == nil {
			return sentinel.ErrNotFound
		}
		// value is only valid inside the transaction.
		raw = string(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return theme.Parse(raw)
}

func (s *BoltStore) Save(_ context.Context, t theme.Theme) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(themeKey, []byte(t))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
