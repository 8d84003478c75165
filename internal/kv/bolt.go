package kv

import (
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	// SettingsBucket holds all persisted interaction state.
	SettingsBucket = "settings"

	dbFileName  = "updatekit.db"
	openTimeout = 10 * time.Second
)

// Bolt is a bbolt-backed Store.
type Bolt struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// NewBolt opens (or creates) the settings database inside dataDir.
func NewBolt(dataDir string, logger *zap.Logger) (*Bolt, error) {
	dbPath := filepath.Join(dataDir, dbFileName)

	db, err := bbolt.Open(dbPath, 0o644, &bbolt.Options{
		Timeout: openTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(SettingsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings bucket: %w", err)
	}

	logger.Debug("Opened settings database", zap.String("path", dbPath))

	return &Bolt{db: db, logger: logger}, nil
}

// Get returns the stored value for key.
func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(SettingsBucket)).Get([]byte(key))
		if data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, found, nil
}

// Set writes a value.
func (b *Bolt) Set(key, value string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(SettingsBucket)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (b *Bolt) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(SettingsBucket)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}
