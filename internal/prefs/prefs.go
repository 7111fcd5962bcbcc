// Package prefs persists small user preferences as opaque key/value strings.
package prefs

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/JingYiJun/ClassicIndex/internal/log"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key.
	ErrNotFound = errors.New("preference not found")
	// ErrEmptyKey is returned for operations on the empty key.
	ErrEmptyKey = errors.New("preference key cannot be empty")
)

// Store is a synchronous key/value side channel. Writes are last-write-wins.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// BadgerStore keeps preferences in a BadgerDB directory.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// badgerLogger routes badger's internal logging through the prefs logger.
// Badger is chatty at info level, so info lines are demoted to debug.
type badgerLogger struct {
	logger *log.Logger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (bl *badgerLogger) Errorf(msg string, items ...any)   { bl.logger.Errorf(msg, items...) }
func (bl *badgerLogger) Warningf(msg string, items ...any) { bl.logger.Warnf(msg, items...) }
func (bl *badgerLogger) Infof(msg string, items ...any)    { bl.logger.Debugf(msg, items...) }
func (bl *badgerLogger) Debugf(msg string, items ...any)   { bl.logger.Debugf(msg, items...) }

// Open opens (creating if needed) a store in dir.
func Open(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating preferences directory: %w", err)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*BadgerStore, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*BadgerStore, error) {
	opts.Logger = &badgerLogger{logger: log.ForService("prefs")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening preferences store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *BadgerStore) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading preference %q: %w", key, err)
	}
	return string(value), nil
}

// Set stores value under key, replacing any previous value.
func (s *BadgerStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
