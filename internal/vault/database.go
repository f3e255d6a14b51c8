package vault

import (
	"bytes"
	"context"
	"crypto/cipher"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

// Database is one profile's encrypted credential file, unlocked with a
// password-derived key. A Database holds an advisory lock for as long as it
// is open; a second process opening the same file gets ErrBusy instead of a
// chance to corrupt it.
//
// Labels are unique within a database and listed in insertion order. Every
// mutation rewrites the whole file through a temp-file rename, so a crash
// mid-write leaves either the old file or the new one, never a mix.
type Database struct {
	path    string
	key     []byte
	aead    cipher.AEAD
	header  header
	records []record
	index   map[string]int
	lock    *flock.Flock
}

// Create initializes a new encrypted database at path. It fails with
// ErrExists if the path is occupied and never leaves a partially written
// file behind. The returned database is open; callers own password and
// should zero it after the call.
//
// The context is honored up to the point the file write starts; after that
// the write runs to completion so no partial file is ever observable.
func Create(ctx context.Context, path string, password []byte, params Params) (*Database, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat database path: %w", err)
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	key, err := deriveKey(password, salt, params)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(key)
	if err != nil {
		Zero(key)
		return nil, err
	}
	verifierNonce, err := newNonce()
	if err != nil {
		Zero(key)
		return nil, err
	}

	db := &Database{
		path: path,
		key:  key,
		aead: aead,
		header: header{
			version:       formatVersion,
			params:        params,
			salt:          salt,
			verifierNonce: verifierNonce,
			verifier:      seal(aead, verifierNonce, []byte(dbMagic)),
		},
		index: make(map[string]int),
		lock:  flock.New(lockPath(path)),
	}
	if err := db.acquire(); err != nil {
		Zero(key)
		return nil, err
	}
	if err := db.persist(); err != nil {
		db.release()
		Zero(key)
		return nil, err
	}
	if err := os.Chmod(path, 0600); err != nil {
		db.release()
		Zero(key)
		return nil, fmt.Errorf("failed to restrict database permissions: %w", err)
	}
	return db, nil
}

// Open unlocks an existing database. The magic and framing are checked before
// the key is derived, so a non-database file fails with ErrCorrupt without
// paying the KDF cost; the verifier is then authenticated before any record
// is decrypted, so a wrong password fails with ErrAuthentication and nothing
// else.
//
// The context can abort the open before the slow key derivation runs.
func Open(ctx context.Context, path string, password []byte) (*Database, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read database: %w", err)
	}

	h, records, err := decodeFile(data)
	if err != nil {
		return nil, err
	}
	key, err := deriveKey(password, h.salt, h.params)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(key)
	if err != nil {
		Zero(key)
		return nil, err
	}
	probe, err := open(aead, h.verifierNonce, h.verifier)
	if err != nil {
		Zero(key)
		return nil, err
	}
	Zero(probe)

	db := &Database{
		path:    path,
		key:     key,
		aead:    aead,
		header:  h,
		records: records,
		index:   make(map[string]int, len(records)),
		lock:    flock.New(lockPath(path)),
	}
	for i, r := range records {
		db.index[r.label] = i
	}
	if err := db.acquire(); err != nil {
		Zero(key)
		return nil, err
	}
	return db, nil
}

// Add seals a secret under a fresh nonce and persists it. Duplicate labels
// are rejected, leaving the existing record untouched.
func (db *Database) Add(label string, secret []byte) error {
	if db.aead == nil {
		return ErrNoSession
	}
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidInput)
	}
	if len(label) > maxLabelLen {
		return fmt.Errorf("%w: label too long", ErrInvalidInput)
	}
	if _, ok := db.index[label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
	}

	nonce, err := newNonce()
	if err != nil {
		return err
	}
	db.records = append(db.records, record{
		label:      label,
		nonce:      nonce,
		ciphertext: seal(db.aead, nonce, secret),
	})
	db.index[label] = len(db.records) - 1

	if err := db.persist(); err != nil {
		// A failed write must be observable as no change at all.
		db.records = db.records[:len(db.records)-1]
		delete(db.index, label)
		return err
	}
	return nil
}

// Get decrypts one record on demand. The returned slice is a transient copy;
// the caller must Zero it when done.
func (db *Database) Get(label string) ([]byte, error) {
	if db.aead == nil {
		return nil, ErrNoSession
	}
	i, ok := db.index[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	r := db.records[i]
	return open(db.aead, r.nonce, r.ciphertext)
}

// Labels returns record labels in insertion order.
func (db *Database) Labels() ([]string, error) {
	if db.aead == nil {
		return nil, ErrNoSession
	}
	labels := make([]string, len(db.records))
	for i, r := range db.records {
		labels[i] = r.label
	}
	return labels, nil
}

// Remove deletes a record and persists the change. Removing an absent label
// fails with ErrNotFound, including a second removal of the same label.
func (db *Database) Remove(label string) error {
	if db.aead == nil {
		return ErrNoSession
	}
	i, ok := db.index[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, label)
	}

	removed := db.records[i]
	db.records = append(db.records[:i], db.records[i+1:]...)
	delete(db.index, label)
	for j := i; j < len(db.records); j++ {
		db.index[db.records[j].label] = j
	}

	if err := db.persist(); err != nil {
		db.records = append(db.records[:i], append([]record{removed}, db.records[i:]...)...)
		for j := i; j < len(db.records); j++ {
			db.index[db.records[j].label] = j
		}
		return err
	}
	return nil
}

// Len reports the number of stored records.
func (db *Database) Len() int {
	return len(db.records)
}

// Close zeroes the derived key and releases the advisory lock. Safe to call
// more than once; record operations after Close fail with ErrNoSession.
func (db *Database) Close() error {
	if db.key != nil {
		Zero(db.key)
		db.key = nil
		db.aead = nil
	}
	return db.release()
}

func (db *Database) acquire() error {
	locked, err := db.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire database lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrBusy, db.path)
	}
	return nil
}

func (db *Database) release() error {
	if db.lock == nil {
		return nil
	}
	if err := db.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to release database lock: %w", err)
	}
	db.lock = nil
	return nil
}

// persist writes the full database to a temp file and renames it over the
// old one, so the change is durable before the caller sees success.
func (db *Database) persist() error {
	data, err := encodeFile(db.header, db.records)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(db.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write database: %w", err)
	}
	return nil
}

func lockPath(path string) string {
	return path + ".lock"
}
