// Package archive keeps encoded carriers in a pebble database keyed by KSUID.
package archive

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
)

var ErrNotFound = errors.New("archive: carrier not found")

// Entry describes one archived carrier.
type Entry struct {
	ID        ksuid.KSUID `json:"id"`
	Size      int         `json:"size"`
	CreatedAt time.Time   `json:"created_at"`
}

// Archive is a pebble-backed carrier store. It is safe for concurrent use.
type Archive struct {
	db *pebble.DB
}

// Open opens or creates an archive in dir.
func Open(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "archive: open %s", dir)
	}
	return &Archive{db: db}, nil
}

// OpenInMemory opens an archive that lives only in memory.
func OpenInMemory() (*Archive, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, errors.Wrap(err, "archive: open in-memory")
	}
	return &Archive{db: db}, nil
}

// Put stores a carrier and returns its new id.
func (a *Archive) Put(carrier []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := a.db.Set(id.Bytes(), carrier, pebble.Sync); err != nil {
		return ksuid.Nil, errors.Wrap(err, "archive: put")
	}
	return id, nil
}

// Get returns a copy of the carrier stored under id.
func (a *Archive) Get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := a.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "id %s", id)
		}
		return nil, errors.Wrap(err, "archive: get")
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Delete removes the carrier stored under id.
func (a *Archive) Delete(id ksuid.KSUID) error {
	if _, err := a.Get(id); err != nil {
		return err
	}
	if err := a.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return errors.Wrap(err, "archive: delete")
	}
	return nil
}

// List returns every archived carrier, oldest first.
func (a *Archive) List() ([]Entry, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return nil, errors.Wrap(err, "archive: list")
	}
	defer iter.Close()

	entries := []Entry{}
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			// not written by Put
			continue
		}
		entries = append(entries, Entry{
			ID:        id,
			Size:      len(iter.Value()),
			CreatedAt: id.Time(),
		})
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "archive: list")
	}
	return entries, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
