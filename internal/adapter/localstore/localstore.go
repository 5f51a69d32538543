// Package localstore is the embedded per-client store for carts and
// profiles, the server-side analog of the browser's local storage.
package localstore

import (
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
)

type LocalStore struct {
	db *leveldb.DB
}

func New(path string) (LocalStore, error) {
	const op = "localstore.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return LocalStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return LocalStore{db}, nil
}

func (s LocalStore) Close() {
	const op = "LocalStore.Close"
	log := slog.With("op", op)

	log.Info("closing local store...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("local store is closed")
}

func cartKey(clientID string) []byte {
	return []byte("cart:" + clientID)
}

func profileKey(clientID string) []byte {
	return []byte("profile:" + clientID)
}
