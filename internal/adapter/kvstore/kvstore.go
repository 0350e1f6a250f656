package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/voyago/storefront/internal/core/port"
)

var _ port.CartStorage = (*CartStorage)(nil)

// A CartStorage keeps the serialized cart under a single fixed key in
// a local leveldb database. The blob is opaque here, the cart service
// owns its shape.
type CartStorage struct {
	db  *leveldb.DB
	key []byte
}

func NewCartStorage(path, key string) (*CartStorage, error) {
	const op = "NewCartStorage"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open db: %w", op, err)
	}
	slog.Info("cart storage is opened", "op", op, "path", path)
	return &CartStorage{db: db, key: []byte(key)}, nil
}

func (s *CartStorage) Get(ctx context.Context) ([]byte, bool, error) {
	const op = "CartStorage.Get"

	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	blob, err := s.db.Get(s.key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return blob, true, nil
}

func (s *CartStorage) Set(ctx context.Context, blob []byte) error {
	const op = "CartStorage.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Put(s.key, blob, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CartStorage) Close() {
	const op = "CartStorage.Close"
	log := slog.With("op", op)

	log.Info("closing cart storage...")

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("cart storage is closed")
}
