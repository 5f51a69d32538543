package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

var _ port.ProfileStorage = (*ProfilesRepository)(nil)

type profileRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ProfilesRepository struct {
	store LocalStore
}

func NewProfilesRepository(store LocalStore) ProfilesRepository {
	return ProfilesRepository{store}
}

// LoadProfile returns a zero profile for a client without a stored one.
func (r ProfilesRepository) LoadProfile(
	ctx context.Context, clientID string,
) (domain.Profile, error) {
	const op = "ProfilesRepository.LoadProfile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	data, err := r.store.db.Get(profileKey(clientID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return domain.Profile{}, nil
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	var rec profileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Profile(rec), nil
}

func (r ProfilesRepository) StoreProfile(
	ctx context.Context, clientID string, p domain.Profile,
) error {
	const op = "ProfilesRepository.StoreProfile"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.Marshal(profileRecord(p))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.db.Put(profileKey(clientID), data, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
