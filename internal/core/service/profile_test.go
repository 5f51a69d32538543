package service_test

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ProfileStorageFake struct {
	m map[string]domain.Profile
}

func NewProfileStorageFake() *ProfileStorageFake {
	return &ProfileStorageFake{m: make(map[string]domain.Profile)}
}

func (f *ProfileStorageFake) LoadProfile(
	_ context.Context, clientID string,
) (domain.Profile, error) {
	return f.m[clientID], nil
}

func (f *ProfileStorageFake) StoreProfile(
	_ context.Context, clientID string, p domain.Profile,
) error {
	f.m[clientID] = p
	return nil
}

func validProfile() domain.Profile {
	return domain.Profile{
		Name:    "Ivan Petrov",
		Email:   "ivan@example.com",
		Phone:   "+7 900 000-00-00",
		Address: "Arbat st. 1",
	}
}

func TestProfileService(t *testing.T) {

	t.Run("SaveThenGet", func(t *testing.T) {
		s := service.NewProfileService(NewProfileStorageFake())

		res, err := s.SaveProfile(t.Context(), clientID, validProfile())
		require.NoError(t, err)
		require.True(t, res.Success)

		p, err := s.GetProfile(t.Context(), clientID)
		require.NoError(t, err)
		assert.Equal(t, validProfile(), p)
	})

	t.Run("MissingProfileIsZero", func(t *testing.T) {
		s := service.NewProfileService(NewProfileStorageFake())

		p, err := s.GetProfile(t.Context(), "unknownClient")
		require.NoError(t, err)
		assert.Equal(t, domain.Profile{}, p)
	})

	t.Run("NameRequired", func(t *testing.T) {
		s := service.NewProfileService(NewProfileStorageFake())

		p := validProfile()
		p.Name = "  "

		res, err := s.SaveProfile(t.Context(), clientID, p)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Name is required", res.Message)
	})

	t.Run("EmailRequired", func(t *testing.T) {
		s := service.NewProfileService(NewProfileStorageFake())

		p := validProfile()
		p.Email = ""

		res, err := s.SaveProfile(t.Context(), clientID, p)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Email is required", res.Message)
	})

	t.Run("EmailShape", func(t *testing.T) {
		s := service.NewProfileService(NewProfileStorageFake())

		p := validProfile()
		p.Email = "not-an-email"

		res, err := s.SaveProfile(t.Context(), clientID, p)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid email address", res.Message)
	})

	t.Run("RejectionDoesNotStore", func(t *testing.T) {
		store := NewProfileStorageFake()
		s := service.NewProfileService(store)

		p := validProfile()
		p.Email = "broken"

		_, err := s.SaveProfile(t.Context(), clientID, p)
		require.NoError(t, err)

		got, err := s.GetProfile(t.Context(), clientID)
		require.NoError(t, err)
		assert.Equal(t, domain.Profile{}, got)
	})
}
