package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProfileGetter = (*ProfileService)(nil)
var _ port.ProfileSaver = (*ProfileService)(nil)

type ProfileService struct {
	profiles port.ProfileStorage
}

func NewProfileService(profiles port.ProfileStorage) ProfileService {
	return ProfileService{profiles}
}

func (s ProfileService) GetProfile(
	ctx context.Context, clientID string,
) (domain.Profile, error) {
	const op = "ProfileService.GetProfile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.profiles.LoadProfile(ctx, clientID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s ProfileService) SaveProfile(
	ctx context.Context, clientID string, p domain.Profile,
) (domain.Result, error) {
	const op = "ProfileService.SaveProfile"

	if err := ctx.Err(); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if res := validateProfile(p); !res.Success {
		return res, nil
	}

	if err := s.profiles.StoreProfile(ctx, clientID, p); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Accepted("Profile saved"), nil
}

func validateProfile(p domain.Profile) domain.Result {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Rejected("Name is required")
	}

	if strings.TrimSpace(p.Email) == "" {
		return domain.Rejected("Email is required")
	}

	if _, err := mail.ParseAddress(p.Email); err != nil {
		return domain.Rejected("Invalid email address")
	}

	return domain.Result{Success: true}
}
