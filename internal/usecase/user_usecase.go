package usecase

import (
	"context"
	"strings"
	"time"

	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/domain/service"
	"targ/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	pusher   service.Pusher
	now      func() time.Time
}

func NewUserUseCase(userRepo repository.UserRepository, pusher service.Pusher) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		pusher:   pusher,
		now:      time.Now,
	}
}

type UpdateProfileInput struct {
	DisplayName *string
	PhotoURL    *string
	Phone       *string
	Location    *string
	Bio         *string
}

// Me returns the caller's profile, creating it from the token on first sign-in.
func (uc *UserUseCase) Me(ctx context.Context, id Identity) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id.UID)
	if err == nil {
		return user, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	displayName := id.DisplayName
	if displayName == "" {
		displayName = strings.Split(id.Email, "@")[0]
	}
	user = &entity.User{
		ID:          id.UID,
		Email:       id.Email,
		DisplayName: displayName,
		PhotoURL:    id.PhotoURL,
		Role:        entity.RoleUser,
		Preferences: entity.Preferences{CardTheme: entity.CardThemeClassic},
		CreatedAt:   uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, errors.BadRequest("Display name cannot be empty", nil)
		}
		user.DisplayName = name
	}
	if input.PhotoURL != nil {
		user.PhotoURL = *input.PhotoURL
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetPublicProfile(ctx context.Context, userID string) (*entity.PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func validateBilling(billing *entity.BillingProfile) error {
	if billing == nil {
		return errors.BadRequest("Billing profile is required", nil)
	}
	if missing := billing.MissingFields(); len(missing) > 0 {
		return errors.BadRequest("Billing profile is missing: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

func (uc *UserUseCase) SaveBillingProfile(ctx context.Context, userID string, billing *entity.BillingProfile) (*entity.BillingProfile, error) {
	if err := validateBilling(billing); err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"billingProfile": billing}); err != nil {
		return nil, err
	}
	return billing, nil
}

// UpdatePreferences stores the preferences and broadcasts them to every open session
// of the user, so other tabs and devices re-render with the new card theme.
func (uc *UserUseCase) UpdatePreferences(ctx context.Context, userID string, prefs entity.Preferences) (*entity.Preferences, error) {
	switch prefs.CardTheme {
	case entity.CardThemeClassic, entity.CardThemeCompact, entity.CardThemeDark:
	default:
		return nil, errors.BadRequest("Unknown card theme", nil)
	}

	if err := uc.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"preferences": prefs}); err != nil {
		return nil, err
	}

	if uc.pusher != nil {
		uc.pusher.Push(userID, service.PushPreferencesUpdated, prefs)
	}
	return &prefs, nil
}
