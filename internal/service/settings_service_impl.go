package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/identity"
	"github.com/fhagedorn/stempel/internal/repository"
)

type settingsService struct {
	users repository.UserRepo
	who   identity.Resolver
}

func NewSettingsService(users repository.UserRepo, who identity.Resolver) SettingsService {
	return &settingsService{users: users, who: who}
}

func (s *settingsService) Get(ctx context.Context) (domain.Baseline, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return domain.Baseline{}, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Baseline{}, err
	}
	return user.Baseline(), nil
}

// Update replaces the user's baseline. Existing entries keep their
// snapshots; only future entries pick up the new values.
func (s *settingsService) Update(ctx context.Context, b domain.Baseline) (domain.Baseline, error) {
	if err := b.Validate(); err != nil {
		return domain.Baseline{}, err
	}
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return domain.Baseline{}, err
	}
	if err := s.users.UpdateBaseline(ctx, userID, b); err != nil {
		return domain.Baseline{}, err
	}
	return b, nil
}

type userService struct {
	users repository.UserRepo
	now   func() time.Time
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users, now: time.Now}
}

// Register creates a user with the default baseline.
func (s *userService) Register(ctx context.Context, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name must not be empty: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:                    uuid.New().String(),
		Name:                  name,
		BaselineWeeklyMinutes: domain.DefaultBaselineWeeklyMinutes,
		BaselineDailyMinutes:  domain.DefaultBaselineDailyMinutes,
		WorkdaysPerWeek:       domain.DefaultWorkdaysPerWeek,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
