package service

import (
	"context"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/mustafashaheen1/ai-support-dashboard/pkg/util"
)

const (
	themeKeyPrefix = "support:theme:"
	defaultTheme   = "dark"
)

// PreferencesService stores per-agent UI preferences in Redis. The only
// preference is the theme; it affects no ticket data.
type PreferencesService struct {
	redis *redis.Client
}

// NewPreferencesService constructs the service.
func NewPreferencesService(client *redis.Client) *PreferencesService {
	return &PreferencesService{redis: client}
}

// GetTheme returns the saved theme, defaulting to dark.
func (s *PreferencesService) GetTheme(ctx context.Context, agentID string) (string, error) {
	if s.redis == nil {
		return defaultTheme, nil
	}
	theme, err := s.redis.Get(ctx, themeKeyPrefix+agentID).Result()
	if err == redis.Nil {
		return defaultTheme, nil
	}
	if err != nil {
		return "", err
	}
	return theme, nil
}

// SetTheme persists the theme choice.
func (s *PreferencesService) SetTheme(ctx context.Context, agentID, theme string) error {
	if theme != "dark" && theme != "light" {
		return apperrors.NewValidationError("theme must be dark or light", nil)
	}
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, themeKeyPrefix+agentID, theme, 0).Err()
}
