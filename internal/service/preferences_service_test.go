package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mustafashaheen1/ai-support-dashboard/pkg/util"
)

func TestSetThemeValidation(t *testing.T) {
	svc := NewPreferencesService(nil)

	for _, theme := range []string{"", "blue", "DARK", "light "} {
		err := svc.SetTheme(context.Background(), "agent-1", theme)
		require.Error(t, err, "theme %q", theme)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}

	assert.NoError(t, svc.SetTheme(context.Background(), "agent-1", "dark"))
	assert.NoError(t, svc.SetTheme(context.Background(), "agent-1", "light"))
}

func TestGetThemeDefaultsToDark(t *testing.T) {
	svc := NewPreferencesService(nil)

	theme, err := svc.GetTheme(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}
