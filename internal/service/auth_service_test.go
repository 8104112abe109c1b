package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/config"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/repository"
	apperrors "github.com/mustafashaheen1/ai-support-dashboard/pkg/util"
)

// memoryAgentRepo is an in-memory AgentRepository for auth tests.
type memoryAgentRepo struct {
	mu     sync.Mutex
	agents map[string]*domain.Agent
	seq    int
}

func newMemoryAgentRepo() *memoryAgentRepo {
	return &memoryAgentRepo{agents: make(map[string]*domain.Agent)}
}

func (r *memoryAgentRepo) Create(ctx context.Context, agent *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	agent.ID = fmt.Sprintf("agent-%03d", r.seq)
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = agent.CreatedAt
	copied := *agent
	r.agents[agent.ID] = &copied
	return nil
}

func (r *memoryAgentRepo) Update(ctx context.Context, agent *domain.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[agent.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *agent
	copied.UpdatedAt = time.Now()
	r.agents[agent.ID] = &copied
	return nil
}

func (r *memoryAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *agent
	return &copied, nil
}

func (r *memoryAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, agent := range r.agents {
		if agent.Email == email {
			copied := *agent
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// memoryResetRepo is an in-memory PasswordResetRepository.
type memoryResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
	seq    int
}

func newMemoryResetRepo() *memoryResetRepo {
	return &memoryResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *memoryResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = fmt.Sprintf("reset-%03d", r.seq)
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *memoryResetRepo) GetByToken(ctx context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *memoryResetRepo) MarkUsed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

// expire backdates a token so the expiry check trips.
func (r *memoryResetRepo) expire(tokenStr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[tokenStr]; ok {
		token.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

func newTestAuthService(agents repository.AgentRepository, resets repository.PasswordResetRepository) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
	return NewAuthService(cfg, AuthDependencies{AgentRepo: agents, PasswordResetRepo: resets})
}

func TestRegisterAgentIssuesToken(t *testing.T) {
	svc := newTestAuthService(newMemoryAgentRepo(), newMemoryResetRepo())

	agent, token, exp, err := svc.RegisterAgent(context.Background(), "sarah@example.com", "Sarah", "hunter2secret")
	require.NoError(t, err)
	require.NotNil(t, agent)
	assert.NotEmpty(t, agent.ID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	// The hash is stored, never the plaintext.
	assert.NotEqual(t, "hunter2secret", agent.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, claims.AgentID)
}

func TestRegisterAgentDuplicateEmailConflicts(t *testing.T) {
	svc := newTestAuthService(newMemoryAgentRepo(), newMemoryResetRepo())

	_, _, _, err := svc.RegisterAgent(context.Background(), "sarah@example.com", "Sarah", "hunter2secret")
	require.NoError(t, err)

	_, _, _, err = svc.RegisterAgent(context.Background(), "sarah@example.com", "Other Sarah", "differentpass")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLoginAgent(t *testing.T) {
	svc := newTestAuthService(newMemoryAgentRepo(), newMemoryResetRepo())

	registered, _, _, err := svc.RegisterAgent(context.Background(), "mike@example.com", "Mike", "hunter2secret")
	require.NoError(t, err)

	agent, token, _, err := svc.LoginAgent(context.Background(), "mike@example.com", "hunter2secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, agent.ID)
	assert.NotEmpty(t, token)

	_, _, _, err = svc.LoginAgent(context.Background(), "mike@example.com", "wrongpass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.LoginAgent(context.Background(), "nobody@example.com", "hunter2secret")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestChangePassword(t *testing.T) {
	svc := newTestAuthService(newMemoryAgentRepo(), newMemoryResetRepo())

	agent, _, _, err := svc.RegisterAgent(context.Background(), "emma@example.com", "Emma", "hunter2secret")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), agent.ID, "wrongpass", "newpassword1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(context.Background(), agent.ID, "hunter2secret", "newpassword1"))

	_, _, _, err = svc.LoginAgent(context.Background(), "emma@example.com", "hunter2secret")
	require.Error(t, err)
	_, _, _, err = svc.LoginAgent(context.Background(), "emma@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMemoryAgentRepo(), newMemoryResetRepo())

	// Unknown emails succeed without issuing a token so account existence
	// never leaks.
	token, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestPasswordResetFlow(t *testing.T) {
	resets := newMemoryResetRepo()
	svc := newTestAuthService(newMemoryAgentRepo(), resets)

	_, _, _, err := svc.RegisterAgent(context.Background(), "david@example.com", "David", "hunter2secret")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(context.Background(), "david@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ConfirmPasswordReset(context.Background(), token, "resetpassword1"))

	_, _, _, err = svc.LoginAgent(context.Background(), "david@example.com", "resetpassword1")
	require.NoError(t, err)

	// The token is single use.
	err = svc.ConfirmPasswordReset(context.Background(), token, "anotherpassword")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	resets := newMemoryResetRepo()
	svc := newTestAuthService(newMemoryAgentRepo(), resets)

	_, _, _, err := svc.RegisterAgent(context.Background(), "lisa@example.com", "Lisa", "hunter2secret")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(context.Background(), "lisa@example.com")
	require.NoError(t, err)
	resets.expire(token)

	err = svc.ConfirmPasswordReset(context.Background(), token, "resetpassword1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	// The old password still works.
	_, _, _, err = svc.LoginAgent(context.Background(), "lisa@example.com", "hunter2secret")
	assert.NoError(t, err)
}

func TestPasswordResetUnknownToken(t *testing.T) {
	svc := newTestAuthService(newMemoryAgentRepo(), newMemoryResetRepo())

	err := svc.ConfirmPasswordReset(context.Background(), "no-such-token", "resetpassword1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}
