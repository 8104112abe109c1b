package dto

import (
	"time"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

// RegisterAgentRequest payload.
type RegisterAgentRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ThemeRequest payload.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// AgentResponse representation.
type AgentResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse carries a signed token with its agent.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Agent     AgentResponse `json:"agent"`
}

// FromAgent maps the domain agent to its API shape.
func FromAgent(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:          agent.ID,
		Email:       agent.Email,
		DisplayName: agent.DisplayName,
		CreatedAt:   agent.CreatedAt,
	}
}
