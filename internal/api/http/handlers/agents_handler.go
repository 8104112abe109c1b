package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/api/dto"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/auth"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/service"
	apperrors "github.com/mustafashaheen1/ai-support-dashboard/pkg/util"
)

// AgentsHandler manages agent account endpoints.
type AgentsHandler struct {
	authService *service.AuthService
	preferences *service.PreferencesService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(authService *service.AuthService, preferences *service.PreferencesService) *AgentsHandler {
	return &AgentsHandler{authService: authService, preferences: preferences}
}

// Register POST /auth/agents/register.
func (h *AgentsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.DisplayName == "" || len(req.Password) < 8 {
		return apperrors.NewValidationError("email, display_name and password (min 8 chars) required", nil)
	}

	agent, token, exp, err := h.authService.RegisterAgent(c.UserContext(), strings.ToLower(req.Email), req.DisplayName, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		Agent:     dto.FromAgent(agent),
	}})
}

// Login POST /auth/agents/login.
func (h *AgentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	agent, token, exp, err := h.authService.LoginAgent(c.UserContext(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		Agent:     dto.FromAgent(agent),
	}})
}

// ChangePassword POST /auth/password/change.
func (h *AgentsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.NewPassword) < 8 {
		return apperrors.NewValidationError("new password too short", nil)
	}
	if err := h.authService.ChangePassword(c.UserContext(), principal.Agent.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// RequestPasswordReset POST /auth/password/reset/request.
func (h *AgentsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	// Always report accepted; unknown emails do not leak existence.
	if _, err := h.authService.RequestPasswordReset(c.UserContext(), strings.ToLower(req.Email)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"accepted": true}})
}

// ConfirmPasswordReset POST /auth/password/reset/confirm.
func (h *AgentsHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || len(req.NewPassword) < 8 {
		return apperrors.NewValidationError("token and new password (min 8 chars) required", nil)
	}
	if err := h.authService.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

// GetTheme GET /api/preferences/theme.
func (h *AgentsHandler) GetTheme(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	theme, err := h.preferences.GetTheme(c.UserContext(), principal.Agent.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"theme": theme}})
}

// SetTheme PUT /api/preferences/theme.
func (h *AgentsHandler) SetTheme(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.preferences.SetTheme(c.UserContext(), principal.Agent.ID, req.Theme); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"theme": req.Theme}})
}
