package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// AuthHandler exposes the session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies auth.CookieOptions
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies auth.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Register(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	auth.SetSessionCookies(c, res.Session, h.cookies)
	return respond(c, http.StatusCreated, dto.NewAuthResponse(res))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	auth.SetSessionCookies(c, res.Session, h.cookies)
	return respond(c, http.StatusOK, dto.NewAuthResponse(res))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	res, err := h.auth.Refresh(c.UserContext(), c.Cookies(auth.RefreshCookie))
	if err != nil {
		return err
	}
	auth.SetSessionCookies(c, res.Session, h.cookies)
	return respond(c, http.StatusOK, dto.NewAuthResponse(res))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), actor.ID); err != nil {
		return err
	}
	auth.ClearSessionCookies(c, h.cookies)
	return respond(c, http.StatusOK, fiber.Map{"message": "logged out"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	account, err := h.auth.Me(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewAccountResponse(account))
}
