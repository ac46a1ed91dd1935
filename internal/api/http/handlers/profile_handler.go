package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// ProfileHandler exposes profile endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Mine handles GET /profile/me.
func (h *ProfileHandler) Mine(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	account, err := h.profiles.Mine(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewAccountResponse(account))
}

// UpdateMine handles PUT /profile/me.
func (h *ProfileHandler) UpdateMine(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	account, err := h.profiles.UpdateMine(c.UserContext(), actor, req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewAccountResponse(account))
}

// GetEmployer handles GET /employers/:id.
func (h *ProfileHandler) GetEmployer(c *fiber.Ctx) error {
	account, err := h.profiles.GetEmployer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewAccountResponse(account))
}

// GetJobSeeker handles GET /jobseekers/:id.
func (h *ProfileHandler) GetJobSeeker(c *fiber.Ctx) error {
	account, err := h.profiles.GetJobSeeker(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewAccountResponse(account))
}
