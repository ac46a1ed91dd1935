package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// ApplicationsHandler exposes application endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

// Apply handles POST /jobs/:id/apply.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	app, err := h.applications.Apply(c.UserContext(), actor, c.Params("id"), req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewApplicationResponse(app))
}

// ListMine handles GET /jobseeker/applications.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	apps, err := h.applications.ListForCandidate(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewApplicationListResponse(apps))
}

// ListForJob handles GET /employer/jobs/:id/applications.
func (h *ApplicationsHandler) ListForJob(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	applicants, err := h.applications.ListForJob(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewApplicantListResponse(applicants))
}

// SetStatus handles PATCH /applications/:id/status.
func (h *ApplicationsHandler) SetStatus(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	app, err := h.applications.SetStatus(c.UserContext(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewApplicationResponse(app))
}
