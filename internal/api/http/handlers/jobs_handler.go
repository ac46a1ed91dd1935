package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/service"
)

// JobsHandler exposes job posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

// Create handles POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.UserContext(), actor, req.ToInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewJobResponse(job))
}

// Get handles GET /jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobResponse(job))
}

// ListMine handles GET /employer/jobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListForEmployer(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobListResponse(jobs))
}

// Update handles PUT /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.Update(c.UserContext(), actor, c.Params("id"), req.ToPatch())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobResponse(job))
}

// SetStatus handles PATCH /jobs/:id/status.
func (h *JobsHandler) SetStatus(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.JobStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.SetStatus(c.UserContext(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobResponse(job))
}

// Delete handles DELETE /jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fiber.Map{"message": "job deleted"})
}
