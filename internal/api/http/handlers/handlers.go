package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func currentActor(c *fiber.Ctx) (domain.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c.UserContext())
	if !ok {
		return domain.Actor{}, apperrors.NewUnauthorized("unauthorized")
	}
	return principal.Actor, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}
