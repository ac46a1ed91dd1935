package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// Capability names an action guarded by role.
type Capability string

const (
	CapViewSelf            Capability = "view_self"
	CapPostJob             Capability = "post_job"
	CapManageJob           Capability = "manage_job"
	CapReviewApplications  Capability = "review_applications"
	CapListOwnJobs         Capability = "list_own_jobs"
	CapApplyToJob          Capability = "apply_to_job"
	CapListOwnApplications Capability = "list_own_applications"
)

var policy = map[domain.Role]map[Capability]struct{}{
	domain.RoleJobSeeker: {
		CapViewSelf:            {},
		CapApplyToJob:          {},
		CapListOwnApplications: {},
	},
	domain.RoleEmployer: {
		CapViewSelf:           {},
		CapPostJob:            {},
		CapManageJob:          {},
		CapReviewApplications: {},
		CapListOwnJobs:        {},
	},
	domain.RoleAdmin: {
		CapViewSelf: {},
	},
}

// Can reports whether role holds capability.
func Can(role domain.Role, capability Capability) bool {
	_, ok := policy[role][capability]
	return ok
}

// Authorize returns a Forbidden error unless the principal holds one of roles.
func Authorize(principal Principal, roles ...domain.Role) error {
	for _, role := range roles {
		if principal.Role() == role {
			return nil
		}
	}
	return apperrors.NewForbidden("forbidden")
}

// Require returns a Forbidden error unless actor holds capability.
func Require(actor domain.Actor, capability Capability) error {
	if !Can(actor.Role, capability) {
		return apperrors.NewForbidden("forbidden")
	}
	return nil
}

// RequireRole ensures the authenticated caller has one of the allowed roles.
// Mount it after AuthMiddleware.Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromFiber(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if err := Authorize(principal, allowed...); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireCapability ensures the authenticated caller's role grants capability.
func RequireCapability(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromFiber(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if err := Require(principal.Actor, capability); err != nil {
			return err
		}
		return c.Next()
	}
}
