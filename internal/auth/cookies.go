package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions controls session cookie attributes.
type CookieOptions struct {
	Secure bool
}

// SetSessionCookies writes both tokens as HTTP-only cookies.
func SetSessionCookies(c *fiber.Ctx, session Session, opts CookieOptions) {
	now := time.Now()
	c.Cookie(sessionCookie(AccessCookie, session.AccessToken, session.AccessExpiresAt.Sub(now), opts))
	c.Cookie(sessionCookie(RefreshCookie, session.RefreshToken, session.RefreshExpiresAt.Sub(now), opts))
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(c *fiber.Ctx, opts CookieOptions) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		cookie := sessionCookie(name, "", 0, opts)
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
		c.Cookie(cookie)
	}
}

func sessionCookie(name, value string, ttl time.Duration, opts CookieOptions) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
