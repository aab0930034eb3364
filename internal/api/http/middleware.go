package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/city-weather/internal/session"
)

const (
	sessionCookie = "cw_session"
	sessionLocal  = "session"
)

// SessionStore is the subset of the session store the handlers need.
type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
}

// sessionMiddleware attaches the caller's session, creating one (and its
// cookie) when the cookie is missing or the session has expired.
func sessionMiddleware(store SessionStore, maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sess *session.Session

		if id := c.Cookies(sessionCookie); id != "" {
			s, err := store.Get(id)
			switch {
			case err == nil:
				sess = s
			case !errors.Is(err, session.ErrNotFound):
				return err
			}
		}

		if sess == nil {
			sess = store.Create()
			cookie := &fiber.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			}
			if maxAge > 0 {
				cookie.MaxAge = int(maxAge.Seconds())
			}
			c.Cookie(cookie)
		}

		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

func currentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}

// wantsJSON reports whether the client prefers JSON over HTML.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}
