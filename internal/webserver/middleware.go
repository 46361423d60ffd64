package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eazybuy/storefront/internal/domain"
)

const (
	// CurrentUserKey is the echo context key holding the authenticated user.
	CurrentUserKey = "current_user"
	// SessionName is the cookie name carrying the anonymous session.
	SessionName = "eazybuy_session"

	sessionIDKey = "sid"
)

// ZapLogger logs each request through the global zap logger.
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			)
			return nil
		}
	}
}

// tokenIdentity resolves a bearer credential from the Authorization header
// and stores the user in the request context. Requests without a header
// pass through anonymously; a presented but invalid token is rejected.
func (s *WebServer) tokenIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
		if header == "" {
			return next(c)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || (!strings.EqualFold(parts[0], "Token") && !strings.EqualFold(parts[0], "Bearer")) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"code":  "INVALID_TOKEN",
				"error": "Invalid authorization header",
			})
		}

		user, err := s.auth.ResolveToken(c.Request().Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"code":  "INVALID_TOKEN",
				"error": "Invalid or expired token",
			})
		}

		c.Set(CurrentUserKey, user)
		return next(c)
	}
}

// CurrentUser returns the authenticated user set by the identity
// middleware, if any.
func CurrentUser(c echo.Context) (*domain.SysUser, bool) {
	user, ok := c.Get(CurrentUserKey).(*domain.SysUser)
	return user, ok
}

// SessionID returns the caller's anonymous session identifier, creating it
// on first touch.
func SessionID(c echo.Context) (string, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		// a corrupt or stale cookie still decodes to a fresh session;
		// reset it instead of failing the request
		if sess == nil || !sess.IsNew {
			return "", err
		}
	}
	if sid, ok := sess.Values[sessionIDKey].(string); ok && sid != "" {
		return sid, nil
	}

	sid := uuid.NewString()
	sess.Values[sessionIDKey] = sid
	sess.Options.Path = "/"
	sess.Options.HttpOnly = true
	sess.Options.MaxAge = 86400 * 30
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	return sid, nil
}
