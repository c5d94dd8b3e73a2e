package handler

import (
	"interview-hub/internal/domain"
	"interview-hub/internal/usecase"
	"interview-hub/utils/logger"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// RequirePrincipal rejects requests without a valid session and stores the principal on the context.
func RequirePrincipal(resolve *usecase.ResolvePrincipal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			p := resolve.Execute(req.Context(), cookieJar(c))
			if p == nil {
				return mapDomainError(domain.ErrSessionInvalid)
			}

			c.Set(principalKey, p)
			c.SetRequest(req.WithContext(logger.WithUserID(req.Context(), p.ID)))
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	return p, ok && p != nil
}
