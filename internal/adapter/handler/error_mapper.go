package handler

import (
	"errors"
	"net/http"

	"interview-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrSessionInvalid),
		errors.Is(err, domain.ErrSessionRevoked),
		errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrIdentityMismatch):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")

	case errors.Is(err, domain.ErrProviderUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")

	case errors.Is(err, domain.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "document store unavailable")

	case errors.Is(err, domain.ErrTokenGeneration),
		errors.Is(err, domain.ErrSessionSecretWeak):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// statusForResult picks the HTTP status for an action result. okStatus is used on success.
func statusForResult(code domain.ResultCode, okStatus int) int {
	switch code {
	case domain.CodeOK:
		return okStatus
	case domain.CodeInvalidInput:
		return http.StatusBadRequest
	case domain.CodeAlreadyExists, domain.CodeDuplicateEmail:
		return http.StatusConflict
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeAuthFailure:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
