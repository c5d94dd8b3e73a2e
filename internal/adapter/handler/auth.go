package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"interview-hub/internal/domain"
	"interview-hub/internal/usecase"
	"interview-hub/utils/validator"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves the sign-up, sign-in and session endpoints under /api/auth.
type AuthHandler struct {
	register     *usecase.RegisterAccount
	authenticate *usecase.Authenticate
	terminate    *usecase.TerminateSession
	resolve      *usecase.ResolvePrincipal
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	register *usecase.RegisterAccount,
	authenticate *usecase.Authenticate,
	terminate *usecase.TerminateSession,
	resolve *usecase.ResolvePrincipal,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		register:     register,
		authenticate: authenticate,
		terminate:    terminate,
		resolve:      resolve,
		logger:       logger,
	}
}

type signUpRequest struct {
	UID   string `json:"uid" validate:"omitempty,account_id"`
	Name  string `json:"name" validate:"max=128"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

type signInRequest struct {
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	IDToken string `json:"idToken" validate:"max=8192"`
}

type signInResponse struct {
	domain.ActionResult
	SessionEstablished bool `json:"sessionEstablished"`
}

type meResponse struct {
	User *domain.Principal `json:"user"`
}

type statusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// SignUp handles POST /api/auth/sign-up.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.Failed(domain.CodeInvalidInput, "Invalid user data"))
	}

	result := h.register.Execute(c.Request().Context(), usecase.RegisterInput{
		UID:   req.UID,
		Name:  req.Name,
		Email: req.Email,
	})
	return c.JSON(statusForResult(result.Code, http.StatusCreated), result)
}

// SignIn handles POST /api/auth/sign-in.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, signInResponse{
			ActionResult: domain.Failed(domain.CodeInvalidInput, signInRejection(err)),
		})
	}

	result := h.authenticate.Execute(c.Request().Context(), cookieJar(c), usecase.AuthenticateInput{
		Email:       req.Email,
		BearerToken: req.IDToken,
	})
	return c.JSON(statusForResult(result.Code, http.StatusOK), signInResponse{
		ActionResult:       result.ActionResult,
		SessionEstablished: result.Session == domain.SessionEstablished,
	})
}

// SignOut handles POST /api/auth/sign-out.
func (h *AuthHandler) SignOut(c echo.Context) error {
	h.terminate.Execute(c.Request().Context(), cookieJar(c))
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/auth/me. Anonymous callers get a null user, not an error.
func (h *AuthHandler) Me(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, meResponse{User: h.resolve.Execute(c.Request().Context(), cookieJar(c))})
}

// Status handles GET /api/auth/status.
func (h *AuthHandler) Status(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, statusResponse{
		Authenticated: h.resolve.IsAuthenticated(c.Request().Context(), cookieJar(c)),
	})
}

// signInRejection names the field that failed. Bodies that could not be decoded count as bad credentials.
func signInRejection(err error) string {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		if _, ok := verr.Errors["email"]; ok {
			return "Invalid email"
		}
	}
	return "Invalid credentials"
}

func (h *AuthHandler) bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		h.logger.DebugContext(c.Request().Context(), "malformed request body", "error", err)
		return err
	}
	if err := c.Validate(req); err != nil {
		h.logger.DebugContext(c.Request().Context(), "request validation failed", "error", err)
		return err
	}
	return nil
}
