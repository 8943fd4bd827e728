package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/corebitlabs/auth-api/internal/apperr"
	"github.com/corebitlabs/auth-api/internal/dto"
	"github.com/corebitlabs/auth-api/internal/middleware"
	"github.com/corebitlabs/auth-api/internal/service"
)

// EmailValidator checks address shape before credentials reach the service.
type EmailValidator interface {
	IsValid(email string) bool
}

// AuthHandler exposes authentication endpoints. It is the sealing boundary:
// every failure below it becomes a well-formed response, never a raw error.
type AuthHandler struct {
	authService *service.AuthService
	emails      EmailValidator
	notifier    *WebhookNotifier
}

// NewAuthHandler constructs an AuthHandler. notifier may be nil.
func NewAuthHandler(authService *service.AuthService, emails EmailValidator, notifier *WebhookNotifier) *AuthHandler {
	return &AuthHandler{authService: authService, emails: emails, notifier: notifier}
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	// Caller errors are reported before any wiring fault: a request that is
	// wrong on its face gets 400 even against a mis-wired handler.
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return Error(c, http.StatusBadRequest, apperr.NewMissingParam("email").Error())
	}
	if req.Password == "" {
		return Error(c, http.StatusBadRequest, apperr.NewMissingParam("password").Error())
	}

	if h.authService == nil || h.emails == nil {
		return Error(c, http.StatusInternalServerError, apperr.ErrInternal.Error())
	}
	if !h.emails.IsValid(req.Email) {
		return Error(c, http.StatusBadRequest, apperr.NewInvalidParam("email").Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case apperr.IsParamError(err):
			return Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperr.ErrInvalidCredentials):
			return Error(c, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
		default:
			return Error(c, http.StatusInternalServerError, "unable to authenticate")
		}
	}

	h.notify(c, "user.login", req.Email)
	return Success(c, http.StatusOK, "login successful", dto.LoginResponse{AccessToken: token})
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return Error(c, http.StatusBadRequest, apperr.NewMissingParam("email").Error())
	}
	if req.Password == "" {
		return Error(c, http.StatusBadRequest, apperr.NewMissingParam("password").Error())
	}

	if h.authService == nil || h.emails == nil {
		return Error(c, http.StatusInternalServerError, apperr.ErrInternal.Error())
	}
	if !h.emails.IsValid(req.Email) {
		return Error(c, http.StatusBadRequest, apperr.NewInvalidParam("email").Error())
	}

	token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Phone)
	if err != nil {
		switch {
		case apperr.IsParamError(err):
			return Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailAlreadyExists):
			return Error(c, http.StatusConflict, "email already exists")
		default:
			return Error(c, http.StatusInternalServerError, "unable to register user")
		}
	}

	h.notify(c, "user.registered", req.Email)
	return Success(c, http.StatusCreated, "registration successful", dto.LoginResponse{AccessToken: token})
}

// Me handles GET /auth/me for an authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	if h.authService == nil {
		return Error(c, http.StatusInternalServerError, apperr.ErrInternal.Error())
	}

	userID, ok := authenticatedUserID(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			return Error(c, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
		}
		return Error(c, http.StatusInternalServerError, "unable to load profile")
	}

	return Success(c, http.StatusOK, "profile retrieved", dto.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
		Phone: user.Phone,
	})
}

// Logout handles POST /auth/logout, revoking the active token.
func (h *AuthHandler) Logout(c echo.Context) error {
	if h.authService == nil {
		return Error(c, http.StatusInternalServerError, apperr.ErrInternal.Error())
	}

	userID, ok := authenticatedUserID(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
	}

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		return Error(c, http.StatusInternalServerError, "unable to log out")
	}

	return Success(c, http.StatusOK, "logged out", nil)
}

// notify dispatches the audit event without blocking the response. The echo
// context is read up front because it is recycled once the handler returns.
func (h *AuthHandler) notify(c echo.Context, event, email string) {
	if h.notifier == nil {
		return
	}
	evt := AuditEvent{
		Event:     event,
		Email:     email,
		RequestID: middleware.RequestIDFromContext(c),
	}
	go h.notifier.Notify(context.WithoutCancel(c.Request().Context()), evt)
}

func authenticatedUserID(c echo.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(middleware.ContextKeyUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
