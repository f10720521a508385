package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      *domain.User `json:"user"`
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.google)
	group.POST("/logout", handler.logout, RequireAuth(auth))
	e.GET("/api/v1/users/me", handler.me, RequireAuth(auth))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.RegisterWithEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			return c.JSON(http.StatusConflict, util.Error("email already registered"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.LoginWithEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid email or password"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

func (h *AuthHandler) google(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.IDToken == "" {
		return c.JSON(http.StatusBadRequest, util.Error("id_token is required"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid google token"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

func (h *AuthHandler) logout(c echo.Context) error {
	token := currentToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			return c.JSON(http.StatusUnauthorized, util.Error("session already revoked"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log out"))
	}
	return c.JSON(http.StatusOK, echo.Map{"logged_out": true})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, user)
}

func toAuthResponse(result *service.AuthResult) authResponse {
	return authResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		User:      result.User,
	}
}
