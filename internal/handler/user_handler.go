package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cfptracker/internal/errors"
	"cfptracker/internal/service"
)

// UserHandler bundles user profile endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	email, err := currentEmail(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), email)
	if err != nil {
		if err == service.ErrUnknownSubject {
			// Token checked out but the user is gone; same 401 as any
			// other auth failure, the distinction is for logs only.
			c.Logger().Warnf("token subject %q has no user", email)
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "could not validate credentials",
				Code:  "UNAUTHORIZED",
			})
		}
		if err == errors.ErrUserInactive {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to load user",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, user)
}
