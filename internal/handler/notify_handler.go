package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cfptracker/internal/errors"
	"cfptracker/internal/service"
)

// NotifyHandler handles notification dispatch endpoints.
type NotifyHandler struct {
	notifyService service.NotifyService
	authService   service.AuthService
}

// NewNotifyHandler creates a new notify handler.
func NewNotifyHandler(notifyService service.NotifyService, authService service.AuthService) *NotifyHandler {
	return &NotifyHandler{notifyService: notifyService, authService: authService}
}

// NotifyRequest represents a notification dispatch request. ChannelID
// overrides the configured default channel when set.
type NotifyRequest struct {
	CFPIDs    []uint `json:"cfp_ids"`
	ChannelID string `json:"channel_id,omitempty"`
}

// Notify godoc
// @Summary Send a Slack digest for the selected CFPs
// @Tags notify
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NotifyRequest true "CFP ids and optional channel override"
// @Success 200 {object} service.NotificationOutcome
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notify [post]
func (h *NotifyHandler) Notify(c echo.Context) error {
	email, err := currentEmail(c)
	if err != nil {
		return err
	}

	if _, err := h.authService.CurrentUser(c.Request().Context(), email); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "could not validate credentials",
			Code:  "UNAUTHORIZED",
		})
	}

	var req NotifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	// Slack failures come back inside the outcome, not as an error; a
	// non-nil error here means the store broke mid-lookup.
	outcome, err := h.notifyService.Send(c.Request().Context(), req.CFPIDs, req.ChannelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to resolve cfps",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, outcome)
}
