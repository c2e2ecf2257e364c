package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"cfptracker/internal/errors"
	"cfptracker/internal/model"
	"cfptracker/internal/repository"
	"cfptracker/internal/service"
)

const defaultListLimit = 100

// CFPHandler handles CFP endpoints.
type CFPHandler struct {
	cfpService  service.CFPService
	authService service.AuthService
}

// NewCFPHandler creates a new CFP handler.
func NewCFPHandler(cfpService service.CFPService, authService service.AuthService) *CFPHandler {
	return &CFPHandler{cfpService: cfpService, authService: authService}
}

// CreateCFPRequest represents a CFP creation request.
type CreateCFPRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	EventName      string    `json:"event_name" validate:"required"`
	EventDate      time.Time `json:"event_date" validate:"required"`
	ClosingDate    time.Time `json:"closing_date" validate:"required"`
	Location       string    `json:"location"`
	TargetAudience string    `json:"target_audience"`
	EventType      string    `json:"event_type"`
	EventURL       string    `json:"event_url" validate:"omitempty,url"`
	CFPURL         string    `json:"cfp_url" validate:"omitempty,url"`
	Source         string    `json:"source"`
}

// CountResponse represents a total-count response.
type CountResponse struct {
	Count int64 `json:"count"`
}

// ListCFPs godoc
// @Summary List CFPs with optional filters
// @Tags cfps
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Param location query string false "Location substring"
// @Param target_audience query string false "Target audience substring"
// @Param event_type query string false "Event type substring"
// @Param closing_date query string false "Upper bound on closing date (RFC 3339)"
// @Success 200 {array} model.CFP
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cfps [get]
func (h *CFPHandler) ListCFPs(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	cfps, err := h.cfpService.ListCFPs(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list cfps",
			Code:  "INTERNAL_ERROR",
		})
	}
	return c.JSON(http.StatusOK, cfps)
}

// CountCFPs godoc
// @Summary Count CFPs matching the filters
// @Tags cfps
// @Produce json
// @Param location query string false "Location substring"
// @Param target_audience query string false "Target audience substring"
// @Param event_type query string false "Event type substring"
// @Param closing_date query string false "Upper bound on closing date (RFC 3339)"
// @Success 200 {object} CountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cfps/count [get]
func (h *CFPHandler) CountCFPs(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	count, err := h.cfpService.CountCFPs(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to count cfps",
			Code:  "INTERNAL_ERROR",
		})
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

// GetCFP godoc
// @Summary Get a CFP by id
// @Tags cfps
// @Produce json
// @Param id path int true "CFP ID"
// @Success 200 {object} model.CFP
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cfps/{id} [get]
func (h *CFPHandler) GetCFP(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}

	cfp, err := h.cfpService.GetCFP(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cfp)
}

// CreateCFP godoc
// @Summary Create a CFP
// @Tags cfps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCFPRequest true "CFP fields"
// @Success 201 {object} model.CFP
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cfps [post]
func (h *CFPHandler) CreateCFP(c echo.Context) error {
	email, err := currentEmail(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "could not validate credentials",
			Code:  "UNAUTHORIZED",
		})
	}

	var req CreateCFPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	cfp := &model.CFP{
		Title:          req.Title,
		Description:    req.Description,
		EventName:      req.EventName,
		EventDate:      req.EventDate,
		ClosingDate:    req.ClosingDate,
		Location:       req.Location,
		TargetAudience: req.TargetAudience,
		EventType:      req.EventType,
		EventURL:       req.EventURL,
		CFPURL:         req.CFPURL,
		Source:         req.Source,
	}

	created, err := h.cfpService.CreateCFP(c.Request().Context(), cfp, user.ID)
	if err != nil {
		if err == errors.ErrClosingAfterEvent {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to create cfp",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusCreated, created)
}

// parseFilter reads the CFP list query parameters. skip and limit must be
// non-negative; closing_date must be RFC 3339.
func parseFilter(c echo.Context) (repository.CFPFilter, error) {
	filter := repository.CFPFilter{
		Location:       c.QueryParam("location"),
		TargetAudience: c.QueryParam("target_audience"),
		EventType:      c.QueryParam("event_type"),
		Skip:           0,
		Limit:          defaultListLimit,
	}

	if v := c.QueryParam("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "skip must be a non-negative integer",
				Code:  "VALIDATION_ERROR",
			})
		}
		filter.Skip = skip
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "limit must be a non-negative integer",
				Code:  "VALIDATION_ERROR",
			})
		}
		filter.Limit = limit
	}

	if v := c.QueryParam("closing_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "closing_date must be an RFC 3339 timestamp",
				Code:  "VALIDATION_ERROR",
			})
		}
		filter.ClosingBefore = &t
	}

	return filter, nil
}
