package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cfptracker/internal/model"
	"cfptracker/internal/service"
)

const (
	seedUserEmail    = "demo@cfptracker.local"
	seedUserPassword = "demo-password"
)

// SeedHandler handles demo data endpoints.
type SeedHandler struct {
	authService service.AuthService
	cfpService  service.CFPService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(authService service.AuthService, cfpService service.CFPService) *SeedHandler {
	return &SeedHandler{authService: authService, cfpService: cfpService}
}

// SeedCFPsResponse represents the seed response.
type SeedCFPsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedCFPs godoc
// @Summary Seed demo CFPs
// @Tags seed
// @Produce json
// @Success 200 {object} SeedCFPsResponse
// @Failure 500 {object} map[string]string
// @Router /seed/cfps [get]
func (h *SeedHandler) SeedCFPs(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.authService.Register(ctx, seedUserEmail, seedUserPassword, nil, nil)
	if err == service.ErrUserAlreadyExists {
		user, err = h.authService.CurrentUser(ctx, seedUserEmail)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": "failed to prepare seed user: " + err.Error(),
		})
	}

	count := 0
	for _, cfp := range demoCFPs() {
		cfp := cfp
		if _, err := h.cfpService.CreateCFP(ctx, &cfp, user.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": "failed to seed cfp: " + err.Error(),
			})
		}
		count++
	}

	return c.JSON(http.StatusOK, SeedCFPsResponse{
		Message: "seed data created",
		Count:   count,
	})
}

func demoCFPs() []model.CFP {
	base := time.Now().Truncate(24 * time.Hour)
	return []model.CFP{
		{
			Title:          "GopherCon EU Call for Papers",
			Description:    "Talks on Go tooling, runtime and real-world systems.",
			EventName:      "GopherCon EU",
			EventDate:      base.AddDate(0, 4, 0),
			ClosingDate:    base.AddDate(0, 1, 15),
			Location:       "Berlin, Germany",
			TargetAudience: "Go developers",
			EventType:      "Conference",
			EventURL:       "https://gophercon.eu",
			CFPURL:         "https://gophercon.eu/cfp",
			Source:         "seed",
		},
		{
			Title:          "CloudNative Days CFP",
			Description:    "Kubernetes, observability and platform engineering.",
			EventName:      "CloudNative Days",
			EventDate:      base.AddDate(0, 6, 0),
			ClosingDate:    base.AddDate(0, 2, 0),
			Location:       "Remote",
			TargetAudience: "Platform engineers",
			EventType:      "Conference",
			EventURL:       "https://cloudnativedays.example.com",
			CFPURL:         "https://cloudnativedays.example.com/cfp",
			Source:         "seed",
		},
		{
			Title:          "Local DevOps Meetup Lightning Talks",
			Description:    "Five minute talks, first time speakers welcome.",
			EventName:      "DevOps Meetup",
			EventDate:      base.AddDate(0, 1, 0),
			ClosingDate:    base.AddDate(0, 0, 20),
			Location:       "Amsterdam, Netherlands",
			TargetAudience: "DevOps engineers",
			EventType:      "Meetup",
			EventURL:       "https://meetup.example.com/devops",
			CFPURL:         "https://meetup.example.com/devops/talks",
			Source:         "seed",
		},
	}
}
