package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/changelog"
	"github.com/mreyes/finboard/internal/equity"
	"github.com/mreyes/finboard/internal/forecast"
	"github.com/mreyes/finboard/internal/initiative"
	"github.com/mreyes/finboard/internal/model"
	"github.com/mreyes/finboard/internal/scorecard"
	"github.com/mreyes/finboard/internal/variance"
)

func (s *Server) knownDepartment(dept string) bool {
	for _, d := range s.bundle.Departments() {
		if d == dept {
			return true
		}
	}
	return false
}

// Dashboard returns the executive snapshot for the latest month.
func (s *Server) Dashboard(c echo.Context) error {
	snap, ok := aggregate.Executive(s.bundle)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no budget data loaded")
	}
	return c.JSON(http.StatusOK, snap)
}

// Variance returns per-GL variance analyses for one department's
// latest month, with root-cause indicators alongside.
func (s *Server) Variance(c echo.Context) error {
	dept := c.QueryParam("department")
	if dept == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "department query parameter is required")
	}
	if !s.knownDepartment(dept) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown department "+dept)
	}

	analyses := variance.Analyze(s.bundle, dept, s.cfg)
	indicators, _ := aggregate.RootCause(s.bundle, dept, s.cfg)
	return c.JSON(http.StatusOK, map[string]any{
		"department": dept,
		"analyses":   analyses,
		"indicators": indicators,
	})
}

// forecastRequest is the POST /api/forecast body.
type forecastRequest struct {
	Department string           `json:"department"`
	Drivers    forecast.Drivers `json:"drivers"`
}

// Forecast runs the driver-based forecast against the department's
// baseline and returns the single-period result plus the 12-period
// seasonal projection. Out-of-range drivers are clamped, not rejected.
func (s *Server) Forecast(c echo.Context) error {
	var req forecastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Department == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "department is required")
	}

	base, ok := aggregate.BaselineFor(s.bundle, req.Department)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no baseline data for department "+req.Department)
	}

	result := forecast.Compute(base, req.Drivers, s.cfg.Forecast)

	start := time.Now().UTC()
	if latest, ok := s.bundle.LatestMonth(); ok {
		start = latest.AddDate(0, 1, 0)
	}
	projection := forecast.Project(result, start, s.cfg.Forecast)

	return c.JSON(http.StatusOK, map[string]any{
		"result":     result,
		"projection": projection,
	})
}

// Scorecard returns ranked department scorecards for the latest month.
func (s *Server) Scorecard(c echo.Context) error {
	cards := scorecard.FromBundle(s.bundle, s.cfg.Scorecard)
	if len(cards) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no scoreable departments in the latest month")
	}
	return c.JSON(http.StatusOK, cards)
}

// Equity returns the tiered budget adjustment for one department.
func (s *Server) Equity(c echo.Context) error {
	dept := c.Param("department")
	profile, ok := s.bundle.EquityFor(dept)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no equity profile for department "+dept)
	}

	base := aggregate.BaseMonthlyBudget(s.bundle, dept)
	return c.JSON(http.StatusOK, equity.Assess(profile, base, s.cfg.Equity))
}

// Initiatives returns the strategic portfolio as of today.
func (s *Server) Initiatives(c echo.Context) error {
	return c.JSON(http.StatusOK, initiative.Track(s.bundle.Strategic, time.Now().UTC()))
}

// Datasets reports where each dataset slot came from.
func (s *Server) Datasets(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Report)
}

// SubmitChangeRequest appends to the caller's session log.
func (s *Server) SubmitChangeRequest(c echo.Context) error {
	log, err := s.sessions.logFor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session error")
	}

	var req model.ChangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Department != "" && !s.knownDepartment(req.Department) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown department "+req.Department)
	}

	stored, err := log.Append(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.log.Info().Str("request_id", stored.ID).Str("department", stored.Department).Msg("change request submitted")
	return c.JSON(http.StatusCreated, stored)
}

// ListChangeRequests returns the session's log plus status counts.
func (s *Server) ListChangeRequests(c echo.Context) error {
	log, err := s.sessions.logFor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"requests": log.List(),
		"counts":   log.Counts(),
	})
}

// reviewRequest is the PATCH /api/change-requests/:id body.
type reviewRequest struct {
	Status string `json:"status"`
}

// ReviewChangeRequest moves a request to a new review status.
func (s *Server) ReviewChangeRequest(c echo.Context) error {
	log, err := s.sessions.logFor(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session error")
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !changelog.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status "+req.Status)
	}

	updated, err := log.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}
