package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	apimetrics "github.com/psm5556/Crisis-Alert/internal/service/metrics"
	"github.com/psm5556/Crisis-Alert/internal/service/ratelimit"
	xhttp "github.com/psm5556/Crisis-Alert/pkg/http"
	xlogger "github.com/psm5556/Crisis-Alert/pkg/logger"
)

// DashboardService is the evaluation use case behind the API.
type DashboardService interface {
	Evaluate(ctx context.Context) (*models.Dashboard, error)
	Indicator(ctx context.Context, ind models.Indicator) (*models.IndicatorReport, error)
	Refresh(ctx context.Context) (*models.Dashboard, error)
}

// DashboardEchoHandler serves snapshots to the presentation layer.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	uc     DashboardService
	rl     *ratelimit.Limiter
}

func NewDashboardEchoHandler(logger *xlogger.Logger, uc DashboardService, rl *ratelimit.Limiter) *DashboardEchoHandler {
	apimetrics.Register()
	if rl == nil {
		rl = ratelimit.New(6, 2)
	}
	return &DashboardEchoHandler{logger: logger, uc: uc, rl: rl}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/signals/:indicator", h.Signal)
	g.POST("/refresh", h.Refresh)
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	start := time.Now()
	defer observe("dashboard", start)

	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	d, err := h.uc.Evaluate(c.Request().Context())
	if err != nil {
		return h.fail(c, "dashboard", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, d.TrimSeries(req.Points))
}

func (h *DashboardEchoHandler) Signal(c echo.Context) error {
	start := time.Now()
	defer observe("signal", start)

	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ind, ok := models.ParseIndicator(req.Indicator)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("unknown indicator").
			WithParam("indicator", req.Indicator).
			WithParam("options", models.Indicators))
	}

	rep, err := h.uc.Indicator(c.Request().Context(), ind)
	if err != nil {
		return h.fail(c, "signal", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, rep.TrimSeries(req.Points))
}

func (h *DashboardEchoHandler) Refresh(c echo.Context) error {
	start := time.Now()
	defer observe("refresh", start)

	if !h.rl.Allow(c.RealIP()) {
		apimetrics.RefreshRequests.WithLabelValues("limited").Inc()
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("refresh rate limit exceeded"))
	}

	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	d, err := h.uc.Refresh(c.Request().Context())
	if err != nil {
		apimetrics.RefreshRequests.WithLabelValues("error").Inc()
		return h.fail(c, "refresh", err)
	}
	apimetrics.RefreshRequests.WithLabelValues("ok").Inc()
	return xhttp.SuccessResponse(c, d.TrimSeries(req.Points))
}

func (h *DashboardEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	apimetrics.EvaluationErrors.WithLabelValues(endpoint).Inc()
	h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("%s evaluation failed", endpoint).WithError(err))
}

func observe(endpoint string, start time.Time) {
	apimetrics.EvaluationLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
