package api

import (
	"time"

	models "ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
	svcmetrics "ecogrid/internal/service/metrics"
	"ecogrid/internal/services/dr"
	"ecogrid/internal/services/forecast"
	"ecogrid/internal/usecase"
	xhttp "ecogrid/pkg/http"
	xlogger "ecogrid/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GridEchoHandler exposes the snapshot, forecast, and DR operations over
// Echo. All handlers go through the shared bind/default/validate pipeline.
type GridEchoHandler struct {
	logger    *xlogger.Logger
	acq       *usecase.GridAcquisition
	scorer    *forecast.Scorer
	simulator *dr.Simulator
	recorder  *usecase.EventRecorder
	stream    *StreamHandler
	metrics   drepo.Metrics
}

func NewGridEchoHandler(logger *xlogger.Logger, acq *usecase.GridAcquisition, scorer *forecast.Scorer, simulator *dr.Simulator, recorder *usecase.EventRecorder, stream *StreamHandler, metrics drepo.Metrics) *GridEchoHandler {
	return &GridEchoHandler{
		logger:    logger,
		acq:       acq,
		scorer:    scorer,
		simulator: simulator,
		recorder:  recorder,
		stream:    stream,
		metrics:   metrics,
	}
}

func (h *GridEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/grid/snapshot", h.Snapshot)
	g.GET("/grid/forecast", h.Forecast)
	g.POST("/dr/simulate", h.Simulate)
	g.GET("/dr/rebound", h.Rebound)
	g.GET("/dr/ramp", h.Ramp)
	g.POST("/dr/events", h.CreateEvent)
	g.GET("/dr/events", h.ListEvents)

	if h.stream != nil {
		e.GET("/ws/grid", h.stream.Serve)
	}
}

// Snapshot returns the current 24-hour grid snapshot. Degraded provenance is
// a successful response; callers read dataSource to tell.
func (h *GridEchoHandler) Snapshot(c echo.Context) error {
	start := time.Now()
	snap := h.acq.Snapshot(c.Request().Context())
	svcmetrics.EndpointLatency.WithLabelValues("snapshot").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, snap)
}

// Forecast scores the current snapshot and returns the 24-hour risk timeline.
func (h *GridEchoHandler) Forecast(c echo.Context) error {
	start := time.Now()
	snap := h.acq.Snapshot(c.Request().Context())
	fc := h.scorer.ComputeRisk(snap)
	svcmetrics.EndpointLatency.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, fc)
}

// Simulate runs a DR simulation. Input violations come back inside the result
// as valid:false, not as an HTTP error.
func (h *GridEchoHandler) Simulate(c echo.Context) error {
	req := &models.SimulateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.EndpointErrors.WithLabelValues("simulate").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	window := models.EventWindow{StartTime: req.StartTime, DurationHours: req.DurationHours}
	result := h.simulator.Simulate(req.TargetMW, window, req.RampMinutes)
	h.metrics.RecordSimulation(result.Valid)
	return xhttp.SuccessResponse(c, result)
}

// Rebound returns the post-event consumption-recovery curve.
func (h *GridEchoHandler) Rebound(c echo.Context) error {
	req := &models.ReboundRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.EndpointErrors.WithLabelValues("rebound").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.simulator.ReboundProfile(req.AchievedMW, req.BaselineMW))
}

// Ramp returns the ramp-up trajectory for a prospective event.
func (h *GridEchoHandler) Ramp(c echo.Context) error {
	req := &models.SimulateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.EndpointErrors.WithLabelValues("ramp").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.simulator.RampProfile(req.TargetMW, req.RampMinutes))
}

// CreateEvent simulates and records an executed DR event. Invalid inputs are
// rejected here; only valid simulations become history records.
func (h *GridEchoHandler) CreateEvent(c echo.Context) error {
	req := &models.CreateEventRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.EndpointErrors.WithLabelValues("create_event").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	window := models.EventWindow{StartTime: req.StartTime, DurationHours: req.DurationHours}
	result := h.simulator.Simulate(req.TargetMW, window, req.RampMinutes)
	h.metrics.RecordSimulation(result.Valid)
	if !result.Valid {
		return xhttp.BadRequestResponse(c, result.Errors)
	}

	ev := &models.DrEvent{
		OperatorName:   req.OperatorName,
		TargetMW:       req.TargetMW,
		AchievedMW:     result.AchievedMW,
		DurationHours:  req.DurationHours,
		StartTime:      req.StartTime,
		CostSavedEUR:   result.CostSavedEUR,
		CO2AvoidedTons: result.CO2AvoidedTons,
	}
	stored, err := h.recorder.Record(c.Request().Context(), ev)
	if err != nil {
		h.logger.Error("record dr event", xlogger.Error(err))
		svcmetrics.EndpointErrors.WithLabelValues("create_event").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, stored)
}

// ListEvents returns recent DR events, newest first.
func (h *GridEchoHandler) ListEvents(c echo.Context) error {
	req := &models.ListEventsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.EndpointErrors.WithLabelValues("list_events").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	events, err := h.recorder.List(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("list dr events", xlogger.Error(err))
		svcmetrics.EndpointErrors.WithLabelValues("list_events").Inc()
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, events, int64(len(events)))
}
