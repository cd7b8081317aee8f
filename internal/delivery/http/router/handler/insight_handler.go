package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	deliverycontext "insight/internal/delivery/context"
	"insight/internal/delivery/http/response"
	"insight/internal/domain/entity"
	domainerrors "insight/internal/domain/errors"
	"insight/internal/domain/service"
	"insight/internal/errors"
	"insight/internal/infra/kml"
	"insight/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// InsightHandlerParams holds dependencies for InsightHandler, injected by Fx.
type InsightHandlerParams struct {
	fx.In

	InsightUC usecase.InsightUsecase
	Exporter  *kml.Exporter
	Logger    *slog.Logger
}

// InsightHandler holds dependencies for the address-insight endpoints
type InsightHandler struct {
	insightUC usecase.InsightUsecase
	exporter  *kml.Exporter
	logger    *slog.Logger
}

// NewInsightHandler is the constructor for InsightHandler
func NewInsightHandler(params InsightHandlerParams) *InsightHandler {
	return &InsightHandler{
		insightUC: params.InsightUC,
		exporter:  params.Exporter,
		logger:    params.Logger,
	}
}

// AnalyzeRequest represents the optional request body for committing a
// location explicitly; an empty body commits the last suggested candidate.
type AnalyzeRequest struct {
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lng         float64 `json:"lng" validate:"min=-180,max=180"`
	DisplayName string  `json:"display_name"`
}

// Suggest handles the resolving step: debounced geocoding of free-text input
func (h *InsightHandler) Suggest(c echo.Context) error {
	address := c.QueryParam("address")

	geo, err := h.insightUC.Suggest(c.Request().Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrSuperseded) {
			// Abandoned by a newer keystroke; no result is delivered.
			return response.Success(c, http.StatusOK, nil, "Superseded")
		}

		return err
	}

	if geo == nil {
		return response.Success(c, http.StatusOK, nil, "No results")
	}

	return response.Success(c, http.StatusOK, geo, "Address resolved")
}

// Analyze commits a candidate location and runs the insight pipeline
func (h *InsightHandler) Analyze(c echo.Context) error {
	ctx := c.Request().Context()

	var geo *entity.GeoResult
	if c.Request().ContentLength > 0 {
		var req AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid analyze input")
		}
		if err := c.Validate(&req); err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
		}
		geo = &entity.GeoResult{Lat: req.Lat, Lng: req.Lng, DisplayName: req.DisplayName}
	}

	location, err := h.insightUC.Analyze(ctx, geo)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAnalysisSuperseded) {
			// A newer commit won the race; this result is dropped silently,
			// matching the suggest surface.
			return response.Success(c, http.StatusOK, nil, "Superseded")
		}

		return err
	}

	deliverycontext.Logger(ctx, h.logger).Info("location analyzed",
		slog.String("display_name", location.Geo.DisplayName),
		slog.Int("points", len(location.Points)))

	return response.Success(c, http.StatusOK, location, "Location analyzed")
}

// Current returns the currently analyzed location triple
func (h *InsightHandler) Current(c echo.Context) error {
	location, err := h.insightUC.Current(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, location, "Current location retrieved")
}

// History returns the recent-address list, most recent first
func (h *InsightHandler) History(c echo.Context) error {
	entries, err := h.insightUC.History(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, entries, "History retrieved")
}

// ExportKML renders the current analyzed location as a KML document
func (h *InsightHandler) ExportKML(c echo.Context) error {
	location, err := h.insightUC.Current(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, location); err != nil {
		return response.InternalServerError(c, "EXPORT_FAILED", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="insight.kml"`)

	return c.Blob(http.StatusOK, "application/vnd.google-earth.kml+xml", buf.Bytes())
}
