package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/predictaball/datacore/internal/domain/match"
	"github.com/predictaball/datacore/internal/platform/logging"
	"github.com/predictaball/datacore/internal/usecase"
)

// dateLayouts are the accepted formats for the from/to query parameters.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

type Handler struct {
	featureService *usecase.FeatureService
	logger         *logging.Logger
}

func NewHandler(featureService *usecase.FeatureService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		featureService: featureService,
		logger:         logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListFeatures serves the per-match form feature table. A numeric league
// parameter filters by canonical id, anything else by league name; from is
// inclusive and to exclusive, as RFC3339 or plain dates.
func (h *Handler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeatures")
	defer span.End()

	filter, err := parseFeatureFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.featureService.FeatureTable(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "feature table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func parseFeatureFilter(r *http.Request) (match.Filter, error) {
	query := r.URL.Query()

	var filter match.Filter
	if raw := strings.TrimSpace(query.Get("league")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.LeagueID = id
		} else {
			filter.LeagueName = raw
		}
	}

	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: invalid from parameter %q", usecase.ErrInvalidInput, raw)
		}
		filter.From = parsed
	}

	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: invalid to parameter %q", usecase.ErrInvalidInput, raw)
		}
		filter.To = parsed
	}

	if raw := strings.TrimSpace(query.Get("include_mock")); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: invalid include_mock parameter %q", usecase.ErrInvalidInput, raw)
		}
		filter.IncludeMock = include
	}

	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.To.After(filter.From) {
		return match.Filter{}, fmt.Errorf("%w: to must be after from", usecase.ErrInvalidInput)
	}

	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
