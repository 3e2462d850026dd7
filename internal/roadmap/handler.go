package roadmap

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/velebit-dev/lifemaxx/internal/notion"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/metrics"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
	"github.com/velebit-dev/lifemaxx/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=roadmap_test

const nextMilestonesCount = 8

type pagesGetter interface {
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
}

type Response struct {
	Items     []Item       `json:"items"`
	Phases    []PhaseCount `json:"phases"`
	Next      []Item       `json:"next"`
	UpdatedAt string       `json:"updatedAt"`
	Error     string       `json:"error,omitempty"`
}

// Handler serves the roadmap endpoint. Unlike the dashboard it never
// fails the request: a broken upstream degrades to an empty payload
// with the error noted inline, so the page keeps rendering.
type Handler struct {
	client     pagesGetter
	databaseID string
	metrics    *metrics.Manager
}

func NewHandler(client pagesGetter, databaseID string, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		client:     client,
		databaseID: databaseID,
		metrics:    metricsManager,
	}
}

func (handler *Handler) HandleRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.roadmap.get")
	defer span.End()

	resp := Response{
		Items:     []Item{},
		Phases:    []PhaseCount{},
		Next:      []Item{},
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if handler.client == nil || handler.databaseID == "" {
		span.SetStatus(codes.Error, "roadmap source not configured")
		resp.Error = "roadmap not configured: api token or database id missing"
		writeRoadmapResponse(w, resp)
		return
	}

	pages, err := handler.queryDatabase(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get roadmap data: %s", err)
		resp.Error = "failed to get roadmap data"
		writeRoadmapResponse(w, resp)
		return
	}

	resp.Items = ItemsFromPages(pages)
	resp.Phases = PhaseHistogram(resp.Items)
	resp.Next = NextMilestones(resp.Items, time.Now().Format("2006-01-02"), nextMilestonesCount)

	writeRoadmapResponse(w, resp)
}

func (handler *Handler) queryDatabase(ctx context.Context) ([]notion.Page, error) {
	startedAt := time.Now()
	pages, err := handler.client.QueryDatabase(ctx, handler.databaseID)

	if handler.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		handler.metrics.CounterUpstreamQueries.
			With(prometheus.Labels{"database": "roadmap", "outcome": outcome}).
			Inc()
		handler.metrics.HistUpstreamQueryDuration.
			With(prometheus.Labels{"database": "roadmap"}).
			Observe(time.Since(startedAt).Seconds())
	}

	return pages, err
}

func writeRoadmapResponse(w http.ResponseWriter, resp Response) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal roadmap response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
