package looksmaxx

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"

	"github.com/velebit-dev/lifemaxx/internal/notion"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/metrics"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
	"github.com/velebit-dev/lifemaxx/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=looksmaxx_test

type pagesGetter interface {
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
}

// Sources holds the four collection database IDs.
type Sources struct {
	SkincareDatabaseID string
	GroomingDatabaseID string
	PostureDatabaseID  string
	StyleDatabaseID    string
}

func (s Sources) Complete() bool {
	return s.SkincareDatabaseID != "" && s.GroomingDatabaseID != "" &&
		s.PostureDatabaseID != "" && s.StyleDatabaseID != ""
}

type Response struct {
	Skincare  Collection `json:"skincare"`
	Grooming  Collection `json:"grooming"`
	Posture   Collection `json:"posture"`
	Style     Collection `json:"style"`
	UpdatedAt string     `json:"updatedAt"`
	Error     string     `json:"error,omitempty"`
}

// Handler serves the looksmaxx summary. Same degrade contract as the
// roadmap: any failure yields a zeroed payload with the error inline,
// the status stays 200.
type Handler struct {
	client  pagesGetter
	sources Sources
	metrics *metrics.Manager
}

func NewHandler(client pagesGetter, sources Sources, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		client:  client,
		sources: sources,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleLooksmaxx(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.looksmaxx.get")
	defer span.End()

	resp := Response{
		Skincare:  emptyCollection("skincare"),
		Grooming:  emptyCollection("grooming"),
		Posture:   emptyCollection("posture"),
		Style:     emptyCollection("style"),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if handler.client == nil || !handler.sources.Complete() {
		span.SetStatus(codes.Error, "looksmaxx sources not configured")
		resp.Error = "looksmaxx not configured: api token or database ids missing"
		writeLooksmaxxResponse(w, resp)
		return
	}

	var (
		wg                                                     sync.WaitGroup
		skincarePages, groomingPages, posturePages, stylePages []notion.Page
		skincareErr, groomingErr, postureErr, styleErr         error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		skincarePages, skincareErr = handler.queryDatabase(ctx, "skincare", handler.sources.SkincareDatabaseID)
	}()
	go func() {
		defer wg.Done()
		groomingPages, groomingErr = handler.queryDatabase(ctx, "grooming", handler.sources.GroomingDatabaseID)
	}()
	go func() {
		defer wg.Done()
		posturePages, postureErr = handler.queryDatabase(ctx, "posture", handler.sources.PostureDatabaseID)
	}()
	go func() {
		defer wg.Done()
		stylePages, styleErr = handler.queryDatabase(ctx, "style", handler.sources.StyleDatabaseID)
	}()
	wg.Wait()

	if err := multierr.Combine(skincareErr, groomingErr, postureErr, styleErr); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get looksmaxx data: %s", err)
		resp.Error = "failed to get looksmaxx data"
		writeLooksmaxxResponse(w, resp)
		return
	}

	resp.Skincare = CollectionFromPages("skincare", skincarePages)
	resp.Grooming = CollectionFromPages("grooming", groomingPages)
	resp.Posture = CollectionFromPages("posture", posturePages)
	resp.Style = CollectionFromPages("style", stylePages)

	writeLooksmaxxResponse(w, resp)
}

func (handler *Handler) queryDatabase(ctx context.Context, name, databaseID string) ([]notion.Page, error) {
	startedAt := time.Now()
	pages, err := handler.client.QueryDatabase(ctx, databaseID)

	if handler.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		handler.metrics.CounterUpstreamQueries.
			With(prometheus.Labels{"database": name, "outcome": outcome}).
			Inc()
		handler.metrics.HistUpstreamQueryDuration.
			With(prometheus.Labels{"database": name}).
			Observe(time.Since(startedAt).Seconds())
	}

	return pages, err
}

func writeLooksmaxxResponse(w http.ResponseWriter, resp Response) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal looksmaxx response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
