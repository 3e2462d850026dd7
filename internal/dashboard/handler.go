package dashboard

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type pagesGetter interface {
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
}

// Sources holds the workspace database IDs behind the dashboard.
type Sources struct {
	MealsDatabaseID    string
	BodyDatabaseID     string
	TrainingDatabaseID string
}

func (s Sources) Complete() bool {
	return s.MealsDatabaseID != "" && s.BodyDatabaseID != "" && s.TrainingDatabaseID != ""
}

type Response struct {
	Meals     []MealEntry     `json:"meals"`
	BodyComp  []BodyCompEntry `json:"bodyComp"`
	Training  []TrainingEntry `json:"training"`
	UpdatedAt string          `json:"updatedAt"`
	Error     string          `json:"error,omitempty"`
}

type Handler struct {
	client  pagesGetter
	sources Sources
	metrics *metrics.Manager
}

// NewHandler wires the dashboard endpoint. A nil client means no API
// token is configured and the endpoint reports itself as not configured.
func NewHandler(client pagesGetter, sources Sources, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		client:  client,
		sources: sources,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	resp := Response{
		Meals:     []MealEntry{},
		BodyComp:  []BodyCompEntry{},
		Training:  []TrainingEntry{},
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if handler.client == nil || !handler.sources.Complete() {
		span.SetStatus(codes.Error, "dashboard sources not configured")
		resp.Error = "dashboard not configured: api token or database ids missing"
		writeDashboardResponse(w, resp, http.StatusBadRequest)
		return
	}

	var (
		wg                                  sync.WaitGroup
		mealPages, bodyPages, trainingPages []notion.Page
		mealsErr, bodyErr, trainingErr      error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		mealPages, mealsErr = handler.queryDatabase(ctx, "meals", handler.sources.MealsDatabaseID)
	}()
	go func() {
		defer wg.Done()
		bodyPages, bodyErr = handler.queryDatabase(ctx, "body", handler.sources.BodyDatabaseID)
	}()
	go func() {
		defer wg.Done()
		trainingPages, trainingErr = handler.queryDatabase(ctx, "training", handler.sources.TrainingDatabaseID)
	}()
	wg.Wait()

	if err := multierr.Combine(mealsErr, bodyErr, trainingErr); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get dashboard data: %s", err)
		resp.Error = "failed to get dashboard data"
		writeDashboardResponse(w, resp, http.StatusInternalServerError)
		return
	}

	resp.Meals = MealsFromPages(mealPages)
	resp.BodyComp = BodyCompFromPages(bodyPages)
	resp.Training = TrainingFromPages(trainingPages)

	writeDashboardResponse(w, resp, http.StatusOK)
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

	if err != nil {
		log.Errorf("query %s database: %s", name, err)
		return nil, err
	}
	return pages, nil
}

func writeDashboardResponse(w http.ResponseWriter, resp Response, statusCode int) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal dashboard response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}
