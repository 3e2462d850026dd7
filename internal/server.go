package internal

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/velebit-dev/lifemaxx/internal/config"
	"github.com/velebit-dev/lifemaxx/internal/dashboard"
	"github.com/velebit-dev/lifemaxx/internal/looksmaxx"
	"github.com/velebit-dev/lifemaxx/internal/middleware"
	"github.com/velebit-dev/lifemaxx/internal/misc"
	"github.com/velebit-dev/lifemaxx/internal/notion"
	"github.com/velebit-dev/lifemaxx/internal/portfolio"
	"github.com/velebit-dev/lifemaxx/internal/roadmap"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/metrics"
	metricsmiddleware "github.com/velebit-dev/lifemaxx/internal/telemetry/metrics/middleware"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config            *config.Config
	notionClient      *notion.Client
	dashboardSources  dashboard.Sources
	looksmaxxSources  looksmaxx.Sources
	roadmapDatabaseID string

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	NotionAPIToken          string
	DashboardSources        dashboard.Sources
	LooksmaxxSources        looksmaxx.Sources
	RoadmapDatabaseID       string
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "lifemaxx-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	// keep the client a plain nil when no token is set, the handlers
	// then report the endpoints as not configured
	var notionClient *notion.Client
	if params.NotionAPIToken != "" {
		notionClient = notion.NewClient(notion.DefaultBaseURL, params.NotionAPIToken, tracedHttpClient)
	} else {
		log.Warn("notion api token not set, dashboard endpoints will serve fallbacks")
	}

	return &Server{
		config:            params.Config,
		versionInfo:       params.VersionInfo,
		notionClient:      notionClient,
		dashboardSources:  params.DashboardSources,
		looksmaxxSources:  params.LooksmaxxSources,
		roadmapDatabaseID: params.RoadmapDatabaseID,

		redisClient: rdb,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	// an interface holding a typed nil *notion.Client would slip past
	// the handlers' nil checks, hence the explicit branch
	dashboardHandler := dashboard.NewHandler(nil, s.dashboardSources, s.metricsManager)
	looksmaxxHandler := looksmaxx.NewHandler(nil, s.looksmaxxSources, s.metricsManager)
	roadmapHandler := roadmap.NewHandler(nil, s.roadmapDatabaseID, s.metricsManager)
	if s.notionClient != nil {
		dashboardHandler = dashboard.NewHandler(s.notionClient, s.dashboardSources, s.metricsManager)
		looksmaxxHandler = looksmaxx.NewHandler(s.notionClient, s.looksmaxxSources, s.metricsManager)
		roadmapHandler = roadmap.NewHandler(s.notionClient, s.roadmapDatabaseID, s.metricsManager)
	}
	portfolioHandler := portfolio.NewHandler(s.config.PortfolioFilePath)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"api",
		s.config.APIRateLimitAllowedPerMin,
		s.metricsManager,
	))
	apiRouter.HandleFunc("/dashboard", dashboardHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	apiRouter.HandleFunc("/portfolio", portfolioHandler.HandleGetPortfolio).Methods("GET", "OPTIONS").Name("portfolio")
	apiRouter.HandleFunc("/looksmaxx", looksmaxxHandler.HandleLooksmaxx).Methods("GET", "OPTIONS").Name("looksmaxx")
	apiRouter.HandleFunc("/roadmap", roadmapHandler.HandleRoadmap).Methods("GET", "OPTIONS").Name("roadmap")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.
		New(s.promRegistry, nil).
		WrapHandler("/metrics", promhttp.HandlerFor(
			s.promRegistry,
			promhttp.HandlerOpts{}),
		))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
