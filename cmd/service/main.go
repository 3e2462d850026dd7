package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/velebit-dev/lifemaxx/internal"
	"github.com/velebit-dev/lifemaxx/internal/config"
	"github.com/velebit-dev/lifemaxx/internal/dashboard"
	"github.com/velebit-dev/lifemaxx/internal/logging"
	"github.com/velebit-dev/lifemaxx/internal/looksmaxx"
	"github.com/velebit-dev/lifemaxx/internal/notion"
	"github.com/velebit-dev/lifemaxx/pkg"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "lifemaxx-backend",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	notionAPIToken := os.Getenv("NOTION_API_TOKEN")
	if notionAPIToken == "" {
		log.Errorf("notion api token not set, use NOTION_API_TOKEN env var to set it")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	dashboardSources := dashboard.Sources{
		MealsDatabaseID:    databaseIDFromEnv("LIFEMAXX_DB_MEALS"),
		BodyDatabaseID:     databaseIDFromEnv("LIFEMAXX_DB_BODY"),
		TrainingDatabaseID: databaseIDFromEnv("LIFEMAXX_DB_TRAINING"),
	}
	looksmaxxSources := looksmaxx.Sources{
		SkincareDatabaseID: databaseIDFromEnv("LIFEMAXX_DB_SKINCARE"),
		GroomingDatabaseID: databaseIDFromEnv("LIFEMAXX_DB_GROOMING"),
		PostureDatabaseID:  databaseIDFromEnv("LIFEMAXX_DB_POSTURE"),
		StyleDatabaseID:    databaseIDFromEnv("LIFEMAXX_DB_STYLE"),
	}
	roadmapDatabaseID := databaseIDFromEnv("LIFEMAXX_DB_ROADMAP")

	redisPassword := os.Getenv("LIFEMAXX_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use LIFEMAXX_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			NotionAPIToken:          notionAPIToken,
			DashboardSources:        dashboardSources,
			LooksmaxxSources:        looksmaxxSources,
			RoadmapDatabaseID:       roadmapDatabaseID,
			VersionInfo:             versionInfo,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	// go to sleep 🥱
	server.GracefulShutdown()
}

// databaseIDFromEnv reads and normalizes a workspace database ID, so
// IDs pasted with dashes, mixed case or stray characters still work.
func databaseIDFromEnv(envVar string) string {
	id := notion.NormalizeDatabaseID(os.Getenv(envVar))
	if id == "" {
		log.Errorf("database id not set, use %s env var to set it", envVar)
	}
	return id
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
