package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/velebit-dev/lifemaxx/internal/logging"
	"github.com/velebit-dev/lifemaxx/internal/notion"
	"github.com/velebit-dev/lifemaxx/internal/withings"
	"github.com/velebit-dev/lifemaxx/pkg"
)

// one-way scale -> workspace sync, meant to run from cron once a day

func main() {
	tokensFile := flag.String(
		"tokens-file",
		"./withings-tokens.json",
		"path of the vendor OAuth tokens json (rotated in place on every run)",
	)
	logsPath := flag.String("logs-path", "", "sync logs file path (empty for stdout)")
	logLevel := flag.String("log-level", "debug", "log level: trace, debug, info, warn, error")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath == "",
		LogLevel:    *logLevel,
	})

	log.Infoln("starting scale sync ...")

	clientID := os.Getenv("WITHINGS_CLIENT_ID")
	clientSecret := os.Getenv("WITHINGS_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatalln("vendor credentials not set, use WITHINGS_CLIENT_ID and WITHINGS_CLIENT_SECRET env vars")
	}

	notionAPIToken := os.Getenv("NOTION_API_TOKEN")
	if notionAPIToken == "" {
		log.Fatalln("notion api token not set, use NOTION_API_TOKEN env var to set it")
	}
	bodyDatabaseID := notion.NormalizeDatabaseID(os.Getenv("LIFEMAXX_DB_BODY"))
	if bodyDatabaseID == "" {
		log.Fatalln("body database id not set, use LIFEMAXX_DB_BODY env var to set it")
	}

	// the tokens file must already hold a valid refresh token, there is
	// no interactive auth flow here to bootstrap one
	tokensFileExists, err := pkg.PathExists(*tokensFile, false)
	if err != nil {
		log.Fatalf("check tokens file: %s", err)
	}
	if !tokensFileExists {
		log.Fatalf("tokens file %s not found", *tokensFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	httpClient := &http.Client{Timeout: time.Minute}
	syncer := withings.NewSyncer(
		withings.NewClient(withings.DefaultBaseURL, clientID, clientSecret, httpClient),
		notion.NewClient(notion.DefaultBaseURL, notionAPIToken, httpClient),
		withings.NewTokenStore(*tokensFile),
		bodyDatabaseID,
	)

	if err := syncer.Run(ctx); err != nil {
		log.Fatalf("sync failed: %s", err)
	}

	log.Infoln("sync done")
}
