package withings

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/velebit-dev/lifemaxx/internal/dashboard"
	"github.com/velebit-dev/lifemaxx/internal/notion"
	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=syncer_mocks_test.go -package=withings_test

const kgToLbs = 2.20462

type measurementSource interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*Tokens, error)
	LatestMeasurement(ctx context.Context, accessToken string) (*Measurement, error)
}

type pagesReadWriter interface {
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
	CreatePage(ctx context.Context, databaseID string, properties map[string]notion.Property) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]notion.Property) (*notion.Page, error)
}

// Syncer copies the newest scale measurement into the body composition
// database, one way. Runs as a cron job, one shot per invocation.
type Syncer struct {
	vendor         measurementSource
	workspace      pagesReadWriter
	tokenStore     *TokenStore
	bodyDatabaseID string
}

func NewSyncer(
	vendor measurementSource,
	workspace pagesReadWriter,
	tokenStore *TokenStore,
	bodyDatabaseID string,
) *Syncer {
	return &Syncer{
		vendor:         vendor,
		workspace:      workspace,
		tokenStore:     tokenStore,
		bodyDatabaseID: bodyDatabaseID,
	}
}

// Run refreshes the vendor tokens, persists the rotated set, fetches
// the newest measurement and upserts it by exact date match. Two runs
// on the same day update the same page instead of stacking duplicates.
func (s *Syncer) Run(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalSyncTracer.Start(ctx, "withingsSyncer.run")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tokens, err := s.tokenStore.Load()
	if err != nil {
		return fmt.Errorf("load tokens: %w", err)
	}

	freshTokens, err := s.vendor.RefreshTokens(ctx, tokens.RefreshToken)
	if err != nil {
		return fmt.Errorf("refresh tokens: %w", err)
	}
	// the old refresh token is dead now, save the new set before
	// anything else can fail
	if err := s.tokenStore.Save(freshTokens); err != nil {
		return fmt.Errorf("save rotated tokens: %w", err)
	}

	measurement, err := s.vendor.LatestMeasurement(ctx, freshTokens.AccessToken)
	if err != nil {
		return fmt.Errorf("get latest measurement: %w", err)
	}
	log.Infof(
		"latest measurement [%s]: %.2f kg, %.2f fat, %.2f kg muscle",
		measurement.Date, measurement.WeightKg, measurement.FatRatio, measurement.MuscleMassKg,
	)

	properties := map[string]notion.Property{
		"Date":              notion.NewDateProperty(measurement.Date),
		"Weight (lbs)":      notion.NewNumberProperty(roundTo1Decimal(measurement.WeightKg * kgToLbs)),
		"Body Fat %":        notion.NewNumberProperty(dashboard.NormalizeBodyFat(measurement.FatRatio)),
		"Muscle Mass (lbs)": notion.NewNumberProperty(roundTo1Decimal(measurement.MuscleMassKg * kgToLbs)),
	}

	existingPageID, err := s.findPageForDate(ctx, measurement.Date)
	if err != nil {
		return fmt.Errorf("find page for date %s: %w", measurement.Date, err)
	}

	if existingPageID != "" {
		span.SetAttributes(attribute.String("sync.mode", "update"))
		if _, err := s.workspace.UpdatePage(ctx, existingPageID, properties); err != nil {
			return fmt.Errorf("update page %s: %w", existingPageID, err)
		}
		log.Infof("measurement for %s updated in place", measurement.Date)
		return nil
	}

	span.SetAttributes(attribute.String("sync.mode", "create"))
	properties["Name"] = notion.NewTitleProperty(measurement.Date)
	if _, err := s.workspace.CreatePage(ctx, s.bodyDatabaseID, properties); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	log.Infof("measurement for %s created", measurement.Date)
	return nil
}

// findPageForDate returns the ID of the body comp page logged on the
// given date, or "" when the date has no page yet.
func (s *Syncer) findPageForDate(ctx context.Context, date string) (string, error) {
	pages, err := s.workspace.QueryDatabase(ctx, s.bodyDatabaseID)
	if err != nil {
		return "", err
	}
	for _, page := range pages {
		if notion.ExtractDate(page.Properties, "Date", "Day") == date {
			return page.ID, nil
		}
	}
	return "", nil
}

func roundTo1Decimal(v float64) float64 {
	return math.Round(v*10) / 10
}
