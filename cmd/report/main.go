package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/velebit-dev/lifemaxx/internal/dashboard"
	"github.com/velebit-dev/lifemaxx/internal/dashclient"
)

// terminal rendition of the dashboard: one refresh, one digest, exit.
// useful for checking the numbers without opening the page.

func main() {
	addr := flag.String("addr", "http://localhost:8080", "backend base address")
	calorieTarget := flag.Float64("calorie-target", dashboard.DefaultCalorieTarget, "daily calorie target")
	proteinTarget := flag.Float64("protein-target", dashboard.DefaultProteinTarget, "daily protein target (g)")
	bulkStartDate := flag.String("bulk-start-date", "", "bulk start date (YYYY-MM-DD), empty skips the projection")
	bulkStartWeight := flag.Float64("bulk-start-weight", 0, "bulk start weight (lbs)")
	bulkTargetDate := flag.String("bulk-target-date", "", "bulk target date (YYYY-MM-DD)")
	bulkTargetWeight := flag.Float64("bulk-target-weight", 0, "bulk target weight (lbs)")
	timeout := flag.Duration("timeout", time.Minute, "refresh timeout")
	flag.Parse()

	log.SetLevel(log.WarnLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := dashclient.NewClient(*addr, &http.Client{Timeout: *timeout})
	if err := client.Refresh(ctx); err != nil {
		log.Fatalf("refresh failed: %s", err)
	}
	snapshot := client.Snapshot()

	for _, source := range []string{
		dashclient.SourceDashboard,
		dashclient.SourcePortfolio,
		dashclient.SourceLooksmaxx,
		dashclient.SourceRoadmap,
	} {
		state := snapshot.States[source]
		switch {
		case state.Stale:
			fmt.Printf("!! %s: stale [%s]\n", source, state.Err)
		case state.Err != "":
			fmt.Printf("!! %s: %s\n", source, state.Err)
		}
	}

	analyzer := dashboard.NewAnalyzer(*calorieTarget, *proteinTarget)
	rollups := analyzer.DailyRollups(snapshot.Dashboard.Meals)

	fmt.Printf("\n-- nutrition, %d tracked days --\n", len(rollups))
	for _, rollup := range rollups {
		fmt.Printf("  %-8s %5.0f kcal  %4.0f g protein\n", rollup.Label, rollup.Calories, rollup.Protein)
	}
	fmt.Printf(
		"hit rate: %.0f%% calories, %.0f%% protein\n",
		analyzer.CalorieHitRate(rollups)*100,
		analyzer.ProteinHitRate(rollups)*100,
	)

	compliance := analyzer.WeeklyCompliance(rollups)
	fmt.Printf("last week: %d hits of %d days", compliance.Hits, len(compliance.Days))
	if compliance.WeekendShortfall {
		fmt.Print(" (weekend protein lagging)")
	}
	fmt.Println()

	fmt.Println("\n-- training --")
	for _, progression := range analyzer.Progressions(snapshot.Dashboard.Training) {
		trend := "+"
		if !progression.Progressing {
			trend = "-"
		}
		fmt.Printf(
			"  [%s] %-20s %2d sessions  %.0f -> %.0f lbs (%+.1f)\n",
			trend, progression.Name, progression.Sessions,
			progression.First.Weight, progression.Latest.Weight, progression.Delta,
		)
	}

	if *bulkStartDate != "" && *bulkTargetDate != "" {
		goal := dashboard.BulkGoal{
			StartDate:    *bulkStartDate,
			StartWeight:  *bulkStartWeight,
			TargetDate:   *bulkTargetDate,
			TargetWeight: *bulkTargetWeight,
		}
		if status := analyzer.BulkProjection(goal, snapshot.Dashboard.BodyComp, time.Now()); status != nil {
			fmt.Printf(
				"\n-- bulk: %s --\n  %.1f lbs now, %+.1f gained, %.0f%% done at %.0f%% of the window\n",
				status.Pace, status.CurrentWeight, status.GainedWeight,
				status.ProgressFraction*100, status.ElapsedFraction*100,
			)
			if status.ProjectedDate != "" {
				fmt.Printf("  on this rate, target hit around %s\n", status.ProjectedDate)
			}
		}
	}

	if len(snapshot.Roadmap.Next) > 0 {
		fmt.Println("\n-- next milestones --")
		for _, item := range snapshot.Roadmap.Next {
			date := item.Date
			if date == "" {
				date = "unscheduled"
			}
			fmt.Printf("  %-12s %s\n", date, item.Milestone)
		}
	}

	fmt.Printf("\nportfolio: %.2f %s as of %s\n",
		snapshot.Portfolio.TotalValue, snapshot.Portfolio.Currency, snapshot.Portfolio.AsOf)
}
