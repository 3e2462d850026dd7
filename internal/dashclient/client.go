package dashclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/velebit-dev/lifemaxx/internal/dashboard"
	"github.com/velebit-dev/lifemaxx/internal/looksmaxx"
	"github.com/velebit-dev/lifemaxx/internal/portfolio"
	"github.com/velebit-dev/lifemaxx/internal/roadmap"
)

// source names, also the keys of Snapshot.States
const (
	SourceDashboard = "dashboard"
	SourcePortfolio = "portfolio"
	SourceLooksmaxx = "looksmaxx"
	SourceRoadmap   = "roadmap"
)

// SourceState describes the freshness of one data source. A source
// whose fetch failed keeps its previous payload and gets marked stale.
type SourceState struct {
	Err       string    `json:"err,omitempty"`
	Stale     bool      `json:"stale"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Snapshot is the complete view state after a refresh. Aggregations
// run over a snapshot only, never over a half-fetched one.
type Snapshot struct {
	Dashboard dashboard.Response     `json:"dashboard"`
	Portfolio portfolio.Portfolio    `json:"portfolio"`
	Looksmaxx looksmaxx.Response     `json:"looksmaxx"`
	Roadmap   roadmap.Response       `json:"roadmap"`
	States    map[string]SourceState `json:"states"`
}

// Client is the fetch shell behind the dashboard page: it pulls all
// four endpoints in parallel and keeps the latest accepted payload per
// source. Not safe for concurrent use, one owner drives the refreshes.
// Rapid-fire refreshes race on last-response-wins, same as the page.
type Client struct {
	baseURL    string
	httpClient *http.Client
	snapshot   Snapshot
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		snapshot: Snapshot{
			States: map[string]SourceState{},
		},
	}
}

// Refresh fetches all sources in parallel and waits for every one of
// them. Each response is judged on its own: a failed source keeps its
// previous payload and turns stale, the others are accepted as usual.
// The refresh as a whole fails only when the primary dashboard source
// does.
func (c *Client) Refresh(ctx context.Context) error {
	var (
		wg            sync.WaitGroup
		dashboardResp dashboard.Response
		portfolioResp portfolio.Portfolio
		looksmaxxResp looksmaxx.Response
		roadmapResp   roadmap.Response

		dashboardErr, portfolioErr, looksmaxxErr, roadmapErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		dashboardErr = c.fetch(ctx, "/api/dashboard", &dashboardResp)
	}()
	go func() {
		defer wg.Done()
		portfolioErr = c.fetch(ctx, "/api/portfolio", &portfolioResp)
	}()
	go func() {
		defer wg.Done()
		looksmaxxErr = c.fetch(ctx, "/api/looksmaxx", &looksmaxxResp)
	}()
	go func() {
		defer wg.Done()
		roadmapErr = c.fetch(ctx, "/api/roadmap", &roadmapResp)
	}()
	wg.Wait()

	now := time.Now()
	if accepted := c.accept(SourceDashboard, dashboardErr, dashboardResp.Error, now); accepted {
		c.snapshot.Dashboard = dashboardResp
	}
	if accepted := c.accept(SourcePortfolio, portfolioErr, "", now); accepted {
		c.snapshot.Portfolio = portfolioResp
	}
	if accepted := c.accept(SourceLooksmaxx, looksmaxxErr, looksmaxxResp.Error, now); accepted {
		c.snapshot.Looksmaxx = looksmaxxResp
	}
	if accepted := c.accept(SourceRoadmap, roadmapErr, roadmapResp.Error, now); accepted {
		c.snapshot.Roadmap = roadmapResp
	}

	if dashboardErr != nil {
		return fmt.Errorf("refresh dashboard: %w", dashboardErr)
	}
	return nil
}

// Snapshot returns the current view state. Payloads of stale sources
// are whatever the last successful refresh brought in.
func (c *Client) Snapshot() Snapshot {
	return c.snapshot
}

// accept decides what happens to one source after a fetch round. An
// accepted payload may still carry an inline error string, the page
// shows it next to the data instead of dropping the data.
func (c *Client) accept(source string, fetchErr error, inlineErr string, now time.Time) bool {
	if fetchErr != nil {
		log.Errorf("fetch %s: %s", source, fetchErr)
		prev := c.snapshot.States[source]
		c.snapshot.States[source] = SourceState{
			Err:       fetchErr.Error(),
			Stale:     true,
			FetchedAt: prev.FetchedAt,
		}
		return false
	}

	c.snapshot.States[source] = SourceState{
		Err:       inlineErr,
		Stale:     false,
		FetchedAt: now,
	}
	return true
}

func (c *Client) fetch(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response bytes: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBytes, into); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
