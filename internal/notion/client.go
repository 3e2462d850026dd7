package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
	"github.com/velebit-dev/lifemaxx/pkg"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"

	apiVersion    = "2022-06-28"
	queryPageSize = 100
)

// Client talks to the workspace database HTTP API. All reads paginate
// through the full result set, callers always get complete snapshots.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

func NewClient(baseURL, apiToken string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: httpClient,
	}
}

func (c *Client) QueryDatabase(ctx context.Context, databaseID string) (pages []Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notionClient.queryDatabase")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("database.id", databaseID))

	cursor := ""
	for {
		queryResp, err := c.queryDatabasePage(ctx, databaseID, cursor)
		if err != nil {
			return nil, err
		}

		pages = append(pages, queryResp.Results...)

		if !queryResp.HasMore || queryResp.NextCursor == nil {
			break
		}
		cursor = *queryResp.NextCursor
	}

	span.SetAttributes(attribute.Int("pages.count", len(pages)))
	return pages, nil
}

func (c *Client) queryDatabasePage(
	ctx context.Context,
	databaseID, cursor string,
) (*databaseQueryResponse, error) {
	reqJson, err := json.Marshal(databaseQueryRequest{
		StartCursor: cursor,
		PageSize:    queryPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query request: %w", err)
	}

	queryUrl := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)
	log.Tracef("querying workspace database: %s", queryUrl)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, queryUrl, bytes.NewReader(reqJson))
	if err != nil {
		return nil, err
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read query response bytes: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp.StatusCode, respBytes)
	}

	queryResp := &databaseQueryResponse{}
	if err := json.Unmarshal(respBytes, queryResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal query response bytes: %w", err)
	}

	return queryResp, nil
}

func (c *Client) CreatePage(
	ctx context.Context,
	databaseID string,
	properties map[string]Property,
) (page *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notionClient.createPage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("database.id", databaseID))

	reqJson, err := json.Marshal(createPageRequest{
		Parent:     PageParent{DatabaseID: databaseID},
		Properties: properties,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal create page request: %w", err)
	}

	return c.sendPageRequest(ctx, http.MethodPost, fmt.Sprintf("%s/pages", c.baseURL), reqJson)
}

func (c *Client) UpdatePage(
	ctx context.Context,
	pageID string,
	properties map[string]Property,
) (page *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notionClient.updatePage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("page.id", pageID))

	reqJson, err := json.Marshal(updatePageRequest{
		Properties: properties,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal update page request: %w", err)
	}

	return c.sendPageRequest(ctx, http.MethodPatch, fmt.Sprintf("%s/pages/%s", c.baseURL, pageID), reqJson)
}

func (c *Client) sendPageRequest(
	ctx context.Context,
	method, reqUrl string,
	reqJson []byte,
) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqUrl, bytes.NewReader(reqJson))
	if err != nil {
		return nil, err
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page response bytes: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp.StatusCode, respBytes)
	}

	page := &Page{}
	if err := json.Unmarshal(respBytes, page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page response bytes: %w", err)
	}

	return page, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

func (c *Client) apiError(statusCode int, respBytes []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(respBytes, apiErr); err != nil || apiErr.Message == "" {
		log.Errorf("workspace api unexpected response [%d]: %s", statusCode, pkg.BytesToString(respBytes))
		return fmt.Errorf("workspace api error: status %d", statusCode)
	}
	apiErr.StatusCode = statusCode
	return apiErr
}
