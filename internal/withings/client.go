package withings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/velebit-dev/lifemaxx/internal/telemetry/tracing"
	"github.com/velebit-dev/lifemaxx/pkg"
)

const (
	DefaultBaseURL = "https://wbsapi.withings.net"

	// measurement types of the vendor getmeas API
	measureTypeWeightKg     = 1
	measureTypeFatRatio     = 6
	measureTypeMuscleMassKg = 76

	// category 1 = real measurements, as opposed to user objectives
	measureCategoryReal = 1
)

// Client talks to the smart scale vendor API. Every call goes through
// the OAuth dance first: the vendor rotates the refresh token on each
// exchange, so the caller must persist the returned token set.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(baseURL, clientID, clientSecret string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
	}
}

// Tokens is one OAuth token set. The vendor invalidates the used
// refresh token on every exchange, losing the new one means a manual
// re-authorization.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
	UserID       any    `json:"userid,omitempty"`
}

// Measurement is the newest body composition sample, metric units as
// the scale reports them.
type Measurement struct {
	Date         string
	TakenAt      time.Time
	WeightKg     float64
	FatRatio     float64
	MuscleMassKg float64
}

// RefreshTokens exchanges the given refresh token for a fresh token set.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (tokens *Tokens, err error) {
	ctx, span := tracing.GlobalSyncTracer.Start(ctx, "withingsClient.refreshTokens")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	form := url.Values{}
	form.Set("action", "requesttoken")
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)

	tokens = &Tokens{}
	if err := c.call(ctx, "/v2/oauth2", "", form, tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, fmt.Errorf("token exchange returned an incomplete token set")
	}
	return tokens, nil
}

// LatestMeasurement fetches the most recent real measurement group and
// flattens it into one sample. The raw values come scaled as
// value x 10^unit.
func (c *Client) LatestMeasurement(ctx context.Context, accessToken string) (m *Measurement, err error) {
	ctx, span := tracing.GlobalSyncTracer.Start(ctx, "withingsClient.latestMeasurement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	form := url.Values{}
	form.Set("action", "getmeas")
	form.Set("meastypes", fmt.Sprintf(
		"%d,%d,%d",
		measureTypeWeightKg, measureTypeFatRatio, measureTypeMuscleMassKg,
	))
	form.Set("category", fmt.Sprintf("%d", measureCategoryReal))

	body := &getMeasBody{}
	if err := c.call(ctx, "/measure", accessToken, form, body); err != nil {
		return nil, err
	}
	if len(body.MeasureGroups) == 0 {
		return nil, fmt.Errorf("no measurements found")
	}

	newest := body.MeasureGroups[0]
	for _, group := range body.MeasureGroups[1:] {
		if group.Date > newest.Date {
			newest = group
		}
	}

	takenAt := time.Unix(newest.Date, 0).UTC()
	m = &Measurement{
		Date:    takenAt.Format("2006-01-02"),
		TakenAt: takenAt,
	}
	for _, measure := range newest.Measures {
		value := float64(measure.Value) * pow10(measure.Unit)
		switch measure.Type {
		case measureTypeWeightKg:
			m.WeightKg = value
		case measureTypeFatRatio:
			m.FatRatio = value
		case measureTypeMuscleMassKg:
			m.MuscleMassKg = value
		}
	}

	span.SetAttributes(attribute.String("measurement.date", m.Date))
	return m, nil
}

// call posts the form and unwraps the vendor envelope. The vendor
// always answers HTTP 200, real errors live in the envelope status.
func (c *Client) call(ctx context.Context, path, accessToken string, form url.Values, into any) error {
	reqUrl := c.baseURL + path
	log.Tracef("calling vendor api: %s [%s]", reqUrl, form.Get("action"))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, reqUrl, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read vendor response bytes: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Errorf("vendor api unexpected response [%d]: %s", resp.StatusCode, pkg.BytesToString(respBytes))
		return fmt.Errorf("vendor api error: status %d", resp.StatusCode)
	}

	envelope := &apiEnvelope{}
	if err := json.Unmarshal(respBytes, envelope); err != nil {
		return fmt.Errorf("failed to unmarshal vendor response bytes: %w", err)
	}
	if envelope.Status != 0 {
		return &APIError{Status: envelope.Status, Message: envelope.Error}
	}

	if err := json.Unmarshal(envelope.Body, into); err != nil {
		return fmt.Errorf("failed to unmarshal vendor response body: %w", err)
	}
	return nil
}

type apiEnvelope struct {
	Status int             `json:"status"`
	Error  string          `json:"error,omitempty"`
	Body   json.RawMessage `json:"body"`
}

type getMeasBody struct {
	MeasureGroups []measureGroup `json:"measuregrps"`
}

type measureGroup struct {
	Date     int64     `json:"date"`
	Measures []measure `json:"measures"`
}

type measure struct {
	Value int64 `json:"value"`
	Type  int   `json:"type"`
	Unit  int   `json:"unit"`
}

// APIError is a non-zero envelope status of a vendor response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vendor api error [%d]: %s", e.Status, e.Message)
}

func pow10(exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= 10
	}
	for i := 0; i > exp; i-- {
		result /= 10
	}
	return result
}
