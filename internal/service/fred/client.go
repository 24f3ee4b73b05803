package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	drepo "github.com/psm5556/Crisis-Alert/internal/domain/repository"
	xhttp "github.com/psm5556/Crisis-Alert/pkg/http"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
	"github.com/psm5556/Crisis-Alert/pkg/util"
)

const (
	DefaultBaseURL   = "https://api.stlouisfed.org"
	observationsPath = "/fred/series/observations"
)

// Option configures Client.
type Option func(*Client)

// Client fetches FRED observation series.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	retries int
	backoff time.Duration
	http    *xhttp.Client
	limiter *rate.Limiter
	log     *logger.Logger
	metrics drepo.Metrics
}

// New creates a FRED client. An empty apiKey makes every fetch fail with
// models.ErrAuthFailed without touching the network.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: 15 * time.Second,
		retries: 3,
		backoff: 200 * time.Millisecond,
		// FRED allows 120 requests per minute
		limiter: rate.NewLimiter(rate.Limit(2), 2),
		log:     logger.Nop(),
		metrics: drepo.NopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(c.timeout))
	}
	return c
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit sets the sustained request rate per second; burst equals the rate.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
		}
	}
}

// WithRetries sets how many attempts a transient failure gets; 1 disables retrying.
func WithRetries(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retries = attempts
		}
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

type errorResponse struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

// Fetch returns the observations of seriesID from start onward with missing
// values removed.
func (c *Client) Fetch(ctx context.Context, seriesID string, start time.Time) (models.Series, error) {
	s, err := c.fetchWithRetry(ctx, seriesID, start)
	c.metrics.RecordFetch(seriesID, outcome(err))
	if err != nil {
		c.log.Warn("fred fetch failed",
			logger.String("series", seriesID),
			logger.Error(err),
		)
		return models.Series{}, err
	}
	c.log.Debug("fred fetch",
		logger.String("series", seriesID),
		logger.Int("points", s.Len()),
	)
	return s, nil
}

// fetchWithRetry retries transport failures and 5xx responses with a linear
// backoff. Auth and empty results are final.
func (c *Client) fetchWithRetry(ctx context.Context, seriesID string, start time.Time) (models.Series, error) {
	var (
		s   models.Series
		err error
	)
	for i := 1; i <= c.retries; i++ {
		s, err = c.fetch(ctx, seriesID, start)
		if err == nil || !retryable(err) || i == c.retries {
			return s, err
		}
		select {
		case <-time.After(time.Duration(i) * c.backoff):
		case <-ctx.Done():
			return models.Series{}, models.NewFetchError(models.FetchUnavailable, seriesID, ctx.Err())
		}
	}
	return s, err
}

func retryable(err error) bool {
	if !errors.Is(err, models.ErrUnavailable) {
		return false
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) fetch(ctx context.Context, seriesID string, start time.Time) (models.Series, error) {
	if c.apiKey == "" {
		return models.Series{}, models.NewFetchError(models.FetchAuthFailed, seriesID, errors.New("api key not configured"))
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Series{}, models.NewFetchError(models.FetchUnavailable, seriesID, err)
	}

	params := map[string][]string{
		"series_id": {seriesID},
		"api_key":   {c.apiKey},
		"file_type": {"json"},
	}
	if !start.IsZero() {
		params["observation_start"] = []string{start.Format(util.DateLayout)}
	}

	var resp observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + observationsPath,
		QueryParams: params,
	}, &resp)
	if err != nil {
		return models.Series{}, classify(seriesID, err)
	}

	pts := make([]models.Point, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		v, ok := util.ParseFloat(o.Value)
		if !ok {
			continue
		}
		d, err := time.Parse(util.DateLayout, o.Date)
		if err != nil {
			continue
		}
		pts = append(pts, models.Point{Date: d, Value: v})
	}

	s := models.NewSeries(seriesID, pts)
	if s.Len() == 0 {
		return models.Series{}, models.NewFetchError(models.FetchEmpty, seriesID, nil)
	}
	return s, nil
}

// FetchSpread returns long - short on the dates both series share.
func (c *Client) FetchSpread(ctx context.Context, long, short string, start time.Time) (models.Series, error) {
	return Spread(ctx, c, long, short, start)
}

// Spread fetches both legs through f and subtracts them.
func Spread(ctx context.Context, f drepo.SeriesFetcher, long, short string, start time.Time) (models.Series, error) {
	l, err := f.Fetch(ctx, long, start)
	if err != nil {
		return models.Series{}, err
	}
	s, err := f.Fetch(ctx, short, start)
	if err != nil {
		return models.Series{}, err
	}
	id := SpreadID(long, short)
	out := models.Subtract(id, l, s)
	if out.Len() == 0 {
		return models.Series{}, models.NewFetchError(models.FetchEmpty, id, errors.New("no overlapping dates"))
	}
	return out, nil
}

// SpreadID names the derived spread series.
func SpreadID(long, short string) string {
	return long + "-" + short
}

// classify maps transport and status failures onto fetch error kinds.
func classify(seriesID string, err error) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden:
			return models.NewFetchError(models.FetchAuthFailed, seriesID, err)
		case se.Code == http.StatusBadRequest && mentionsAPIKey(se.Body):
			return models.NewFetchError(models.FetchAuthFailed, seriesID, err)
		}
		return models.NewFetchError(models.FetchUnavailable, seriesID, err)
	}
	return models.NewFetchError(models.FetchUnavailable, seriesID, fmt.Errorf("request: %w", err))
}

func mentionsAPIKey(body []byte) bool {
	var e errorResponse
	msg := string(body)
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		msg = e.Message
	}
	return strings.Contains(strings.ToLower(msg), "api_key")
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var fe *models.FetchError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	return "error"
}

var (
	_ drepo.SeriesFetcher = (*Client)(nil)
	_ drepo.SpreadFetcher = (*Client)(nil)
)
