package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"rate-report/internal/interval"
)

// Options parameterise the NBP archive client.
type Options struct {
	BaseURL   string
	Table     string
	Timeout   time.Duration
	UserAgent string
}

// Client fetches exchange rate documents from the NBP web API.
type Client struct {
	opts    Options
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewClient constructs an NBP client.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.nbp.pl/api/exchangerates"
	}

	if opts.Table == "" {
		opts.Table = "A"
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "nbp_client").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchRange requests one (currency, interval) document set. A timed-out or
// refused request is logged at warn level and returns no documents; an
// explicit no-data answer is logged at debug level and likewise returns no
// documents. Both leave the range uncovered so a later query retries it.
// Protocol-level failures are returned to the caller.
func (c *Client) FetchRange(ctx context.Context, code string, iv interval.Interval) ([]Document, error) {
	endpoint := c.endpoint(code, iv)

	payload, err := c.get(ctx, endpoint)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoData):
		c.logger.Debug().
			Str("range", iv.String()).
			Str("currency", code).
			Msg("no data available on the server for this range")
		return nil, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case isTransient(err):
		c.logger.Warn().Err(err).
			Str("range", iv.String()).
			Str("currency", code).
			Msg("request failed; treating range as missing")
		return nil, nil
	default:
		return nil, err
	}

	if code == "" {
		var docs []TableDocument
		if err := json.Unmarshal(payload, &docs); err != nil {
			return nil, fmt.Errorf("decode table response: %w", err)
		}
		result := make([]Document, len(docs))
		for i, d := range docs {
			result[i] = d
		}
		return result, nil
	}

	var doc CurrencyDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode currency response: %w", err)
	}
	return []Document{doc}, nil
}

func (c *Client) endpoint(code string, iv interval.Interval) string {
	start := iv.Start.Format(interval.DateFormat)
	end := iv.End.Format(interval.DateFormat)
	if code == "" {
		return fmt.Sprintf("%s/tables/%s/%s/%s/", c.baseURL, c.opts.Table, start, end)
	}
	return fmt.Sprintf("%s/rates/%s/%s/%s/%s/", c.baseURL, c.opts.Table, code, start, end)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return payload, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w (%s)", ErrNoData, endpoint)
	default:
		if len(payload) > 0 {
			return nil, fmt.Errorf("nbp api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		}
		return nil, fmt.Errorf("nbp api error (%d)", resp.StatusCode)
	}
}

// isTransient reports whether a failed request may succeed on a later
// attempt: timeouts and network-level faults such as a refused connection
// qualify, while request construction problems like an unsupported URL
// scheme do not and are surfaced to the caller.
func isTransient(err error) bool {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return false
	}
	if urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(urlErr.Err, &netErr)
}

var _ RateSource = (*Client)(nil)
