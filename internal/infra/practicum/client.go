// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client talks to the Practicum homework_statuses endpoint.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient creates an API client. A zero timeout leaves the request unbounded,
// so a hanging server blocks the caller until ctx is cancelled.
func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch requests homework statuses changed since from (Unix seconds) and
// returns the JSON body of a 200 response.
func (c *Client) Fetch(ctx context.Context, from int64) (json.RawMessage, error) {
	c.logger.WithField("from_date", from).Info("Requesting homework statuses")

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{Endpoint: c.endpoint, Err: fmt.Errorf("reading body: %w", err)}
	}
	c.logger.WithField("status_code", resp.StatusCode).Debug("Response received")

	if resp.StatusCode != http.StatusOK {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       string(body),
		}
	}

	if !json.Valid(body) {
		var decoded any
		decodeErr := json.Unmarshal(body, &decoded)
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       string(body),
			Err:        fmt.Errorf("decoding JSON: %w", decodeErr),
		}
	}

	return json.RawMessage(body), nil
}

// reasonPhrase strips the numeric code from resp.Status ("500 Internal Server Error").
func reasonPhrase(resp *http.Response) string {
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
