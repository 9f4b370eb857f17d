package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shashidharbabu/aerive-client/pkg/config"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
)

const (
	defaultRequestTimeout       = 30 * time.Second
	defaultReleaseTimeout       = 5 * time.Second
	errorBodyReadLimit    int64 = 2048
)

var errBaseURLRequired = errors.New("api base url is required")

// TokenSource supplies the current bearer token, or "" when signed out.
type TokenSource func() string

// Client is the single HTTP surface the checkout core talks through.
type Client struct {
	httpClient     *http.Client
	releaseClient  *http.Client
	baseURL        string
	token          TokenSource
	logg           *logger.Logger
	releaseTimeout time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithReleaseHTTPClient overrides the client used for detached releases.
func WithReleaseHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.releaseClient = client
		}
	}
}

// WithTokenSource installs the bearer token provider.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		if source != nil {
			c.token = source
		}
	}
}

// NewClient builds the gateway from config.
func NewClient(cfg config.APIConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	releaseTimeout := cfg.ReleaseTimeout
	if releaseTimeout <= 0 {
		releaseTimeout = defaultReleaseTimeout
	}

	client := &Client{
		httpClient:     &http.Client{Timeout: requestTimeout},
		releaseClient:  &http.Client{Timeout: releaseTimeout},
		baseURL:        baseURL,
		token:          func() string { return "" },
		logg:           logg,
		releaseTimeout: releaseTimeout,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// OpenCheckout exchanges the normalized cart for a checkout session with
// Pending bookings. Any non-success leaves no session behind.
func (c *Client) OpenCheckout(ctx context.Context, req OpenCheckoutRequest) (*OpenCheckoutResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}

	var resp OpenCheckoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/checkout", req, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.CheckoutID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "checkout response missing checkout id")
	}
	return &resp, nil
}

// SubmitPayment issues the single payment attempt for a checkout session. The
// attempt is idempotent by checkoutId on the server; resubmitting the same id
// never creates new Pending bookings.
func (c *Client) SubmitPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if strings.TrimSpace(req.CheckoutID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeSessionExpired, "checkout id is required")
	}

	var result PaymentResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/billing/payment", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReleaseBookings asks the server to fail the given Pending bookings,
// returning their reserved inventory. Idempotent per booking id.
func (c *Client) ReleaseBookings(ctx context.Context, bookingIDs []string) error {
	if len(bookingIDs) == 0 {
		return nil
	}
	return c.doJSON(ctx, http.MethodPost, "/api/bookings/fail", releaseRequest{BookingIDs: bookingIDs}, nil)
}

// ReleaseBookingsDetached fires the same release on a background context so
// the request outlives the surface that triggered it. Errors are swallowed
// after logging; the server remains the source of truth. The returned channel
// closes when the attempt finishes, for callers that want to observe it;
// teardown paths do not.
func (c *Client) ReleaseBookingsDetached(bookingIDs []string) <-chan struct{} {
	done := make(chan struct{})
	if len(bookingIDs) == 0 {
		close(done)
		return done
	}

	ids := make([]string, len(bookingIDs))
	copy(ids, bookingIDs)

	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), c.releaseTimeout)
		defer cancel()
		if err := c.releaseWith(ctx, c.releaseClient, ids); err != nil && c.logg != nil {
			c.logg.Warn(ctx, fmt.Sprintf("detached booking release failed: %v", err))
		}
	}()
	return done
}

func (c *Client) releaseWith(ctx context.Context, client *http.Client, bookingIDs []string) error {
	payload, err := json.Marshal(releaseRequest{BookingIDs: bookingIDs})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal release request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("/api/bookings/fail"), bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build release request")
	}
	c.setHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute release request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return c.mapStatus(resp)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return c.mapStatus(resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Request ids correlate client attempts with server-side logs.
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// mapStatus translates HTTP status classes onto the client error taxonomy.
func (c *Client) mapStatus(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var parsed errorResponse
	message := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case resp.StatusCode == http.StatusGone:
		return pkgerrors.New(pkgerrors.CodeSessionExpired, message)
	case resp.StatusCode == http.StatusConflict:
		return pkgerrors.New(pkgerrors.CodeBookingConflict, message)
	case resp.StatusCode/100 == 4:
		err := pkgerrors.New(pkgerrors.CodeValidation, message)
		if len(parsed.Errors) > 0 {
			err = err.WithDetails(parsed.Errors)
		}
		return err
	default:
		return pkgerrors.New(pkgerrors.CodeTransport, fmt.Sprintf("status %d: %s", resp.StatusCode, message))
	}
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
