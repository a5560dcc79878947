package resilient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/domain/repositories"
)

const (
	breakerName     = "versioning-server"
	contentTypeJSON = "application/json"
)

// errServerStatus marks a 5xx answer as a failure for the circuit breaker
// while still handing the response to the caller.
var errServerStatus = errors.New("server answered with an error status")

// Request is a single call to the versioning server's REST API.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	JSON        interface{}
	Body        []byte
	ContentType string
	// Mutation selects the long per-attempt timeout.
	Mutation bool
}

// Response is the final answer after retries. Non-2xx answers are returned
// as responses, not errors: classifying them is the caller's job.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// DecodeJSON unmarshals the response body into target.
func (r *Response) DecodeJSON(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Client performs authenticated calls to the versioning server and absorbs
// transient failures. It is safe for concurrent use.
type Client struct {
	baseURL     string
	credentials repositories.CredentialsRepository
	probe       *retryablehttp.Client
	mutation    *retryablehttp.Client
	breaker     *gobreaker.CircuitBreaker
	metrics     *Metrics
}

// NewClient builds a client for the settings' endpoint. The probe and
// mutation clients share one pooled transport and differ only in timeout.
func NewClient(
	settings *entities.Settings,
	credentials repositories.CredentialsRepository,
	registerer prometheus.Registerer,
) (*Client, error) {
	if settings == nil {
		return nil, errors.New("settings are required")
	}
	if credentials == nil {
		return nil, errors.New("credentials are required")
	}

	metrics, err := NewMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register client metrics: %w", err)
	}

	transport := cleanhttp.DefaultPooledTransport()
	policy := newRetryPolicy(settings.Retry)

	client := &Client{
		baseURL:     settings.APIBaseURL(),
		credentials: credentials,
		metrics:     metrics,
	}
	client.probe = client.newRetryClient(transport, settings.Timeouts.Probe, settings.Retry.MaxRetries, policy)
	client.mutation = client.newRetryClient(transport, settings.Timeouts.Mutation, settings.Retry.MaxRetries, policy)

	if settings.Breaker.Enabled {
		client.breaker = newBreaker(settings.Breaker)
	}

	return client, nil
}

func (c *Client) newRetryClient(
	transport http.RoundTripper,
	timeout time.Duration,
	maxRetries int,
	policy retryPolicy,
) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: transport, Timeout: timeout}
	rc.RetryMax = maxRetries
	rc.CheckRetry = policy.checkRetry
	rc.Backoff = policy.backoff
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{}
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		c.metrics.Attempts.WithLabelValues(req.Method).Inc()
		if attempt > 0 {
			logger.Debugf("Retrying %s %s (retry %d of %d)", req.Method, req.URL.Path, attempt, maxRetries)
		}
	}
	return rc
}

func newBreaker(policy entities.BreakerPolicy) *gobreaker.CircuitBreaker {
	threshold := policy.ConsecutiveFailures
	if threshold == 0 {
		threshold = entities.DefaultBreakerPolicy().ConsecutiveFailures
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    breakerName,
		Timeout: policy.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnf("Circuit breaker %q changed from %s to %s", name, from, to)
		},
	})
}

// Do sends the request, retrying per policy. A returned error is always a
// transport-level failure (*entities.APIError of kind TransportError).
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.execute(ctx, req)
	outcome := "transport_error"
	if err == nil {
		outcome = strconv.Itoa(resp.StatusCode)
	}
	c.metrics.Requests.WithLabelValues(req.Method, outcome).Inc()
	return resp, err
}

func (c *Client) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	rc := c.probe
	if req.Mutation {
		rc = c.mutation
	}

	send := func() (interface{}, error) {
		resp, doErr := rc.Do(httpReq)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response: %w", readErr)
		}

		out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}
		if resp.StatusCode >= http.StatusInternalServerError {
			return out, errServerStatus
		}
		return out, nil
	}

	var result interface{}
	if c.breaker != nil {
		result, err = c.breaker.Execute(send)
	} else {
		result, err = send()
	}

	resp, _ := result.(*Response)
	if err != nil && !(errors.Is(err, errServerStatus) && resp != nil) {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logger.Warnf("Circuit breaker %q rejected %s %s", breakerName, req.Method, req.Path)
		}
		return nil, entities.NewTransportError(fmt.Errorf("%s %s: %w", req.Method, req.Path, err))
	}
	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*retryablehttp.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body interface{}
	contentType := req.ContentType
	switch {
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = encoded
		contentType = contentTypeJSON
	case req.Body != nil:
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	creds, err := c.credentials.Credentials(ctx)
	if err != nil {
		return nil, entities.NewTransportError(
			fmt.Errorf("failed to fetch %s credentials: %w", c.credentials.Name(), err),
		)
	}
	if creds.IsBearer() {
		httpReq.Header.Set("Authorization", "Bearer "+creds.Token)
	} else {
		httpReq.SetBasicAuth(creds.AccessKeyID, creds.SecretAccessKey)
	}

	return httpReq, nil
}
