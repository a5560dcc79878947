//go:build unit

package resilient_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	"github.com/rios0rios0/lakegate/internal/infrastructure/resilient"
)

func TestBackoff(t *testing.T) {
	t.Parallel()

	t.Run("should wait 0s, 2s and 4s with a one second factor", func(t *testing.T) {
		t.Parallel()

		// given
		policy := entities.DefaultRetryPolicy()

		// when
		waits := []time.Duration{
			resilient.Backoff(policy, 0),
			resilient.Backoff(policy, 1),
			resilient.Backoff(policy, 2),
		}

		// then
		assert.Equal(t, []time.Duration{0, 2 * time.Second, 4 * time.Second}, waits)
	})

	t.Run("should cap the wait at the maximum backoff", func(t *testing.T) {
		t.Parallel()

		// given
		policy := entities.DefaultRetryPolicy()
		policy.MaxBackoff = 3 * time.Second

		// when
		wait := resilient.Backoff(policy, 2)

		// then
		assert.Equal(t, 3*time.Second, wait)
	})

	t.Run("should never wait with a zero factor", func(t *testing.T) {
		t.Parallel()

		// given
		policy := entities.DefaultRetryPolicy()
		policy.BackoffFactor = 0

		// when
		wait := resilient.Backoff(policy, 2)

		// then
		assert.Zero(t, wait)
	})
}

func TestCheckRetry(t *testing.T) {
	t.Parallel()

	response := func(status int) *http.Response {
		req, _ := http.NewRequest(http.MethodGet, "http://localhost", nil)
		return &http.Response{StatusCode: status, Request: req}
	}

	schemeErr := &url.Error{
		Op:  http.MethodGet,
		URL: "ftp://lakefs.example.com/api/v1/repositories",
		Err: errors.New(`unsupported protocol scheme "ftp"`),
	}

	tests := []struct {
		name   string
		resp   *http.Response
		err    error
		expect bool
	}{
		{name: "should retry a transport error", err: errors.New("connection reset"), expect: true},
		{name: "should not retry an unsupported scheme", err: schemeErr},
		{name: "should retry throttling", resp: response(http.StatusTooManyRequests), expect: true},
		{name: "should retry a gateway timeout", resp: response(http.StatusGatewayTimeout), expect: true},
		{name: "should not retry a missing resource", resp: response(http.StatusNotFound)},
		{name: "should not retry a conflict", resp: response(http.StatusConflict)},
		{name: "should not retry a success", resp: response(http.StatusOK)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			policy := entities.DefaultRetryPolicy()

			// when
			retry, err := resilient.CheckRetry(context.Background(), policy, tt.resp, tt.err)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expect, retry)
		})
	}

	t.Run("should stop once the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		retry, err := resilient.CheckRetry(ctx, entities.DefaultRetryPolicy(), nil, errors.New("timeout"))

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, retry)
	})
}
