package resilient

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// retryableMethods are retried on transient failures. Creating calls are
// only safe to retry because callers treat "already exists" as success.
var retryableMethods = map[string]bool{ //nolint:gochecknoglobals // lookup table
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
	http.MethodPost:    true,
}

type retryPolicy struct {
	statusCodes map[int]bool
	factor      time.Duration
	maxBackoff  time.Duration
}

func newRetryPolicy(policy entities.RetryPolicy) retryPolicy {
	codes := make(map[int]bool, len(policy.StatusCodes))
	for _, code := range policy.StatusCodes {
		codes[code] = true
	}
	return retryPolicy{
		statusCodes: codes,
		factor:      policy.BackoffFactor,
		maxBackoff:  policy.MaxBackoff,
	}
}

// checkRetry retries recoverable transport errors and the configured status
// codes for retryable methods. It never retries once the caller's context is done.
func (p retryPolicy) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		// the library policy refuses to retry errors that cannot recover, e.g. an untrusted certificate
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp.Request != nil && !retryableMethods[resp.Request.Method] {
		return false, nil
	}
	return p.statusCodes[resp.StatusCode], nil
}

// backoff waits 0 before the first retry and factor * 2^n afterwards, so a
// factor of one second gives waits of 0s, 2s, 4s.
func (p retryPolicy) backoff(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
	if attemptNum <= 0 || p.factor <= 0 {
		return 0
	}
	wait := p.factor * time.Duration(1<<uint(attemptNum)) //nolint:gosec // attemptNum is bounded by RetryMax
	if p.maxBackoff > 0 && wait > p.maxBackoff {
		return p.maxBackoff
	}
	return wait
}

// leveledLogger routes the retry library's logging through logrus.
type leveledLogger struct{}

var _ retryablehttp.LeveledLogger = leveledLogger{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Error(msg)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Warn(msg)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.WithFields(fields(keysAndValues)).Trace(msg)
}

func fields(keysAndValues []interface{}) logger.Fields {
	result := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		result[key] = keysAndValues[i+1]
	}
	return result
}
