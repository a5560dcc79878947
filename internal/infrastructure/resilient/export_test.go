package resilient

import (
	"context"
	"net/http"
	"time"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

func Backoff(policy entities.RetryPolicy, attempt int) time.Duration {
	return newRetryPolicy(policy).backoff(0, 0, attempt, nil)
}

func CheckRetry(ctx context.Context, policy entities.RetryPolicy, resp *http.Response, err error) (bool, error) {
	return newRetryPolicy(policy).checkRetry(ctx, resp, err)
}
