package entities

import (
	"net/http"
	"strings"
	"time"
)

// Environments the platform is deployed to.
const (
	EnvironmentDev     = "dev"
	EnvironmentStaging = "staging"
	EnvironmentProd    = "prod"
)

// FallbackRegion is used when neither the environment nor the identity
// service can tell which region we are deployed in.
const FallbackRegion = "us-east-1"

// Identity is the deploying account, region and environment. It is resolved
// once at startup and then threaded explicitly into every component.
type Identity struct {
	AccountID   string
	Region      string
	Environment string
}

// RetryPolicy configures transport-level retries against the versioning server.
type RetryPolicy struct {
	MaxRetries    int           `validate:"gte=0"`
	BackoffFactor time.Duration `validate:"gte=0"`
	MaxBackoff    time.Duration `validate:"gte=0"`
	StatusCodes   []int
}

// Timeouts bound every single attempt. Probes are existence checks and
// reads, mutations are create/merge/commit/upload calls.
type Timeouts struct {
	Probe    time.Duration `validate:"gt=0"`
	Mutation time.Duration `validate:"gt=0"`
}

// BreakerPolicy configures the circuit breaker in front of the server.
type BreakerPolicy struct {
	Enabled             bool
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// Settings is the immutable configuration handed to every component.
type Settings struct {
	Endpoint          string `validate:"required,url"`
	AccessKey         string `validate:"required_without=CredentialsSecret"`
	SecretKey         string `validate:"required_with=AccessKey"`
	CredentialsSecret string
	Environment       string `validate:"required,oneof=dev staging prod"`
	AccountID         string
	Region            string
	BucketPrefix      string

	Retry    RetryPolicy
	Timeouts Timeouts
	Breaker  BreakerPolicy
}

// DefaultRetryPolicy retries three times on throttling and gateway errors
// with a backoff factor of one second (waits of 0s, 2s, 4s).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BackoffFactor: time.Second,
		MaxBackoff:    2 * time.Minute,
		StatusCodes: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// DefaultTimeouts returns the short probe and long mutation timeouts.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Probe:    10 * time.Second,
		Mutation: time.Minute,
	}
}

// DefaultBreakerPolicy opens after five consecutive failed requests.
func DefaultBreakerPolicy() BreakerPolicy {
	return BreakerPolicy{
		Enabled:             true,
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

// NewSettings returns settings carrying the default policies.
func NewSettings() *Settings {
	return &Settings{
		Environment: EnvironmentDev,
		Retry:       DefaultRetryPolicy(),
		Timeouts:    DefaultTimeouts(),
		Breaker:     DefaultBreakerPolicy(),
	}
}

// Identity returns the resolved deploying identity.
func (s *Settings) Identity() Identity {
	return Identity{
		AccountID:   s.AccountID,
		Region:      s.Region,
		Environment: s.Environment,
	}
}

// WithIdentity returns a copy of the settings with the resolved identity
// applied. The receiver is never modified.
func (s *Settings) WithIdentity(identity Identity) *Settings {
	resolved := *s
	resolved.AccountID = identity.AccountID
	resolved.Region = identity.Region
	if identity.Environment != "" {
		resolved.Environment = identity.Environment
	}
	resolved.Retry.StatusCodes = append([]int(nil), s.Retry.StatusCodes...)
	return &resolved
}

// Bucket is the resolved data-lake bucket for these settings.
func (s *Settings) Bucket() string {
	return BucketName(s.BucketPrefix, s.Identity())
}

// APIBaseURL is the versioning server's REST root.
func (s *Settings) APIBaseURL() string {
	return strings.TrimRight(s.Endpoint, "/") + "/api/v1"
}
