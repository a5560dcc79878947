//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const (
	defaultEndpoint  = "http://localhost:8000"
	defaultAccountID = "123456789012"
	defaultRegion    = "us-east-1"
)

// SettingsBuilder helps create resolved test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	endpoint          string
	accessKey         string
	secretKey         string
	credentialsSecret string
	environment       string
	accountID         string
	region            string
	bucketPrefix      string
	retry             entities.RetryPolicy
	timeouts          entities.Timeouts
	breaker           entities.BreakerPolicy
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
// Retries wait no time so tests stay fast.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *SettingsBuilder) defaults() {
	b.endpoint = defaultEndpoint
	b.accessKey = "AKIATEST"
	b.secretKey = "secret-test"
	b.credentialsSecret = ""
	b.environment = entities.EnvironmentDev
	b.accountID = defaultAccountID
	b.region = defaultRegion
	b.bucketPrefix = ""
	b.retry = entities.DefaultRetryPolicy()
	b.retry.BackoffFactor = 0
	b.timeouts = entities.Timeouts{Probe: 2 * time.Second, Mutation: 2 * time.Second}
	b.breaker = entities.BreakerPolicy{}
}

// WithEndpoint sets the versioning server endpoint.
func (b *SettingsBuilder) WithEndpoint(endpoint string) *SettingsBuilder {
	b.endpoint = endpoint
	return b
}

// WithKeys sets the static access key pair.
func (b *SettingsBuilder) WithKeys(accessKey, secretKey string) *SettingsBuilder {
	b.accessKey = accessKey
	b.secretKey = secretKey
	return b
}

// WithCredentialsSecret sets the secret store id.
func (b *SettingsBuilder) WithCredentialsSecret(secretID string) *SettingsBuilder {
	b.credentialsSecret = secretID
	return b
}

// WithEnvironment sets the target environment.
func (b *SettingsBuilder) WithEnvironment(environment string) *SettingsBuilder {
	b.environment = environment
	return b
}

// WithAccountID sets the deploying account id.
func (b *SettingsBuilder) WithAccountID(accountID string) *SettingsBuilder {
	b.accountID = accountID
	return b
}

// WithRegion sets the deploying region.
func (b *SettingsBuilder) WithRegion(region string) *SettingsBuilder {
	b.region = region
	return b
}

// WithBucketPrefix sets the bucket prefix.
func (b *SettingsBuilder) WithBucketPrefix(prefix string) *SettingsBuilder {
	b.bucketPrefix = prefix
	return b
}

// WithRetry sets the retry policy.
func (b *SettingsBuilder) WithRetry(policy entities.RetryPolicy) *SettingsBuilder {
	b.retry = policy
	return b
}

// WithTimeouts sets the per-attempt timeouts.
func (b *SettingsBuilder) WithTimeouts(timeouts entities.Timeouts) *SettingsBuilder {
	b.timeouts = timeouts
	return b
}

// WithBreaker sets the circuit breaker policy.
func (b *SettingsBuilder) WithBreaker(policy entities.BreakerPolicy) *SettingsBuilder {
	b.breaker = policy
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Endpoint:          b.endpoint,
		AccessKey:         b.accessKey,
		SecretKey:         b.secretKey,
		CredentialsSecret: b.credentialsSecret,
		Environment:       b.environment,
		AccountID:         b.accountID,
		Region:            b.region,
		BucketPrefix:      b.bucketPrefix,
		Retry:             b.retry,
		Timeouts:          b.timeouts,
		Breaker:           b.breaker,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	clone.retry.StatusCodes = append([]int(nil), b.retry.StatusCodes...)
	return &clone
}
