package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// document mirrors the on-disk layout shared by the YAML and HCL formats.
type document struct {
	Environment  string            `yaml:"environment"   hcl:"environment,optional"`
	AccountID    string            `yaml:"account_id"    hcl:"account_id,optional"`
	Region       string            `yaml:"region"        hcl:"region,optional"`
	BucketPrefix string            `yaml:"bucket_prefix" hcl:"bucket_prefix,optional"`
	Server       *serverDocument   `yaml:"server"        hcl:"server,block"`
	Retry        *retryDocument    `yaml:"retry"         hcl:"retry,block"`
	Timeouts     *timeoutsDocument `yaml:"timeouts"      hcl:"timeouts,block"`
	Breaker      *breakerDocument  `yaml:"breaker"       hcl:"breaker,block"`
}

type serverDocument struct {
	Endpoint          string `yaml:"endpoint"           hcl:"endpoint,optional"`
	AccessKey         string `yaml:"access_key"         hcl:"access_key,optional"`
	SecretKey         string `yaml:"secret_key"         hcl:"secret_key,optional"`
	CredentialsSecret string `yaml:"credentials_secret" hcl:"credentials_secret,optional"`
}

type retryDocument struct {
	MaxRetries    *int   `yaml:"max_retries"    hcl:"max_retries,optional"`
	BackoffFactor string `yaml:"backoff_factor" hcl:"backoff_factor,optional"`
	MaxBackoff    string `yaml:"max_backoff"    hcl:"max_backoff,optional"`
	StatusCodes   []int  `yaml:"status_codes"   hcl:"status_codes,optional"`
}

type timeoutsDocument struct {
	Probe    string `yaml:"probe"    hcl:"probe,optional"`
	Mutation string `yaml:"mutation" hcl:"mutation,optional"`
}

type breakerDocument struct {
	Enabled             *bool  `yaml:"enabled"              hcl:"enabled,optional"`
	ConsecutiveFailures int    `yaml:"consecutive_failures" hcl:"consecutive_failures,optional"`
	OpenTimeout         string `yaml:"open_timeout"         hcl:"open_timeout,optional"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads a YAML or HCL settings file, applies environment overrides and
// validates the result. The deploying identity is resolved later.
func Load(path string) (*entities.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if decodeErr := decodeHCL(path, data, &doc); decodeErr != nil {
			return nil, decodeErr
		}
	default:
		if unmarshalErr := yaml.Unmarshal(data, &doc); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings, err := doc.toSettings()
	if err != nil {
		return nil, err
	}
	applyEnvironment(settings)

	if validateErr := entities.ValidateSettings(settings); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// FromEnvironment builds settings from environment variables alone.
func FromEnvironment() (*entities.Settings, error) {
	settings := entities.NewSettings()
	applyEnvironment(settings)

	if err := entities.ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".lakegate.yaml",
		".lakegate.yml",
		"lakegate.yaml",
		"lakegate.yml",
		"lakegate.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := expandEnv(raw)

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func (d *document) toSettings() (*entities.Settings, error) {
	settings := entities.NewSettings()

	if d.Environment != "" {
		settings.Environment = expandEnv(d.Environment)
	}
	settings.AccountID = expandEnv(d.AccountID)
	settings.Region = expandEnv(d.Region)
	settings.BucketPrefix = expandEnv(d.BucketPrefix)

	if d.Server != nil {
		settings.Endpoint = expandEnv(d.Server.Endpoint)
		settings.AccessKey = ResolveToken(d.Server.AccessKey)
		settings.SecretKey = ResolveToken(d.Server.SecretKey)
		settings.CredentialsSecret = expandEnv(d.Server.CredentialsSecret)
	}

	if err := d.applyRetry(settings); err != nil {
		return nil, err
	}
	if err := d.applyTimeouts(settings); err != nil {
		return nil, err
	}
	if err := d.applyBreaker(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (d *document) applyRetry(settings *entities.Settings) error {
	if d.Retry == nil {
		return nil
	}
	if d.Retry.MaxRetries != nil {
		settings.Retry.MaxRetries = *d.Retry.MaxRetries
	}
	if len(d.Retry.StatusCodes) > 0 {
		settings.Retry.StatusCodes = d.Retry.StatusCodes
	}

	var err error
	if settings.Retry.BackoffFactor, err = parseDuration("retry.backoff_factor", d.Retry.BackoffFactor,
		settings.Retry.BackoffFactor); err != nil {
		return err
	}
	settings.Retry.MaxBackoff, err = parseDuration("retry.max_backoff", d.Retry.MaxBackoff, settings.Retry.MaxBackoff)
	return err
}

func (d *document) applyTimeouts(settings *entities.Settings) error {
	if d.Timeouts == nil {
		return nil
	}

	var err error
	if settings.Timeouts.Probe, err = parseDuration("timeouts.probe", d.Timeouts.Probe,
		settings.Timeouts.Probe); err != nil {
		return err
	}
	settings.Timeouts.Mutation, err = parseDuration("timeouts.mutation", d.Timeouts.Mutation,
		settings.Timeouts.Mutation)
	return err
}

func (d *document) applyBreaker(settings *entities.Settings) error {
	if d.Breaker == nil {
		return nil
	}
	if d.Breaker.Enabled != nil {
		settings.Breaker.Enabled = *d.Breaker.Enabled
	}
	if d.Breaker.ConsecutiveFailures < 0 {
		return errors.New("breaker.consecutive_failures must not be negative")
	}
	if d.Breaker.ConsecutiveFailures > 0 {
		settings.Breaker.ConsecutiveFailures = uint32(d.Breaker.ConsecutiveFailures) //nolint:gosec // checked above
	}

	var err error
	settings.Breaker.OpenTimeout, err = parseDuration("breaker.open_timeout", d.Breaker.OpenTimeout,
		settings.Breaker.OpenTimeout)
	return err
}

// parseDuration accepts Go durations ("1.5s") and bare numbers of seconds ("1").
func parseDuration(field, raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
	}
	return d, nil
}
