package config

import (
	"os"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
)

// Environment variables that override file settings.
const (
	EnvEndpoint          = "LAKEFS_ENDPOINT"
	EnvAccessKey         = "LAKEFS_ACCESS_KEY"
	EnvSecretKey         = "LAKEFS_SECRET_KEY"
	EnvCredentialsSecret = "LAKEFS_CREDENTIALS_SECRET"
	EnvEnvironment       = "ENVIRONMENT"
	EnvBucketPrefix      = "LAKE_BUCKET_PREFIX"
)

var (
	accountIDVars = []string{"AWS_ACCOUNT_ID", "CDK_DEFAULT_ACCOUNT"}                    //nolint:gochecknoglobals // lookup order
	regionVars    = []string{"AWS_REGION", "AWS_DEFAULT_REGION", "CDK_DEFAULT_REGION"} //nolint:gochecknoglobals // lookup order
)

// applyEnvironment overrides settings with every variable that is set.
func applyEnvironment(settings *entities.Settings) {
	setIfPresent(&settings.Endpoint, EnvEndpoint)
	setIfPresent(&settings.AccessKey, EnvAccessKey)
	setIfPresent(&settings.SecretKey, EnvSecretKey)
	setIfPresent(&settings.CredentialsSecret, EnvCredentialsSecret)
	setIfPresent(&settings.Environment, EnvEnvironment)
	setIfPresent(&settings.BucketPrefix, EnvBucketPrefix)

	if accountID := firstSet(accountIDVars); accountID != "" {
		settings.AccountID = accountID
	}
	if region := firstSet(regionVars); region != "" {
		settings.Region = region
	}
}

func setIfPresent(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func firstSet(names []string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}
