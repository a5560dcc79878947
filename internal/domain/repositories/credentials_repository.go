package repositories

import (
	"context"
)

// Credentials authenticate a single request to the versioning server.
// Either the access key pair (HTTP Basic) or Token (Bearer) is set.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Token           string
}

// IsBearer reports whether the credentials carry a bearer token.
func (c Credentials) IsBearer() bool {
	return c.Token != ""
}

// CredentialsRepository supplies credentials at call time so that rotated
// secrets take effect without restarting callers.
type CredentialsRepository interface {
	Name() string
	Credentials(ctx context.Context) (Credentials, error)
}
