package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/lakegate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/lakegate/internal/domain/repositories"
)

// Credentials source names.
const (
	CredentialsStatic = "static"
	CredentialsSecret = "secret"
)

// CredentialsFactory creates a CredentialsRepository for the given settings.
type CredentialsFactory func(settings *entities.Settings) (domainRepos.CredentialsRepository, error)

// CredentialsRegistry manages every registered credentials source.
type CredentialsRegistry struct {
	factories map[string]CredentialsFactory
}

// NewCredentialsRegistry creates an empty credentials registry.
func NewCredentialsRegistry() *CredentialsRegistry {
	return &CredentialsRegistry{
		factories: make(map[string]CredentialsFactory),
	}
}

// Register adds a factory under the given name (e.g. "secret").
func (r *CredentialsRegistry) Register(name string, factory CredentialsFactory) {
	r.factories[name] = factory
}

// Get returns a configured credentials source for the given name.
func (r *CredentialsRegistry) Get(name string, settings *entities.Settings) (domainRepos.CredentialsRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown credentials source: %q (registered: %s)", name, strings.Join(r.Names(), ", "))
	}
	return factory(settings)
}

// ForSettings picks the secret store when a secret id is configured and the
// static key pair otherwise.
func (r *CredentialsRegistry) ForSettings(settings *entities.Settings) (domainRepos.CredentialsRepository, error) {
	if settings.CredentialsSecret != "" {
		return r.Get(CredentialsSecret, settings)
	}
	return r.Get(CredentialsStatic, settings)
}

// Names returns the registered source names in sorted order.
func (r *CredentialsRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
