package entities

import (
	"fmt"
	"strings"
)

// Pipelines served by the platform.
const (
	PipelineConsultation = "consultation"
	PipelinePodcast      = "podcast"
	PipelineFoundation   = "foundation"
)

// Medallion layers, from raw to curated.
const (
	LayerLanding = "landing"
	LayerBronze  = "bronze"
	LayerSilver  = "silver"
	LayerGold    = "gold"
)

// Foundation-only roles. Repositories with these layers are namespaced by role.
const (
	RoleMetadata = "metadata"
	RoleModels   = "models"
)

// DefaultBucketPrefix is prepended to every resolved data-lake bucket name.
const DefaultBucketPrefix = "medallion-lake"

// RepositoryConfig is one row of the repository catalog.
type RepositoryConfig struct {
	Name        string `validate:"required"`
	Description string
	Layer       string `validate:"required"`
	Pipeline    string `validate:"required"`
}

// IsRole reports whether the config describes a foundation role repository
// rather than a medallion layer.
func (c RepositoryConfig) IsRole() bool {
	return c.Pipeline == PipelineFoundation && (c.Layer == RoleMetadata || c.Layer == RoleModels)
}

// Pipelines returns every pipeline in catalog order.
func Pipelines() []string {
	return []string{PipelineConsultation, PipelinePodcast, PipelineFoundation}
}

// Layers returns the medallion layers in catalog order.
func Layers() []string {
	return []string{LayerLanding, LayerBronze, LayerSilver, LayerGold}
}

// Catalog returns the fixed set of repositories the platform needs: every
// pipeline at every medallion layer plus the two foundation role repositories.
func Catalog() []RepositoryConfig {
	catalog := make([]RepositoryConfig, 0, len(Pipelines())*len(Layers())+2)
	for _, pipeline := range Pipelines() {
		for _, layer := range Layers() {
			catalog = append(catalog, RepositoryConfig{
				Name:        RepositoryName(pipeline, layer),
				Description: fmt.Sprintf("%s %s layer data", titleCase(pipeline), layer),
				Layer:       layer,
				Pipeline:    pipeline,
			})
		}
	}

	return append(catalog,
		RepositoryConfig{
			Name:        RepositoryName(PipelineFoundation, RoleMetadata),
			Description: "Shared metadata, schemas and lineage records",
			Layer:       RoleMetadata,
			Pipeline:    PipelineFoundation,
		},
		RepositoryConfig{
			Name:        RepositoryName(PipelineFoundation, RoleModels),
			Description: "Shared model artifacts",
			Layer:       RoleModels,
			Pipeline:    PipelineFoundation,
		},
	)
}

// FindRepositoryConfig looks a catalog entry up by repository name.
func FindRepositoryConfig(name string) (RepositoryConfig, bool) {
	for _, cfg := range Catalog() {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return RepositoryConfig{}, false
}

// RepositoryName is the kebab-case repository name for a pipeline and layer,
// e.g. "consultation-silver".
func RepositoryName(pipeline, layer string) string {
	return strings.ToLower(pipeline) + "-" + strings.ToLower(layer)
}

// BucketName is the data-lake bucket for an environment. It embeds the
// deploying account id so every account gets its own globally unique bucket.
func BucketName(prefix string, identity Identity) string {
	if prefix == "" {
		prefix = DefaultBucketPrefix
	}
	return fmt.Sprintf("%s-%s-%s", prefix, identity.Environment, identity.AccountID)
}

// StorageNamespace is the object-store URI a repository writes into.
// Medallion repositories live under their layer, role repositories under
// "foundation/<role>".
func StorageNamespace(cfg RepositoryConfig, bucket string) string {
	if cfg.IsRole() {
		return fmt.Sprintf("s3://%s/%s/%s", bucket, PipelineFoundation, cfg.Layer)
	}
	return fmt.Sprintf("s3://%s/%s/%s", bucket, cfg.Layer, cfg.Pipeline)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
