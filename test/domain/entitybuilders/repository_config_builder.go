//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/lakegate/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryConfigBuilder helps create catalog entries with a fluent interface.
type RepositoryConfigBuilder struct {
	*testkit.BaseBuilder
	pipeline    string
	layer       string
	name        string
	description string
}

// NewRepositoryConfigBuilder creates a builder for "consultation-silver".
func NewRepositoryConfigBuilder() *RepositoryConfigBuilder {
	return &RepositoryConfigBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		pipeline:    entities.PipelineConsultation,
		layer:       entities.LayerSilver,
		description: "Consultation silver layer data",
	}
}

// WithPipeline sets the pipeline.
func (b *RepositoryConfigBuilder) WithPipeline(pipeline string) *RepositoryConfigBuilder {
	b.pipeline = pipeline
	return b
}

// WithLayer sets the layer or foundation role.
func (b *RepositoryConfigBuilder) WithLayer(layer string) *RepositoryConfigBuilder {
	b.layer = layer
	return b
}

// WithName overrides the derived repository name.
func (b *RepositoryConfigBuilder) WithName(name string) *RepositoryConfigBuilder {
	b.name = name
	return b
}

// Build creates the config (satisfies testkit.Builder interface).
func (b *RepositoryConfigBuilder) Build() interface{} {
	return b.BuildRepositoryConfig()
}

// BuildRepositoryConfig creates the config with a concrete return type.
func (b *RepositoryConfigBuilder) BuildRepositoryConfig() entities.RepositoryConfig {
	name := b.name
	if name == "" {
		name = entities.RepositoryName(b.pipeline, b.layer)
	}
	return entities.RepositoryConfig{
		Name:        name,
		Description: b.description,
		Layer:       b.layer,
		Pipeline:    b.pipeline,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryConfigBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.pipeline = entities.PipelineConsultation
	b.layer = entities.LayerSilver
	b.name = ""
	b.description = "Consultation silver layer data"
	return b
}

// Clone creates a deep copy of the RepositoryConfigBuilder.
func (b *RepositoryConfigBuilder) Clone() testkit.Builder {
	return &RepositoryConfigBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		pipeline:    b.pipeline,
		layer:       b.layer,
		name:        b.name,
		description: b.description,
	}
}
