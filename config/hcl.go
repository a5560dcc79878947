package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL decodes an HCL settings file. Environment variables are exposed
// to expressions as env.NAME, e.g. secret_key = env.LAKEFS_SECRET_KEY.
func decodeHCL(path string, data []byte, doc *document) error {
	if err := hclsimple.Decode(path, data, environmentContext(), doc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func environmentContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, entry := range os.Environ() {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
