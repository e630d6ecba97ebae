package config

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// evalContext exposes env.<NAME> for every variable of environ and
// platform.<Name> for every platform, so module files can write
// platforms = [platform.Linux] or header_paths = { Any = [env.SDK_INCLUDE] }.
func evalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok && hclsyntax.ValidIdentifier(k) {
			env[k] = cty.StringVal(v)
		}
	}

	platforms := map[string]cty.Value{
		domain.PlatformAny.String(): cty.StringVal(domain.PlatformAny.String()),
	}
	for _, p := range domain.AllPlatforms {
		platforms[p.String()] = cty.StringVal(p.String())
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":      objectOrEmpty(env),
			"platform": cty.ObjectVal(platforms),
		},
	}
}

func objectOrEmpty(attrs map[string]cty.Value) cty.Value {
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}

// decodeHCL decodes a module.hcl document.
func decodeHCL(src []byte, filename string, environ []string) (*ModuleFile, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(diags, domain.ErrConfigParseFailed.Error()), "file", filename)
	}

	var mf ModuleFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(environ), &mf); diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(diags, domain.ErrConfigParseFailed.Error()), "file", filename)
	}
	return &mf, nil
}
