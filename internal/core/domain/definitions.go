package domain

import (
	"fmt"
	"strings"
)

// ExportMarker returns the value of the <MODULE>_API definition for module m
// as seen from a translation unit of the module being compiled. exporting is
// true when m is the module being compiled.
func ExportMarker(m *Module, p Platform, exporting bool) string {
	if m.BinaryType != BinaryDynamicLibrary {
		return ""
	}
	if p == PlatformWindows {
		if exporting {
			return "__declspec(dllexport)"
		}
		return "__declspec(dllimport)"
	}
	return `__attribute__((visibility("default")))`
}

// ExportMacro returns the export macro name of m, e.g. "CORE_API".
func ExportMacro(m *Module) string {
	name := strings.ToUpper(m.Name.String())
	name = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
	return name + "_API"
}

// CompileDefinitions returns the preprocessor definitions for compiling a
// source of m. The result only depends on its arguments.
func CompileDefinitions(m *Module, deps []*Module, p Platform, c Configuration) []string {
	defs := make([]string, 0, 4+len(deps)+len(AllPlatforms)+len(AllGroups)+len(AllTypes)+len(AllConfigurations))

	defs = append(defs, ExportMacro(m)+"="+ExportMarker(m, p, true))
	for _, dep := range deps {
		defs = append(defs, ExportMacro(dep)+"="+ExportMarker(dep, p, false))
	}

	for _, other := range AllPlatforms {
		defs = append(defs, flag("PLATFORM_"+strings.ToUpper(string(other)), other == p))
		if other == p {
			defs = append(defs, "PLATFORM_NAME="+p.SourceName())
		}
	}

	for _, g := range AllGroups {
		defs = append(defs, flag("PLATFORM_GROUP_"+strings.ToUpper(string(g)), g == p.Group()))
		if g == p.Group() {
			defs = append(defs, "PLATFORM_GROUP_NAME="+string(g))
		}
	}

	for _, typ := range AllTypes {
		defs = append(defs, flag("PLATFORM_TYPE_"+strings.ToUpper(string(typ)), typ == p.Type()))
	}

	defs = append(defs, m.Definitions.For(p)...)

	for _, cfg := range AllConfigurations {
		defs = append(defs, flag("WITH_"+strings.ToUpper(string(cfg)), cfg == c))
	}

	return defs
}

func flag(name string, on bool) string {
	v := 0
	if on {
		v = 1
	}
	return fmt.Sprintf("%s=%d", name, v)
}
