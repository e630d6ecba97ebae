package config

// ProjectFile is the structure of forge.yaml.
type ProjectFile struct {
	Project      string            `yaml:"project"`
	Root         string            `yaml:"root"`
	Modules      []string          `yaml:"modules"`
	Intermediate string            `yaml:"intermediate"`
	Binaries     string            `yaml:"binaries"`
	Toolchains   map[string]string `yaml:"toolchains"`
}

// Scoped lists are keyed by platform name, with "Any" applying everywhere.
type scoped = map[string][]string

// ModuleFile is the structure of module.yaml and module.hcl.
type ModuleFile struct {
	Name          string   `yaml:"name"           hcl:"name"`
	Type          string   `yaml:"type"           hcl:"type"`
	Output        string   `yaml:"output"         hcl:"output,optional"`
	Platforms     []string `yaml:"platforms"      hcl:"platforms,optional"`
	Sources       string   `yaml:"sources"        hcl:"sources,optional"`
	Dependencies  scoped   `yaml:"dependencies"   hcl:"dependencies,optional"`
	HeaderPaths   scoped   `yaml:"header_paths"   hcl:"header_paths,optional"`
	LibraryPaths  scoped   `yaml:"library_paths"  hcl:"library_paths,optional"`
	LinkLibraries scoped   `yaml:"link_libraries" hcl:"link_libraries,optional"`
	Definitions   scoped   `yaml:"definitions"    hcl:"definitions,optional"`
	Frameworks    scoped   `yaml:"frameworks"     hcl:"frameworks,optional"`
	Resources     []string `yaml:"resources"      hcl:"resources,optional"`
}
