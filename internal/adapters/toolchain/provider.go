// Package toolchain maps compile and link requests onto compiler, archiver
// and linker command lines for every supported platform.
package toolchain

import (
	"os"
	"runtime"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolchainProvider = (*Provider)(nil)

// ndkEnvVars are checked in order for the Android NDK location.
var ndkEnvVars = []string{"ANDROID_NDK_HOME", "ANDROID_NDK_ROOT"}

// Provider implements ports.ToolchainProvider.
type Provider struct {
	runner ports.CommandRunner
	goos   string
	getenv func(string) string
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithHost overrides the host operating system.
func WithHost(goos string) ProviderOption {
	return func(p *Provider) {
		p.goos = goos
	}
}

// WithGetenv overrides the environment lookup.
func WithGetenv(getenv func(string) string) ProviderOption {
	return func(p *Provider) {
		p.getenv = getenv
	}
}

// NewProvider creates a provider for the running host.
func NewProvider(runner ports.CommandRunner, opts ...ProviderOption) *Provider {
	p := &Provider{
		runner: runner,
		goos:   runtime.GOOS,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// For implements ports.ToolchainProvider.
func (p *Provider) For(project *domain.Project, platform domain.Platform) (ports.Toolchain, error) {
	if !platform.SupportedOn(p.goos) {
		return nil, zerr.With(
			domain.Annotate(domain.ErrUnsupportedPlatform, "platform", platform.String()),
			"host", p.goos,
		)
	}

	compiler := project.Toolchains[platform]

	switch {
	case platform.IsApple():
		return NewApple(p.runner, platform, compiler)
	case platform == domain.PlatformAndroid:
		ndk := p.ndkRoot()
		if ndk == "" {
			return nil, zerr.With(
				domain.Annotate(domain.ErrUnsupportedPlatform, "platform", platform.String()),
				"reason", "ANDROID_NDK_HOME is not set",
			)
		}
		return NewAndroid(p.runner, ndk, p.hostTag(), compiler), nil
	case platform == domain.PlatformWindows:
		return NewClangCL(p.runner, compiler), nil
	default:
		return NewLinux(p.runner, compiler), nil
	}
}

func (p *Provider) ndkRoot() string {
	for _, name := range ndkEnvVars {
		if v := p.getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// hostTag names the NDK prebuilt directory. The NDK ships x86_64 binaries
// for every host, which Apple silicon runs under Rosetta.
func (p *Provider) hostTag() string {
	return p.goos + "-x86_64"
}
