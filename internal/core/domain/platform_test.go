package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Platform
	}{
		{"linux", domain.PlatformLinux},
		{"macOS", domain.PlatformMacOS},
		{"mac", domain.PlatformMacOS},
		{"IOS", domain.PlatformIOS},
		{"visionos", domain.PlatformVisionOS},
		{"windows", domain.PlatformWindows},
		{"any", domain.PlatformAny},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParsePlatform(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParsePlatform("amiga")
	require.ErrorIs(t, err, domain.ErrUnknownPlatform)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "amiga", zErr.Metadata()["platform"])
}

func TestParseConfiguration(t *testing.T) {
	got, err := domain.ParseConfiguration("release")
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigurationRelease, got)

	_, err = domain.ParseConfiguration("profile")
	assert.ErrorIs(t, err, domain.ErrUnknownConfiguration)
}

func TestPlatformTraits(t *testing.T) {
	assert.Equal(t, domain.GroupApple, domain.PlatformTVOS.Group())
	assert.Equal(t, domain.TypeTV, domain.PlatformTVOS.Type())
	assert.Equal(t, "TVOS", domain.PlatformTVOS.SourceName())
	assert.True(t, domain.PlatformVisionOS.IsApple())
	assert.False(t, domain.PlatformAndroid.IsApple())
	assert.Equal(t, domain.PlatformGroup(""), domain.PlatformAny.Group())
}

func TestExcludedSegments(t *testing.T) {
	ex := domain.PlatformMacOS.ExcludedSegments()

	assert.Contains(t, ex, "windows")
	assert.Contains(t, ex, "ios")
	assert.Contains(t, ex, "microsoft")
	assert.NotContains(t, ex, "macos")
	assert.NotContains(t, ex, "apple")
	assert.NotContains(t, ex, "mac")
	assert.Contains(t, ex, "visionos")

	linux := domain.PlatformLinux.ExcludedSegments()
	assert.NotContains(t, linux, "linux")
	assert.Contains(t, linux, "apple")
}

func TestSupportedOn(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		goos     string
		want     bool
	}{
		{domain.PlatformLinux, "linux", true},
		{domain.PlatformLinux, "darwin", false},
		{domain.PlatformMacOS, "darwin", true},
		{domain.PlatformIOS, "darwin", true},
		{domain.PlatformVisionOS, "linux", false},
		{domain.PlatformWindows, "windows", true},
		{domain.PlatformWindows, "linux", false},
		{domain.PlatformAndroid, "linux", true},
		{domain.PlatformAndroid, "windows", true},
		{domain.PlatformAny, "linux", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.platform.SupportedOn(tt.goos), "%s on %s", tt.platform, tt.goos)
	}
}

func TestHostPlatform(t *testing.T) {
	p, ok := domain.HostPlatform("darwin")
	assert.True(t, ok)
	assert.Equal(t, domain.PlatformMacOS, p)

	_, ok = domain.HostPlatform("plan9")
	assert.False(t, ok)
}
