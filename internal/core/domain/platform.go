package domain

import "strings"

// Platform identifies a build target. PlatformAny is the scope shared by every target.
type Platform string

// Supported platforms. The order of AllPlatforms drives definition generation.
const (
	PlatformAny      Platform = "Any"
	PlatformIOS      Platform = "iOS"
	PlatformTVOS     Platform = "tvOS"
	PlatformVisionOS Platform = "visionOS"
	PlatformMacOS    Platform = "macOS"
	PlatformAndroid  Platform = "Android"
	PlatformWindows  Platform = "Windows"
	PlatformLinux    Platform = "Linux"
)

// PlatformGroup is a family of platforms sharing a vendor SDK.
type PlatformGroup string

// Platform groups.
const (
	GroupApple     PlatformGroup = "Apple"
	GroupGoogle    PlatformGroup = "Google"
	GroupMicrosoft PlatformGroup = "Microsoft"
	GroupLinux     PlatformGroup = "Linux"
)

// PlatformType is the device class a platform runs on.
type PlatformType string

// Platform types.
const (
	TypeDesktop PlatformType = "Desktop"
	TypeMobile  PlatformType = "Mobile"
	TypeTV      PlatformType = "TV"
	TypeXR      PlatformType = "XR"
)

// Configuration selects optimization and debug settings.
type Configuration string

// Build configurations.
const (
	ConfigurationDebug   Configuration = "Debug"
	ConfigurationRelease Configuration = "Release"
)

var (
	// AllPlatforms lists every concrete target platform.
	AllPlatforms = []Platform{
		PlatformIOS, PlatformTVOS, PlatformVisionOS, PlatformMacOS,
		PlatformAndroid, PlatformWindows, PlatformLinux,
	}

	// AllGroups lists every platform group.
	AllGroups = []PlatformGroup{GroupApple, GroupGoogle, GroupMicrosoft, GroupLinux}

	// AllTypes lists every platform type.
	AllTypes = []PlatformType{TypeDesktop, TypeMobile, TypeTV, TypeXR}

	// AllConfigurations lists every build configuration.
	AllConfigurations = []Configuration{ConfigurationDebug, ConfigurationRelease}
)

var platformTraits = map[Platform]struct {
	group      PlatformGroup
	typ        PlatformType
	sourceName string
}{
	PlatformIOS:      {GroupApple, TypeMobile, "IOS"},
	PlatformTVOS:     {GroupApple, TypeTV, "TVOS"},
	PlatformVisionOS: {GroupApple, TypeXR, "VisionOS"},
	PlatformMacOS:    {GroupApple, TypeDesktop, "Mac"},
	PlatformAndroid:  {GroupGoogle, TypeMobile, "Android"},
	PlatformWindows:  {GroupMicrosoft, TypeDesktop, "Windows"},
	PlatformLinux:    {GroupLinux, TypeDesktop, "Linux"},
}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, error) {
	if strings.EqualFold(name, string(PlatformAny)) {
		return PlatformAny, nil
	}
	for _, p := range AllPlatforms {
		if strings.EqualFold(name, string(p)) || strings.EqualFold(name, platformTraits[p].sourceName) {
			return p, nil
		}
	}
	return "", Annotate(ErrUnknownPlatform, "platform", name)
}

// ParseConfiguration resolves a configuration name case-insensitively.
func ParseConfiguration(name string) (Configuration, error) {
	for _, c := range AllConfigurations {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	return "", Annotate(ErrUnknownConfiguration, "configuration", name)
}

// Group returns the platform's group. PlatformAny has no group.
func (p Platform) Group() PlatformGroup {
	return platformTraits[p].group
}

// Type returns the platform's device type. PlatformAny has no type.
func (p Platform) Type() PlatformType {
	return platformTraits[p].typ
}

// SourceName is the value of the PLATFORM_NAME definition.
func (p Platform) SourceName() string {
	return platformTraits[p].sourceName
}

// IsApple reports whether p is built with the Apple SDKs.
func (p Platform) IsApple() bool {
	return p.Group() == GroupApple
}

// SupportedOn reports whether p can be built on a host running goos.
func (p Platform) SupportedOn(goos string) bool {
	switch {
	case p.IsApple():
		return goos == "darwin"
	case p == PlatformWindows:
		return goos == "windows"
	case p == PlatformLinux:
		return goos == "linux"
	case p == PlatformAndroid:
		return goos == "linux" || goos == "darwin" || goos == "windows"
	default:
		return false
	}
}

// HostPlatform returns the desktop platform of a host running goos.
func HostPlatform(goos string) (Platform, bool) {
	switch goos {
	case "darwin":
		return PlatformMacOS, true
	case "windows":
		return PlatformWindows, true
	case "linux":
		return PlatformLinux, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// String implements fmt.Stringer.
func (c Configuration) String() string {
	return string(c)
}

// ExcludedSegments returns the lower-cased directory names that mark sources
// belonging to other platforms or groups than p.
func (p Platform) ExcludedSegments() map[string]struct{} {
	excluded := make(map[string]struct{})
	for _, other := range AllPlatforms {
		if other != p {
			excluded[strings.ToLower(string(other))] = struct{}{}
			excluded[strings.ToLower(other.SourceName())] = struct{}{}
		}
	}
	for _, g := range AllGroups {
		if g != p.Group() {
			excluded[strings.ToLower(string(g))] = struct{}{}
		}
	}
	return excluded
}
