package easel

import "runtime"

// Platform is the operating system an easel is running on.
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "js"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform of the running binary.
func CurrentPlatform() Platform {
	return platformFor(runtime.GOOS)
}

func platformFor(goos string) Platform {
	switch goos {
	case "darwin":
		return PlatformMacOS
	case "ios":
		return PlatformIOS
	case "android":
		return PlatformAndroid
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "js":
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}

// IsDesktop reports whether p is macOS, Linux or Windows.
func (p Platform) IsDesktop() bool {
	return p == PlatformMacOS || p == PlatformLinux || p == PlatformWindows
}

// IsMobile reports whether p is iOS or Android.
func (p Platform) IsMobile() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// IsWeb reports whether p is a browser.
func (p Platform) IsWeb() bool {
	return p == PlatformWeb
}

// SupportsNativeWindow reports whether the native package can open a window
// on p.
func (p Platform) SupportsNativeWindow() bool {
	return p.IsDesktop() || p.IsMobile()
}

// Host names the host package that serves p: "web", "native" or "".
func (p Platform) Host() string {
	switch {
	case p.IsWeb():
		return "web"
	case p.SupportsNativeWindow():
		return "native"
	default:
		return ""
	}
}
