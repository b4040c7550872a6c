// Package platform identifies the operating system family the editor runs
// on. Keymaps are filtered by platform and the last-window-close policy
// depends on it.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is an operating system family.
type Platform string

// Known platforms.
const (
	Linux   Platform = "linux"
	Windows Platform = "windows"
	MacOS   Platform = "macos"
	Other   Platform = "other"
)

// Current returns the platform of the running process.
func Current() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to a Platform.
func FromGOOS(goos string) Platform {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return Linux
	case "windows":
		return Windows
	case "darwin", "ios":
		return MacOS
	default:
		return Other
	}
}

// Parse parses a platform name. "osx" and "darwin" are accepted for MacOS.
func Parse(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return Linux, nil
	case "windows", "win":
		return Windows, nil
	case "macos", "osx", "darwin", "mac":
		return MacOS, nil
	case "other":
		return Other, nil
	default:
		return "", fmt.Errorf("unknown platform %q", s)
	}
}

// StaysResidentCapable reports whether the application may keep running
// with zero windows on this platform when the user asked for it.
func (p Platform) StaysResidentCapable() bool {
	return p == Linux || p == Windows
}

// In reports whether p is one of list. An empty list matches every platform.
func (p Platform) In(list []Platform) bool {
	if len(list) == 0 {
		return true
	}
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

// String returns the platform name.
func (p Platform) String() string {
	return string(p)
}
