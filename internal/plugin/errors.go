package plugin

import "errors"

// Plugin errors.
var (
	// ErrNilDescriptor is returned when a nil descriptor is loaded.
	ErrNilDescriptor = errors.New("plugin descriptor is nil")

	// ErrAlreadyLoaded is returned when a plugin name is loaded twice.
	ErrAlreadyLoaded = errors.New("plugin is already loaded")

	// ErrPluginNotFound is returned when looking up an unknown plugin.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid plugin manifest")
)
