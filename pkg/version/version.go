// Package version holds the sv release version.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/vanderheijden86/sceneview/pkg/version.Version=..."
var Version = "v0.1.0"
