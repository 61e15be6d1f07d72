// Package version holds build metadata injected at link time.
package version

// Version is overridden via -ldflags at release builds.
var Version = "dev"
