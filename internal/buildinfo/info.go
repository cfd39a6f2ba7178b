// Package buildinfo is stamped at release time:
//
//	go build -ldflags "-X github.com/billdoc-dev/billdoc/internal/buildinfo.Version=v0.3.0" ./cmd/billdoc
package buildinfo

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)
