package version

// Set via -ldflags at build time.
var (
	AppName = "Nina"
	Version = "dev"
)
