package version

// Set with -ldflags "-X github.com/lightservices/splitter/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
)
