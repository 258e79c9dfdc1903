package version

// Version is the current version of the bovespa fetcher.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/bovespa-fetcher/internal/version.Version=1.2.3"
var Version = "main"

// GetVersion returns the current version of the fetcher.
func GetVersion() string {
	return Version
}

