package workspace

import (
	"os"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// EnsureDirectories creates every path that does not exist yet.
// Existing directories are left untouched.
func EnsureDirectories(paths ...string) error {
	for _, path := range paths {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return errors.Wrapf(errors.ErrCodeDirectorySetupFailed, err, "failed to create directory %s", path)
		}
	}

	return nil
}
