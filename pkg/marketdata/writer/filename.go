package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// TimestampLayout formats the wall clock part of output file names.
const TimestampLayout = "20060102_150405"

// maxSequence bounds the suffixes tried when a name is already taken.
const maxSequence = 1000

// OutputFileName returns "<prefix>_<YYYYMMDD_HHMMSS>.<ext>", with "_<seq>"
// inserted before the extension when seq is positive.
func OutputFileName(prefix string, ext string, now time.Time, seq int) string {
	stamp := now.Format(TimestampLayout)
	if seq > 0 {
		return fmt.Sprintf("%s_%s_%d.%s", prefix, stamp, seq, ext)
	}

	return fmt.Sprintf("%s_%s.%s", prefix, stamp, ext)
}

// ReserveOutputPath creates an empty output file in dir named after now.
// An existing file is never reused: when the name is taken a sequence
// suffix is added until a free name is found.
func ReserveOutputPath(dir string, prefix string, ext string, now time.Time) (string, error) {
	for seq := 0; seq < maxSequence; seq++ {
		path := filepath.Join(dir, OutputFileName(prefix, ext, now, seq))

		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			if err := file.Close(); err != nil {
				return "", fmt.Errorf("failed to close reserved file %s: %w", path, err)
			}

			return path, nil
		}

		if !os.IsExist(err) {
			return "", fmt.Errorf("failed to reserve output file %s: %w", path, err)
		}
	}

	return "", errors.Newf(errors.ErrCodeOutputFileExists,
		"no free output name for %s in %s after %d attempts", OutputFileName(prefix, ext, now, 0), dir, maxSequence)
}
