package pipeline

import (
	"fmt"
	"os"
)

// CheckInputSize fails with ErrInputTooLarge when the document exceeds
// maxMB. Runs before any rasterization so oversized inputs cost nothing.
// A missing file surfaces the stat error, which is equally fatal.
func CheckInputSize(path string, maxMB int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %s is a directory", path)
	}

	limit := maxMB * 1024 * 1024
	if info.Size() > limit {
		return fmt.Errorf("%w: %s is %.1f MB, limit is %d MB",
			ErrInputTooLarge, path, float64(info.Size())/(1024*1024), maxMB)
	}
	return nil
}
