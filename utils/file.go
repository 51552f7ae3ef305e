package utils

import "os"

// FileExists reports whether path exists and is a regular file. A
// recorded image whose file has gone missing must degrade to a warning,
// never an unhandled failure, so callers check this before serving or
// embedding image bytes.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
