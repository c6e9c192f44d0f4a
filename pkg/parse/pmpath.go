package parse

import (
	"errors"
	"strings"
)

// ErrPackagePathNotFound is returned when `pm path` printed no package: line.
var ErrPackagePathNotFound = errors.New("apk path not found")

const packagePrefix = "package:"

// PackagePath returns the on-device APK path from `pm path <pkg>` output.
// Split APKs print several lines; the first one is the base APK.
func PackagePath(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, packagePrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, packagePrefix)), nil
		}
	}
	return "", ErrPackagePathNotFound
}
