package parse

import (
	"strings"
)

// BadgingReport builds a readable summary of `aapt dump badging` output.
// Sections are written in the order their lines appear. The permissions
// header is written once and each distinct permission is listed by its short
// name (CAMERA for android.permission.CAMERA).
func BadgingReport(output string) string {
	var b strings.Builder
	seenPerm := make(map[string]bool)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "package:"):
			if v, ok := extractValue(line, "name='"); ok {
				b.WriteString("Package: " + v + "\n")
			}
			if v, ok := extractValue(line, "versionName='"); ok {
				b.WriteString("Version: " + v + "\n")
			}
			if v, ok := extractValue(line, "versionCode='"); ok {
				b.WriteString("Version code: " + v + "\n")
			}
		case strings.HasPrefix(line, "application-label:"):
			if v := unquoted(line, "application-label:"); v != "" {
				b.WriteString("Label: " + v + "\n")
			}
		case strings.HasPrefix(line, "sdkVersion:"):
			if v := unquoted(line, "sdkVersion:"); v != "" {
				b.WriteString("Min SDK: " + v + "\n")
			}
		case strings.HasPrefix(line, "targetSdkVersion:"):
			if v := unquoted(line, "targetSdkVersion:"); v != "" {
				b.WriteString("Target SDK: " + v + "\n")
			}
		case strings.HasPrefix(line, "uses-permission:"):
			v, ok := extractValue(line, "name='")
			if !ok {
				continue
			}
			short := v[strings.LastIndex(v, ".")+1:]
			if seenPerm[short] {
				continue
			}
			if len(seenPerm) == 0 {
				b.WriteString("\nPermissions:\n")
			}
			seenPerm[short] = true
			b.WriteString("  - " + short + "\n")
		}
	}
	return b.String()
}

// extractValue returns the text between marker and the next single quote.
func extractValue(line, marker string) (string, bool) {
	i := strings.Index(line, marker)
	if i < 0 {
		return "", false
	}
	rest := line[i+len(marker):]
	j := strings.IndexByte(rest, '\'')
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// unquoted drops prefix and every single quote, so labels that contain an
// apostrophe survive.
func unquoted(line, prefix string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(line, prefix), "'", ""))
}
