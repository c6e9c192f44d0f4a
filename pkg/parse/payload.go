package parse

import (
	"regexp"
	"strings"

	"DroidKit/pkg/types"
)

var (
	// boot (67 MB)
	parenPartitionRe = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*\(([^)]+)\)$`)
	// boot: 67.2 MB
	colonPartitionRe = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*:\s*(\d[\d.,]*\s*[KkMGTP]?i?B)$`)
)

// Partitions extracts name/size pairs from a payload dumper listing.
// payload-dumper-go prints every partition on one comma-separated line, other
// dumpers print one per line. Banner lines and anything else that does not
// look like a partition entry are ignored.
func Partitions(output string) []types.Partition {
	var parts []types.Partition
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := colonPartitionRe.FindStringSubmatch(line); m != nil {
			parts = append(parts, types.Partition{Name: m[1], Size: strings.TrimSpace(m[2])})
			continue
		}
		for _, entry := range strings.Split(line, ",") {
			m := parenPartitionRe.FindStringSubmatch(strings.TrimSpace(entry))
			if m == nil {
				continue
			}
			parts = append(parts, types.Partition{Name: m[1], Size: strings.TrimSpace(m[2])})
		}
	}
	return parts
}
