// Package parse turns the text printed by the Android tools into structured
// values.
package parse

import (
	"strings"

	"DroidKit/pkg/types"
)

// Devices parses `adb devices` output. The first line is the
// "List of devices attached" header and is skipped; every later line with at
// least two whitespace separated fields becomes a device.
func Devices(output string) []types.Device {
	lines := strings.Split(output, "\n")
	if len(lines) == 0 {
		return nil
	}
	return deviceLines(lines[1:])
}

// FastbootDevices parses `fastboot devices` output, which has no header.
func FastbootDevices(output string) []types.Device {
	return deviceLines(strings.Split(output, "\n"))
}

func deviceLines(lines []string) []types.Device {
	devices := make([]types.Device, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		// adb prints daemon start-up notices as "* daemon ..." lines
		if strings.HasPrefix(line, "*") || strings.HasPrefix(line, "List of devices") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		devices = append(devices, types.Device{Serial: fields[0], Status: fields[1]})
	}
	return devices
}
