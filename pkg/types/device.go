package types

// Device represents one line of `adb devices` or `fastboot devices` output
type Device struct {
	Serial string `json:"serial"`
	Status string `json:"status"` // "device", "offline", "unauthorized", "fastboot", ...
}

// Partition is one entry of an OTA payload listing
type Partition struct {
	Name string `json:"name"`
	Size string `json:"size"` // human readable, as printed by the dumper
}

// PayloadListing is the result of listing an OTA payload.
// When no dumper could run, Placeholder is set and Partitions holds demo data.
type PayloadListing struct {
	Partitions  []Partition `json:"partitions"`
	Source      string      `json:"source"` // "payload-dumper-go", "payload_dumper" or "placeholder"
	Placeholder bool        `json:"placeholder"`
	Raw         string      `json:"raw,omitempty"`
}

// ToolStatus describes where a logical tool resolved to
type ToolStatus struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Bundled bool   `json:"bundled"` // false when falling back to the OS search path
}
