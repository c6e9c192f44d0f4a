package platformtools

import (
	"fmt"

	"DroidKit/pkg/toolexec"
)

// FileBrowser returns the command that opens a folder on goos.
func FileBrowser(goos string) string {
	switch goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// OpenFolder shows path in the platform file browser without waiting.
func (c *Client) OpenFolder(goos, path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return c.runner.Start(toolexec.Command{Path: FileBrowser(goos), Args: []string{path}})
}
