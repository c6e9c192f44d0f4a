package platformtools

import (
	"context"
	"fmt"
	"path/filepath"

	"DroidKit/pkg/toolexec"
)

// RemoteScreenshotPath is the temporary on-device file used by TakeScreenshot.
const RemoteScreenshotPath = "/sdcard/screenshot.png"

// localPath joins dir and name, or returns name alone when dir is empty.
func localPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// TakeScreenshot captures the screen to a temporary file on the device,
// pulls it to outputDir and removes the temporary file. It returns the local
// path. A failed cleanup is logged and otherwise ignored.
func (c *Client) TakeScreenshot(ctx context.Context, device, outputDir string) (string, error) {
	name := fmt.Sprintf("screenshot_%d.png", c.now().Unix())
	local := localPath(outputDir, name)

	if _, err := c.adb(ctx, ScreencapArgs(device, RemoteScreenshotPath)); err != nil {
		return "", err
	}
	if _, err := c.adb(ctx, PullArgs(device, RemoteScreenshotPath, local)); err != nil {
		return "", err
	}
	if _, err := c.adb(ctx, RemoveRemoteArgs(device, RemoteScreenshotPath)); err != nil {
		c.logger.Debug().Err(err).Str("device", device).Msg("screenshot cleanup failed")
	}
	return local, nil
}

// scrcpyCommand resolves scrcpy and points it at the bundled adb, if any,
// so both sides speak the same adb server version.
func (c *Client) scrcpyCommand(args []string) toolexec.Command {
	resolver := c.runner.Resolver()
	cmd := toolexec.Command{
		Path: resolver.Resolve(Scrcpy, ScrcpyRoot),
		Args: args,
	}
	if adbPath, found := resolver.Lookup(Adb); found {
		if abs, err := filepath.Abs(adbPath); err == nil {
			adbPath = abs
		}
		cmd.Env = append(cmd.Env, "ADB="+adbPath)
	}
	return cmd
}

// StartScrcpy opens a mirroring window and returns without waiting for it.
func (c *Client) StartScrcpy(device string, extra []string) error {
	return c.runner.Start(c.scrcpyCommand(MirrorArgs(device, extra)))
}

// StartRecord launches scrcpy recording to record_<unix seconds>.mp4 in
// outputDir and returns the path at once. Whether scrcpy actually writes the
// file is not checked; recording stops when the scrcpy window is closed.
func (c *Client) StartRecord(device, outputDir string) (string, error) {
	path := localPath(outputDir, fmt.Sprintf("record_%d.mp4", c.now().Unix()))
	if err := c.runner.Start(c.scrcpyCommand(RecordArgs(device, path))); err != nil {
		return "", err
	}
	return path, nil
}
