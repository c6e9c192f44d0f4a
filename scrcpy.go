package main

import (
	"fmt"

	"github.com/google/shlex"
)

// StartScrcpy opens a mirroring window. The scrcpyArgs setting is applied
// before extraArgs, so per-call flags win where scrcpy keeps the last value.
func (a *App) StartScrcpy(device string, extraArgs []string) error {
	configured, err := shlex.Split(a.cfg.ScrcpyArgs)
	if err != nil {
		return fmt.Errorf("invalid scrcpyArgs setting: %w", err)
	}
	args := append(configured, extraArgs...)

	LogUserAction(ActionScrcpyStart, device, map[string]interface{}{"args": args})
	timer := StartOperation("scrcpy", "start").AddDetail("device", device)
	err = a.tools.StartScrcpy(device, args)
	a.finish(timer, ActionScrcpyStart, device, err)
	return err
}

// StartRecord launches a recording window and returns the target file. The
// recording ends when the window is closed.
func (a *App) StartRecord(device, outputDir string) (string, error) {
	dir := a.dataPath(outputDir, "record")
	LogUserAction(ActionScreenRecord, device, map[string]interface{}{"dir": dir})
	timer := StartOperation("scrcpy", "record").AddDetail("device", device)
	path, err := a.tools.StartRecord(device, dir)
	if err == nil {
		timer.AddDetail("path", path)
	}
	a.finish(timer, ActionScreenRecord, device, err)
	return path, err
}

// TakeScreenshot captures the screen into outputDir, or <data>/screenshot.
func (a *App) TakeScreenshot(device, outputDir string) (string, error) {
	dir := a.dataPath(outputDir, "screenshot")
	LogUserAction(ActionScreenshot, device, nil)
	timer := StartOperation("device", "screenshot").AddDetail("device", device)
	path, err := a.tools.TakeScreenshot(a.context(), device, dir)
	a.finish(timer, ActionScreenshot, device, err)
	return path, err
}
