package main

import (
	"DroidKit/pkg/types"
)

// GetDevices lists attached devices from `adb devices`.
func (a *App) GetDevices() ([]types.Device, error) {
	devices, err := a.tools.Devices(a.context())
	if err != nil {
		LogError("device").Err(err).Msg("Failed to list devices")
		return nil, err
	}
	LogDebug("device").Int("count", len(devices)).Msg("Listed devices")
	return devices, nil
}

// AdbShell runs a guarded remote shell command.
func (a *App) AdbShell(device, command string) (string, error) {
	LogUserAction(ActionShellCommand, device, map[string]interface{}{"command": command})
	timer := StartOperation("device", "shell").AddDetail("device", device)
	out, err := a.tools.Shell(a.context(), device, command)
	a.finish(timer, ActionShellCommand, device, err)
	return out, err
}

func (a *App) AdbInstall(device, apkPath string) (string, error) {
	LogUserAction(ActionAppInstall, device, map[string]interface{}{"apk": apkPath})
	timer := StartOperation("device", "install").AddDetail("device", device)
	out, err := a.tools.Install(a.context(), device, apkPath)
	a.finish(timer, ActionAppInstall, device, err)
	return out, err
}

func (a *App) AdbUninstall(device, packageName string) (string, error) {
	LogUserAction(ActionAppUninstall, device, map[string]interface{}{"package": packageName})
	timer := StartOperation("device", "uninstall").AddDetail("device", device)
	out, err := a.tools.Uninstall(a.context(), device, packageName)
	a.finish(timer, ActionAppUninstall, device, err)
	return out, err
}

func (a *App) AdbPush(device, localPath, remotePath string) (string, error) {
	LogUserAction(ActionFilePush, device, map[string]interface{}{"local": localPath, "remote": remotePath})
	timer := StartOperation("device", "push").AddDetail("device", device)
	out, err := a.tools.Push(a.context(), device, localPath, remotePath)
	a.finish(timer, ActionFilePush, device, err)
	return out, err
}

func (a *App) AdbPull(device, remotePath, localPath string) (string, error) {
	LogUserAction(ActionFilePull, device, map[string]interface{}{"remote": remotePath, "local": localPath})
	timer := StartOperation("device", "pull").AddDetail("device", device)
	out, err := a.tools.Pull(a.context(), device, remotePath, localPath)
	a.finish(timer, ActionFilePull, device, err)
	return out, err
}

// AdbReboot reboots normally, or into mode (recovery, bootloader, sideload...).
func (a *App) AdbReboot(device, mode string) (string, error) {
	LogUserAction(ActionReboot, device, map[string]interface{}{"mode": mode})
	timer := StartOperation("device", "reboot").AddDetail("device", device)
	out, err := a.tools.Reboot(a.context(), device, mode)
	a.finish(timer, ActionReboot, device, err)
	return out, err
}

// AdbConnect connects to a network device, retrying once on a reported failure.
func (a *App) AdbConnect(address string) (string, error) {
	LogUserAction(ActionDeviceConnect, address, nil)
	timer := StartOperation("device", "connect").AddDetail("address", address)
	out, err := a.tools.Connect(a.context(), address)
	a.finish(timer, ActionDeviceConnect, address, err)
	return out, err
}

// AdbDisconnect disconnects address, or every network device when empty.
func (a *App) AdbDisconnect(address string) (string, error) {
	LogUserAction(ActionDeviceDisconnect, address, nil)
	timer := StartOperation("device", "disconnect").AddDetail("address", address)
	out, err := a.tools.Disconnect(a.context(), address)
	a.finish(timer, ActionDeviceDisconnect, address, err)
	return out, err
}

func (a *App) AdbSideload(device, zipPath string) (string, error) {
	LogUserAction(ActionSideload, device, map[string]interface{}{"zip": zipPath})
	timer := StartOperation("device", "sideload").AddDetail("device", device)
	out, err := a.tools.Sideload(a.context(), device, zipPath)
	a.finish(timer, ActionSideload, device, err)
	return out, err
}
