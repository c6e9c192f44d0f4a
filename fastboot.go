package main

import (
	"DroidKit/pkg/types"
)

// FastbootDevices lists devices in bootloader mode.
func (a *App) FastbootDevices() ([]types.Device, error) {
	devices, err := a.tools.FastbootDevices(a.context())
	if err != nil {
		LogError("fastboot").Err(err).Msg("Failed to list fastboot devices")
		return nil, err
	}
	return devices, nil
}

func (a *App) FastbootFlash(device, partition, imagePath string) (string, error) {
	LogUserAction(ActionFlash, device, map[string]interface{}{"partition": partition, "image": imagePath})
	timer := StartOperation("fastboot", "flash").
		AddDetail("device", device).
		AddDetail("partition", partition)
	out, err := a.tools.Flash(a.context(), device, partition, imagePath)
	a.finish(timer, ActionFlash, device, err)
	return out, err
}

func (a *App) FastbootReboot(device, mode string) (string, error) {
	LogUserAction(ActionReboot, device, map[string]interface{}{"mode": mode, "fastboot": true})
	timer := StartOperation("fastboot", "reboot").AddDetail("device", device)
	out, err := a.tools.FastbootReboot(a.context(), device, mode)
	a.finish(timer, ActionReboot, device, err)
	return out, err
}

// FastbootUnlock runs `flashing unlock`. The device asks for confirmation
// on its own screen.
func (a *App) FastbootUnlock(device string) (string, error) {
	LogUserAction(ActionUnlock, device, nil)
	timer := StartOperation("fastboot", "unlock").AddDetail("device", device)
	out, err := a.tools.Unlock(a.context(), device)
	a.finish(timer, ActionUnlock, device, err)
	return out, err
}

// FastbootGetVar reads a bootloader variable. fastboot prints it on stderr.
func (a *App) FastbootGetVar(device, name string) (string, error) {
	return a.tools.GetVar(a.context(), device, name)
}

func (a *App) FastbootSetActive(device, slot string) (string, error) {
	LogUserAction(ActionSetActive, device, map[string]interface{}{"slot": slot})
	timer := StartOperation("fastboot", "set_active").AddDetail("device", device)
	out, err := a.tools.SetActive(a.context(), device, slot)
	a.finish(timer, ActionSetActive, device, err)
	return out, err
}

func (a *App) FastbootErase(device, partition string) (string, error) {
	LogUserAction(ActionErase, device, map[string]interface{}{"partition": partition})
	timer := StartOperation("fastboot", "erase").
		AddDetail("device", device).
		AddDetail("partition", partition)
	out, err := a.tools.Erase(a.context(), device, partition)
	a.finish(timer, ActionErase, device, err)
	return out, err
}
