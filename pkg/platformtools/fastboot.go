package platformtools

import (
	"context"

	"DroidKit/pkg/parse"
	"DroidKit/pkg/types"
)

// FastbootDevices lists devices in bootloader mode.
func (c *Client) FastbootDevices(ctx context.Context) ([]types.Device, error) {
	out, err := c.fastboot(ctx, FastbootDevicesArgs())
	if err != nil {
		return nil, err
	}
	return parse.FastbootDevices(out), nil
}

func (c *Client) Flash(ctx context.Context, device, partition, image string) (string, error) {
	return c.fastboot(ctx, FlashArgs(device, partition, image))
}

func (c *Client) FastbootReboot(ctx context.Context, device, mode string) (string, error) {
	return c.fastboot(ctx, FastbootRebootArgs(device, mode))
}

func (c *Client) Unlock(ctx context.Context, device string) (string, error) {
	return c.fastboot(ctx, UnlockArgs(device))
}

// GetVar queries a bootloader variable. fastboot prints the answer on stderr.
func (c *Client) GetVar(ctx context.Context, device, name string) (string, error) {
	return c.fastboot(ctx, GetVarArgs(device, name))
}

func (c *Client) SetActive(ctx context.Context, device, slot string) (string, error) {
	return c.fastboot(ctx, SetActiveArgs(device, slot))
}

func (c *Client) Erase(ctx context.Context, device, partition string) (string, error) {
	return c.fastboot(ctx, EraseArgs(device, partition))
}
