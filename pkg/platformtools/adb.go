package platformtools

import (
	"context"
	"fmt"
	"strings"

	"DroidKit/pkg/parse"
	"DroidKit/pkg/types"
)

// Devices lists the devices adb can see.
func (c *Client) Devices(ctx context.Context) ([]types.Device, error) {
	out, err := c.adb(ctx, DevicesArgs())
	if err != nil {
		return nil, err
	}
	return parse.Devices(out), nil
}

// Shell runs cmd on the device after it passes the shell guard.
func (c *Client) Shell(ctx context.Context, device, cmd string) (string, error) {
	if strings.TrimSpace(cmd) == "" {
		return "", fmt.Errorf("shell command cannot be empty")
	}
	decision, err := c.guard.Validate(cmd)
	if err != nil {
		return "", err
	}
	if decision.Escalated {
		c.logger.Info().Str("device", device).Msg("running escalated shell command")
	}
	return c.adb(ctx, ShellArgs(device, cmd))
}

func (c *Client) Install(ctx context.Context, device, apk string) (string, error) {
	return c.adb(ctx, InstallArgs(device, apk))
}

func (c *Client) Uninstall(ctx context.Context, device, pkg string) (string, error) {
	return c.adb(ctx, UninstallArgs(device, pkg))
}

func (c *Client) Push(ctx context.Context, device, local, remote string) (string, error) {
	return c.adb(ctx, PushArgs(device, local, remote))
}

func (c *Client) Pull(ctx context.Context, device, remote, local string) (string, error) {
	return c.adb(ctx, PullArgs(device, remote, local))
}

func (c *Client) Reboot(ctx context.Context, device, mode string) (string, error) {
	return c.adb(ctx, RebootArgs(device, mode))
}

func (c *Client) Sideload(ctx context.Context, device, zip string) (string, error) {
	return c.adb(ctx, SideloadArgs(device, zip))
}

// Connect connects to a device over TCP. adb often exits 0 while printing
// "failed to connect", so a failure message in the output earns one retry
// after a short pause.
func (c *Client) Connect(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("address cannot be empty")
	}
	out, err := c.adb(ctx, ConnectArgs(address))
	if err == nil && !connectFailed(out) {
		return out, nil
	}
	c.logger.Debug().Str("address", address).Str("output", strings.TrimSpace(out)).AnErr("error", err).Msg("connect failed, retrying once")
	c.sleep(c.retryDelay)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return c.adb(ctx, ConnectArgs(address))
}

func connectFailed(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "failed") ||
		strings.Contains(lower, "cannot") ||
		strings.Contains(lower, "unable")
}

// Disconnect disconnects one network device, or all of them when address is empty.
func (c *Client) Disconnect(ctx context.Context, address string) (string, error) {
	return c.adb(ctx, DisconnectArgs(address))
}

// Logcat dumps the most recent log lines.
func (c *Client) Logcat(ctx context.Context, device string) (string, error) {
	return c.adb(ctx, LogcatDumpArgs(device))
}

func (c *Client) ClearLogcat(ctx context.Context, device string) (string, error) {
	return c.adb(ctx, LogcatClearArgs(device))
}
