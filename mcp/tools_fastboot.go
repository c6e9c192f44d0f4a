package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerFastbootTools registers the bootloader tools. Flash, erase and
// unlock ask the user first.
func (s *MCPServer) registerFastbootTools() {
	s.server.AddTool(
		mcp.NewTool("fastboot_devices",
			mcp.WithDescription("List devices in bootloader (fastboot) mode"),
		),
		s.handleFastbootDevices,
	)

	s.server.AddTool(
		mcp.NewTool("fastboot_flash",
			mcp.WithDescription("Write an image to a partition (asks for confirmation)"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("partition", mcp.Required(), mcp.Description("Partition name, e.g. boot, vendor_boot")),
			mcp.WithString("image_path", mcp.Required(), mcp.Description("Local path to the image")),
		),
		s.handleFastbootFlash,
	)

	s.server.AddTool(
		mcp.NewTool("fastboot_reboot",
			mcp.WithDescription("Reboot from the bootloader, optionally into another mode"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("mode",
				mcp.Description("Target mode; omit for a normal boot"),
				mcp.Enum("bootloader", "recovery", "fastboot"),
			),
		),
		s.handleFastbootReboot,
	)

	s.server.AddTool(
		mcp.NewTool("fastboot_unlock",
			mcp.WithDescription("Unlock the bootloader with 'flashing unlock'; wipes user data (asks for confirmation)"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
		),
		s.handleFastbootUnlock,
	)

	s.server.AddTool(
		mcp.NewTool("fastboot_getvar",
			mcp.WithDescription("Read a bootloader variable such as current-slot, product or unlocked"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("name", mcp.Required(), mcp.Description("Variable name, or 'all'")),
		),
		s.handleFastbootGetVar,
	)

	s.server.AddTool(
		mcp.NewTool("fastboot_set_active",
			mcp.WithDescription("Switch the active A/B slot"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("slot", mcp.Required(), mcp.Description("Slot to activate"), mcp.Enum("a", "b")),
		),
		s.handleFastbootSetActive,
	)

	s.server.AddTool(
		mcp.NewTool("fastboot_erase",
			mcp.WithDescription("Erase a partition (asks for confirmation)"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("partition", mcp.Required(), mcp.Description("Partition name")),
		),
		s.handleFastbootErase,
	)
}

func (s *MCPServer) handleFastbootDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.app.FastbootDevices()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return deviceListResult(devices, "No devices in fastboot mode"), nil
}

func (s *MCPServer) handleFastbootFlash(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	partition, err := requireString(args, "partition")
	if err != nil {
		return nil, err
	}
	image, err := requireString(args, "image_path")
	if err != nil {
		return nil, err
	}
	deviceID := optionalString(args, "device_id")

	if reply, err := s.confirmed(ctx, "Flash partition",
		fmt.Sprintf("Device: %s\nPartition: %s\nImage: %s\n\nA wrong image can leave the device unbootable.", deviceID, partition, image)); reply != nil || err != nil {
		return reply, err
	}

	return outputResult(s.app.FastbootFlash(deviceID, partition, image))
}

func (s *MCPServer) handleFastbootReboot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	return outputResult(s.app.FastbootReboot(optionalString(args, "device_id"), optionalString(args, "mode")))
}

func (s *MCPServer) handleFastbootUnlock(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID := optionalString(request.GetArguments(), "device_id")

	if reply, err := s.confirmed(ctx, "Unlock bootloader",
		fmt.Sprintf("Device: %s\n\nUnlocking erases all user data on the device.", deviceID)); reply != nil || err != nil {
		return reply, err
	}

	return outputResult(s.app.FastbootUnlock(deviceID))
}

func (s *MCPServer) handleFastbootGetVar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.FastbootGetVar(optionalString(args, "device_id"), name))
}

func (s *MCPServer) handleFastbootSetActive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	slot, err := requireString(args, "slot")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.FastbootSetActive(optionalString(args, "device_id"), slot))
}

func (s *MCPServer) handleFastbootErase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	partition, err := requireString(args, "partition")
	if err != nil {
		return nil, err
	}
	deviceID := optionalString(args, "device_id")

	if reply, err := s.confirmed(ctx, "Erase partition",
		fmt.Sprintf("Device: %s\nPartition: %s", deviceID, partition)); reply != nil || err != nil {
		return reply, err
	}

	return outputResult(s.app.FastbootErase(deviceID, partition))
}
