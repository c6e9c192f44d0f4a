package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const deviceIDDescription = "Device serial; omit when exactly one device is attached"

// registerDeviceTools registers the adb tools
func (s *MCPServer) registerDeviceTools() {
	s.server.AddTool(
		mcp.NewTool("device_list",
			mcp.WithDescription("List devices attached through adb with their state"),
		),
		s.handleDeviceList,
	)

	s.server.AddTool(
		mcp.NewTool("adb_shell",
			mcp.WithDescription("Run a command in the device shell. Command chaining and substitution (; && || ` $( ${ newlines) are rejected unless the command starts with 'su -c'."),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("command",
				mcp.Required(),
				mcp.Description("Shell command, e.g. 'getprop ro.build.version.release'"),
			),
		),
		s.handleAdbShell,
	)

	s.server.AddTool(
		mcp.NewTool("adb_install",
			mcp.WithDescription("Install or reinstall an APK from this computer"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("apk_path",
				mcp.Required(),
				mcp.Description("Local path to the .apk file"),
			),
		),
		s.handleAdbInstall,
	)

	s.server.AddTool(
		mcp.NewTool("adb_uninstall",
			mcp.WithDescription("Uninstall an app and delete its data (asks for confirmation)"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("package_name",
				mcp.Required(),
				mcp.Description("Package name, e.g. com.example.app"),
			),
		),
		s.handleAdbUninstall,
	)

	s.server.AddTool(
		mcp.NewTool("adb_push",
			mcp.WithDescription("Copy a local file to the device"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("local_path", mcp.Required(), mcp.Description("File on this computer")),
			mcp.WithString("remote_path", mcp.Required(), mcp.Description("Destination on the device, e.g. /sdcard/Download/")),
		),
		s.handleAdbPush,
	)

	s.server.AddTool(
		mcp.NewTool("adb_pull",
			mcp.WithDescription("Copy a file from the device to this computer"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("remote_path", mcp.Required(), mcp.Description("File on the device")),
			mcp.WithString("local_path", mcp.Required(), mcp.Description("Destination on this computer")),
		),
		s.handleAdbPull,
	)

	s.server.AddTool(
		mcp.NewTool("adb_reboot",
			mcp.WithDescription("Reboot the device, optionally into another mode"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("mode",
				mcp.Description("Target mode; omit for a normal reboot"),
				mcp.Enum("recovery", "bootloader", "sideload", "fastboot", "edl"),
			),
		),
		s.handleAdbReboot,
	)

	s.server.AddTool(
		mcp.NewTool("adb_connect",
			mcp.WithDescription("Connect to a device over the network (IP:port)"),
			mcp.WithString("address",
				mcp.Required(),
				mcp.Description("Device address, e.g. 192.168.1.100:5555"),
			),
		),
		s.handleAdbConnect,
	)

	s.server.AddTool(
		mcp.NewTool("adb_disconnect",
			mcp.WithDescription("Disconnect a network device, or all of them"),
			mcp.WithString("address", mcp.Description("Device address; omit to disconnect all")),
		),
		s.handleAdbDisconnect,
	)

	s.server.AddTool(
		mcp.NewTool("adb_sideload",
			mcp.WithDescription("Sideload an OTA zip to a device in recovery sideload mode"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("zip_path", mcp.Required(), mcp.Description("Local path to the OTA zip")),
		),
		s.handleAdbSideload,
	)

	s.server.AddTool(
		mcp.NewTool("logcat_dump",
			mcp.WithDescription("Return the last 100 lines of the device log"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
		),
		s.handleLogcatDump,
	)

	s.server.AddTool(
		mcp.NewTool("logcat_clear",
			mcp.WithDescription("Clear the device log buffer"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
		),
		s.handleLogcatClear,
	)
}

func (s *MCPServer) handleDeviceList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.app.GetDevices()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return deviceListResult(devices, "No devices connected"), nil
}

// deviceListResult formats devices as a readable list followed by JSON.
func deviceListResult(devices []Device, empty string) *mcp.CallToolResult {
	if len(devices) == 0 {
		return textResult(empty)
	}

	result := fmt.Sprintf("Found %d device(s):\n\n", len(devices))
	for i, d := range devices {
		result += fmt.Sprintf("%d. %s (%s)\n", i+1, d.Serial, d.Status)
	}

	jsonData, _ := json.MarshalIndent(devices, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(result),
			mcp.NewTextContent(fmt.Sprintf("\nJSON data:\n```json\n%s\n```", string(jsonData))),
		},
	}
}

func (s *MCPServer) handleAdbShell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	command, err := requireString(args, "command")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AdbShell(optionalString(args, "device_id"), command))
}

func (s *MCPServer) handleAdbInstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	apkPath, err := requireString(args, "apk_path")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AdbInstall(optionalString(args, "device_id"), apkPath))
}

func (s *MCPServer) handleAdbUninstall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	packageName, err := requireString(args, "package_name")
	if err != nil {
		return nil, err
	}
	deviceID := optionalString(args, "device_id")

	if reply, err := s.confirmed(ctx, "Uninstall app",
		fmt.Sprintf("Device: %s\nPackage: %s\n\nThis removes the app and all its data.", deviceID, packageName)); reply != nil || err != nil {
		return reply, err
	}

	return outputResult(s.app.AdbUninstall(deviceID, packageName))
}

func (s *MCPServer) handleAdbPush(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	local, err := requireString(args, "local_path")
	if err != nil {
		return nil, err
	}
	remote, err := requireString(args, "remote_path")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AdbPush(optionalString(args, "device_id"), local, remote))
}

func (s *MCPServer) handleAdbPull(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	remote, err := requireString(args, "remote_path")
	if err != nil {
		return nil, err
	}
	local, err := requireString(args, "local_path")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AdbPull(optionalString(args, "device_id"), remote, local))
}

func (s *MCPServer) handleAdbReboot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	return outputResult(s.app.AdbReboot(optionalString(args, "device_id"), optionalString(args, "mode")))
}

func (s *MCPServer) handleAdbConnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := requireString(request.GetArguments(), "address")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AdbConnect(address))
}

func (s *MCPServer) handleAdbDisconnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return outputResult(s.app.AdbDisconnect(optionalString(request.GetArguments(), "address")))
}

func (s *MCPServer) handleAdbSideload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	zipPath, err := requireString(args, "zip_path")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AdbSideload(optionalString(args, "device_id"), zipPath))
}

func (s *MCPServer) handleLogcatDump(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return outputResult(s.app.StartLogcat(optionalString(request.GetArguments(), "device_id")))
}

func (s *MCPServer) handleLogcatClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return outputResult(s.app.ClearLogcat(optionalString(request.GetArguments(), "device_id")))
}
