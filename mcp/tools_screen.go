package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerScreenTools registers mirroring, recording and screenshot tools
func (s *MCPServer) registerScreenTools() {
	s.server.AddTool(
		mcp.NewTool("scrcpy_start",
			mcp.WithDescription("Open a scrcpy mirroring window on this computer"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithArray("extra_args",
				mcp.Description("Additional scrcpy flags, e.g. [\"--max-size\", \"1024\"]"),
				mcp.WithStringItems(),
			),
		),
		s.handleScrcpyStart,
	)

	s.server.AddTool(
		mcp.NewTool("screen_record",
			mcp.WithDescription("Start recording the screen to an mp4 through scrcpy. Recording stops when the scrcpy window is closed."),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("output_dir", mcp.Description("Directory for the recording; defaults to the data/record folder")),
		),
		s.handleScreenRecord,
	)

	s.server.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the device screen to a PNG on this computer"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("output_dir", mcp.Description("Directory for the PNG; defaults to the data/screenshot folder")),
		),
		s.handleScreenshot,
	)
}

func (s *MCPServer) handleScrcpyStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if err := s.app.StartScrcpy(optionalString(args, "device_id"), stringList(args, "extra_args")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult("Mirroring window launched"), nil
}

func (s *MCPServer) handleScreenRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, err := s.app.StartRecord(optionalString(args, "device_id"), optionalString(args, "output_dir"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(fmt.Sprintf("Recording to %s\nClose the scrcpy window to finish the file.", path)), nil
}

func (s *MCPServer) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, err := s.app.TakeScreenshot(optionalString(args, "device_id"), optionalString(args, "output_dir"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(fmt.Sprintf("Screenshot saved to %s", path)), nil
}
