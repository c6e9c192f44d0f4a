package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerPackageTools registers APK and OTA payload tools
func (s *MCPServer) registerPackageTools() {
	s.server.AddTool(
		mcp.NewTool("apk_extract",
			mcp.WithDescription("Copy an installed app's base APK from the device"),
			mcp.WithString("device_id", mcp.Description(deviceIDDescription)),
			mcp.WithString("package_name", mcp.Required(), mcp.Description("Package name, e.g. com.example.app")),
			mcp.WithString("output_dir", mcp.Description("Destination directory; defaults to the data/apk folder")),
		),
		s.handleApkExtract,
	)

	s.server.AddTool(
		mcp.NewTool("apk_analyze",
			mcp.WithDescription("Summarize an APK: package, version, SDK levels and permissions"),
			mcp.WithString("apk_path", mcp.Required(), mcp.Description("Local path to the .apk file")),
		),
		s.handleApkAnalyze,
	)

	s.server.AddTool(
		mcp.NewTool("payload_list",
			mcp.WithDescription("List the partitions inside an OTA payload.bin"),
			mcp.WithString("payload_path", mcp.Required(), mcp.Description("Local path to payload.bin")),
		),
		s.handlePayloadList,
	)

	s.server.AddTool(
		mcp.NewTool("payload_extract",
			mcp.WithDescription("Extract partition images from an OTA payload.bin"),
			mcp.WithString("payload_path", mcp.Required(), mcp.Description("Local path to payload.bin")),
			mcp.WithString("output_dir", mcp.Description("Destination directory; defaults to the data/rom folder")),
			mcp.WithArray("partitions",
				mcp.Description("Partitions to extract; omit for all"),
				mcp.WithStringItems(),
			),
		),
		s.handlePayloadExtract,
	)
}

func (s *MCPServer) handleApkExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	packageName, err := requireString(args, "package_name")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.ExtractAPK(optionalString(args, "device_id"), packageName, optionalString(args, "output_dir")))
}

func (s *MCPServer) handleApkAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	apkPath, err := requireString(request.GetArguments(), "apk_path")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.AnalyzeAPK(apkPath))
}

func (s *MCPServer) handlePayloadList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payloadPath, err := requireString(request.GetArguments(), "payload_path")
	if err != nil {
		return nil, err
	}

	listing, err := s.app.ParsePayload(payloadPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if listing.Placeholder {
		b.WriteString("No payload dumper is installed; these are SAMPLE partitions, not the contents of the file.\n\n")
	} else {
		fmt.Fprintf(&b, "%d partition(s) listed by %s:\n\n", len(listing.Partitions), listing.Source)
	}
	for _, p := range listing.Partitions {
		fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Size)
	}

	jsonData, _ := json.MarshalIndent(listing, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(b.String()),
			mcp.NewTextContent(fmt.Sprintf("\nJSON data:\n```json\n%s\n```", string(jsonData))),
		},
	}, nil
}

func (s *MCPServer) handlePayloadExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	payloadPath, err := requireString(args, "payload_path")
	if err != nil {
		return nil, err
	}
	return outputResult(s.app.ExtractPayload(payloadPath, optionalString(args, "output_dir"), stringList(args, "partitions")))
}
