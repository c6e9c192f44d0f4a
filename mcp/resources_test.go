package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// Helper to create a ReadResourceRequest
func makeResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// Helper to get text from resource contents
func getResourceText(contents []mcp.ResourceContents) string {
	if len(contents) == 0 {
		return ""
	}
	if tc, ok := contents[0].(mcp.TextResourceContents); ok {
		return tc.Text
	}
	return ""
}

func TestHandleDevicesResource_Success(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.SetupWithDevices(SampleDevice("device1"), SampleDevice("device2"))
	server := NewMCPServer(mock)

	contents, err := server.handleDevicesResource(context.Background(), makeResourceRequest("droidkit://devices"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var devices []Device
	if err := json.Unmarshal([]byte(getResourceText(contents)), &devices); err != nil {
		t.Fatalf("Result should be valid JSON: %v", err)
	}
	if len(devices) != 2 || devices[1].Serial != "device2" {
		t.Errorf("unexpected devices: %+v", devices)
	}
	if tc := contents[0].(mcp.TextResourceContents); tc.URI != "droidkit://devices" || tc.MIMEType != "application/json" {
		t.Errorf("unexpected metadata: %+v", tc)
	}
}

func TestHandleDevicesResource_Error(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.SetupWithError("GetDevices", ErrDeviceOffline)
	server := NewMCPServer(mock)

	if _, err := server.handleDevicesResource(context.Background(), makeResourceRequest("droidkit://devices")); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestHandleToolsResource(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.ToolStatusResult = []ToolStatus{
		{Name: "adb", Path: "/opt/droidkit/tools/adb", Bundled: true},
		{Name: "fastboot", Path: "fastboot", Bundled: false},
	}
	server := NewMCPServer(mock)

	contents, err := server.handleToolsResource(context.Background(), makeResourceRequest("droidkit://tools"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var status []ToolStatus
	if err := json.Unmarshal([]byte(getResourceText(contents)), &status); err != nil {
		t.Fatalf("Result should be valid JSON: %v", err)
	}
	if len(status) != 2 || !status[0].Bundled || status[1].Bundled {
		t.Errorf("unexpected status: %+v", status)
	}
}
