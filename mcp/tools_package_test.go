package mcp

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestHandleApkExtract(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.SetupWithOutput("ExtractAPK", "/data/apk/com.example.app.apk: 1 file pulled")
	server := NewMCPServer(mock)

	result, err := server.handleApkExtract(context.Background(), makeToolRequest(map[string]interface{}{
		"device_id":    "device1",
		"package_name": "com.example.app",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(getTextContent(result), "1 file pulled") {
		t.Errorf("unexpected output: %q", getTextContent(result))
	}

	if _, err := server.handleApkExtract(context.Background(), makeToolRequest(nil)); err == nil {
		t.Error("Expected error for missing package_name")
	}
}

func TestHandleApkAnalyze(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.SetupWithOutput("AnalyzeAPK", "Package: com.example.app\nVersion: 1.0\n")
	server := NewMCPServer(mock)

	result, err := server.handleApkAnalyze(context.Background(), makeToolRequest(map[string]interface{}{
		"apk_path": "/tmp/app.apk",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(getTextContent(result), "Package: com.example.app") {
		t.Errorf("unexpected output: %q", getTextContent(result))
	}
}

func TestHandlePayloadList_Real(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.ParsePayloadResult = PayloadListing{
		Partitions: []Partition{{Name: "boot", Size: "100 MB"}, {Name: "system", Size: "2.1 GB"}},
		Source:     "payload-dumper-go",
	}
	server := NewMCPServer(mock)

	result, err := server.handlePayloadList(context.Background(), makeToolRequest(map[string]interface{}{
		"payload_path": "/tmp/payload.bin",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text := getTextContent(result)
	if !strings.Contains(text, "2 partition(s) listed by payload-dumper-go") {
		t.Errorf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "- system (2.1 GB)") {
		t.Errorf("missing partition line: %q", text)
	}
	if len(result.Content) != 2 {
		t.Errorf("expected text plus JSON content, got %d items", len(result.Content))
	}
}

func TestHandlePayloadList_PlaceholderIsLabelled(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.ParsePayloadResult = PayloadListing{
		Partitions:  []Partition{{Name: "boot", Size: "67.2 MB"}},
		Source:      "placeholder",
		Placeholder: true,
	}
	server := NewMCPServer(mock)

	result, err := server.handlePayloadList(context.Background(), makeToolRequest(map[string]interface{}{
		"payload_path": "/tmp/payload.bin",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(getTextContent(result), "SAMPLE partitions") {
		t.Errorf("placeholder data must be labelled, got %q", getTextContent(result))
	}
}

func TestHandlePayloadList_Error(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.SetupWithError("ParsePayload", errors.New("payload path cannot be empty"))
	server := NewMCPServer(mock)

	result, err := server.handlePayloadList(context.Background(), makeToolRequest(map[string]interface{}{
		"payload_path": "/tmp/payload.bin",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected IsError result")
	}
}

func TestHandlePayloadExtract(t *testing.T) {
	mock := NewMockDroidKitApp()
	server := NewMCPServer(mock)

	if _, err := server.handlePayloadExtract(context.Background(), makeToolRequest(map[string]interface{}{
		"payload_path": "/tmp/payload.bin",
		"output_dir":   "/tmp/out",
		"partitions":   []interface{}{"boot", "vbmeta"},
	})); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	call := mock.GetLastCallByMethod("ExtractPayload")
	if call == nil {
		t.Fatal("ExtractPayload should be called")
	}
	if call.Args[0] != "/tmp/payload.bin" || call.Args[1] != "/tmp/out" {
		t.Errorf("unexpected args: %v", call.Args)
	}
	if got := call.Args[2].([]string); !reflect.DeepEqual(got, []string{"boot", "vbmeta"}) {
		t.Errorf("partitions = %v", got)
	}
}

func TestHandlePayloadExtract_BothToolsMissing(t *testing.T) {
	mock := NewMockDroidKitApp()
	mock.SetupWithError("ExtractPayload", errors.New("extraction failed: install payload-dumper-go or payload_dumper\nNo module named payload_dumper"))
	server := NewMCPServer(mock)

	result, err := server.handlePayloadExtract(context.Background(), makeToolRequest(map[string]interface{}{
		"payload_path": "/tmp/payload.bin",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError || !strings.HasPrefix(getTextContent(result), "extraction failed") {
		t.Errorf("unexpected result: %+v", result)
	}
}
