// Package mcp exposes DroidKit's device operations to AI clients over the
// Model Context Protocol (stdio transport).
package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"DroidKit/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

type (
	Device         = types.Device
	Partition      = types.Partition
	PayloadListing = types.PayloadListing
	ToolStatus     = types.ToolStatus
)

// DroidKitApp is the set of App operations reachable from MCP tools.
type DroidKitApp interface {
	// Device bridge
	GetDevices() ([]Device, error)
	AdbShell(device, command string) (string, error)
	AdbInstall(device, apkPath string) (string, error)
	AdbUninstall(device, packageName string) (string, error)
	AdbPush(device, localPath, remotePath string) (string, error)
	AdbPull(device, remotePath, localPath string) (string, error)
	AdbReboot(device, mode string) (string, error)
	AdbConnect(address string) (string, error)
	AdbDisconnect(address string) (string, error)
	AdbSideload(device, zipPath string) (string, error)
	StartLogcat(device string) (string, error)
	ClearLogcat(device string) (string, error)

	// Flashing
	FastbootDevices() ([]Device, error)
	FastbootFlash(device, partition, imagePath string) (string, error)
	FastbootReboot(device, mode string) (string, error)
	FastbootUnlock(device string) (string, error)
	FastbootGetVar(device, name string) (string, error)
	FastbootSetActive(device, slot string) (string, error)
	FastbootErase(device, partition string) (string, error)

	// Mirroring
	StartScrcpy(device string, extraArgs []string) error
	StartRecord(device, outputDir string) (string, error)
	TakeScreenshot(device, outputDir string) (string, error)

	// Packages and payloads
	ExtractAPK(device, packageName, outputDir string) (string, error)
	AnalyzeAPK(apkPath string) (string, error)
	ParsePayload(payloadPath string) (PayloadListing, error)
	ExtractPayload(payloadPath, outputDir string, partitions []string) (string, error)

	GetDataDir() string
	GetToolStatus() []ToolStatus
	GetAppVersion() string
}

// confirmFunc asks the client's user whether a destructive operation may run.
type confirmFunc func(ctx context.Context, operation, details string) (bool, error)

// MCPServer wraps the MCP server and provides DroidKit-specific functionality
type MCPServer struct {
	app       DroidKitApp
	server    *server.MCPServer
	logger    zerolog.Logger
	confirm   confirmFunc
	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
}

// Option customizes an MCPServer.
type Option func(*MCPServer)

// WithLogger sets the logger for server lifecycle messages.
func WithLogger(l zerolog.Logger) Option {
	return func(s *MCPServer) {
		s.logger = l
	}
}

// NewMCPServer creates a new MCP server for app
func NewMCPServer(app DroidKitApp, opts ...Option) *MCPServer {
	mcpServer := server.NewMCPServer(
		"droidkit",
		app.GetAppVersion(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithElicitation(),
		server.WithLogging(),
	)

	s := &MCPServer{
		app:    app,
		server: mcpServer,
		logger: zerolog.Nop(),
	}
	s.confirm = s.requestConfirmation
	for _, opt := range opts {
		opt(s)
	}

	s.registerDeviceTools()
	s.registerFastbootTools()
	s.registerScreenTools()
	s.registerPackageTools()
	s.registerResources()

	return s
}

// registerResources registers all MCP resources
func (s *MCPServer) registerResources() {
	s.server.AddResource(
		mcp.NewResource(
			"droidkit://devices",
			"Devices attached through adb",
			mcp.WithMIMEType("application/json"),
		),
		s.handleDevicesResource,
	)

	s.server.AddResource(
		mcp.NewResource(
			"droidkit://tools",
			"Resolved paths of adb, fastboot, scrcpy, aapt and the payload dumpers",
			mcp.WithMIMEType("application/json"),
		),
		s.handleToolsResource,
	)
}

// Start serves on stdio until ctx is cancelled, stdin closes, Stop is called
// or the process is interrupted.
func (s *MCPServer) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads requests from in and writes responses to out. Cancellation
// (through ctx or Stop) is a clean shutdown and returns nil.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("MCP server is already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.isRunning = true
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.cancel = nil
		s.mu.Unlock()
		cancel()
	}()

	s.logger.Info().Str("version", s.app.GetAppVersion()).Msg("MCP server listening on stdio")
	err := server.NewStdioServer(s.server).Listen(ctx, in, out)
	if ctx.Err() != nil {
		s.logger.Info().Msg("MCP server stopped")
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("MCP server error")
	}
	return err
}

// Stop ends a running Serve. It is a no-op when the server is not running.
func (s *MCPServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// IsRunning returns whether the MCP server is running
func (s *MCPServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// requestConfirmation asks the client, through elicitation, to confirm a
// destructive operation.
func (s *MCPServer) requestConfirmation(ctx context.Context, operation, details string) (bool, error) {
	elicitationRequest := mcp.ElicitationRequest{
		Params: mcp.ElicitationParams{
			Message: fmt.Sprintf("Destructive operation: %s\n\n%s\n\nProceed?", operation, details),
			RequestedSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"confirm": map[string]any{
						"type":        "boolean",
						"description": "Confirm to proceed with this operation",
					},
				},
				"required": []string{"confirm"},
			},
		},
	}

	result, err := s.server.RequestElicitation(ctx, elicitationRequest)
	if err != nil {
		return false, fmt.Errorf("failed to request confirmation: %w", err)
	}

	if result.Action != mcp.ElicitationResponseActionAccept {
		return false, nil
	}

	data, ok := result.Content.(map[string]any)
	if !ok {
		return false, fmt.Errorf("unexpected response format")
	}

	confirm, ok := data["confirm"].(bool)
	if !ok {
		return false, fmt.Errorf("invalid confirmation response")
	}

	return confirm, nil
}

// confirmed runs the confirmation prompt. A nil result means go ahead;
// otherwise it is the reply to send back.
func (s *MCPServer) confirmed(ctx context.Context, operation, details string) (*mcp.CallToolResult, error) {
	ok, err := s.confirm(ctx, operation, details)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info().Str("operation", operation).Msg("Declined by user")
		return textResult(operation + " cancelled by user"), nil
	}
	return nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// outputResult turns a tool's output or failure into a reply. Failures are
// reported to the model as error results rather than protocol errors.
func outputResult(out string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if out == "" {
		out = "(no output)"
	}
	return textResult(out), nil
}

func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func optionalString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func stringList(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
