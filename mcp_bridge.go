package main

import (
	"DroidKit/mcp"
)

// App already speaks the shared pkg/types, so it is the bridge itself.
var _ mcp.DroidKitApp = (*App)(nil)

// StartMCPServer serves app over stdio until stdin closes, the process is
// interrupted or the app shuts down.
func StartMCPServer(app *App) error {
	server := mcp.NewMCPServer(app, mcp.WithLogger(ModuleLogger("mcp")))
	app.mcpServer = server
	if err := server.Start(app.context()); err != nil {
		LogError("mcp").Err(err).Msg("MCP server stopped with error")
		return err
	}
	return nil
}
