package main

import (
	"context"
	"embed"
	"encoding/json"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
)

//go:embed all:frontend/dist
var assets embed.FS

// version is set with -ldflags "-X main.version=..."
var version = "dev"

var mcpFlag bool

var rootCmd = &cobra.Command{
	Use:   "droidkit",
	Short: "Desktop toolbox for adb, fastboot, scrcpy and OTA payloads",
	// macOS may pass -psn_* process serial arguments to GUI apps
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		if mcpFlag {
			return runMCP(app)
		}
		return runDesktop(app)
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print where each tool resolves and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(app.GetToolStatus())
	},
}

func init() {
	rootCmd.Flags().BoolVar(&mcpFlag, "mcp", false, "serve the Model Context Protocol over stdio instead of opening a window")
	rootCmd.AddCommand(toolsCmd)
}

// bootstrap loads the configuration and reconfigures logging from it.
func bootstrap() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := InitLogger(LogConfigFor(cfg)); err != nil {
		LogWarn("main").Err(err).Msg("File logging disabled")
	}
	return NewApp(cfg, version), nil
}

func runMCP(app *App) error {
	app.mcpMode = true
	app.startup(context.Background())
	defer app.shutdown(context.Background())
	return StartMCPServer(app)
}

func runDesktop(app *App) error {
	var applicationMenu *menu.Menu
	if runtime.GOOS == "darwin" {
		applicationMenu = menu.NewMenu()
		applicationMenu.Append(menu.AppMenu())
		applicationMenu.Append(menu.EditMenu())
		applicationMenu.Append(menu.WindowMenu())
	}

	return wails.Run(&options.App{
		Title:     "DroidKit",
		Width:     1200,
		Height:    760,
		MinWidth:  960,
		MinHeight: 640,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:             applicationMenu,
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		DragAndDrop: &options.DragAndDrop{
			EnableFileDrop:     true,
			DisableWebViewDrop: true,
		},
		Mac: &mac.Options{
			TitleBar:             mac.TitleBarHiddenInset(),
			Appearance:           mac.NSAppearanceNameDarkAqua,
			WebviewIsTransparent: true,
			About: &mac.AboutInfo{
				Title:   "DroidKit",
				Message: "adb, fastboot and scrcpy in one window",
			},
		},
		Bind: []interface{}{
			app,
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		LogError("main").Err(err).Msg("DroidKit exited with error")
		CloseLogger()
		os.Exit(1)
	}
}
