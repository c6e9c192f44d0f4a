package platformtools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"DroidKit/pkg/cache"
	"DroidKit/pkg/parse"
	"DroidKit/pkg/shellguard"
	"DroidKit/pkg/toolexec"
)

// ExtractAPK copies the base APK of an installed package to
// <outputDir>/<pkg>.apk and returns that path.
func (c *Client) ExtractAPK(ctx context.Context, device, pkg, outputDir string) (string, error) {
	if err := shellguard.ValidatePackageName(pkg); err != nil {
		return "", err
	}
	out, err := c.adb(ctx, PackagePathArgs(device, pkg))
	if err != nil {
		return "", err
	}
	remote, err := parse.PackagePath(out)
	if err != nil {
		return "", fmt.Errorf("%s: %w", pkg, err)
	}
	local := localPath(outputDir, pkg+".apk")
	if _, err := c.adb(ctx, PullArgs(device, remote, local)); err != nil {
		return "", err
	}
	return local, nil
}

// ErrNoAapt is returned by Badging when no aapt candidate produced output.
var ErrNoAapt = errors.New("no working aapt found")

// AnalyzeAPK summarizes an APK with `aapt dump badging`. Without a working
// aapt the report only has the file name and size. With a report cache,
// aapt reports are reused until the file changes; file-only reports are
// never cached.
func (c *Client) AnalyzeAPK(ctx context.Context, apk string) (string, error) {
	key, keyErr := cache.Key(apk)
	cacheable := keyErr == nil && c.reports != nil
	if cacheable {
		if report, ok := c.reports.Get(key); ok {
			c.logger.Debug().Str("apk", apk).Msg("aapt report served from cache")
			return report, nil
		}
	}

	report, err := c.Badging(ctx, apk)
	if err == nil {
		if cacheable {
			c.reports.Put(key, report)
		}
		return report, nil
	}
	return FileReport(apk)
}

// Badging runs every aapt candidate in resolver order until one succeeds and
// prints something, and returns its output as a readable report.
func (c *Client) Badging(ctx context.Context, apk string) (string, error) {
	for _, path := range c.runner.Resolver().Candidates(Aapt) {
		out, err := c.runner.Exec(ctx, toolexec.Command{Path: path, Args: BadgingArgs(apk)})
		if err != nil {
			c.logger.Debug().Str("aapt", path).Err(err).Msg("aapt candidate failed")
			continue
		}
		if strings.TrimSpace(out) == "" {
			continue
		}
		return parse.BadgingReport(out), nil
	}
	return "", ErrNoAapt
}

// FileReport describes an APK from its file name and size alone.
func FileReport(apk string) (string, error) {
	info, err := os.Stat(apk)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", apk, err)
	}
	return basicReport(filepath.Base(apk), info.Size()), nil
}

func basicReport(name string, size int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", name)
	fmt.Fprintf(&b, "Size: %.2f MB\n", float64(size)/1024/1024)
	b.WriteString("\nFull analysis needs aapt in the tools directory.\n")
	return b.String()
}
