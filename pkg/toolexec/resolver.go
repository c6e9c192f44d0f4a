// Package toolexec locates the external Android tools and runs them.
//
// A Resolver turns a logical tool name ("adb", "fastboot", "aapt") into the
// path to execute, preferring copies bundled next to the application over
// anything found on the system PATH. A Runner spawns the resolved path through
// a Spawner and collapses the outcome into stdout or an error.
package toolexec

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultToolsDir is the folder, relative to the base directory and to the
// working directory, where bundled tools are expected.
const DefaultToolsDir = "tools"

// Resolver maps logical tool names to executable paths.
// It is safe for concurrent use; it holds no mutable state.
type Resolver struct {
	baseDir string
	goos    string
	exists  func(path string) bool
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithGOOS overrides the platform used to pick the executable extension.
func WithGOOS(goos string) ResolverOption {
	return func(r *Resolver) {
		r.goos = goos
	}
}

// WithExistsFunc replaces the filesystem existence check.
func WithExistsFunc(fn func(path string) bool) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.exists = fn
		}
	}
}

// NewResolver creates a resolver rooted at baseDir, normally the directory
// holding the running executable. An empty baseDir skips the app-relative
// candidates.
func NewResolver(baseDir string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseDir: baseDir,
		goos:    runtime.GOOS,
		exists:  fileExists,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseDir returns the directory the resolver was rooted at.
func (r *Resolver) BaseDir() string {
	return r.baseDir
}

// ExecutableName returns tool with the platform executable extension.
func (r *Resolver) ExecutableName(tool string) string {
	if r.goos == "windows" && !strings.EqualFold(filepath.Ext(tool), ".exe") {
		return tool + ".exe"
	}
	return tool
}

// Candidates returns the ordered list of locations tried for tool.
//
// extraRoots are sub-directories (e.g. "tools/scrcpy") searched before the
// default tools directory. The order is:
//
//	<base>/<root>/<tool>.exe, <base>/<root>/<tool>   for each root, then tools
//	<base>/<tool>.exe
//	./<root>/<tool>.exe                              for each root, then tools
//	./<tool>.exe
//	<tool>
//
// ".exe" is only added on Windows. Duplicates are dropped, so on other
// platforms the extension and extensionless entries collapse into one.
func (r *Resolver) Candidates(tool string, extraRoots ...string) []string {
	exe := r.ExecutableName(tool)
	roots := make([]string, 0, len(extraRoots)+1)
	roots = append(roots, extraRoots...)
	roots = append(roots, DefaultToolsDir)

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	if r.baseDir != "" {
		for _, root := range roots {
			add(filepath.Join(r.baseDir, root, exe))
			add(filepath.Join(r.baseDir, root, tool))
		}
		add(filepath.Join(r.baseDir, exe))
	}
	for _, root := range roots {
		add(filepath.Join(root, exe))
	}
	// keep the ./ prefix; a bare name would be looked up on PATH instead
	add("." + string(filepath.Separator) + exe)
	add(tool)
	return out
}

// Lookup returns the first existing candidate for tool. When nothing exists
// it returns the bare name and false so the OS search path gets a chance.
func (r *Resolver) Lookup(tool string, extraRoots ...string) (string, bool) {
	candidates := r.Candidates(tool, extraRoots...)
	for _, p := range candidates[:len(candidates)-1] {
		if r.exists(p) {
			return p, true
		}
	}
	return tool, false
}

// Resolve is Lookup without the found flag. It never fails.
func (r *Resolver) Resolve(tool string, extraRoots ...string) string {
	p, _ := r.Lookup(tool, extraRoots...)
	return p
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
