package platformtools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"DroidKit/pkg/parse"
	"DroidKit/pkg/toolexec"
)

func TestClient_ExtractAPK(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb -s abc shell pm path", succeed("package:/data/app/com.example.app-1/base.apk\n"))
	c := newTestClient(t, f)

	got, err := c.ExtractAPK(context.Background(), "abc", "com.example.app", "apks")
	if err != nil {
		t.Fatalf("ExtractAPK() error: %v", err)
	}
	want := filepath.Join("apks", "com.example.app.apk")
	if got != want {
		t.Errorf("ExtractAPK() = %q, want %q", got, want)
	}
	calls := callStrings(f)
	if len(calls) != 2 || calls[1] != "adb -s abc pull /data/app/com.example.app-1/base.apk "+want {
		t.Errorf("calls = %q", calls)
	}
}

func TestClient_ExtractAPKNotFound(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb shell pm path", succeed(""))
	c := newTestClient(t, f)

	_, err := c.ExtractAPK(context.Background(), "", "com.missing", "")
	if !errors.Is(err, parse.ErrPackagePathNotFound) {
		t.Errorf("ExtractAPK() error = %v, want ErrPackagePathNotFound", err)
	}
	if len(f.Calls()) != 1 {
		t.Error("pull must not run when the path was not found")
	}
}

func TestClient_ExtractAPKRejectsBadName(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	c := newTestClient(t, f)
	if _, err := c.ExtractAPK(context.Background(), "", "x;reboot", ""); err == nil {
		t.Fatal("expected invalid package name error")
	}
	if len(f.Calls()) != 0 {
		t.Error("nothing should be spawned for an invalid name")
	}
}

func TestClient_AnalyzeAPKFirstWorkingCandidate(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	// tools/aapt does not start, ./aapt prints nothing, bare aapt works
	f.OnSequence("aapt dump badging",
		missing(),
		succeed(""),
		succeed("package: name='com.example.app' versionCode='12' versionName='1.2.3'\n"),
	)
	c := newTestClient(t, f)

	report, err := c.AnalyzeAPK(context.Background(), "app.apk")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report, "com.example.app") {
		t.Errorf("report = %q", report)
	}
	if n := len(f.Calls()); n != 3 {
		t.Errorf("expected all three candidates to be tried, got %d", n)
	}
}

func TestClient_AnalyzeAPKFallsBackToFileInfo(t *testing.T) {
	dir := t.TempDir()
	apk := filepath.Join(dir, "demo.apk")
	if err := os.WriteFile(apk, make([]byte, 3*1024*1024/2), 0644); err != nil {
		t.Fatal(err)
	}
	f := &toolexec.FakeSpawner{}
	f.On("aapt", missing())
	c := newTestClient(t, f)

	report, err := c.AnalyzeAPK(context.Background(), apk)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"demo.apk", "1.50 MB", "aapt"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestClient_AnalyzeAPKMissingFile(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("aapt", missing())
	c := newTestClient(t, f)
	if _, err := c.AnalyzeAPK(context.Background(), filepath.Join(t.TempDir(), "nope.apk")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestClient_BadgingNoAapt(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("aapt", missing())
	c := newTestClient(t, f)

	if _, err := c.Badging(context.Background(), "app.apk"); !errors.Is(err, ErrNoAapt) {
		t.Errorf("err = %v, want ErrNoAapt", err)
	}
}

type mapReports map[string]string

func (m mapReports) Get(key string) (string, bool) { r, ok := m[key]; return r, ok }
func (m mapReports) Put(key, report string) { m[key] = report }

func TestClient_AnalyzeAPKUsesReportCache(t *testing.T) {
	apk := filepath.Join(t.TempDir(), "app.apk")
	if err := os.WriteFile(apk, []byte("apk"), 0644); err != nil {
		t.Fatal(err)
	}
	f := &toolexec.FakeSpawner{}
	f.On("aapt dump badging", succeed("package: name='com.example.app' versionCode='3' versionName='0.3'\n"))
	reports := mapReports{}
	c := newTestClient(t, f, WithReportCache(reports))

	first, err := c.AnalyzeAPK(context.Background(), apk)
	if err != nil {
		t.Fatal(err)
	}
	spawned := len(f.Calls())
	second, err := c.AnalyzeAPK(context.Background(), apk)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || len(reports) != 1 {
		t.Errorf("reports = %v", reports)
	}
	if len(f.Calls()) != spawned {
		t.Error("cached analysis should not run aapt")
	}
}

func TestClient_AnalyzeAPKFileReportNotCached(t *testing.T) {
	apk := filepath.Join(t.TempDir(), "demo.apk")
	if err := os.WriteFile(apk, []byte("apk"), 0644); err != nil {
		t.Fatal(err)
	}
	f := &toolexec.FakeSpawner{}
	f.On("aapt", missing())
	reports := mapReports{}
	c := newTestClient(t, f, WithReportCache(reports))

	if _, err := c.AnalyzeAPK(context.Background(), apk); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 0 {
		t.Errorf("file-only report was cached: %v", reports)
	}
}
