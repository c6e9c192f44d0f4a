package platformtools

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"DroidKit/pkg/toolexec"
)

func TestClient_TakeScreenshot(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	c := newTestClient(t, f)

	got, err := c.TakeScreenshot(context.Background(), "abc", "shots")
	if err != nil {
		t.Fatalf("TakeScreenshot() error: %v", err)
	}
	want := filepath.Join("shots", "screenshot_1700000000.png")
	if got != want {
		t.Errorf("TakeScreenshot() = %q, want %q", got, want)
	}

	calls := callStrings(f)
	wantCalls := []string{
		"adb -s abc shell screencap -p /sdcard/screenshot.png",
		"adb -s abc pull /sdcard/screenshot.png " + want,
		"adb -s abc shell rm /sdcard/screenshot.png",
	}
	if !reflect.DeepEqual(calls, wantCalls) {
		t.Errorf("calls = %q, want %q", calls, wantCalls)
	}
}

func TestClient_TakeScreenshotCleanupFailureIgnored(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb shell rm", fail("rm: /sdcard/screenshot.png: Permission denied"))
	c := newTestClient(t, f)

	got, err := c.TakeScreenshot(context.Background(), "", "")
	if err != nil {
		t.Fatalf("cleanup failure must not surface, got %v", err)
	}
	if got != "screenshot_1700000000.png" {
		t.Errorf("TakeScreenshot() = %q", got)
	}
}

func TestClient_TakeScreenshotAbortsOnCaptureFailure(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb shell screencap", fail("error: no devices/emulators found"))
	c := newTestClient(t, f)

	if _, err := c.TakeScreenshot(context.Background(), "", ""); err == nil {
		t.Fatal("expected error")
	}
	if n := len(f.Calls()); n != 1 {
		t.Errorf("remaining steps must be skipped, got %d calls", n)
	}
}

func TestClient_StartRecord(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	c := newTestClient(t, f)

	path, err := c.StartRecord("abc", "videos")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("videos", "record_1700000000.mp4")
	if path != want {
		t.Errorf("StartRecord() = %q, want %q", path, want)
	}
	calls := f.Calls()
	if len(calls) != 1 || !calls[0].Started {
		t.Fatalf("expected one fire-and-forget launch, got %+v", calls)
	}
	if calls[0].String() != "scrcpy -s abc --record "+want {
		t.Errorf("launch = %q", calls[0].String())
	}
}

func TestClient_StartRecordLaunchFailure(t *testing.T) {
	f := &toolexec.FakeSpawner{StartErr: errors.New("not found")}
	c := newTestClient(t, f)
	if _, err := c.StartRecord("", ""); err == nil || !strings.Contains(err.Error(), "scrcpy") {
		t.Errorf("StartRecord() error = %v, want one naming scrcpy", err)
	}
}

func TestClient_StartScrcpyUsesBundledAdb(t *testing.T) {
	exists := func(p string) bool {
		return p == filepath.Join("/app", "tools", "adb") || p == filepath.Join("/app", "tools", "scrcpy", "scrcpy")
	}
	resolver := toolexec.NewResolver("/app", toolexec.WithGOOS("linux"), toolexec.WithExistsFunc(exists))
	f := &toolexec.FakeSpawner{}
	c := New(toolexec.NewRunner(resolver, toolexec.WithSpawner(f)))

	if err := c.StartScrcpy("abc", []string{"--turn-screen-off"}); err != nil {
		t.Fatal(err)
	}
	call := f.Calls()[0]
	if call.Path != filepath.Join("/app", "tools", "scrcpy", "scrcpy") {
		t.Errorf("scrcpy path = %q", call.Path)
	}
	if !reflect.DeepEqual(call.Args, []string{"-s", "abc", "--turn-screen-off"}) {
		t.Errorf("args = %q", call.Args)
	}
	if len(call.Env) != 1 || call.Env[0] != "ADB="+filepath.Join("/app", "tools", "adb") {
		t.Errorf("env = %q", call.Env)
	}
}
