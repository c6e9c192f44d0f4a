package platformtools

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"DroidKit/pkg/shellguard"
	"DroidKit/pkg/toolexec"
	"DroidKit/pkg/types"
)

func TestClient_Devices(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb devices", succeed("List of devices attached\nabc\tdevice\nxyz\tunauthorized\n"))
	c := newTestClient(t, f)

	got, err := c.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices() error: %v", err)
	}
	want := []types.Device{{Serial: "abc", Status: "device"}, {Serial: "xyz", Status: "unauthorized"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Devices() = %+v, want %+v", got, want)
	}
}

func TestClient_ShellRejectsUnsafeBeforeSpawning(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	c := newTestClient(t, f)

	_, err := c.Shell(context.Background(), "abc", "ls; reboot")
	var unsafe *shellguard.UnsafeCommandError
	if !errors.As(err, &unsafe) {
		t.Fatalf("expected UnsafeCommandError, got %v", err)
	}
	if len(f.Calls()) != 0 {
		t.Errorf("no process should be spawned, got %v", callStrings(f))
	}
}

func TestClient_ShellEscalated(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb -s abc shell su -c", succeed("uid=0(root)"))
	c := newTestClient(t, f)

	out, err := c.Shell(context.Background(), "abc", "su -c 'id; whoami'")
	if err != nil {
		t.Fatalf("Shell() error: %v", err)
	}
	if out != "uid=0(root)" {
		t.Errorf("Shell() = %q", out)
	}
	calls := f.Calls()
	if len(calls) != 1 || len(calls[0].Args) != 4 || calls[0].Args[3] != "su -c 'id; whoami'" {
		t.Errorf("command must be passed as one argument, got %+v", calls)
	}
}

func TestClient_ShellEmpty(t *testing.T) {
	c := newTestClient(t, &toolexec.FakeSpawner{})
	if _, err := c.Shell(context.Background(), "", "   "); err == nil {
		t.Error("empty shell command should fail")
	}
}

func TestClient_InstallFailureSurfacesStdout(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb install", failOnStdout("Failure [INSTALL_FAILED_VERSION_DOWNGRADE]"))
	c := newTestClient(t, f)

	_, err := c.Install(context.Background(), "", "app.apk")
	if err == nil || err.Error() != "Failure [INSTALL_FAILED_VERSION_DOWNGRADE]" {
		t.Errorf("Install() error = %v", err)
	}
}

func TestClient_ConnectRetriesOnce(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.OnSequence("adb connect",
		succeed("failed to connect to 10.0.0.2:5555"),
		succeed("connected to 10.0.0.2:5555"),
	)
	slept := 0
	c := newTestClient(t, f, WithSleep(func(time.Duration) { slept++ }))

	out, err := c.Connect(context.Background(), "10.0.0.2:5555")
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if out != "connected to 10.0.0.2:5555" {
		t.Errorf("Connect() = %q", out)
	}
	if len(f.Calls()) != 2 || slept != 1 {
		t.Errorf("expected one retry, got %d calls and %d sleeps", len(f.Calls()), slept)
	}
}

func TestClient_ConnectNoRetryOnSuccess(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("adb connect", succeed("already connected to 10.0.0.2:5555"))
	c := newTestClient(t, f)

	if _, err := c.Connect(context.Background(), "10.0.0.2:5555"); err != nil {
		t.Fatal(err)
	}
	if len(f.Calls()) != 1 {
		t.Errorf("expected a single call, got %v", callStrings(f))
	}
}

func TestClient_ConnectRequiresAddress(t *testing.T) {
	c := newTestClient(t, &toolexec.FakeSpawner{})
	if _, err := c.Connect(context.Background(), ""); err == nil {
		t.Error("empty address should fail")
	}
}

func TestClient_LogcatAndReboot(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	c := newTestClient(t, f)
	ctx := context.Background()

	if _, err := c.Logcat(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ClearLogcat(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Reboot(ctx, "abc", "bootloader"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Disconnect(ctx, ""); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"adb -s abc logcat -d -v time -t 100",
		"adb logcat -c",
		"adb -s abc reboot bootloader",
		"adb disconnect",
	}
	if got := callStrings(f); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}
