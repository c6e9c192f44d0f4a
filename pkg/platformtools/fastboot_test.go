package platformtools

import (
	"context"
	"reflect"
	"testing"

	"DroidKit/pkg/toolexec"
	"DroidKit/pkg/types"
)

func TestClient_FastbootDevices(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("fastboot devices", succeed("0A1B2C\tfastboot\n"))
	c := newTestClient(t, f)

	got, err := c.FastbootDevices(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []types.Device{{Serial: "0A1B2C", Status: "fastboot"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FastbootDevices() = %+v, want %+v", got, want)
	}
}

func TestClient_GetVarReadsStderr(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("fastboot getvar", toolexec.FakeResponse{Result: toolexec.Result{
		Success: true,
		Stderr:  "current-slot: a\nFinished. Total time: 0.001s\n",
	}})
	c := newTestClient(t, f)

	out, err := c.GetVar(context.Background(), "", "current-slot")
	if err != nil {
		t.Fatal(err)
	}
	if out != "current-slot: a\nFinished. Total time: 0.001s\n" {
		t.Errorf("GetVar() = %q", out)
	}
}

func TestClient_FlashFailure(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	f.On("fastboot flash", fail("FAILED (remote: 'Partition not found')"))
	c := newTestClient(t, f)

	_, err := c.Flash(context.Background(), "", "bogus", "bogus.img")
	if err == nil || err.Error() != "FAILED (remote: 'Partition not found')" {
		t.Errorf("Flash() error = %v", err)
	}
}

func TestClient_FastbootOperations(t *testing.T) {
	f := &toolexec.FakeSpawner{}
	c := newTestClient(t, f)
	ctx := context.Background()

	steps := []func() (string, error){
		func() (string, error) { return c.Flash(ctx, "f1", "boot", "boot.img") },
		func() (string, error) { return c.FastbootReboot(ctx, "", "") },
		func() (string, error) { return c.FastbootReboot(ctx, "", "bootloader") },
		func() (string, error) { return c.Unlock(ctx, "") },
		func() (string, error) { return c.SetActive(ctx, "", "b") },
		func() (string, error) { return c.Erase(ctx, "", "userdata") },
	}
	for _, step := range steps {
		if _, err := step(); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{
		"fastboot -s f1 flash boot boot.img",
		"fastboot reboot",
		"fastboot reboot bootloader",
		"fastboot flashing unlock",
		"fastboot set_active b",
		"fastboot erase userdata",
	}
	if got := callStrings(f); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %q, want %q", got, want)
	}
}
