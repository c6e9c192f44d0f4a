package platformtools

import "strings"

// withDevice prefixes args with the -s selector when a device is given.
// adb, fastboot and scrcpy all accept the same flag.
func withDevice(device string, args ...string) []string {
	out := make([]string, 0, len(args)+2)
	if device != "" {
		out = append(out, "-s", device)
	}
	return append(out, args...)
}

// optional appends v when it is not empty.
func optional(args []string, v string) []string {
	if v == "" {
		return args
	}
	return append(args, v)
}

// DevicesArgs lists attached devices: adb devices.
func DevicesArgs() []string {
	return []string{"devices"}
}

// ShellArgs passes cmd as a single argument; adb hands it to the remote
// shell as one command line.
func ShellArgs(device, cmd string) []string {
	return withDevice(device, "shell", cmd)
}

// InstallArgs installs apk, replacing an existing install.
func InstallArgs(device, apk string) []string {
	return withDevice(device, "install", "-r", apk)
}

// UninstallArgs removes pkg from the device.
func UninstallArgs(device, pkg string) []string {
	return withDevice(device, "uninstall", pkg)
}

// PushArgs copies local to remote on the device.
func PushArgs(device, local, remote string) []string {
	return withDevice(device, "push", local, remote)
}

// PullArgs copies remote from the device to local.
func PullArgs(device, remote, local string) []string {
	return withDevice(device, "pull", remote, local)
}

// RebootArgs reboots normally, or into mode ("bootloader", "recovery",
// "sideload", "fastboot") when set.
func RebootArgs(device, mode string) []string {
	return withDevice(device, optional([]string{"reboot"}, mode)...)
}

// ConnectArgs connects to a network device at host[:port].
func ConnectArgs(address string) []string {
	return []string{"connect", address}
}

// DisconnectArgs disconnects every network device when address is empty.
func DisconnectArgs(address string) []string {
	return optional([]string{"disconnect"}, address)
}

// SideloadArgs sends an OTA zip to a device in sideload mode.
func SideloadArgs(device, zip string) []string {
	return withDevice(device, "sideload", zip)
}

// LogcatDumpArgs dumps the last 100 buffered lines and exits.
func LogcatDumpArgs(device string) []string {
	return withDevice(device, "logcat", "-d", "-v", "time", "-t", "100")
}

// LogcatClearArgs clears the log buffers.
func LogcatClearArgs(device string) []string {
	return withDevice(device, "logcat", "-c")
}

// ScreencapArgs writes a PNG screenshot to remote on the device.
func ScreencapArgs(device, remote string) []string {
	return withDevice(device, "shell", "screencap", "-p", remote)
}

// RemoveRemoteArgs deletes remote on the device.
func RemoveRemoteArgs(device, remote string) []string {
	return withDevice(device, "shell", "rm", remote)
}

// PackagePathArgs asks the package manager where pkg is installed.
func PackagePathArgs(device, pkg string) []string {
	return withDevice(device, "shell", "pm", "path", pkg)
}

// FastbootDevicesArgs lists devices in fastboot mode.
func FastbootDevicesArgs() []string {
	return []string{"devices"}
}

// FlashArgs writes image to partition.
func FlashArgs(device, partition, image string) []string {
	return withDevice(device, "flash", partition, image)
}

// FastbootRebootArgs reboots normally, or into mode ("bootloader",
// "recovery", "fastboot") when set.
func FastbootRebootArgs(device, mode string) []string {
	return withDevice(device, optional([]string{"reboot"}, mode)...)
}

// UnlockArgs unlocks the bootloader.
func UnlockArgs(device string) []string {
	return withDevice(device, "flashing", "unlock")
}

// GetVarArgs reads a bootloader variable. fastboot prints it on stderr.
func GetVarArgs(device, name string) []string {
	return withDevice(device, "getvar", name)
}

// SetActiveArgs marks slot ("a" or "b") active.
func SetActiveArgs(device, slot string) []string {
	return withDevice(device, "set_active", slot)
}

// EraseArgs wipes partition.
func EraseArgs(device, partition string) []string {
	return withDevice(device, "erase", partition)
}

// MirrorArgs starts scrcpy with extra flags after the device selector.
func MirrorArgs(device string, extra []string) []string {
	return withDevice(device, extra...)
}

// RecordArgs starts scrcpy recording into output.
func RecordArgs(device, output string) []string {
	return withDevice(device, "--record", output)
}

// BadgingArgs dumps the manifest summary of apk with aapt.
func BadgingArgs(apk string) []string {
	return []string{"dump", "badging", apk}
}

// PayloadListArgs lists partitions with payload-dumper-go.
func PayloadListArgs(payload string) []string {
	return []string{"-l", payload}
}

// PayloadListPythonArgs lists partitions with the python payload_dumper module.
func PayloadListPythonArgs(payload string) []string {
	return []string{"-m", "payload_dumper", "--list", payload}
}

// PayloadExtractArgs selects partitions with one comma separated -p.
// No partitions means extract everything.
func PayloadExtractArgs(payload, outDir string, partitions []string) []string {
	args := []string{"-o", outDir}
	if len(partitions) > 0 {
		args = append(args, "-p", strings.Join(partitions, ","))
	}
	return append(args, payload)
}

// PayloadExtractPythonArgs repeats -p once per partition.
func PayloadExtractPythonArgs(payload, outDir string, partitions []string) []string {
	args := []string{"-m", "payload_dumper", "-o", outDir}
	for _, p := range partitions {
		args = append(args, "-p", p)
	}
	return append(args, payload)
}
