package mcp

import (
	"errors"
	"sync"
)

// MockCall records a method call for verification
type MockCall struct {
	Method string
	Args   []interface{}
}

// MockDroidKitApp is a recording DroidKitApp for tests. String-returning
// methods answer from Outputs and every method fails with Errors[method]
// when set.
type MockDroidKitApp struct {
	mu    sync.Mutex
	Calls []MockCall

	Outputs map[string]string
	Errors  map[string]error

	GetDevicesResult      []Device
	FastbootDevicesResult []Device
	ParsePayloadResult    PayloadListing
	ToolStatusResult      []ToolStatus
	DataDir               string
	AppVersion            string
}

// NewMockDroidKitApp creates a mock with empty results
func NewMockDroidKitApp() *MockDroidKitApp {
	return &MockDroidKitApp{
		Calls:                 make([]MockCall, 0),
		Outputs:               make(map[string]string),
		Errors:                make(map[string]error),
		GetDevicesResult:      []Device{},
		FastbootDevicesResult: []Device{},
		ToolStatusResult:      []ToolStatus{},
		DataDir:               "/tmp/droidkit/data",
		AppVersion:            "1.0.0-test",
	}
}

func (m *MockDroidKitApp) recordCall(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// answer records the call and returns the configured output and error.
func (m *MockDroidKitApp) answer(method string, args ...interface{}) (string, error) {
	m.recordCall(method, args...)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outputs[method], m.Errors[method]
}

// GetCalls returns all recorded calls
func (m *MockDroidKitApp) GetCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall{}, m.Calls...)
}

// WasMethodCalled checks if a method was called
func (m *MockDroidKitApp) WasMethodCalled(method string) bool {
	return m.GetLastCallByMethod(method) != nil
}

// GetLastCallByMethod returns the last call to a specific method
func (m *MockDroidKitApp) GetLastCallByMethod(method string) *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Method == method {
			call := m.Calls[i]
			return &call
		}
	}
	return nil
}

// SetupWithDevices sets the adb device list
func (m *MockDroidKitApp) SetupWithDevices(devices ...Device) *MockDroidKitApp {
	m.GetDevicesResult = devices
	return m
}

// SetupWithOutput sets what a string-returning method answers
func (m *MockDroidKitApp) SetupWithOutput(method, output string) *MockDroidKitApp {
	m.Outputs[method] = output
	return m
}

// SetupWithError configures a specific method to return an error
func (m *MockDroidKitApp) SetupWithError(method string, err error) *MockDroidKitApp {
	m.Errors[method] = err
	return m
}

func (m *MockDroidKitApp) GetDevices() ([]Device, error) {
	m.recordCall("GetDevices")
	return m.GetDevicesResult, m.Errors["GetDevices"]
}

func (m *MockDroidKitApp) AdbShell(device, command string) (string, error) {
	return m.answer("AdbShell", device, command)
}

func (m *MockDroidKitApp) AdbInstall(device, apkPath string) (string, error) {
	return m.answer("AdbInstall", device, apkPath)
}

func (m *MockDroidKitApp) AdbUninstall(device, packageName string) (string, error) {
	return m.answer("AdbUninstall", device, packageName)
}

func (m *MockDroidKitApp) AdbPush(device, localPath, remotePath string) (string, error) {
	return m.answer("AdbPush", device, localPath, remotePath)
}

func (m *MockDroidKitApp) AdbPull(device, remotePath, localPath string) (string, error) {
	return m.answer("AdbPull", device, remotePath, localPath)
}

func (m *MockDroidKitApp) AdbReboot(device, mode string) (string, error) {
	return m.answer("AdbReboot", device, mode)
}

func (m *MockDroidKitApp) AdbConnect(address string) (string, error) {
	return m.answer("AdbConnect", address)
}

func (m *MockDroidKitApp) AdbDisconnect(address string) (string, error) {
	return m.answer("AdbDisconnect", address)
}

func (m *MockDroidKitApp) AdbSideload(device, zipPath string) (string, error) {
	return m.answer("AdbSideload", device, zipPath)
}

func (m *MockDroidKitApp) StartLogcat(device string) (string, error) {
	return m.answer("StartLogcat", device)
}

func (m *MockDroidKitApp) ClearLogcat(device string) (string, error) {
	return m.answer("ClearLogcat", device)
}

func (m *MockDroidKitApp) FastbootDevices() ([]Device, error) {
	m.recordCall("FastbootDevices")
	return m.FastbootDevicesResult, m.Errors["FastbootDevices"]
}

func (m *MockDroidKitApp) FastbootFlash(device, partition, imagePath string) (string, error) {
	return m.answer("FastbootFlash", device, partition, imagePath)
}

func (m *MockDroidKitApp) FastbootReboot(device, mode string) (string, error) {
	return m.answer("FastbootReboot", device, mode)
}

func (m *MockDroidKitApp) FastbootUnlock(device string) (string, error) {
	return m.answer("FastbootUnlock", device)
}

func (m *MockDroidKitApp) FastbootGetVar(device, name string) (string, error) {
	return m.answer("FastbootGetVar", device, name)
}

func (m *MockDroidKitApp) FastbootSetActive(device, slot string) (string, error) {
	return m.answer("FastbootSetActive", device, slot)
}

func (m *MockDroidKitApp) FastbootErase(device, partition string) (string, error) {
	return m.answer("FastbootErase", device, partition)
}

func (m *MockDroidKitApp) StartScrcpy(device string, extraArgs []string) error {
	_, err := m.answer("StartScrcpy", device, extraArgs)
	return err
}

func (m *MockDroidKitApp) StartRecord(device, outputDir string) (string, error) {
	return m.answer("StartRecord", device, outputDir)
}

func (m *MockDroidKitApp) TakeScreenshot(device, outputDir string) (string, error) {
	return m.answer("TakeScreenshot", device, outputDir)
}

func (m *MockDroidKitApp) ExtractAPK(device, packageName, outputDir string) (string, error) {
	return m.answer("ExtractAPK", device, packageName, outputDir)
}

func (m *MockDroidKitApp) AnalyzeAPK(apkPath string) (string, error) {
	return m.answer("AnalyzeAPK", apkPath)
}

func (m *MockDroidKitApp) ParsePayload(payloadPath string) (PayloadListing, error) {
	m.recordCall("ParsePayload", payloadPath)
	return m.ParsePayloadResult, m.Errors["ParsePayload"]
}

func (m *MockDroidKitApp) ExtractPayload(payloadPath, outputDir string, partitions []string) (string, error) {
	return m.answer("ExtractPayload", payloadPath, outputDir, partitions)
}

func (m *MockDroidKitApp) GetDataDir() string {
	m.recordCall("GetDataDir")
	return m.DataDir
}

func (m *MockDroidKitApp) GetToolStatus() []ToolStatus {
	m.recordCall("GetToolStatus")
	return m.ToolStatusResult
}

func (m *MockDroidKitApp) GetAppVersion() string {
	m.recordCall("GetAppVersion")
	return m.AppVersion
}

// Common test errors
var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrDeviceOffline  = errors.New("device offline")
	ErrToolMissing    = errors.New("failed to run fastboot: executable file not found in $PATH")
)

// SampleDevice returns an online device with serial id
func SampleDevice(id string) Device {
	return Device{Serial: id, Status: "device"}
}
