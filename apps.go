package main

// ExtractAPK pulls the installed APK of packageName into outputDir, or
// <data>/apk.
func (a *App) ExtractAPK(device, packageName, outputDir string) (string, error) {
	dir := a.dataPath(outputDir, "apk")
	LogUserAction(ActionAppExtract, device, map[string]interface{}{"package": packageName, "dir": dir})
	timer := StartOperation("apps", "extract").
		AddDetail("device", device).
		AddDetail("package", packageName)
	out, err := a.tools.ExtractAPK(a.context(), device, packageName, dir)
	a.finish(timer, ActionAppExtract, device, err)
	return out, err
}

// AnalyzeAPK returns a readable badging report, or basic file facts when no
// aapt is available.
func (a *App) AnalyzeAPK(apkPath string) (string, error) {
	timer := StartOperation("apps", "analyze").AddDetail("apk", apkPath)
	report, err := a.tools.AnalyzeAPK(a.context(), apkPath)
	timer.Finish(err)
	return report, err
}
