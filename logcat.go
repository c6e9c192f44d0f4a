package main

// StartLogcat returns a one-shot dump of the last 100 log lines.
func (a *App) StartLogcat(device string) (string, error) {
	out, err := a.tools.Logcat(a.context(), device)
	if err != nil {
		LogWarn("logcat").Err(err).Str("device", device).Msg("Logcat dump failed")
	}
	return out, err
}

// ClearLogcat clears the device log buffer.
func (a *App) ClearLogcat(device string) (string, error) {
	out, err := a.tools.ClearLogcat(a.context(), device)
	if err != nil {
		LogWarn("logcat").Err(err).Str("device", device).Msg("Logcat clear failed")
		return out, err
	}
	LogDebug("logcat").Str("device", device).Msg("Logcat cleared")
	return out, nil
}
