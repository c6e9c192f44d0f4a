package main

import (
	"DroidKit/pkg/types"
)

// ParsePayload lists the partitions of an OTA payload.bin. When neither
// dumper is installed the listing is the sample table, flagged Placeholder.
func (a *App) ParsePayload(payloadPath string) (types.PayloadListing, error) {
	listing, err := a.tools.ListPayload(a.context(), payloadPath)
	if err != nil {
		return listing, err
	}
	if listing.Placeholder {
		LogWarn("payload").Str("payload", payloadPath).Msg("No payload dumper found, returning sample partitions")
	}
	return listing, nil
}

// ExtractPayload extracts partitions (all when empty) into outputDir, or
// <data>/rom.
func (a *App) ExtractPayload(payloadPath, outputDir string, partitions []string) (string, error) {
	dir := a.dataPath(outputDir, "rom")
	LogUserAction(ActionPayloadExtract, "", map[string]interface{}{
		"payload":    payloadPath,
		"dir":        dir,
		"partitions": partitions,
	})
	timer := StartOperation("payload", "extract").AddDetail("payload", payloadPath)
	out, err := a.tools.ExtractPayload(a.context(), payloadPath, dir, partitions)
	a.finish(timer, ActionPayloadExtract, "", err)
	return out, err
}
