package platformtools

import (
	"context"
	"fmt"

	"DroidKit/pkg/parse"
	"DroidKit/pkg/types"
)

// Payload listing sources.
const (
	SourcePayloadDumperGo = "payload-dumper-go"
	SourcePayloadDumperPy = "payload_dumper"
	SourcePlaceholder     = "placeholder"
)

// PlaceholderPartitions is demo data returned when no payload dumper could
// run. It never describes a real payload.
var PlaceholderPartitions = []types.Partition{
	{Name: "boot", Size: "67.2 MB"},
	{Name: "init_boot", Size: "8.0 MB"},
	{Name: "vendor_boot", Size: "67.1 MB"},
	{Name: "recovery", Size: "104.9 MB"},
	{Name: "vbmeta", Size: "4.0 KB"},
	{Name: "vbmeta_system", Size: "4.0 KB"},
	{Name: "vbmeta_vendor", Size: "4.0 KB"},
	{Name: "dtbo", Size: "8.0 MB"},
	{Name: "super", Size: "9.5 GB"},
	{Name: "modem", Size: "200.0 MB"},
}

// ListPayload lists the partitions of an OTA payload.bin with
// payload-dumper-go, falling back to the python payload_dumper module. When
// both fail the listing is the placeholder set, flagged as such.
func (c *Client) ListPayload(ctx context.Context, payload string) (types.PayloadListing, error) {
	if payload == "" {
		return types.PayloadListing{}, fmt.Errorf("payload path cannot be empty")
	}

	out, err := c.runner.Run(ctx, PayloadDumperGo, PayloadListArgs(payload)...)
	if err == nil {
		return listing(SourcePayloadDumperGo, out), nil
	}
	c.logger.Debug().Err(err).Msg("payload-dumper-go list failed, trying python")

	out, err = c.runner.Run(ctx, c.python, PayloadListPythonArgs(payload)...)
	if err == nil {
		return listing(SourcePayloadDumperPy, out), nil
	}
	c.logger.Warn().Err(err).Str("payload", payload).Msg("no payload dumper available, returning placeholder listing")

	parts := make([]types.Partition, len(PlaceholderPartitions))
	copy(parts, PlaceholderPartitions)
	return types.PayloadListing{
		Partitions:  parts,
		Source:      SourcePlaceholder,
		Placeholder: true,
	}, nil
}

func listing(source, out string) types.PayloadListing {
	return types.PayloadListing{
		Partitions: parse.Partitions(out),
		Source:     source,
		Raw:        out,
	}
}

// ExtractPayload extracts partitions (all of them when empty) from payload
// into outputDir. Failure of both dumpers is an error.
func (c *Client) ExtractPayload(ctx context.Context, payload, outputDir string, partitions []string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("payload path cannot be empty")
	}

	out, err := c.runner.Run(ctx, PayloadDumperGo, PayloadExtractArgs(payload, outputDir, partitions)...)
	if err == nil {
		return out, nil
	}
	c.logger.Debug().Err(err).Msg("payload-dumper-go extract failed, trying python")

	out, err = c.runner.Run(ctx, c.python, PayloadExtractPythonArgs(payload, outputDir, partitions)...)
	if err == nil {
		return out, nil
	}
	return "", fmt.Errorf("extraction failed: install payload-dumper-go or payload_dumper\n%w", err)
}
