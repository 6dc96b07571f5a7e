package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/golos/internal/audio"
	"github.com/rbright/golos/internal/config"
)

func TestWriteDevicesMarksSelectedSource(t *testing.T) {
	devices := []audio.Device{
		{ID: "alsa_input.usb-yeti", Description: "Blue Yeti", State: "idle", Available: true, Muted: true, Default: true},
		{ID: "alsa_input.pci-builtin", Description: "Built-in Audio", State: "suspended", Available: true},
	}

	var out bytes.Buffer
	writeDevices(&out, devices, config.AudioConfig{Input: "default", Fallback: "built-in"})

	lines := strings.Split(out.String(), "\n")
	require.Contains(t, lines[0], "DESCRIPTION")
	require.True(t, strings.HasPrefix(lines[2], ">"), out.String())
	require.Contains(t, lines[2], "alsa_input.pci-builtin")
	require.False(t, strings.HasPrefix(lines[1], ">"))
	require.Contains(t, out.String(), "warning: audio.input")
}

func TestWriteDevicesReportsNoUsableSource(t *testing.T) {
	devices := []audio.Device{{ID: "mic", Description: "Mic", Available: true, Muted: true, Default: true}}

	var out bytes.Buffer
	writeDevices(&out, devices, config.AudioConfig{Input: "default", Fallback: "default"})

	require.NotContains(t, out.String(), ">")
	require.Contains(t, out.String(), "no usable capture source")
}
