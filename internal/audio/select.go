package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Selection is the resolved capture source plus an optional fallback warning.
type Selection struct {
	Device   Device
	Warning  string
	Fallback bool
}

// SelectDevice resolves audio.input/audio.fallback preferences against live devices.
func SelectDevice(ctx context.Context, input string, fallback string) (Selection, error) {
	devices, err := ListDevices(ctx)
	if err != nil {
		return Selection{}, err
	}
	return Choose(devices, input, fallback)
}

// Choose applies input/fallback preferences to an already listed set of sources.
func Choose(devices []Device, input string, fallback string) (Selection, error) {
	if len(devices) == 0 {
		return Selection{}, errors.New("no audio input devices found")
	}

	input = strings.ToLower(strings.TrimSpace(input))
	fallback = strings.ToLower(strings.TrimSpace(fallback))

	primary, err := pick(devices, input)
	if err != nil {
		return Selection{}, err
	}
	if usable(primary) {
		return Selection{Device: *primary}, nil
	}

	reason := "unavailable"
	if primary.Muted {
		reason = "muted"
	}

	alt, err := pick(devices, fallback)
	if err != nil {
		return Selection{}, fmt.Errorf("primary input %q is %s and no usable fallback: %w", primary.ID, reason, err)
	}
	if !alt.Available {
		return Selection{}, fmt.Errorf("audio fallback device %q is not available", alt.ID)
	}
	if alt.Muted {
		return Selection{}, fmt.Errorf("audio fallback device %q is muted", alt.ID)
	}

	return Selection{
		Device:   *alt,
		Warning:  fmt.Sprintf("audio.input %q is %s; falling back to %q", primary.ID, reason, alt.ID),
		Fallback: primary.ID != alt.ID,
	}, nil
}

// pick resolves "default" (or empty) to the default source, anything else by substring.
func pick(devices []Device, term string) (*Device, error) {
	if term == "" || term == "default" {
		for i := range devices {
			if devices[i].Default {
				return &devices[i], nil
			}
		}
		return nil, errors.New("default audio source is unavailable")
	}
	for i := range devices {
		if deviceMatches(devices[i], term) {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("audio device %q did not match any device", term)
}

func usable(d *Device) bool {
	return d.Available && !d.Muted
}

// deviceMatches reports whether a search term matches a device id or description.
func deviceMatches(device Device, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(device.ID), term) ||
		strings.Contains(strings.ToLower(device.Description), term)
}

// Backoff bounds WaitForDevice retries.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

// WaitForDevice retries selection with doubling delays until a usable device
// appears or ctx is cancelled.
func WaitForDevice(ctx context.Context, input, fallback string, backoff Backoff, logger *slog.Logger) (Selection, error) {
	return waitForDevice(ctx, ListDevices, input, fallback, backoff, logger)
}

func waitForDevice(
	ctx context.Context,
	list func(context.Context) ([]Device, error),
	input, fallback string,
	backoff Backoff,
	logger *slog.Logger,
) (Selection, error) {
	delay := backoff.Initial
	if delay <= 0 {
		delay = time.Second
	}
	limit := backoff.Max
	if limit < delay {
		limit = delay
	}

	for attempt := 1; ; attempt++ {
		devices, err := list(ctx)
		if err == nil {
			var sel Selection
			sel, err = Choose(devices, input, fallback)
			if err == nil {
				return sel, nil
			}
		}
		if logger != nil {
			logger.Warn("capture device unavailable", "attempt", attempt, "retry_in", delay.String(), "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return Selection{}, fmt.Errorf("wait for capture device: %w (last error: %v)", ctx.Err(), err)
		case <-time.After(delay):
		}
		delay *= 2
		if delay > limit {
			delay = limit
		}
	}
}
