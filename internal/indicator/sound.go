package indicator

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/jfreymuth/pulse"
	"github.com/rbright/golos/internal/config"
)

const (
	chimeSampleRate = 22050
	chimeGap        = 18 * time.Millisecond
	chimeFade       = 4 * time.Millisecond
	filePlayTimeout = 4 * time.Second
)

// note is one partial of a chime: a sine at hz that decays exponentially
// from gain toward silence over length.
type note struct {
	hz     float64
	length time.Duration
	gain   float64
	decay  float64
}

// chimes holds the synthesized fallback for each audible cue. Success rises,
// error falls.
var chimes = map[Cue][]float32{
	CueSuccess: renderChime(
		note{hz: 659.25, length: 70 * time.Millisecond, gain: 0.22, decay: 3},
		note{hz: 987.77, length: 120 * time.Millisecond, gain: 0.22, decay: 5},
	),
	CueError: renderChime(
		note{hz: 392, length: 100 * time.Millisecond, gain: 0.25, decay: 2},
		note{hz: 261.63, length: 170 * time.Millisecond, gain: 0.25, decay: 4},
	),
}

// sound plays cue through the configured file, falling back to the built-in
// chime when no file is set or the file player fails.
func sound(ctx context.Context, cue Cue, cfg config.IndicatorConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if path := soundFile(cue, cfg); path != "" {
		if err := playFile(ctx, path); err == nil {
			return nil
		}
	}

	samples, ok := chimes[cue]
	if !ok || len(samples) == 0 {
		return nil
	}
	return playSamples(samples)
}

func soundFile(cue Cue, cfg config.IndicatorConfig) string {
	var path string
	switch cue {
	case CueSuccess:
		path = cfg.SoundSuccessFile
	case CueError:
		path = cfg.SoundErrorFile
	}
	return config.ExpandUser(path)
}

func playFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat cue file %q: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, filePlayTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "pw-play", "--media-role", "Notification", path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("pw-play %q: %w (%s)", path, err, trimOutput(out))
	}
	return nil
}

func playSamples(samples []float32) error {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("golos"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	stream, err := client.NewPlayback(
		sampleReader(samples),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(chimeSampleRate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName("golos cue"),
	)
	if err != nil {
		return fmt.Errorf("open pulse playback: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("pulse playback: %w", err)
	}
	return nil
}

// sampleReader feeds samples to pulse once and then reports end of data.
func sampleReader(samples []float32) pulse.Reader {
	rest := samples
	return pulse.Float32Reader(func(buf []float32) (int, error) {
		n := copy(buf, rest)
		rest = rest[n:]
		if len(rest) == 0 {
			return n, pulse.EndOfData
		}
		return n, nil
	})
}

// renderChime concatenates notes with a short silence between them.
func renderChime(notes ...note) []float32 {
	gap := sampleCount(chimeGap)
	var out []float32
	for i, nt := range notes {
		if i > 0 {
			out = append(out, make([]float32, gap)...)
		}
		out = append(out, nt.render()...)
	}
	return out
}

func (nt note) render() []float32 {
	n := sampleCount(nt.length)
	if n == 0 || nt.hz <= 0 || nt.gain <= 0 {
		return nil
	}

	fade := min(sampleCount(chimeFade), n/4)
	fade = max(fade, 1)
	step := 2 * math.Pi * nt.hz / chimeSampleRate

	out := make([]float32, n)
	for i := range out {
		progress := float64(i) / float64(n)
		amp := nt.gain * math.Exp(-nt.decay*progress)
		if i < fade {
			amp *= float64(i) / float64(fade)
		}
		if tail := n - 1 - i; tail < fade {
			amp *= float64(tail) / float64(fade)
		}
		out[i] = float32(amp * math.Sin(step*float64(i)))
	}
	return out
}

func sampleCount(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * chimeSampleRate))
}

func trimOutput(out []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(out))
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}
