package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rbright/golos/internal/audio"
	"github.com/rbright/golos/internal/config"
)

// commandDevices lists capture sources and marks the one `run` would use.
func (r Runner) commandDevices(ctx context.Context, cfg config.AudioConfig) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	writeDevices(r.Stdout, devices, cfg)
	return 0
}

func writeDevices(w io.Writer, devices []audio.Device, cfg config.AudioConfig) {
	sel, selErr := audio.Choose(devices, cfg.Input, cfg.Fallback)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tDESCRIPTION\tSTATE\tAVAILABLE\tMUTED\tDEFAULT")
	for _, d := range devices {
		mark := ""
		if selErr == nil && d.ID == sel.Device.ID {
			mark = ">"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, d.ID, d.Description, d.State, yesNo(d.Available), yesNo(d.Muted), yesNo(d.Default))
	}
	_ = tw.Flush()

	switch {
	case selErr != nil:
		fmt.Fprintf(w, "\nno usable capture source: %v\n", selErr)
	case sel.Warning != "":
		fmt.Fprintf(w, "\nwarning: %s\n", sel.Warning)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
