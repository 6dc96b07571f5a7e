package action

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownAction reports an action name with no descriptor.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidParams reports a parameter list the descriptor cannot build from.
	ErrInvalidParams = errors.New("invalid params")
)

// Variadic marks a descriptor with no upper parameter bound.
const Variadic = -1

// Arity bounds the parameter count of a descriptor.
type Arity struct {
	Min int
	Max int
}

func (a Arity) accepts(n int) bool {
	return n >= a.Min && (a.Max == Variadic || n <= a.Max)
}

func (a Arity) String() string {
	switch {
	case a.Max == Variadic:
		return fmt.Sprintf("at least %d", a.Min)
	case a.Min == a.Max:
		return strconv.Itoa(a.Min)
	default:
		return fmt.Sprintf("%d-%d", a.Min, a.Max)
	}
}

// Descriptor binds a table action name to its builder.
type Descriptor struct {
	Name  string
	Arity Arity
	Build func(params []string) (Action, error)
}

func fixed(n int) Arity { return Arity{Min: n, Max: n} }

var descriptors = map[string]Descriptor{
	"open_app": {Arity: fixed(1), Build: func(p []string) (Action, error) {
		return OpenApp{App: p[0]}, nil
	}},
	"kill_process": {Arity: fixed(1), Build: func(p []string) (Action, error) {
		return KillProcess{Pattern: p[0]}, nil
	}},
	"close_all": {Arity: fixed(1), Build: func(p []string) (Action, error) {
		return KillProcess{Pattern: p[0], Alias: "close_all"}, nil
	}},
	"open_url": {Arity: fixed(1), Build: func(p []string) (Action, error) {
		return OpenURL{URL: p[0]}, nil
	}},
	"system_command": {Arity: fixed(1), Build: func(p []string) (Action, error) {
		return SystemCommand{Command: p[0]}, nil
	}},
	"move_mouse": {Arity: fixed(0), Build: func([]string) (Action, error) {
		return WiggleMouse{}, nil
	}},
	"click_mouse": {Arity: Arity{Min: 0, Max: 1}, Build: func(p []string) (Action, error) {
		if len(p) == 0 {
			return Click{Times: 1}, nil
		}
		n, err := positive(p[0])
		if err != nil {
			return nil, err
		}
		return Click{Times: n}, nil
	}},
	"move_pointer": {Arity: fixed(2), Build: func(p []string) (Action, error) {
		dx, err := strconv.Atoi(strings.TrimSpace(p[0]))
		if err != nil {
			return nil, fmt.Errorf("dx %q is not an integer", p[0])
		}
		dy, err := strconv.Atoi(strings.TrimSpace(p[1]))
		if err != nil {
			return nil, fmt.Errorf("dy %q is not an integer", p[1])
		}
		return MovePointer{DX: dx, DY: dy}, nil
	}},
	"take_screenshot": {Arity: fixed(0), Build: func([]string) (Action, error) {
		return Screenshot{}, nil
	}},
	"focus_mode": {Arity: fixed(0), Build: func([]string) (Action, error) {
		return FocusMode{}, nil
	}},
	"say": {Arity: Arity{Min: 1, Max: Variadic}, Build: func(p []string) (Action, error) {
		return Say{Text: strings.Join(p, " ")}, nil
	}},
	"enable_commands": {Arity: fixed(0), Build: func([]string) (Action, error) {
		return EnableCommands{}, nil
	}},
	"disable_commands": {Arity: fixed(0), Build: func([]string) (Action, error) {
		return DisableCommands{}, nil
	}},
	"disable_commands_for": {Arity: fixed(2), Build: func(p []string) (Action, error) {
		n, err := positive(p[0])
		if err != nil {
			return nil, err
		}
		d, err := DurationFor(n, p[1])
		if err != nil {
			return nil, err
		}
		return DisableCommands{For: d, Timed: true}, nil
	}},
	"timer_5_minutes":  timerDescriptor(5 * time.Minute),
	"timer_10_minutes": timerDescriptor(10 * time.Minute),
	"timer_30_minutes": timerDescriptor(30 * time.Minute),
}

func timerDescriptor(d time.Duration) Descriptor {
	return Descriptor{Arity: fixed(0), Build: func([]string) (Action, error) {
		return Timer{Duration: d}, nil
	}}
}

func positive(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d must be positive", n)
	}
	return n, nil
}

// DurationFor converts a spoken count and unit word to a duration. Units
// starting with "мин" or "min" are minutes, "час" or "hour" hours, anything
// else seconds. Negative counts and counts that overflow time.Duration are
// ErrInvalidParams.
func DurationFor(n int, unit string) (time.Duration, error) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	step := time.Second
	switch {
	case strings.HasPrefix(unit, "мин"), strings.HasPrefix(unit, "min"):
		step = time.Minute
	case strings.HasPrefix(unit, "час"), strings.HasPrefix(unit, "hour"):
		step = time.Hour
	}
	if n < 0 || int64(n) > math.MaxInt64/int64(step) {
		return 0, fmt.Errorf("%w: %d %s is out of range", ErrInvalidParams, n, unit)
	}
	return time.Duration(n) * step, nil
}

// Lookup returns the descriptor registered for name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := descriptors[name]
	if !ok {
		return Descriptor{}, false
	}
	d.Name = name
	return d, true
}

// Names lists every registered action name, sorted.
func Names() []string {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the action for name from params. Failures wrap
// ErrUnknownAction or ErrInvalidParams.
func Resolve(name string, params []string) (Action, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
	}
	if !d.Arity.accepts(len(params)) {
		return nil, fmt.Errorf("%w: %s takes %s params, got %d", ErrInvalidParams, name, d.Arity, len(params))
	}
	a, err := d.Build(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParams, name, err)
	}
	return a, nil
}

// Validate reports whether name resolves with params.
func Validate(name string, params []string) error {
	_, err := Resolve(name, params)
	return err
}
