// Package cli parses golos command-line arguments.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandRun      Command = "run"
	CommandStatus   Command = "status"
	CommandEnable   Command = "enable"
	CommandDisable  Command = "disable"
	CommandReload   Command = "reload"
	CommandInject   Command = "inject"
	CommandCommands Command = "commands"
	CommandCheck    Command = "check"
	CommandDevices  Command = "devices"
	CommandDoctor   Command = "doctor"
	CommandVersion  Command = "version"
	CommandHelp     Command = "help"
)

// Subcommands of `golos commands`.
const (
	TableList   = "list"
	TableAdd    = "add"
	TableRemove = "remove"
	TableSearch = "search"
)

// arity bounds positional arguments after a command; max < 0 means unbounded.
type arity struct{ min, max int }

var validCommands = map[Command]arity{
	CommandRun:      {0, 0},
	CommandStatus:   {0, 0},
	CommandEnable:   {0, 0},
	CommandDisable:  {0, 0},
	CommandReload:   {0, 0},
	CommandInject:   {1, -1},
	CommandCommands: {1, -1},
	CommandCheck:    {0, 0},
	CommandDevices:  {0, 0},
	CommandDoctor:   {0, 0},
	CommandVersion:  {0, 0},
	CommandHelp:     {0, 0},
}

var tableArity = map[string]arity{
	TableList:   {0, 0},
	TableAdd:    {5, 5},
	TableRemove: {1, -1},
	TableSearch: {1, -1},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	ShowHelp   bool
	// Verbose mirrors log records to stderr.
	Verbose bool
	// Subcommand is set for `commands`.
	Subcommand string
	Args       []string
}

// Text joins positional arguments with single spaces.
func (p Parsed) Text() string {
	return strings.Join(p.Args, " ")
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			want, ok := validCommands[cmd]
			if !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			rest := args[i+1:]
			if cmd == CommandCommands {
				return parseTable(parsed, rest)
			}
			if err := checkArity(string(cmd), want, rest); err != nil {
				return Parsed{}, err
			}
			parsed.Args = rest
			return parsed, nil
		}
	}

	return parsed, nil
}

func parseTable(parsed Parsed, rest []string) (Parsed, error) {
	if len(rest) == 0 {
		return Parsed{}, errors.New("commands requires a subcommand: list, add, remove, search")
	}
	sub := rest[0]
	want, ok := tableArity[sub]
	if !ok {
		return Parsed{}, fmt.Errorf("unknown commands subcommand: %s", sub)
	}
	if err := checkArity("commands "+sub, want, rest[1:]); err != nil {
		return Parsed{}, err
	}
	parsed.Subcommand = sub
	parsed.Args = rest[1:]
	return parsed, nil
}

func checkArity(name string, want arity, rest []string) error {
	if len(rest) < want.min {
		return fmt.Errorf("%s requires %d argument(s)", name, want.min)
	}
	if want.max >= 0 && len(rest) > want.max {
		if want.max == 0 {
			return fmt.Errorf("unexpected arguments after command %q", name)
		}
		return fmt.Errorf("%s takes at most %d argument(s)", name, want.max)
	}
	return nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [-v] <command> [args]

Commands:
  run                 Listen for voice commands until interrupted
  status              Print the running assistant's state
  enable              Enable voice commands
  disable             Disable voice commands (control phrases still work)
  reload              Reload the commands table in the running assistant
  inject TEXT         Dispatch TEXT as if it had been spoken
  commands list       List commands grouped by category
  commands add CATEGORY PHRASE ACTION PARAMS_JSON DESCRIPTION
                      Add or replace a command
  commands remove PHRASE
                      Remove a command from the first category containing it
  commands search QUERY
                      Find commands by phrase or description
  check               Validate the commands table
  devices             List available input devices
  doctor              Run configuration and environment checks
  version             Print version information
  help                Show this help

Flags:
  --config PATH   Config file path (default: $GOLOS_CONFIG, then
                  $XDG_CONFIG_HOME/golos/config.jsonc)
  -v, --verbose   Also write log records to stderr
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
