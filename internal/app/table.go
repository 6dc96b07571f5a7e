package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rbright/golos/internal/action"
	"github.com/rbright/golos/internal/cli"
	"github.com/rbright/golos/internal/commands"
	"github.com/rbright/golos/internal/config"
)

// commandTable edits or inspects the commands file.
func (r Runner) commandTable(cfg config.Config, parsed cli.Parsed, logger *slog.Logger) int {
	path := cfg.CommandsFile
	table, err := commands.Load(r.Fs, path)
	if err != nil {
		// a missing file starts a new table; a broken one must not be overwritten
		if !errors.Is(err, os.ErrNotExist) || parsed.Subcommand != cli.TableAdd {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
	}

	switch parsed.Subcommand {
	case cli.TableList:
		r.printTable(table)
		return 0

	case cli.TableSearch:
		query := parsed.Text()
		matches := table.Search(query)
		if len(matches) == 0 {
			fmt.Fprintf(r.Stdout, "no commands match %q\n", query)
			return 1
		}
		for _, e := range matches {
			fmt.Fprintf(r.Stdout, "[%s] %s\n", e.Category, formatEntry(e))
		}
		return 0

	case cli.TableAdd:
		entry, err := entryFromArgs(parsed.Args)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		_, replaced := table.LookupExact(entry.Category, entry.Phrase)
		table.Add(entry)
		if err := commands.Save(r.Fs, path, table); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		verb := "added"
		if replaced {
			verb = "replaced"
		}
		logger.Info("command "+verb, "category", entry.Category, "phrase", entry.Phrase, "action", entry.Action)
		fmt.Fprintf(r.Stdout, "%s %q in %s; run `golos reload` to apply\n", verb, entry.Phrase, entry.Category)
		return 0

	case cli.TableRemove:
		phrase := parsed.Text()
		category, ok := table.Remove(phrase)
		if !ok {
			fmt.Fprintf(r.Stderr, "error: phrase %q not found\n", phrase)
			return 1
		}
		if err := commands.Save(r.Fs, path, table); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		logger.Info("command removed", "category", category, "phrase", phrase)
		fmt.Fprintf(r.Stdout, "removed %q from %s; run `golos reload` to apply\n", phrase, category)
		return 0

	default:
		fmt.Fprintf(r.Stderr, "error: unsupported commands subcommand %q\n", parsed.Subcommand)
		return 2
	}
}

func entryFromArgs(args []string) (commands.Entry, error) {
	category := strings.TrimSpace(args[0])
	phrase := strings.ToLower(strings.TrimSpace(args[1]))
	name := strings.TrimSpace(args[2])
	if category == "" || phrase == "" {
		return commands.Entry{}, errors.New("category and phrase must not be empty")
	}

	params, err := commands.ParseParams(args[3])
	if err != nil {
		return commands.Entry{}, err
	}
	if err := action.Validate(name, params); err != nil {
		return commands.Entry{}, err
	}

	return commands.Entry{
		Category:    category,
		Phrase:      phrase,
		Action:      name,
		Params:      params,
		Description: strings.TrimSpace(args[4]),
	}, nil
}

func (r Runner) printTable(table *commands.Table) {
	categories := table.Categories()
	for _, cat := range categories {
		fmt.Fprintf(r.Stdout, "%s (%d)\n", cat.Name, len(cat.Entries))
		for _, e := range cat.Entries {
			fmt.Fprintf(r.Stdout, "  %s\n", formatEntry(e))
		}
	}
	fmt.Fprintf(r.Stdout, "total: %d commands in %d categories\n", table.Len(), len(categories))
}

func formatEntry(e commands.Entry) string {
	params := ""
	if len(e.Params) > 0 {
		params = " " + strings.Join(e.Params, " ")
	}
	line := fmt.Sprintf("%q -> %s%s", e.Phrase, e.Action, params)
	if e.Description != "" {
		line += " | " + e.Description
	}
	return line
}

// commandCheck lints the commands file and fails on errors.
func (r Runner) commandCheck(cfg config.Config) int {
	table, err := commands.Load(r.Fs, cfg.CommandsFile)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	categories := append([]string(nil), commands.KnownCategories...)
	if cfg.ControlCategory != "" {
		categories = append(categories, cfg.ControlCategory)
	}
	issues := commands.Lint(table, commands.LintOptions{
		CheckAction: action.Validate,
		Categories:  categories,
	})
	for _, issue := range issues {
		fmt.Fprintln(r.Stdout, issue.String())
	}

	fmt.Fprintf(r.Stdout, "checked %d commands in %q: %d issues\n", table.Len(), cfg.CommandsFile, len(issues))
	if commands.HasErrors(issues) {
		return 1
	}
	return 0
}
