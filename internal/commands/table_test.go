package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	table := NewTable()
	table.Add(Entry{Category: "applications", Phrase: "открой браузер", Action: "open_app", Params: []string{"firefox"}, Description: "Браузер"})
	table.Add(Entry{Category: "applications", Phrase: "открой терминал", Action: "open_app", Params: []string{"kitty"}, Description: "Терминал"})
	table.Add(Entry{Category: "special", Phrase: "сделай скриншот", Action: "screenshot", Description: "Снимок экрана"})
	return table
}

func TestTableAddPreservesOrderAndReplacesInPlace(t *testing.T) {
	table := sampleTable()
	table.Add(Entry{Category: "applications", Phrase: "открой браузер", Action: "open_app", Params: []string{"chromium"}})

	entries := table.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "открой браузер", entries[0].Phrase)
	require.Equal(t, []string{"chromium"}, entries[0].Params)
	require.Equal(t, "открой терминал", entries[1].Phrase)
	require.Equal(t, "сделай скриншот", entries[2].Phrase)

	cats := table.Categories()
	require.Len(t, cats, 2)
	require.Equal(t, "applications", cats[0].Name)
	require.Equal(t, "special", cats[1].Name)
}

func TestTableLookupExactReturnsCopy(t *testing.T) {
	table := sampleTable()

	entry, ok := table.LookupExact("applications", "открой браузер")
	require.True(t, ok)
	entry.Params[0] = "mutated"

	again, ok := table.LookupExact("applications", "открой браузер")
	require.True(t, ok)
	require.Equal(t, []string{"firefox"}, again.Params)

	_, ok = table.LookupExact("special", "открой браузер")
	require.False(t, ok)
	_, ok = table.LookupExact("missing", "открой браузер")
	require.False(t, ok)
}

func TestTableRemoveKeepsEmptyCategory(t *testing.T) {
	table := sampleTable()

	category, ok := table.Remove("сделай скриншот")
	require.True(t, ok)
	require.Equal(t, "special", category)
	require.Equal(t, 2, table.Len())
	require.Len(t, table.Categories(), 2)
	require.Empty(t, table.Categories()[1].Entries)

	_, ok = table.Remove("сделай скриншот")
	require.False(t, ok)
}

func TestTableSearchMatchesPhraseAndDescription(t *testing.T) {
	table := sampleTable()

	hits := table.Search("ТЕРМИНАЛ")
	require.Len(t, hits, 1)
	require.Equal(t, "открой терминал", hits[0].Phrase)

	hits = table.Search("снимок")
	require.Len(t, hits, 1)
	require.Equal(t, "screenshot", hits[0].Action)

	require.Empty(t, table.Search("нет такого"))
}

func TestNilTableIsEmpty(t *testing.T) {
	var table *Table
	require.Equal(t, 0, table.Len())
	require.Empty(t, table.Entries())
	require.Empty(t, table.Categories())
	_, ok := table.LookupExact("a", "b")
	require.False(t, ok)
}

func TestLintReportsDefects(t *testing.T) {
	table := NewTable()
	table.Add(Entry{Category: "applications", Phrase: "open app", Action: "open_app", Params: []string{"x"}, Description: "App"})
	table.Add(Entry{Category: "applications", Phrase: "open application store", Action: "open_app", Params: []string{"store"}, Description: "Store"})
	table.Add(Entry{Category: "custom", Phrase: "Open App", Action: "launch_rocket", Description: ""})

	issues := Lint(table, LintOptions{
		Categories: KnownCategories,
		CheckAction: func(action string, _ []string) error {
			if action == "launch_rocket" {
				return errUnknownForTest
			}
			return nil
		},
	})

	require.True(t, HasErrors(issues))

	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.String())
	}
	require.Contains(t, messages, `warning: custom: unknown category`)
	require.Contains(t, messages, `error: custom: "Open App": unknown action for test`)
	require.Contains(t, messages, `warning: custom: "Open App": missing description`)
	require.Contains(t, messages, `error: custom: "Open App": duplicate phrase; already defined in "applications"`)
	require.Contains(t, messages, `warning: applications: "open application store": shadowed by earlier phrase "open app" in "applications"`)
}

func TestLintCleanTable(t *testing.T) {
	issues := Lint(sampleTable(), LintOptions{Categories: KnownCategories})
	require.Empty(t, issues)
	require.False(t, HasErrors(issues))
}

type lintTestError string

func (e lintTestError) Error() string { return string(e) }

const errUnknownForTest = lintTestError("unknown action for test")
