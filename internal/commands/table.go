// Package commands holds the ordered phrase table and its on-disk codecs.
package commands

import (
	"strings"
)

// Entry is one phrase binding within a category.
type Entry struct {
	Category    string
	Phrase      string
	Action      string
	Params      []string
	Description string
}

// Category is an ordered group of entries.
type Category struct {
	Name    string
	Entries []Entry
}

// Table maps category -> phrase -> entry while preserving definition order.
// Category order and entry order define match priority.
type Table struct {
	categories []Category
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Categories returns the categories in load order. Callers must not mutate the result.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	return t.categories
}

// Entries flattens the table in match-priority order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, t.Len())
	for _, c := range t.categories {
		out = append(out, c.Entries...)
	}
	return out
}

// Len returns the number of entries across all categories.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.categories {
		n += len(c.Entries)
	}
	return n
}

// LookupExact finds the entry for phrase within category.
func (t *Table) LookupExact(category, phrase string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	ci := t.categoryIndex(category)
	if ci < 0 {
		return Entry{}, false
	}
	for _, e := range t.categories[ci].Entries {
		if e.Phrase == phrase {
			return cloneEntry(e), true
		}
	}
	return Entry{}, false
}

// Add inserts or replaces an entry. A replaced phrase keeps its position; new
// categories and phrases are appended.
func (t *Table) Add(e Entry) {
	e = cloneEntry(e)
	ci := t.categoryIndex(e.Category)
	if ci < 0 {
		t.categories = append(t.categories, Category{Name: e.Category})
		ci = len(t.categories) - 1
	}
	cat := &t.categories[ci]
	for i := range cat.Entries {
		if cat.Entries[i].Phrase == e.Phrase {
			cat.Entries[i] = e
			return
		}
	}
	cat.Entries = append(cat.Entries, e)
}

// Remove deletes phrase from the first category that contains it and reports
// that category. Emptied categories are kept so the document layout survives.
func (t *Table) Remove(phrase string) (string, bool) {
	for ci := range t.categories {
		cat := &t.categories[ci]
		for i, e := range cat.Entries {
			if e.Phrase != phrase {
				continue
			}
			cat.Entries = append(cat.Entries[:i:i], cat.Entries[i+1:]...)
			if len(cat.Entries) == 0 {
				cat.Entries = nil
			}
			return cat.Name, true
		}
	}
	return "", false
}

// Search returns entries whose phrase or description contains query, case-insensitively.
func (t *Table) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for _, e := range t.Entries() {
		if strings.Contains(strings.ToLower(e.Phrase), query) ||
			strings.Contains(strings.ToLower(e.Description), query) {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

func (t *Table) categoryIndex(name string) int {
	for i, c := range t.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// resetCategory declares a category during decoding. A repeated category key
// replaces the earlier contents but keeps its original position.
func (t *Table) resetCategory(name string) {
	if ci := t.categoryIndex(name); ci >= 0 {
		t.categories[ci].Entries = nil
		return
	}
	t.categories = append(t.categories, Category{Name: name})
}

// cloneEntry copies params so callers never share backing arrays with the table.
// Params is always non-nil to keep load/save round trips stable.
func cloneEntry(e Entry) Entry {
	e.Params = append([]string{}, e.Params...)
	return e
}
