package commands

import (
	"fmt"
	"strings"
)

// Severity ranks a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one table defect found by Lint.
type Issue struct {
	Severity Severity
	Category string
	Phrase   string
	Message  string
}

func (i Issue) String() string {
	if i.Phrase == "" {
		return fmt.Sprintf("%s: %s: %s", i.Severity, i.Category, i.Message)
	}
	return fmt.Sprintf("%s: %s: %q: %s", i.Severity, i.Category, i.Phrase, i.Message)
}

// KnownCategories are the categories shipped with the default table.
var KnownCategories = []string{
	"applications",
	"close_applications",
	"websites",
	"system",
	"music",
	"mouse",
	"special",
	"assistant_control",
}

// LintOptions configures table checks.
type LintOptions struct {
	// CheckAction validates that an entry's action resolves with its params.
	CheckAction func(action string, params []string) error
	// Categories, when non-empty, lists the expected category names.
	Categories []string
}

// Lint reports unresolved actions, duplicate phrases, shadowed phrases, empty
// descriptions, and unexpected categories.
func Lint(table *Table, opts LintOptions) []Issue {
	var issues []Issue

	known := make(map[string]struct{}, len(opts.Categories))
	for _, c := range opts.Categories {
		known[c] = struct{}{}
	}

	firstSeen := make(map[string]string)
	var earlier []Entry

	for _, cat := range table.Categories() {
		if len(known) > 0 {
			if _, ok := known[cat.Name]; !ok {
				issues = append(issues, Issue{Severity: SeverityWarning, Category: cat.Name, Message: "unknown category"})
			}
		}

		for _, e := range cat.Entries {
			if opts.CheckAction != nil {
				if err := opts.CheckAction(e.Action, e.Params); err != nil {
					issues = append(issues, Issue{Severity: SeverityError, Category: cat.Name, Phrase: e.Phrase, Message: err.Error()})
				}
			}

			if strings.TrimSpace(e.Description) == "" {
				issues = append(issues, Issue{Severity: SeverityWarning, Category: cat.Name, Phrase: e.Phrase, Message: "missing description"})
			}

			key := strings.ToLower(e.Phrase)
			if prev, dup := firstSeen[key]; dup {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Category: cat.Name,
					Phrase:   e.Phrase,
					Message:  fmt.Sprintf("duplicate phrase; already defined in %q", prev),
				})
			} else {
				for _, p := range earlier {
					if strings.Contains(key, strings.ToLower(p.Phrase)) {
						issues = append(issues, Issue{
							Severity: SeverityWarning,
							Category: cat.Name,
							Phrase:   e.Phrase,
							Message:  fmt.Sprintf("shadowed by earlier phrase %q in %q", p.Phrase, p.Category),
						})
						break
					}
				}
				firstSeen[key] = cat.Name
			}
			earlier = append(earlier, e)
		}
	}

	return issues
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
