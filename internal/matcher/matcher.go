// Package matcher decides which command, if any, an utterance denotes.
package matcher

import (
	"strings"

	"github.com/rbright/golos/internal/action"
	"github.com/rbright/golos/internal/commands"
	"github.com/rbright/golos/internal/state"
)

// Kind classifies a match result.
type Kind int

const (
	NoMatch Kind = iota
	Static
	Dynamic
	NoteStart
	NoteAppend
	NoteSave
	NoteCancel
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case NoteStart:
		return "note_start"
	case NoteAppend:
		return "note_append"
	case NoteSave:
		return "note_save"
	case NoteCancel:
		return "note_cancel"
	default:
		return "no_match"
	}
}

// Rule is one compiled table entry.
type Rule struct {
	Entry           commands.Entry
	Action          action.Action
	ResolveErr      error
	BypassesDisable bool

	phrase string
}

// Index is a compiled, immutable view of a command table.
type Index struct {
	policy Policy
	rules  []Rule
}

// Compile resolves every entry's action in table order. Entries whose action
// does not resolve are kept and fail at dispatch.
func Compile(table *commands.Table, policy Policy) *Index {
	policy.StartNote = normalize(policy.StartNote)
	policy.SaveNote = normalize(policy.SaveNote)
	policy.DiscardNote = normalize(policy.DiscardNote)
	policy.EnableCommands = normalize(policy.EnableCommands)

	entries := table.Entries()
	idx := &Index{policy: policy, rules: make([]Rule, 0, len(entries))}
	for _, e := range entries {
		phrase := normalize(e.Phrase)
		if phrase == "" {
			continue
		}
		a, err := action.Resolve(e.Action, e.Params)
		idx.rules = append(idx.rules, Rule{
			Entry:      e,
			Action:     a,
			ResolveErr: err,
			BypassesDisable: (policy.ControlCategory != "" && e.Category == policy.ControlCategory) ||
				(policy.EnableCommands != "" && phrase == policy.EnableCommands),
			phrase: phrase,
		})
	}
	return idx
}

// Rules returns the compiled rules in match-priority order.
func (i *Index) Rules() []Rule {
	if i == nil {
		return nil
	}
	return i.rules
}

// Unresolved returns rules whose action failed to resolve.
func (i *Index) Unresolved() []Rule {
	var out []Rule
	for _, r := range i.Rules() {
		if r.ResolveErr != nil {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of compiled rules.
func (i *Index) Len() int {
	return len(i.Rules())
}

// Result is the single decision for one utterance.
type Result struct {
	Kind      Kind
	Utterance string
	// Rule is set for Static results.
	Rule *Rule
	// Action is the resolved action for Static and Dynamic results.
	Action action.Action
	// Pattern names the dynamic extractor that fired.
	Pattern string
	// Err is set when a dynamic pattern matched but could not build its action.
	Err error
	// Suppressed marks a match withheld because commands are disabled.
	Suppressed bool
}

// Match applies note-mode precedence, the static phrase scan, then dynamic
// patterns. The first phrase that is a substring of the utterance wins.
func Match(utterance string, idx *Index, snap state.Snapshot) Result {
	text := normalize(utterance)
	res := Result{Utterance: text}
	var policy Policy
	if idx != nil {
		policy = idx.policy
	}

	if snap.Recording() {
		switch {
		case contains(text, policy.SaveNote):
			res.Kind = NoteSave
		case contains(text, policy.DiscardNote):
			res.Kind = NoteCancel
		default:
			res.Kind = NoteAppend
		}
		return res
	}

	if contains(text, policy.StartNote) {
		res.Kind = NoteStart
		return res
	}

	for i := range idx.Rules() {
		rule := &idx.rules[i]
		if !strings.Contains(text, rule.phrase) {
			continue
		}
		if !snap.CommandsEnabled && !rule.BypassesDisable {
			return Result{Kind: NoMatch, Utterance: text, Rule: rule, Suppressed: true}
		}
		res.Kind = Static
		res.Rule = rule
		res.Action = rule.Action
		return res
	}

	for _, p := range policy.Patterns {
		groups := p.Regexp.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		if !snap.CommandsEnabled {
			return Result{Kind: NoMatch, Utterance: text, Pattern: p.Name, Suppressed: true}
		}
		a, err := p.Build(groups)
		res.Kind = Dynamic
		res.Pattern = p.Name
		res.Action = a
		res.Err = err
		return res
	}

	res.Suppressed = !snap.CommandsEnabled
	return res
}

func contains(text, phrase string) bool {
	return phrase != "" && strings.Contains(text, phrase)
}
