package classifier

import (
	"strings"

	"github.com/Egor213/LogTrail/internal/domain"
)

type Predicate func(e domain.LogEntry) bool

type Rule struct {
	Label string
	When  Predicate
}

// Table is an ordered list of rules. The first rule whose predicate holds
// decides the label; Default applies when none does.
type Table struct {
	Rules   []Rule
	Default string
}

func (t Table) Label(e domain.LogEntry) string {
	for _, r := range t.Rules {
		if r.When(e) {
			return r.Label
		}
	}
	return t.Default
}

// LevelIs holds when the entry level equals one of levels, ignoring case.
func LevelIs(levels ...string) Predicate {
	set := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		set[strings.ToUpper(strings.TrimSpace(l))] = struct{}{}
	}
	return func(e domain.LogEntry) bool {
		_, ok := set[strings.ToUpper(e.Level)]
		return ok
	}
}

// MessageContains holds when the lower-cased message contains any of phrases.
func MessageContains(phrases ...string) Predicate {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(p); p != "" {
			lowered = append(lowered, p)
		}
	}
	return func(e domain.LogEntry) bool {
		msg := strings.ToLower(e.Message)
		for _, p := range lowered {
			if strings.Contains(msg, p) {
				return true
			}
		}
		return false
	}
}

type LevelRule struct {
	Level string
	Label string
}

// ByLevel builds a level-keyed table. Levels not listed get no breadcrumb.
func ByLevel(rules ...LevelRule) Table {
	t := Table{Rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		t.Rules = append(t.Rules, Rule{Label: r.Label, When: LevelIs(r.Level)})
	}
	return t
}

type ContentRule struct {
	Phrases []string
	Label   string
}

// ByContent builds a content-keyed table evaluated top to bottom against the
// message; fallback labels entries no rule matches.
func ByContent(fallback string, rules ...ContentRule) Table {
	t := Table{Rules: make([]Rule, 0, len(rules)), Default: fallback}
	for _, r := range rules {
		t.Rules = append(t.Rules, Rule{Label: r.Label, When: MessageContains(r.Phrases...)})
	}
	return t
}
