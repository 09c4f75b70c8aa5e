package filter

import (
	"strings"
	"time"

	"github.com/Egor213/LogTrail/internal/domain"
)

// Step narrows the current selection. all is the complete, sorted sequence
// the chain started from; steps never modify either slice.
type Step interface {
	Name() string
	Apply(current, all []domain.LogEntry) []domain.LogEntry
}

type Date struct {
	Spec DateSpec
}

func (f Date) Name() string { return "date" }

func (f Date) Apply(current, _ []domain.LogEntry) []domain.LogEntry {
	return keep(current, func(e domain.LogEntry) bool {
		return f.Spec.Matches(e.Timestamp)
	})
}

// Window keeps entries in [From, To). A zero bound is open.
type Window struct {
	From time.Time
	To   time.Time
}

func (f Window) Name() string { return "window" }

func (f Window) Apply(current, _ []domain.LogEntry) []domain.LogEntry {
	return keep(current, func(e domain.LogEntry) bool {
		if !f.From.IsZero() && e.Timestamp.Before(f.From) {
			return false
		}
		return f.To.IsZero() || e.Timestamp.Before(f.To)
	})
}

// Keywords keeps entries whose message contains every keyword, ignoring case.
type Keywords struct {
	words []string
}

func NewKeywords(words ...string) Keywords {
	k := Keywords{words: make([]string, 0, len(words))}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			k.words = append(k.words, w)
		}
	}
	return k
}

func (f Keywords) Name() string { return "keyword" }

func (f Keywords) Apply(current, _ []domain.LogEntry) []domain.LogEntry {
	return keep(current, func(e domain.LogEntry) bool {
		msg := strings.ToLower(e.Message)
		for _, w := range f.words {
			if !strings.Contains(msg, w) {
				return false
			}
		}
		return true
	})
}

// Index selects entries by 1-based position in the full sequence, in the
// order requested. Ordinals outside [1, len(all)] are ignored.
type Index struct {
	Ordinals []int
}

func (f Index) Name() string { return "index" }

func (f Index) Apply(_, all []domain.LogEntry) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(f.Ordinals))
	for _, n := range f.Ordinals {
		if n > 0 && n <= len(all) {
			out = append(out, all[n-1])
		}
	}
	return out
}

// Tagged keeps entries that received a breadcrumb.
type Tagged struct{}

func (Tagged) Name() string { return "tagged" }

func (Tagged) Apply(current, _ []domain.LogEntry) []domain.LogEntry {
	return keep(current, domain.LogEntry.Tagged)
}

// Latest keeps the chronologically last entry of the current selection.
// Among equal timestamps the one positioned last wins.
type Latest struct{}

func (Latest) Name() string { return "latest" }

func (Latest) Apply(current, _ []domain.LogEntry) []domain.LogEntry {
	if len(current) == 0 {
		return []domain.LogEntry{}
	}
	last := current[0]
	for _, e := range current[1:] {
		if !e.Timestamp.Before(last.Timestamp) {
			last = e
		}
	}
	return []domain.LogEntry{last}
}

func keep(entries []domain.LogEntry, pred func(domain.LogEntry) bool) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(entries))
	for _, e := range entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}
