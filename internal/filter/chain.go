package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Egor213/LogTrail/internal/domain"
)

// Request gathers the optional criteria of one query. Zero values disable
// the corresponding filter.
type Request struct {
	Date     string
	From     string
	To       string
	Keywords []string
	Entries  []int
	Tagged   bool
	Latest   bool
}

// String lists every criterion set on the request, for diagnostics.
func (r Request) String() string {
	parts := []string{}
	if r.Date != "" {
		parts = append(parts, "date="+r.Date)
	}
	if r.From != "" || r.To != "" {
		parts = append(parts, fmt.Sprintf("window=%s..%s", r.From, r.To))
	}
	if len(r.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("keywords=%q", r.Keywords))
	}
	if len(r.Entries) > 0 {
		parts = append(parts, fmt.Sprintf("entries=%v", r.Entries))
	}
	if r.Tagged {
		parts = append(parts, "tagged")
	}
	if r.Latest {
		parts = append(parts, "latest")
	}
	return strings.Join(parts, " ")
}

// Chain applies its steps in a fixed order: date, window, keyword, index,
// tagged, latest.
type Chain struct {
	steps []Step
}

func NewChain(req Request) (*Chain, error) {
	c := &Chain{}

	if req.Date != "" {
		spec, err := ParseDateSpec(req.Date)
		if err != nil {
			return nil, err
		}
		c.steps = append(c.steps, Date{Spec: spec})
	}

	if req.From != "" || req.To != "" {
		w, err := newWindow(req.From, req.To)
		if err != nil {
			return nil, err
		}
		c.steps = append(c.steps, w)
	}

	if k := NewKeywords(req.Keywords...); len(k.words) > 0 {
		c.steps = append(c.steps, k)
	}

	if len(req.Entries) > 0 {
		c.steps = append(c.steps, Index{Ordinals: append([]int(nil), req.Entries...)})
	}

	if req.Tagged {
		c.steps = append(c.steps, Tagged{})
	}

	if req.Latest {
		c.steps = append(c.steps, Latest{})
	}

	return c, nil
}

// Apply runs every step over all, which must be sorted by timestamp.
func (c *Chain) Apply(all []domain.LogEntry) []domain.LogEntry {
	current := append([]domain.LogEntry{}, all...)
	for _, s := range c.steps {
		current = s.Apply(current, all)
	}
	return current
}

func (c *Chain) Steps() []string {
	names := make([]string, 0, len(c.steps))
	for _, s := range c.steps {
		names = append(names, s.Name())
	}
	return names
}

func newWindow(from, to string) (Window, error) {
	var w Window

	if from != "" {
		start, _, err := pointBounds(from)
		if err != nil {
			return Window{}, err
		}
		w.From = start
	}

	if to != "" {
		_, end, err := pointBounds(to)
		if err != nil {
			return Window{}, err
		}
		w.To = end
	}

	if !w.From.IsZero() && !w.To.IsZero() && !w.From.Before(w.To) {
		return Window{}, fmt.Errorf("%w: window %q..%q is empty", ErrInvalidDateSpec, from, to)
	}
	return w, nil
}

func pointBounds(s string) (start, end time.Time, err error) {
	spec, err := ParseDateSpec(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end, ok := spec.Bounds()
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w %q: window bounds take a day, month or year", ErrInvalidDateSpec, s)
	}
	return start, end, nil
}
