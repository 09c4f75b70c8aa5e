package classifier

import "github.com/Egor213/LogTrail/internal/domain"

// Classifier assigns breadcrumbs from a fixed rule table.
type Classifier struct {
	table Table
}

func New(t Table) *Classifier {
	return &Classifier{table: t}
}

// Classify sets the breadcrumb of every entry in place.
func (c *Classifier) Classify(entries []domain.LogEntry) {
	for i := range entries {
		entries[i].Breadcrumb = c.table.Label(entries[i])
	}
}

func (c *Classifier) Label(e domain.LogEntry) string {
	return c.table.Label(e)
}
