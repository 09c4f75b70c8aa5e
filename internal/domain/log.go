package domain

import "time"

const (
	GrammarBlock   = "block"
	GrammarLeveled = "leveled"
)

type LogEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	RawTimestamp string    `json:"raw_timestamp"`
	Component    string    `json:"component,omitempty"`
	Level        string    `json:"level,omitempty"`
	Context      string    `json:"context,omitempty"`
	Message      string    `json:"message"`
	Breadcrumb   string    `json:"breadcrumb,omitempty"`
	// Grammar names the line format the entry was parsed from.
	Grammar string `json:"-"`
}

func (e LogEntry) Tagged() bool {
	return e.Breadcrumb != ""
}
