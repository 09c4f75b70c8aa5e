package parser

import (
	"fmt"
	"strings"

	"github.com/Egor213/LogTrail/internal/domain"
)

// Format renders an entry back into the text form of its grammar. Parsing
// the result yields an equal entry, breadcrumb aside.
func Format(e domain.LogEntry) string {
	switch e.Grammar {
	case domain.GrammarLeveled:
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %s - [%s] ", FormatTimestamp(e), e.Level, e.Context)
		if e.Component != "" {
			b.WriteString(e.Component)
			b.WriteString(": ")
		}
		b.WriteString(e.Message)
		b.WriteByte('\n')
		return b.String()
	default:
		return fmt.Sprintf("[%s]\n\"\"\"\n%s\n\"\"\"\n", FormatTimestamp(e), e.Message)
	}
}

// FormatTimestamp returns the original timestamp text, regenerating it from
// Timestamp when the entry was not produced by the parser.
func FormatTimestamp(e domain.LogEntry) string {
	if e.RawTimestamp != "" {
		return e.RawTimestamp
	}
	if e.Grammar == domain.GrammarLeveled {
		return e.Timestamp.Format(leveledLayout)
	}
	return e.Timestamp.Format(blockTextLayout)
}
