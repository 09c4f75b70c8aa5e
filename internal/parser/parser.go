package parser

import (
	"slices"
	"strings"

	"github.com/Egor213/LogTrail/internal/domain"
)

// Stats summarizes a single Parse call.
type Stats struct {
	Parsed  map[string]int
	Skipped int
	Errors  []error
}

func (s Stats) Total() int {
	n := 0
	for _, c := range s.Parsed {
		n += c
	}
	return n
}

// Parser extracts entries from raw log text. It holds only compiled grammars
// and is safe for concurrent use.
type Parser struct {
	grammars []Grammar
}

// New returns a Parser trying grammars in the given order. Without arguments
// it recognizes the block and leveled formats.
func New(grammars ...Grammar) *Parser {
	if len(grammars) == 0 {
		grammars = []Grammar{NewBlock(), NewLeveled()}
	}
	return &Parser{grammars: grammars}
}

// Parse walks text once, collecting every recognized record, and returns
// them sorted by timestamp. Ties keep their textual order. Unrecognized
// lines and records with invalid timestamps are dropped and reported in Stats.
func (p *Parser) Parse(text string) ([]domain.LogEntry, Stats) {
	stats := Stats{Parsed: make(map[string]int, len(p.grammars))}
	entries := []domain.LogEntry{}

	line := 1
	for pos := 0; pos < len(text); {
		rest := text[pos:]

		entry, n, err := p.match(rest)
		if n == 0 {
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest) - 1
			}
			if strings.TrimSpace(rest[:end+1]) != "" {
				stats.Skipped++
			}
			pos += end + 1
			line++
			continue
		}

		if err != nil {
			stats.Errors = append(stats.Errors, &ParseError{Line: line, Raw: rest[:n], Err: err})
		} else {
			entries = append(entries, entry)
			stats.Parsed[entry.Grammar]++
		}

		line += strings.Count(rest[:n], "\n")
		pos += n
	}

	slices.SortStableFunc(entries, func(a, b domain.LogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return entries, stats
}

// ParseRecord parses text holding exactly one record.
func (p *Parser) ParseRecord(text string) (domain.LogEntry, error) {
	text = strings.TrimSpace(text)
	entry, n, err := p.match(text)
	if n == 0 {
		return domain.LogEntry{}, ErrMalformedLine
	}
	if err != nil {
		return domain.LogEntry{}, err
	}
	if strings.TrimSpace(text[n:]) != "" {
		return domain.LogEntry{}, ErrMalformedLine
	}
	return entry, nil
}

func (p *Parser) match(text string) (domain.LogEntry, int, error) {
	for _, g := range p.grammars {
		if entry, n, err := g.Match(text); n > 0 {
			return entry, n, err
		}
	}
	return domain.LogEntry{}, 0, nil
}
