package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Egor213/LogTrail/internal/domain"
)

// Grammar recognizes one record format at the very start of a text.
//
// Match returns the number of bytes the record occupies, or 0 when the text
// does not start with such a record. A record that is structurally valid but
// carries an impossible timestamp is still consumed: Match then returns n > 0
// together with an error wrapping ErrInvalidTimestamp.
type Grammar interface {
	Name() string
	Match(text string) (domain.LogEntry, int, error)
}

const (
	blockLayout     = "2006 01 02 1504 05"
	blockTextLayout = "2006-01-02_1504hr_05sec"
	leveledLayout   = "2006-01-02 15:04:05,000"
)

var blockTimestampReplacer = strings.NewReplacer("hr", "", "sec", "", "_", " ", "-", " ")

// Block is the bracketed timestamp followed by a triple-quoted body:
//
//	[2025-05-10_1230hr_15sec]
//	"""
//	body
//	"""
//
// Text before the bracket on the timestamp line is consumed with the record.
type Block struct {
	re *regexp.Regexp
}

func NewBlock() *Block {
	return &Block{
		re: regexp.MustCompile(`(?s)\A[^\n]*?\[(\d{4}-\d{2}-\d{2}_\d{4}hr_\d{2}sec)\][ \t]*\r?\n(?:[ \t]*\r?\n)*[ \t]*"""(.*?)"""`),
	}
}

func (g *Block) Name() string { return domain.GrammarBlock }

func (g *Block) Match(text string) (domain.LogEntry, int, error) {
	m := g.re.FindStringSubmatchIndex(text)
	if m == nil {
		return domain.LogEntry{}, 0, nil
	}

	raw := text[m[2]:m[3]]
	ts, err := time.Parse(blockLayout, blockTimestampReplacer.Replace(raw))
	if err != nil {
		return domain.LogEntry{}, m[1], fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, raw, err)
	}

	return domain.LogEntry{
		Timestamp:    ts,
		RawTimestamp: raw,
		Message:      strings.TrimSpace(text[m[4]:m[5]]),
		Grammar:      domain.GrammarBlock,
	}, m[1], nil
}

// Leveled is the single line record
//
//	[2010-04-24 07:51:54,401] INFO - [main] OrderEngine: message
//
// where the "Component:" segment is optional.
type Leveled struct {
	re *regexp.Regexp
}

func NewLeveled() *Leveled {
	return &Leveled{
		re: regexp.MustCompile(`\A[ \t]*\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3})\][ \t]+(\w+)[ \t]+-[ \t]+\[([^\]\n]*)\][ \t]*(?:(\w+):[ \t]+)?([^\n]*)`),
	}
}

func (g *Leveled) Name() string { return domain.GrammarLeveled }

func (g *Leveled) Match(text string) (domain.LogEntry, int, error) {
	m := g.re.FindStringSubmatchIndex(text)
	if m == nil {
		return domain.LogEntry{}, 0, nil
	}

	raw := text[m[2]:m[3]]
	ts, err := time.Parse(leveledLayout, raw)
	if err != nil {
		return domain.LogEntry{}, m[1], fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, raw, err)
	}

	entry := domain.LogEntry{
		Timestamp:    ts,
		RawTimestamp: raw,
		Level:        text[m[4]:m[5]],
		Context:      text[m[6]:m[7]],
		Message:      strings.TrimSpace(text[m[10]:m[11]]),
		Grammar:      domain.GrammarLeveled,
	}
	if m[8] >= 0 {
		entry.Component = text[m[8]:m[9]]
	}
	return entry, m[1], nil
}
