package classifier

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ModeLevel   = "level"
	ModeContent = "content"

	PresetIncident = "incident"
	PresetTrading  = "trading"

	LabelInfo = "ℹ️ Info"
)

var (
	ErrUnknownMode   = errors.New("unknown classification mode")
	ErrUnknownPreset = errors.New("unknown rule preset")
	ErrEmptyRule     = errors.New("rule has no label or nothing to match")
)

// Incident tags error and critical records for an incident trail.
func Incident() Table {
	return ByLevel(
		LevelRule{Level: "ERROR", Label: "🔴 Critical"},
		LevelRule{Level: "CRITICAL", Label: "🔥 Failure"},
	)
}

// Trading tags the stages of a market-stress cascade.
func Trading() Table {
	return ByContent(LabelInfo,
		ContentRule{Phrases: []string{"sell order"}, Label: "🔴 Trigger"},
		ContentRule{Phrases: []string{"vwap", "100%"}, Label: "🟠 Risk Bypass"},
		ContentRule{Phrases: []string{"liquidity", "bid-ask"}, Label: "🟡 Market Stress"},
		ContentRule{Phrases: []string{"latency"}, Label: "🟠 Platform Stress"},
		ContentRule{Phrases: []string{"circuit-breaker"}, Label: "🔴 Control Failure"},
		ContentRule{Phrases: []string{"var"}, Label: "🟡 Risk Acceleration"},
		ContentRule{Phrases: []string{"msft = 0.01", "sanity bounds"}, Label: "🔴 Data Anomaly"},
		ContentRule{Phrases: []string{"dropping client sessions"}, Label: "🔥 Final Failure"},
		ContentRule{Phrases: []string{"alert"}, Label: "📣 Alerting"},
	)
}

func Preset(name string) (Table, error) {
	switch strings.ToLower(name) {
	case PresetIncident:
		return Incident(), nil
	case PresetTrading:
		return Trading(), nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// RuleSpec is a rule as written in configuration. Level mode reads Levels,
// content mode reads Phrases.
type RuleSpec struct {
	Label   string   `yaml:"label"`
	Levels  []string `yaml:"levels"`
	Phrases []string `yaml:"phrases"`
}

// Build turns configured rules into a table for the given mode. The fallback
// label only applies to content mode.
func Build(mode string, specs []RuleSpec, fallback string) (Table, error) {
	switch strings.ToLower(mode) {
	case ModeLevel:
		t := Table{Rules: make([]Rule, 0, len(specs))}
		for i, s := range specs {
			if s.Label == "" || len(s.Levels) == 0 {
				return Table{}, fmt.Errorf("%w: rule %d", ErrEmptyRule, i+1)
			}
			t.Rules = append(t.Rules, Rule{Label: s.Label, When: LevelIs(s.Levels...)})
		}
		return t, nil
	case ModeContent:
		rules := make([]ContentRule, 0, len(specs))
		for i, s := range specs {
			if s.Label == "" || len(s.Phrases) == 0 {
				return Table{}, fmt.Errorf("%w: rule %d", ErrEmptyRule, i+1)
			}
			rules = append(rules, ContentRule{Phrases: s.Phrases, Label: s.Label})
		}
		return ByContent(fallback, rules...), nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
