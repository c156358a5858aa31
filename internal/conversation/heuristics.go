package conversation

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Heuristic infers skill tags from already-collected candidate data when the
// extractor finds nothing in the skills answer itself.
type Heuristic interface {
	Name() string
	Infer(position string) []string
}

// HeuristicRule maps substrings of the desired position to a single skill
// tag. Rules are evaluated in order; the first match wins.
type HeuristicRule struct {
	Contains []string `mapstructure:"contains"`
	Tag      string   `mapstructure:"tag"`
}

// DefaultHeuristicRules returns the built-in position rules.
func DefaultHeuristicRules() []HeuristicRule {
	return []HeuristicRule{
		{Contains: []string{"design", "ux", "ui"}, Tag: "ui/ux"},
		{Contains: []string{"product"}, Tag: "product"},
	}
}

// RulesFromConfig decodes heuristic rules from loosely typed configuration
// data, as produced by viper for the interview.heuristics key.
func RulesFromConfig(raw any) ([]HeuristicRule, error) {
	if raw == nil {
		return nil, nil
	}

	var rules []HeuristicRule
	if err := mapstructure.Decode(raw, &rules); err != nil {
		return nil, fmt.Errorf("decode heuristic rules: %w", err)
	}

	return rules, nil
}

type positionHeuristic struct {
	rules []HeuristicRule
}

// NewPositionHeuristic creates a heuristic that tags candidates based on
// their desired position. An empty rule list falls back to the defaults.
func NewPositionHeuristic(rules []HeuristicRule) Heuristic {
	if len(rules) == 0 {
		rules = DefaultHeuristicRules()
	}
	return &positionHeuristic{rules: rules}
}

func (h *positionHeuristic) Name() string { return "position" }

func (h *positionHeuristic) Infer(position string) []string {
	position = strings.ToLower(position)
	if strings.TrimSpace(position) == "" {
		return nil
	}

	for _, rule := range h.rules {
		if rule.Tag == "" {
			continue
		}
		for _, needle := range rule.Contains {
			if needle != "" && strings.Contains(position, strings.ToLower(needle)) {
				return []string{rule.Tag}
			}
		}
	}

	return nil
}
