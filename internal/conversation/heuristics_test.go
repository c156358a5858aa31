package conversation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionHeuristicDefaults(t *testing.T) {
	t.Parallel()

	h := NewPositionHeuristic(nil)

	tests := []struct {
		position string
		expect   []string
	}{
		{position: "UX Designer", expect: []string{"ui/ux"}},
		{position: "ui engineer", expect: []string{"ui/ux"}},
		{position: "Product Manager", expect: []string{"product"}},
		{position: "Backend Engineer", expect: nil},
		{position: "   ", expect: nil},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expect, h.Infer(tt.position), "position %q", tt.position)
	}
}

func TestPositionHeuristicFirstRuleWins(t *testing.T) {
	t.Parallel()

	// "Product Designer" matches both default rules; order decides.
	h := NewPositionHeuristic(nil)
	require.Equal(t, []string{"ui/ux"}, h.Infer("Product Designer"))
}

func TestRulesFromConfig(t *testing.T) {
	t.Parallel()

	raw := []any{
		map[string]any{"contains": []any{"data", "analytics"}, "tag": "sql"},
		map[string]any{"contains": []any{"mobile"}, "tag": "react"},
	}

	rules, err := RulesFromConfig(raw)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	require.Equal(t, HeuristicRule{Contains: []string{"data", "analytics"}, Tag: "sql"}, rules[0])

	h := NewPositionHeuristic(rules)
	require.Equal(t, []string{"sql"}, h.Infer("Data Analyst"))
	require.Nil(t, h.Infer("Product Manager"), "custom rules replace the defaults")
}

func TestRulesFromConfigNil(t *testing.T) {
	t.Parallel()

	rules, err := RulesFromConfig(nil)
	require.NoError(t, err)
	require.Nil(t, rules)
}

func TestRulesFromConfigMalformed(t *testing.T) {
	t.Parallel()

	_, err := RulesFromConfig("not a rule list")
	require.Error(t, err)
}
