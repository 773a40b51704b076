package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPriorityPolicy_EmptyPathIsDefault(t *testing.T) {
	set, err := LoadPriorityPolicy("")
	require.NoError(t, err)
	assert.Equal(t, forecast.DefaultPolicySet(), set)
}

func TestLoadPriorityPolicy_MissingFile(t *testing.T) {
	_, err := LoadPriorityPolicy(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading priority policy")
}

func TestLoadPriorityPolicy_OverridesOneSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	data := `
[subscription]
default = "routine"

[[subscription.rules]]
keywords = ["backup", "Password"]
priority = "critical"

[[subscription.rules]]
above = "50"
priority = "important"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	set, err := LoadPriorityPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, forecast.DefaultPolicySet().Fixed, set.Fixed, "absent sections keep defaults")
	assert.Equal(t, forecast.PriorityCritical, set.Subscription.Classify("Password manager", decimal.NewFromInt(3)))
	assert.Equal(t, forecast.PriorityImportant, set.Subscription.Classify("Streaming", decimal.NewFromInt(60)))
	assert.Equal(t, forecast.PriorityRoutine, set.Subscription.Classify("Streaming", decimal.NewFromInt(50)))
}

func TestParsePriorityPolicy_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad toml", "[fixed", "parsing priority policy"},
		{"unknown priority", "[[loan.rules]]\npriority = \"urgent\"", `loan rule 0: unknown priority "urgent"`},
		{"unknown default", "[fixed]\ndefault = \"meh\"", `fixed: unknown default priority "meh"`},
		{"bad threshold", "[[fixed.rules]]\nabove = \"ten\"\npriority = \"critical\"", `fixed rule 0: invalid threshold "ten"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePriorityPolicy([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
