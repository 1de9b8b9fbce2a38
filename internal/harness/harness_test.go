package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Floats(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/floats.yaml")
	require.NoError(t, err)
	assert.Equal(t, "floats", sc.Name)
	assert.Contains(t, sc.RulesetPath, "testdata/rulesets/floats.yaml")
}

func TestRun_Floats(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/floats.yaml")
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, []string{"float", "float", "float"}, result.Tokens)
	assert.NotEmpty(t, result.Trace)
}

func TestRun_ZapMe(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/zap_me.yaml")
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, "bla  bla  bla", result.Echo)
}

func TestRun_ReportsMismatch(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/floats.yaml")
	require.NoError(t, err)
	bad := "nope"
	sc.ExpectEcho = &bad

	result, err := Run(sc)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.NotEmpty(t, result.Errors)
}
