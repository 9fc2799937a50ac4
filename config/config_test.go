package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 2.0, cfg.Analysis.OutlierK)
	assert.Equal(t, 2, cfg.Analysis.MinGroupSize)
	assert.Equal(t, 20.0, cfg.Analysis.SeverityWeights.High)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ANALYZER_ANALYSIS_OUTLIER_K", "3.5")
	t.Setenv("ANALYZER_ANALYSIS_SEVERITY_WEIGHTS_HIGH", "40")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Analysis.OutlierK)
	assert.Equal(t, 40.0, cfg.Analysis.SeverityWeights.High)
}

func TestLoadRejectsInvalidThreshold(t *testing.T) {
	t.Setenv("ANALYZER_ANALYSIS_OUTLIER_K", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outlier_k")
}

func TestLoadHonorsBareGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.GeminiKey)
}
