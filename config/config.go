package config

import (
	"strings"

	"github.com/spf13/viper"

	"analyzer/analysis"
)

// Config holds application configuration.
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	Addr        string           `mapstructure:"addr"`
	LogLevel    string           `mapstructure:"log_level"`
	APIKey      string           `mapstructure:"api_key"`
	GeminiKey   string           `mapstructure:"gemini_api_key"`
	GeminiModel string           `mapstructure:"gemini_model"`
	Analysis    analysis.Options `mapstructure:"analysis"`
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

// Load reads configuration from an optional analyzer.yaml and the
// environment (ANALYZER_* variables, e.g. ANALYZER_ANALYSIS_OUTLIER_K).
// Invalid analysis thresholds fail here, before any request is served.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")

	defaults := analysis.DefaultOptions()
	v.SetDefault("analysis.outlier_k", defaults.OutlierK)
	v.SetDefault("analysis.min_group_size", defaults.MinGroupSize)
	v.SetDefault("analysis.delivery_window_fraction", defaults.DeliveryWindowFraction)
	v.SetDefault("analysis.degradation_ratio", defaults.DegradationRatio)
	v.SetDefault("analysis.delayed_threshold", defaults.DelayedThreshold)
	v.SetDefault("analysis.inventory_floor_percentile", defaults.InventoryFloorPercentile)
	v.SetDefault("analysis.severity_weights.low", defaults.SeverityWeights.Low)
	v.SetDefault("analysis.severity_weights.medium", defaults.SeverityWeights.Medium)
	v.SetDefault("analysis.severity_weights.high", defaults.SeverityWeights.High)

	v.SetEnvPrefix("analyzer")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// GEMINI_API_KEY is also honored without the prefix, matching how the
	// original tool was deployed.
	_ = v.BindEnv("gemini_api_key", "ANALYZER_GEMINI_API_KEY", "GEMINI_API_KEY")

	v.SetConfigName("analyzer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Analysis.Validate(); err != nil {
		return Config{}, err
	}

	AppConfig = cfg
	return cfg, nil
}
