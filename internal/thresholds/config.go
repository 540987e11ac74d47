package thresholds

import (
	"os"
	"strconv"

	"carelens/internal/errors"
)

// Bound is an inclusive numeric range a column's values must stay inside.
// Violating a hard bound is a failed-severity finding; these ranges encode
// physical or clinical impossibility, not statistical unusualness.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether x is inside the bound
func (b Bound) Contains(x float64) bool {
	return x >= b.Min && x <= b.Max
}

// OutputDistribution is the expected shape of model outputs
type OutputDistribution struct {
	Mean         float64 `json:"mean"`
	Std          float64 `json:"std"`
	ToleranceMul float64 `json:"tolerance_mul"` // allowed deviation as a multiple of Std
}

// Config is the immutable set of named thresholds consumed by every check
// and validator. It is built once per run and passed by reference; nothing
// mutates it after construction.
type Config struct {
	// Data quality
	NullPctMax float64          `json:"null_pct_max"`
	ZScoreMax  float64          `json:"zscore_max"`
	HardBounds map[string]Bound `json:"hard_bounds"`

	// Model performance
	RMSEThreshold float64 `json:"rmse_threshold"`
	R2Threshold   float64 `json:"r2_threshold"`
	MAEThreshold  float64 `json:"mae_threshold"`

	// Fairness
	BiasRatioMax float64 `json:"bias_ratio_max"`
	MinGroupSize int     `json:"min_group_size"`
	AgeBinWidth  int     `json:"age_bin_width"` // 0 = group ages by exact value

	// Healthcare rules
	ExpectedOutput OutputDistribution `json:"expected_output"`
	OutputBounds   map[string]Bound   `json:"output_bounds"`
}

// BiasRatioCeiling is the regulatory hard ceiling a configured bias ratio
// cap must itself stay under.
const BiasRatioCeiling = 2.0

// Default returns the threshold configuration for the insurance cost domain
func Default() *Config {
	return &Config{
		NullPctMax: 5.0,
		ZScoreMax:  3.0,
		HardBounds: map[string]Bound{
			"age":      {Min: 0, Max: 120},
			"bmi":      {Min: 10, Max: 70},
			"children": {Min: 0, Max: 10},
			"charges":  {Min: 0, Max: 100000},
		},

		RMSEThreshold: 5000,
		R2Threshold:   0.7,
		MAEThreshold:  3000,

		BiasRatioMax: 1.1,
		MinGroupSize: 30,
		AgeBinWidth:  0,

		ExpectedOutput: OutputDistribution{Mean: 13000, Std: 5000, ToleranceMul: 1.0},
		OutputBounds: map[string]Bound{
			"charges": {Min: 0, Max: 100000},
		},
	}
}

// Load builds a config from the environment on top of the defaults
func Load() (*Config, error) {
	cfg := Default()

	cfg.NullPctMax = getEnvFloatOrDefault("NULL_PCT_MAX", cfg.NullPctMax)
	cfg.ZScoreMax = getEnvFloatOrDefault("ZSCORE_MAX", cfg.ZScoreMax)
	cfg.RMSEThreshold = getEnvFloatOrDefault("RMSE_THRESHOLD", cfg.RMSEThreshold)
	cfg.R2Threshold = getEnvFloatOrDefault("R2_THRESHOLD", cfg.R2Threshold)
	cfg.MAEThreshold = getEnvFloatOrDefault("MAE_THRESHOLD", cfg.MAEThreshold)
	cfg.BiasRatioMax = getEnvFloatOrDefault("BIAS_RATIO_MAX", cfg.BiasRatioMax)
	cfg.MinGroupSize = getEnvIntOrDefault("MIN_GROUP_SIZE", cfg.MinGroupSize)
	cfg.AgeBinWidth = getEnvIntOrDefault("AGE_BIN_WIDTH", cfg.AgeBinWidth)
	cfg.ExpectedOutput.Mean = getEnvFloatOrDefault("EXPECTED_OUTPUT_MEAN", cfg.ExpectedOutput.Mean)
	cfg.ExpectedOutput.Std = getEnvFloatOrDefault("EXPECTED_OUTPUT_STD", cfg.ExpectedOutput.Std)
	cfg.ExpectedOutput.ToleranceMul = getEnvFloatOrDefault("EXPECTED_OUTPUT_TOLERANCE", cfg.ExpectedOutput.ToleranceMul)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "threshold configuration validation failed")
	}
	return cfg, nil
}

// Validate rejects configurations that would make check semantics meaningless
func (c *Config) Validate() error {
	if c.NullPctMax < 0 || c.NullPctMax > 100 {
		return errors.ConfigInvalid("NULL_PCT_MAX must be within [0,100]")
	}
	if c.ZScoreMax <= 0 {
		return errors.ConfigInvalid("ZSCORE_MAX must be positive")
	}
	if c.BiasRatioMax < 1 {
		return errors.ConfigInvalid("BIAS_RATIO_MAX must be at least 1")
	}
	if c.AgeBinWidth < 0 {
		return errors.ConfigInvalid("AGE_BIN_WIDTH must not be negative")
	}
	for col, b := range c.HardBounds {
		if b.Min > b.Max {
			return errors.ConfigInvalid("hard bound for " + col + " has min > max")
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
