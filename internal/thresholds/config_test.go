package thresholds

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestBoundContains(t *testing.T) {
	b := Bound{Min: 0, Max: 120}

	cases := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{120, true},
		{60, true},
		{-0.1, false},
		{120.1, false},
	}
	for _, tc := range cases {
		if got := b.Contains(tc.x); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("NULL_PCT_MAX", "12.5")
	t.Setenv("ZSCORE_MAX", "2.5")
	t.Setenv("MIN_GROUP_SIZE", "10")
	t.Setenv("AGE_BIN_WIDTH", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NullPctMax != 12.5 {
		t.Errorf("expected NullPctMax=12.5, got %v", cfg.NullPctMax)
	}
	if cfg.ZScoreMax != 2.5 {
		t.Errorf("expected ZScoreMax=2.5, got %v", cfg.ZScoreMax)
	}
	if cfg.MinGroupSize != 10 {
		t.Errorf("expected MinGroupSize=10, got %v", cfg.MinGroupSize)
	}
	if cfg.AgeBinWidth != 5 {
		t.Errorf("expected AgeBinWidth=5, got %v", cfg.AgeBinWidth)
	}
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("NULL_PCT_MAX", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NullPctMax != Default().NullPctMax {
		t.Errorf("unparseable env value should fall back to the default, got %v", cfg.NullPctMax)
	}
}

func TestLoadRejectsInvalidConfiguration(t *testing.T) {
	t.Setenv("NULL_PCT_MAX", "150")

	if _, err := Load(); err == nil {
		t.Fatal("a null percentage ceiling above 100 must be rejected")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative null pct", func(c *Config) { c.NullPctMax = -1 }},
		{"zero zscore", func(c *Config) { c.ZScoreMax = 0 }},
		{"bias ratio under 1", func(c *Config) { c.BiasRatioMax = 0.5 }},
		{"negative bin width", func(c *Config) { c.AgeBinWidth = -5 }},
		{"inverted bound", func(c *Config) { c.HardBounds["age"] = Bound{Min: 10, Max: 0} }},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation failure", tc.name)
		}
	}
}
