package config

import (
	"strings"
	"testing"
)

func TestDefaultScoringConfigValid(t *testing.T) {
	cfg := DefaultScoringConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default scoring config should be valid: %v", err)
	}
	if cfg.MaxComboBonus() != 3.0 {
		t.Errorf("MaxComboBonus = %v, want 3.0", cfg.MaxComboBonus())
	}
}

func TestParseScoringConfigPartialOverride(t *testing.T) {
	cfg, err := ParseScoringConfig([]byte("comboWindow: 3.5\n"))
	if err != nil {
		t.Fatalf("ParseScoringConfig error: %v", err)
	}
	if cfg.ComboWindow != 3.5 {
		t.Errorf("ComboWindow = %v, want 3.5", cfg.ComboWindow)
	}
	if len(cfg.Tiers) != 5 || cfg.Tiers[0].Multiplier != 5.0 {
		t.Errorf("tiers should keep defaults, got %+v", cfg.Tiers)
	}
}

func TestScoringConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ScoringConfig)
		errPart string
	}{
		{"档位数量错误", func(c *ScoringConfig) { c.Tiers = c.Tiers[:4] }, "exactly 5 tiers"},
		{"距离不递增", func(c *ScoringConfig) { c.Tiers[2].MaxDistance = 100 }, "must exceed previous"},
		{"倍率随距离上升", func(c *ScoringConfig) { c.Tiers[3].Multiplier = 2.0 }, "exceeds closer tier"},
		{"最后一档有上界", func(c *ScoringConfig) { c.Tiers[4].MaxDistance = 900 }, "must be unbounded"},
		{"连击窗口为零", func(c *ScoringConfig) { c.ComboWindow = 0 }, "comboWindow must be positive"},
		{"连击阈值不递增", func(c *ScoringConfig) { c.ComboThresholds[1].Streak = 5 }, "strictly increasing"},
		{"连击奖励小于1", func(c *ScoringConfig) { c.ComboThresholds[0].Bonus = 0.5 }, "bonus must be >= 1"},
		{"连击奖励下降", func(c *ScoringConfig) { c.ComboThresholds[2].Bonus = 1.3 }, "lower than previous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultScoringConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errPart)
			}
		})
	}
}
