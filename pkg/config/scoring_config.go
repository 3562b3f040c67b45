package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TierConfig 单个距离档位
//
// MaxDistance 为该档位的上界（不含），最后一个档位的 MaxDistance 为 0 表示无上界。
type TierConfig struct {
	Name        string  `yaml:"name"`
	MaxDistance float64 `yaml:"maxDistance"`
	Multiplier  float64 `yaml:"multiplier"`
}

// ComboThreshold 连击阈值：连击数达到 Streak 时奖励倍率为 Bonus
type ComboThreshold struct {
	Streak int     `yaml:"streak"`
	Bonus  float64 `yaml:"bonus"`
}

// ScoringConfig 近距离计分配置
//
// 配置文件位置: data/scoring.yaml
type ScoringConfig struct {
	Tiers           []TierConfig     `yaml:"tiers"`           // 距离档位（按距离从近到远）
	ComboWindow     float64          `yaml:"comboWindow"`     // 连击窗口（秒）
	ComboThresholds []ComboThreshold `yaml:"comboThresholds"` // 连击奖励阈值（按连击数递增）
}

// DefaultScoringConfig 返回默认计分配置
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Tiers: []TierConfig{
			{Name: "EXTREME", MaxDistance: 80, Multiplier: 5.0},
			{Name: "CLOSE", MaxDistance: 150, Multiplier: 3.0},
			{Name: "MEDIUM", MaxDistance: 250, Multiplier: 1.5},
			{Name: "FAR", MaxDistance: 400, Multiplier: 1.0},
			{Name: "VERY_FAR", MaxDistance: 0, Multiplier: 0.5},
		},
		ComboWindow: 2.0,
		ComboThresholds: []ComboThreshold{
			{Streak: 5, Bonus: 1.2},
			{Streak: 10, Bonus: 1.5},
			{Streak: 20, Bonus: 2.0},
			{Streak: 50, Bonus: 3.0},
		},
	}
}

// MaxComboBonus 返回最高连击奖励倍率（没有阈值时为 1.0）
func (c *ScoringConfig) MaxComboBonus() float64 {
	max := 1.0
	for _, th := range c.ComboThresholds {
		if th.Bonus > max {
			max = th.Bonus
		}
	}
	return max
}

// LoadScoringConfig 加载计分配置
// 文件中缺失的字段保留默认值
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseScoringConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseScoringConfig 解析并验证计分配置 YAML
func ParseScoringConfig(data []byte) (*ScoringConfig, error) {
	cfg := DefaultScoringConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scoring YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证计分配置
//
// 规则：
//   - 必须恰好有 5 个档位，距离上界严格递增，最后一个档位无上界
//   - 倍率为正且随距离单调不增
//   - 连击窗口为正，连击阈值严格递增，奖励倍率 >= 1 且单调不减
func (c *ScoringConfig) Validate() error {
	if len(c.Tiers) != 5 {
		return fmt.Errorf("exactly 5 tiers are required, got %d", len(c.Tiers))
	}

	for i, tier := range c.Tiers {
		if tier.Multiplier <= 0 {
			return fmt.Errorf("tier %s: multiplier must be positive, got %v", tier.Name, tier.Multiplier)
		}
		last := i == len(c.Tiers)-1
		if last {
			if tier.MaxDistance != 0 {
				return fmt.Errorf("last tier %s must be unbounded (maxDistance 0), got %v", tier.Name, tier.MaxDistance)
			}
		} else if tier.MaxDistance <= 0 {
			return fmt.Errorf("tier %s: maxDistance must be positive, got %v", tier.Name, tier.MaxDistance)
		}
		if i > 0 {
			prev := c.Tiers[i-1]
			if !last && tier.MaxDistance <= prev.MaxDistance {
				return fmt.Errorf("tier %s: maxDistance %v must exceed previous tier's %v", tier.Name, tier.MaxDistance, prev.MaxDistance)
			}
			if tier.Multiplier > prev.Multiplier {
				return fmt.Errorf("tier %s: multiplier %v exceeds closer tier's %v", tier.Name, tier.Multiplier, prev.Multiplier)
			}
		}
	}

	if c.ComboWindow <= 0 {
		return fmt.Errorf("comboWindow must be positive, got %v", c.ComboWindow)
	}

	for i, th := range c.ComboThresholds {
		if th.Streak < 1 {
			return fmt.Errorf("combo threshold %d: streak must be at least 1, got %d", i, th.Streak)
		}
		if th.Bonus < 1 {
			return fmt.Errorf("combo threshold %d: bonus must be >= 1, got %v", i, th.Bonus)
		}
		if i > 0 && th.Streak <= c.ComboThresholds[i-1].Streak {
			return fmt.Errorf("combo thresholds must be strictly increasing, got %d after %d", th.Streak, c.ComboThresholds[i-1].Streak)
		}
		if i > 0 && th.Bonus < c.ComboThresholds[i-1].Bonus {
			return fmt.Errorf("combo threshold %d: bonus %v is lower than previous %v", i, th.Bonus, c.ComboThresholds[i-1].Bonus)
		}
	}

	return nil
}
