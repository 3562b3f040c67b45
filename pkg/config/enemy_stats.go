package config

import (
	"fmt"
	"sort"

	"github.com/gonewx/abyssal/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	Behavior     string  `yaml:"behavior"`     // AI 行为变体名（basic/kamikaze/weaver/sniper/spawner/tank）
	Speed        float64 `yaml:"speed"`        // 基础速度（像素/帧）
	Health       int     `yaml:"health"`       // 生命值
	BaseScore    int     `yaml:"baseScore"`    // 击杀基础分
	FireInterval float64 `yaml:"fireInterval"` // 基础开火间隔（秒），0 表示不开火
	MinStage     int     `yaml:"minStage"`     // 最早出现的关卡（从1开始）
	Radius       float64 `yaml:"radius"`       // 碰撞半径（像素）
}

// EnemyStatsConfig 敌人属性配置文件结构
//
// 配置文件位置: data/enemy_stats.yaml
type EnemyStatsConfig struct {
	Enemies map[string]EnemyStats `yaml:"enemies"` // 敌人类型 -> 属性
}

// LoadEnemyStats 从 YAML 文件加载敌人属性配置
//
// 参数：
//
//	path - 配置文件路径（如 "data/enemy_stats.yaml"）
//
// 返回：
//
//	*EnemyStatsConfig - 解析后的配置对象
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadEnemyStats(path string) (*EnemyStatsConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseEnemyStats(data)
	if err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEnemyStats 解析并验证敌人属性 YAML
func ParseEnemyStats(data []byte) (*EnemyStatsConfig, error) {
	var cfg EnemyStatsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML: %w", err)
	}
	if err := validateEnemyStats(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(cfg *EnemyStatsConfig) error {
	if len(cfg.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	for enemyType, stats := range cfg.Enemies {
		if enemyType == "" {
			return fmt.Errorf("enemy type cannot be empty")
		}
		if stats.Behavior != "" {
			if _, err := types.ParseBehaviorVariant(stats.Behavior); err != nil {
				return fmt.Errorf("enemy %s: %w", enemyType, err)
			}
		}
		if stats.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive, got %v", enemyType, stats.Speed)
		}
		if stats.Health < 1 {
			return fmt.Errorf("enemy %s: health must be at least 1, got %d", enemyType, stats.Health)
		}
		if stats.BaseScore < 1 {
			return fmt.Errorf("enemy %s: baseScore must be at least 1, got %d", enemyType, stats.BaseScore)
		}
		if stats.FireInterval < 0 {
			return fmt.Errorf("enemy %s: fireInterval cannot be negative, got %v", enemyType, stats.FireInterval)
		}
		if stats.MinStage < 0 {
			return fmt.Errorf("enemy %s: minStage cannot be negative, got %d", enemyType, stats.MinStage)
		}
		if stats.Radius < 0 {
			return fmt.Errorf("enemy %s: radius cannot be negative, got %v", enemyType, stats.Radius)
		}
	}

	return nil
}

// GetEnemyStats 获取指定敌人类型的完整属性
// 如果敌人类型不存在，返回 nil 和 false
func (c *EnemyStatsConfig) GetEnemyStats(enemyType string) (*EnemyStats, bool) {
	stats, ok := c.Enemies[enemyType]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// BehaviorMapping 导出敌人类型 -> 行为变体映射表
// 未填写 behavior 的类型不出现在结果中（由 Resolver 回退到 basic）
func (c *EnemyStatsConfig) BehaviorMapping() map[string]types.BehaviorVariant {
	mapping := make(map[string]types.BehaviorVariant, len(c.Enemies))
	for enemyType, stats := range c.Enemies {
		if stats.Behavior == "" {
			continue
		}
		variant, err := types.ParseBehaviorVariant(stats.Behavior)
		if err != nil {
			continue
		}
		mapping[enemyType] = variant
	}
	return mapping
}

// TypesForStage 返回指定关卡可出现的敌人类型（按名称排序，保证随机选择可复现）
func (c *EnemyStatsConfig) TypesForStage(stage int) []string {
	result := make([]string, 0, len(c.Enemies))
	for enemyType, stats := range c.Enemies {
		if stats.MinStage <= stage {
			result = append(result, enemyType)
		}
	}
	sort.Strings(result)
	return result
}
