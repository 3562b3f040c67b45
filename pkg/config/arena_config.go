package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/abyssal/pkg/utils"
)

// ArenaConfig 战场与波次节奏配置
//
// 配置文件位置: data/arena.yaml
type ArenaConfig struct {
	Width  float64 `yaml:"width"`  // 屏幕宽度（像素）
	Height float64 `yaml:"height"` // 屏幕高度（像素）

	// 玩家
	PlayerSpeed        float64 `yaml:"playerSpeed"`        // 玩家移动速度（像素/帧）
	PlayerHealth       int     `yaml:"playerHealth"`       // 玩家生命值
	PlayerFireInterval float64 `yaml:"playerFireInterval"` // 玩家自动开火间隔（秒）
	PlayerRadius       float64 `yaml:"playerRadius"`       // 玩家碰撞半径
	InvulnerableTime   float64 `yaml:"invulnerableTime"`   // 受击后无敌时间（秒）

	// 弹幕
	PlayerShotSpeed float64 `yaml:"playerShotSpeed"` // 玩家子弹速度（像素/帧）
	EnemyShotSpeed  float64 `yaml:"enemyShotSpeed"`  // 敌方子弹速度（像素/帧）
	ThreatScanRange float64 `yaml:"threatScanRange"` // AI 感知玩家子弹的范围

	// 波次
	WavesPerStage     int     `yaml:"wavesPerStage"`     // 每关波次数
	BaseEnemyCount    int     `yaml:"baseEnemyCount"`    // 第1波敌人数量
	EnemiesPerWave    int     `yaml:"enemiesPerWave"`    // 每波递增数量
	MaxEnemiesPerWave int     `yaml:"maxEnemiesPerWave"` // 单波上限
	WaveIntermission  float64 `yaml:"waveIntermission"`  // 清场后到下一波的间隔（秒）
	CullMargin        float64 `yaml:"cullMargin"`        // 超出屏幕多远后移除实体
}

// DefaultArenaConfig 返回默认战场配置
func DefaultArenaConfig() *ArenaConfig {
	return &ArenaConfig{
		Width:              800,
		Height:             600,
		PlayerSpeed:        5,
		PlayerHealth:       5,
		PlayerFireInterval: 0.15,
		PlayerRadius:       14,
		InvulnerableTime:   1.5,
		PlayerShotSpeed:    10,
		EnemyShotSpeed:     5,
		ThreatScanRange:    200,
		WavesPerStage:      10,
		BaseEnemyCount:     6,
		EnemiesPerWave:     2,
		MaxEnemiesPerWave:  40,
		WaveIntermission:   2.0,
		CullMargin:         300,
	}
}

// LoadArenaConfig 加载战场配置，缺失字段保留默认值
func LoadArenaConfig(path string) (*ArenaConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseArenaConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid arena config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseArenaConfig 解析并验证战场配置 YAML
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	cfg := DefaultArenaConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse arena YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证战场配置
func (c *ArenaConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.PlayerSpeed <= 0 {
		return fmt.Errorf("playerSpeed must be positive, got %v", c.PlayerSpeed)
	}
	if c.PlayerHealth < 1 {
		return fmt.Errorf("playerHealth must be at least 1, got %d", c.PlayerHealth)
	}
	if c.PlayerFireInterval <= 0 {
		return fmt.Errorf("playerFireInterval must be positive, got %v", c.PlayerFireInterval)
	}
	if c.WavesPerStage < 1 {
		return fmt.Errorf("wavesPerStage must be at least 1, got %d", c.WavesPerStage)
	}
	if c.BaseEnemyCount < 1 {
		return fmt.Errorf("baseEnemyCount must be at least 1, got %d", c.BaseEnemyCount)
	}
	if c.EnemiesPerWave < 0 {
		return fmt.Errorf("enemiesPerWave cannot be negative, got %d", c.EnemiesPerWave)
	}
	if c.MaxEnemiesPerWave < c.BaseEnemyCount {
		return fmt.Errorf("maxEnemiesPerWave (%d) must be >= baseEnemyCount (%d)", c.MaxEnemiesPerWave, c.BaseEnemyCount)
	}
	if c.WaveIntermission < 0 {
		return fmt.Errorf("waveIntermission cannot be negative, got %v", c.WaveIntermission)
	}
	return nil
}

// EnemyCountForWave 计算指定波次的敌人数量（从第1波开始，线性增长并封顶）
func (c *ArenaConfig) EnemyCountForWave(wave int) int {
	if wave < 1 {
		wave = 1
	}
	count := c.BaseEnemyCount + (wave-1)*c.EnemiesPerWave
	if count > c.MaxEnemiesPerWave {
		count = c.MaxEnemiesPerWave
	}
	return count
}

// Bounds 返回屏幕尺寸
func (c *ArenaConfig) Bounds() utils.Bounds {
	return utils.Bounds{Width: c.Width, Height: c.Height}
}

// PlayerStart 玩家初始位置（屏幕底部中央）
func (c *ArenaConfig) PlayerStart() utils.Vec2 {
	return utils.V(c.Width/2, c.Height-c.PlayerRadius*4)
}
