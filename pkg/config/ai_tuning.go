package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AITuningConfig AI 行为数值配置
//
// 所有速度因子都是相对于敌人自身基础速度的倍数；时间单位为秒；距离单位为像素。
//
// 配置文件位置: data/ai_tuning.yaml
type AITuningConfig struct {
	Basic    BasicTuning    `yaml:"basic"`
	Kamikaze KamikazeTuning `yaml:"kamikaze"`
	Weaver   WeaverTuning   `yaml:"weaver"`
	Sniper   SniperTuning   `yaml:"sniper"`
	Spawner  SpawnerTuning  `yaml:"spawner"`
	Tank     TankTuning     `yaml:"tank"`
}

// BasicTuning 基础行为参数
type BasicTuning struct {
	TrackGain        float64 `yaml:"trackGain"`        // 横向追踪增益（横向距离 × 增益 = 横向速度）
	MaxLateralFactor float64 `yaml:"maxLateralFactor"` // 横向速度上限
	AdvanceFactor    float64 `yaml:"advanceFactor"`    // 下压速度
	AimNoise         float64 `yaml:"aimNoise"`         // 追踪目标的随机偏移幅度
	FireBand         float64 `yaml:"fireBand"`         // 玩家在此横向范围内才开火
}

// KamikazeTuning 自杀冲锋参数
type KamikazeTuning struct {
	LockThresholdY   float64 `yaml:"lockThresholdY"`   // 越过此高度后进入锁定
	ApproachFactor   float64 `yaml:"approachFactor"`   // 接近阶段下降速度
	ApproachTrack    float64 `yaml:"approachTrack"`    // 接近阶段横向追踪增益
	DiveStartFactor  float64 `yaml:"diveStartFactor"`  // 俯冲起始速度
	DiveAcceleration float64 `yaml:"diveAcceleration"` // 俯冲加速度（基础速度/秒）
	DiveMaxFactor    float64 `yaml:"diveMaxFactor"`    // 俯冲速度上限
	Homing           bool    `yaml:"homing"`           // true: 俯冲时每帧重新瞄准玩家；false: 飞向锁定点
}

// WeaverTuning 蛇形机动参数
type WeaverTuning struct {
	Amplitude      float64 `yaml:"amplitude"`      // 绕屏幕中线摆动的幅度
	Frequency      float64 `yaml:"frequency"`      // 摆动角频率（弧度/秒）
	TrackGain      float64 `yaml:"trackGain"`      // 朝摆动目标点修正的增益
	DriftFactor    float64 `yaml:"driftFactor"`    // 下压速度
	DodgeRadius    float64 `yaml:"dodgeRadius"`    // 威胁检测半径
	DodgeFactor    float64 `yaml:"dodgeFactor"`    // 闪避横向速度
	FireAlignment  float64 `yaml:"fireAlignment"`  // 与玩家横向距离小于此值才开火
	FireRateFactor float64 `yaml:"fireRateFactor"` // 开火频率修正
}

// SniperTuning 狙击参数
type SniperTuning struct {
	MinRange       float64 `yaml:"minRange"`       // 理想距离下界（更近则后撤）
	MaxRange       float64 `yaml:"maxRange"`       // 理想距离上界（更远则接近）
	ApproachFactor float64 `yaml:"approachFactor"` // 接近速度
	RetreatFactor  float64 `yaml:"retreatFactor"`  // 后撤速度
	StrafeFactor   float64 `yaml:"strafeFactor"`   // 横移速度
	StrafePeriod   float64 `yaml:"strafePeriod"`   // 横移换向周期（秒）
	EdgeMargin     float64 `yaml:"edgeMargin"`     // 屏幕边缘保护距离
	AimAlignment   float64 `yaml:"aimAlignment"`   // 与玩家横向距离小于此值才开始瞄准
	AimDuration    float64 `yaml:"aimDuration"`    // 瞄准蓄力时间（秒）
	FireRateFactor float64 `yaml:"fireRateFactor"` // 开火频率修正（< 1）
}

// SpawnerTuning 母舰参数
type SpawnerTuning struct {
	StationY       float64 `yaml:"stationY"`       // 悬停高度
	ApproachFactor float64 `yaml:"approachFactor"` // 进场下降速度
	DriftFactor    float64 `yaml:"driftFactor"`    // 横向漂移速度
	DriftFrequency float64 `yaml:"driftFrequency"` // 横向漂移角频率（弧度/秒）
	EdgeMargin     float64 `yaml:"edgeMargin"`     // 屏幕边缘保护距离
	SpawnCooldown  float64 `yaml:"spawnCooldown"`  // 释放子机冷却（秒）
	MaxSpawns      int     `yaml:"maxSpawns"`      // 最多释放子机数量
	SpawnOffset    float64 `yaml:"spawnOffset"`    // 子机相对母舰的横向随机偏移
	ChildType      string  `yaml:"childType"`      // 子机敌人类型
	FireChance     float64 `yaml:"fireChance"`     // 每帧开火概率
	FireRateFactor float64 `yaml:"fireRateFactor"` // 开火频率修正
}

// TankTuning 重装参数
type TankTuning struct {
	AdvanceFactor    float64 `yaml:"advanceFactor"`    // 下压速度
	TrackGain        float64 `yaml:"trackGain"`        // 横向追踪增益
	MaxLateralFactor float64 `yaml:"maxLateralFactor"` // 横向速度上限
	EdgeMargin       float64 `yaml:"edgeMargin"`       // 屏幕边缘保护距离
	MinFireY         float64 `yaml:"minFireY"`         // 越过此高度后才开火
	FireRateFactor   float64 `yaml:"fireRateFactor"`   // 开火频率修正（> 1）
}

// DefaultAITuning 返回默认 AI 参数
func DefaultAITuning() *AITuningConfig {
	return &AITuningConfig{
		Basic: BasicTuning{
			TrackGain:        0.02,
			MaxLateralFactor: 0.5,
			AdvanceFactor:    0.5,
			AimNoise:         40,
			FireBand:         120,
		},
		Kamikaze: KamikazeTuning{
			LockThresholdY:   150,
			ApproachFactor:   0.8,
			ApproachTrack:    0.01,
			DiveStartFactor:  1.0,
			DiveAcceleration: 2.0,
			DiveMaxFactor:    3.0,
			Homing:           false,
		},
		Weaver: WeaverTuning{
			Amplitude:      150,
			Frequency:      2.0,
			TrackGain:      0.08,
			DriftFactor:    0.4,
			DodgeRadius:    100,
			DodgeFactor:    2.0,
			FireAlignment:  40,
			FireRateFactor: 1.0,
		},
		Sniper: SniperTuning{
			MinRange:       250,
			MaxRange:       350,
			ApproachFactor: 0.6,
			RetreatFactor:  0.6,
			StrafeFactor:   0.5,
			StrafePeriod:   2.0,
			EdgeMargin:     60,
			AimAlignment:   60,
			AimDuration:    1.0,
			FireRateFactor: 0.5,
		},
		Spawner: SpawnerTuning{
			StationY:       90,
			ApproachFactor: 0.5,
			DriftFactor:    0.3,
			DriftFrequency: 0.8,
			EdgeMargin:     50,
			SpawnCooldown:  4.0,
			MaxSpawns:      5,
			SpawnOffset:    30,
			ChildType:      "warrior_drone",
			FireChance:     0.01,
			FireRateFactor: 0.8,
		},
		Tank: TankTuning{
			AdvanceFactor:    0.4,
			TrackGain:        0.01,
			MaxLateralFactor: 0.3,
			EdgeMargin:       40,
			MinFireY:         50,
			FireRateFactor:   1.5,
		},
	}
}

// LoadAITuning 加载 AI 参数，缺失字段保留默认值
func LoadAITuning(path string) (*AITuningConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseAITuning(data)
	if err != nil {
		return nil, fmt.Errorf("invalid AI tuning in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAITuning 解析并验证 AI 参数 YAML
func ParseAITuning(data []byte) (*AITuningConfig, error) {
	cfg := DefaultAITuning()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse AI tuning YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证 AI 参数中会影响状态机正确性的约束
func (c *AITuningConfig) Validate() error {
	if c.Kamikaze.DiveMaxFactor < c.Kamikaze.DiveStartFactor {
		return fmt.Errorf("kamikaze.diveMaxFactor (%v) must be >= diveStartFactor (%v)", c.Kamikaze.DiveMaxFactor, c.Kamikaze.DiveStartFactor)
	}
	if c.Kamikaze.DiveAcceleration < 0 {
		return fmt.Errorf("kamikaze.diveAcceleration cannot be negative, got %v", c.Kamikaze.DiveAcceleration)
	}
	if c.Sniper.MinRange <= 0 || c.Sniper.MaxRange <= c.Sniper.MinRange {
		return fmt.Errorf("sniper range band invalid: [%v, %v]", c.Sniper.MinRange, c.Sniper.MaxRange)
	}
	if c.Sniper.AimDuration <= 0 {
		return fmt.Errorf("sniper.aimDuration must be positive, got %v", c.Sniper.AimDuration)
	}
	if c.Sniper.FireRateFactor <= 0 || c.Sniper.FireRateFactor >= 1 {
		return fmt.Errorf("sniper.fireRateFactor must be in (0, 1), got %v", c.Sniper.FireRateFactor)
	}
	if c.Tank.FireRateFactor <= 1 {
		return fmt.Errorf("tank.fireRateFactor must be > 1, got %v", c.Tank.FireRateFactor)
	}
	if c.Spawner.SpawnCooldown <= 0 {
		return fmt.Errorf("spawner.spawnCooldown must be positive, got %v", c.Spawner.SpawnCooldown)
	}
	if c.Spawner.MaxSpawns < 0 {
		return fmt.Errorf("spawner.maxSpawns cannot be negative, got %d", c.Spawner.MaxSpawns)
	}
	if c.Spawner.FireChance < 0 || c.Spawner.FireChance > 1 {
		return fmt.Errorf("spawner.fireChance must be in [0, 1], got %v", c.Spawner.FireChance)
	}
	if c.Weaver.DodgeRadius < 0 {
		return fmt.Errorf("weaver.dodgeRadius cannot be negative, got %v", c.Weaver.DodgeRadius)
	}
	return nil
}
