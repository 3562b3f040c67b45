package ai

import (
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// Resolver 敌人类型 → 行为变体解析
//
// 映射表来自配置（data/enemy_stats.yaml），未登记的类型回退为 Basic。
// 行为只在敌机创建时解析一次，之后由敌机持有具体实例。
type Resolver struct {
	mapping map[string]types.BehaviorVariant
	tuning  *config.AITuningConfig
	bounds  utils.Bounds
}

// NewResolver 创建行为解析器
//
// 参数：
//   - mapping: 敌人类型 → 行为变体映射表，可为 nil（全部回退为 Basic）
//   - tuning: AI 参数，nil 时使用默认参数
//   - bounds: 屏幕尺寸（摆动中心、边缘保护使用）
func NewResolver(mapping map[string]types.BehaviorVariant, tuning *config.AITuningConfig, bounds utils.Bounds) *Resolver {
	if tuning == nil {
		tuning = config.DefaultAITuning()
	}
	copied := make(map[string]types.BehaviorVariant, len(mapping))
	for k, v := range mapping {
		copied[k] = v
	}
	return &Resolver{mapping: copied, tuning: tuning, bounds: bounds}
}

// Variant 返回敌人类型对应的行为变体，未登记时返回 Basic
func (r *Resolver) Variant(enemyType string) types.BehaviorVariant {
	if v, ok := r.mapping[enemyType]; ok {
		return v
	}
	return types.BehaviorBasic
}

// NewBehavior 为一架敌机创建行为实例
// rng 由该实例独占（并行更新时不能与其他实例共享）
func (r *Resolver) NewBehavior(enemyType string, rng utils.RNG) Behavior {
	return New(r.Variant(enemyType), r.tuning, r.bounds, rng)
}

// New 按变体创建行为实例，未知变体按 Basic 处理
func New(variant types.BehaviorVariant, tuning *config.AITuningConfig, bounds utils.Bounds, rng utils.RNG) Behavior {
	switch variant {
	case types.BehaviorKamikaze:
		return NewKamikazeAI(tuning.Kamikaze)
	case types.BehaviorWeaver:
		return NewWeaverAI(tuning.Weaver, bounds, rng)
	case types.BehaviorSniper:
		return NewSniperAI(tuning.Sniper, bounds, rng)
	case types.BehaviorSpawner:
		return NewSpawnerAI(tuning.Spawner, bounds, rng)
	case types.BehaviorTank:
		return NewTankAI(tuning.Tank, bounds)
	default:
		return NewBasicAI(tuning.Basic, rng)
	}
}
