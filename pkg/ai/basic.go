package ai

import (
	"math"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// BasicAI 基础行为：匀速下压，横向追踪玩家附近的随机偏移点；
// 玩家在下方且处于横向开火范围内时开火
type BasicAI struct {
	tuning config.BasicTuning
	rng    utils.RNG
}

// NewBasicAI 创建基础行为
func NewBasicAI(tuning config.BasicTuning, rng utils.RNG) *BasicAI {
	return &BasicAI{tuning: tuning, rng: rng}
}

// Update 计算本帧决策
func (b *BasicAI) Update(in Input) Decision {
	noise := utils.RandRange(b.rng, -b.tuning.AimNoise, b.tuning.AimNoise)
	vx := trackLateral(in.Position.X, in.Player.X+noise, b.tuning.TrackGain, in.Speed*b.tuning.MaxLateralFactor)
	vy := in.Speed * b.tuning.AdvanceFactor

	fire := in.Player.Y > in.Position.Y && math.Abs(in.Player.X-in.Position.X) < b.tuning.FireBand

	return Decision{Velocity: utils.V(vx, vy), Fire: fire}
}

// FireRateModifier 基础开火频率
func (b *BasicAI) FireRateModifier() float64 {
	return 1.0
}

// Variant 行为变体
func (b *BasicAI) Variant() types.BehaviorVariant {
	return types.BehaviorBasic
}
