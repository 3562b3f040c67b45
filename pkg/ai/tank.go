package ai

import (
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// TankAI 重装：低速下压，轻微横向追踪玩家；
// 位于玩家上方且越过 MinFireY 后持续压制射击
type TankAI struct {
	tuning config.TankTuning
	bounds utils.Bounds
}

// NewTankAI 创建重装行为
func NewTankAI(tuning config.TankTuning, bounds utils.Bounds) *TankAI {
	return &TankAI{tuning: tuning, bounds: bounds}
}

// Update 计算本帧决策
func (t *TankAI) Update(in Input) Decision {
	vx := trackLateral(in.Position.X, in.Player.X, t.tuning.TrackGain, in.Speed*t.tuning.MaxLateralFactor)
	vx = edgeClamp(in.Position.X, vx, t.tuning.EdgeMargin, t.bounds.Width)
	vy := in.Speed * t.tuning.AdvanceFactor

	fire := in.Position.Y < in.Player.Y && in.Position.Y > t.tuning.MinFireY
	return Decision{Velocity: utils.V(vx, vy), Fire: fire}
}

// FireRateModifier 开火频率修正（> 1）
func (t *TankAI) FireRateModifier() float64 {
	return t.tuning.FireRateFactor
}

// Variant 行为变体
func (t *TankAI) Variant() types.BehaviorVariant {
	return types.BehaviorTank
}
