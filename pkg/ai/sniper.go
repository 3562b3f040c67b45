package ai

import (
	"math"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// SniperAI 狙击
//
// 与玩家保持 [MinRange, MaxRange] 的距离：太远则接近，太近则后撤，处于区间内时横移。
// 靠近屏幕左右边缘时强制横向速度指向屏幕内侧，且不会后撤出屏幕上边缘。
// 开火需要蓄力：与玩家横向对齐后开始瞄准，AimDuration 秒后开火一次并重置。
type SniperAI struct {
	tuning config.SniperTuning
	bounds utils.Bounds

	strafeDir   float64
	strafeTimer float64
	aiming      bool
	aimTimer    float64
}

// NewSniperAI 创建狙击行为
func NewSniperAI(tuning config.SniperTuning, bounds utils.Bounds, rng utils.RNG) *SniperAI {
	return &SniperAI{
		tuning:    tuning,
		bounds:    bounds,
		strafeDir: utils.RandSign(rng),
	}
}

// Aiming 是否正在瞄准蓄力（供渲染读取）
func (s *SniperAI) Aiming() bool {
	return s.aiming
}

// AimProgress 瞄准进度 [0,1]
func (s *SniperAI) AimProgress() float64 {
	if !s.aiming || s.tuning.AimDuration <= 0 {
		return 0
	}
	return utils.Clamp(s.aimTimer/s.tuning.AimDuration, 0, 1)
}

// Update 计算本帧决策
func (s *SniperAI) Update(in Input) Decision {
	toPlayer := in.Player.Sub(in.Position)
	distance := toPlayer.Len()
	dir := toPlayer.Normalize()

	var vel utils.Vec2
	switch {
	case distance > s.tuning.MaxRange:
		vel = dir.Scale(in.Speed * s.tuning.ApproachFactor)
	case distance < s.tuning.MinRange:
		vel = dir.Scale(-in.Speed * s.tuning.RetreatFactor)
	default:
		s.strafeTimer += in.DeltaTime
		if s.strafeTimer >= s.tuning.StrafePeriod {
			s.strafeTimer = 0
			s.strafeDir = -s.strafeDir
		}
		vel = utils.V(s.strafeDir*in.Speed*s.tuning.StrafeFactor, 0)
	}

	clamped := edgeClamp(in.Position.X, vel.X, s.tuning.EdgeMargin, s.bounds.Width)
	if clamped != vel.X && vel.X != 0 {
		s.strafeDir = math.Copysign(1, clamped)
	}
	vel.X = clamped
	if in.Position.Y < s.tuning.EdgeMargin && vel.Y < 0 {
		vel.Y = 0
	}

	return Decision{Velocity: vel, Fire: s.updateAim(in)}
}

// updateAim 推进瞄准状态，蓄力完成的那一帧返回 true
func (s *SniperAI) updateAim(in Input) bool {
	if !s.aiming {
		if math.Abs(in.Player.X-in.Position.X) < s.tuning.AimAlignment {
			s.aiming = true
			s.aimTimer = 0
		}
		return false
	}

	s.aimTimer += in.DeltaTime
	if s.aimTimer >= s.tuning.AimDuration {
		s.aiming = false
		s.aimTimer = 0
		return true
	}
	return false
}

// FireRateModifier 开火频率修正（< 1）
func (s *SniperAI) FireRateModifier() float64 {
	return s.tuning.FireRateFactor
}

// Variant 行为变体
func (s *SniperAI) Variant() types.BehaviorVariant {
	return types.BehaviorSniper
}
