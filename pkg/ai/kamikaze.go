package ai

import (
	"math"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// KamikazePhase 自杀冲锋的阶段
type KamikazePhase int

const (
	KamikazeApproach KamikazePhase = iota // 接近：下降直到越过锁定高度
	KamikazeLockOn                        // 锁定：记录玩家位置（只持续一帧）
	KamikazeDive                          // 俯冲：加速冲向锁定点，不再回到前两个阶段
)

// String 返回阶段名称
func (p KamikazePhase) String() string {
	switch p {
	case KamikazeApproach:
		return "approach"
	case KamikazeLockOn:
		return "lock_on"
	case KamikazeDive:
		return "dive"
	default:
		return "unknown"
	}
}

// KamikazeAI 自杀冲锋
//
// 状态只能向前推进：approach → lock_on → dive。
// 俯冲方向在锁定时确定（指向当时的玩家位置），之后不再修正；
// 开启 Homing 时改为每帧重新瞄准玩家的实时位置。
// 速度在俯冲期间单调增加直到上限。从不开火。
type KamikazeAI struct {
	tuning config.KamikazeTuning

	phase     KamikazePhase
	lockPoint utils.Vec2
	heading   utils.Vec2
	diveSpeed float64
}

// NewKamikazeAI 创建自杀冲锋行为
func NewKamikazeAI(tuning config.KamikazeTuning) *KamikazeAI {
	return &KamikazeAI{tuning: tuning, phase: KamikazeApproach}
}

// Phase 当前阶段（供渲染读取）
func (k *KamikazeAI) Phase() KamikazePhase {
	return k.phase
}

// LockPoint 锁定时记录的玩家位置（尚未锁定时为零值）
func (k *KamikazeAI) LockPoint() utils.Vec2 {
	return k.lockPoint
}

// Update 计算本帧决策
func (k *KamikazeAI) Update(in Input) Decision {
	switch k.phase {
	case KamikazeApproach:
		descend := in.Speed * k.tuning.ApproachFactor
		vx := trackLateral(in.Position.X, in.Player.X, k.tuning.ApproachTrack, descend)
		if in.Position.Y >= k.tuning.LockThresholdY {
			k.phase = KamikazeLockOn
		}
		return Decision{Velocity: utils.V(vx, descend)}

	case KamikazeLockOn:
		k.lockPoint = in.Player
		k.heading = in.Player.Sub(in.Position).Normalize()
		if k.heading == (utils.Vec2{}) {
			k.heading = utils.V(0, 1)
		}
		k.diveSpeed = in.Speed * k.tuning.DiveStartFactor
		k.phase = KamikazeDive
		return Decision{Velocity: k.heading.Scale(k.diveSpeed)}

	default:
		maxSpeed := in.Speed * k.tuning.DiveMaxFactor
		k.diveSpeed = math.Min(k.diveSpeed+in.Speed*k.tuning.DiveAcceleration*in.DeltaTime, maxSpeed)
		if k.tuning.Homing {
			if dir := in.Player.Sub(in.Position).Normalize(); dir != (utils.Vec2{}) {
				k.heading = dir
			}
		}
		return Decision{Velocity: k.heading.Scale(k.diveSpeed)}
	}
}

// FireRateModifier 从不开火
func (k *KamikazeAI) FireRateModifier() float64 {
	return 0
}

// Variant 行为变体
func (k *KamikazeAI) Variant() types.BehaviorVariant {
	return types.BehaviorKamikaze
}
