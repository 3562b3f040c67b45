package ai

import (
	"math"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// WeaverAI 蛇形机动
//
// 默认绕屏幕中线做正弦摆动并缓慢下压。每帧检查威胁：
// 半径内存在正在纵向逼近的威胁时，本帧向远离威胁的一侧急速横移且不开火，
// 下一帧没有威胁则恢复摆动。
type WeaverAI struct {
	tuning  config.WeaverTuning
	bounds  utils.Bounds
	phase   float64 // 初始相位，让同一波的蛇形机不完全同步
	elapsed float64
	dodging bool
}

// NewWeaverAI 创建蛇形机动行为
func NewWeaverAI(tuning config.WeaverTuning, bounds utils.Bounds, rng utils.RNG) *WeaverAI {
	return &WeaverAI{
		tuning: tuning,
		bounds: bounds,
		phase:  rng.Float64() * 2 * math.Pi,
	}
}

// Dodging 本帧是否在闪避（供渲染读取）
func (w *WeaverAI) Dodging() bool {
	return w.dodging
}

// Update 计算本帧决策
func (w *WeaverAI) Update(in Input) Decision {
	w.elapsed += in.DeltaTime
	drift := in.Speed * w.tuning.DriftFactor

	if threat, ok := w.closestIncoming(in); ok {
		w.dodging = true
		away := in.Position.X - threat.Position.X
		if away == 0 {
			// 正对威胁时向空间更大的一侧闪避
			away = in.Position.X - w.bounds.Width/2
			if away == 0 {
				away = 1
			}
		}
		return Decision{Velocity: utils.V(math.Copysign(in.Speed*w.tuning.DodgeFactor, away), drift)}
	}

	w.dodging = false
	targetX := w.bounds.Width/2 + w.tuning.Amplitude*math.Sin(w.elapsed*w.tuning.Frequency+w.phase)
	vx := trackLateral(in.Position.X, targetX, w.tuning.TrackGain, in.Speed)

	fire := in.Player.Y > in.Position.Y && math.Abs(in.Player.X-in.Position.X) < w.tuning.FireAlignment
	return Decision{Velocity: utils.V(vx, drift), Fire: fire}
}

// closestIncoming 返回半径内最近的、正在纵向逼近的威胁
func (w *WeaverAI) closestIncoming(in Input) (Threat, bool) {
	var closest Threat
	best := math.Inf(1)
	for _, t := range in.Threats {
		d := utils.Distance(t.Position, in.Position)
		if d >= w.tuning.DodgeRadius || d >= best {
			continue
		}
		// 威胁在下方且向上飞，或在上方且向下飞
		if (in.Position.Y-t.Position.Y)*t.Velocity.Y <= 0 {
			continue
		}
		closest, best = t, d
	}
	return closest, !math.IsInf(best, 1)
}

// FireRateModifier 开火频率修正
func (w *WeaverAI) FireRateModifier() float64 {
	return w.tuning.FireRateFactor
}

// Variant 行为变体
func (w *WeaverAI) Variant() types.BehaviorVariant {
	return types.BehaviorWeaver
}
