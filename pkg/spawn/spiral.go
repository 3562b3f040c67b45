package spawn

import (
	"math"

	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

const (
	spiralDelayStep   = 15
	spiralBaseRadius  = 40.0
	spiralRadiusStep  = 12.0
	spiralRotations   = 2.0
	spiralEntrySpeed  = 2.5
	spiralFocusHeight = 1.0 / 3.0 // 螺旋中心位于屏幕高度的 1/3 处
)

// SpiralPattern 螺旋阵型
//
// 每个敌人对应螺旋上的一个目标点：半径随序号线性增长，角度在全部敌人上扫过两整圈。
// 出生点紧贴屏幕边缘之外、位于目标点相对螺旋中心的反方向；初速度从出生点指向目标点。
type SpiralPattern struct {
	bounds utils.Bounds
	rng    utils.RNG
}

// NewSpiralPattern 创建螺旋阵型生成器
func NewSpiralPattern(bounds utils.Bounds, rng utils.RNG) *SpiralPattern {
	return &SpiralPattern{bounds: bounds, rng: rng}
}

// Name 返回阵型名称
func (p *SpiralPattern) Name() types.PatternName {
	return types.PatternSpiral
}

// Focus 螺旋中心（屏幕内的固定点）
func (p *SpiralPattern) Focus() utils.Vec2 {
	return utils.V(p.bounds.Width/2, p.bounds.Height*spiralFocusHeight)
}

// Generate 生成螺旋阵型出生点
func (p *SpiralPattern) Generate(count int, enemyTypes []string) ([]Descriptor, error) {
	if err := validateRequest(p.Name(), count, enemyTypes); err != nil {
		return nil, err
	}

	focus := p.Focus()

	result := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * spiralRotations * float64(i) / float64(count)
		radius := spiralBaseRadius + spiralRadiusStep*float64(i)
		dir := utils.V(math.Cos(angle), math.Sin(angle))

		target := focus.Add(dir.Scale(radius))
		back := dir.Scale(-1)
		spawnPos := focus.Add(back.Scale(p.exitDistance(focus, back) + offscreenMargin))
		velocity := target.Sub(spawnPos).Normalize().Scale(spiralEntrySpeed)

		result = append(result, Descriptor{
			Position:        spawnPos,
			Velocity:        velocity,
			ActivationDelay: i * spiralDelayStep,
			EnemyType:       pickType(p.rng, enemyTypes),
		})
	}

	return result, nil
}

// exitDistance 从屏幕内的 origin 沿单位向量 dir 到达屏幕边缘的距离
func (p *SpiralPattern) exitDistance(origin, dir utils.Vec2) float64 {
	t := math.Inf(1)
	if dir.X > 0 {
		t = math.Min(t, (p.bounds.Width-origin.X)/dir.X)
	} else if dir.X < 0 {
		t = math.Min(t, -origin.X/dir.X)
	}
	if dir.Y > 0 {
		t = math.Min(t, (p.bounds.Height-origin.Y)/dir.Y)
	} else if dir.Y < 0 {
		t = math.Min(t, -origin.Y/dir.Y)
	}
	return t
}
