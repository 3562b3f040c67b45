package spawn

import (
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// ambushZone 伏击阵型的出生区域
type ambushZone int

const (
	zoneTop ambushZone = iota
	zoneBottom
	zoneLeft
	zoneRight
	zoneTopLeft
	zoneTopRight

	ambushZoneCount = 6
)

const (
	ambushMaxDelay     = 10   // 激活延迟上限（帧，闭区间）
	ambushCornerSpread = 30.0 // 角落区域的随机散布
	ambushSideSpan     = 0.7  // 左右区域只使用屏幕上方 70% 的高度
	ambushEntrySpeed   = 2.2
)

// AmbushPattern 伏击阵型
//
// 出生点按轮转方式分配到 6 个区域（上、下、左、右、左上角、右上角），
// 初速度始终指向屏幕中心；所有出生点几乎同时激活（延迟在 [0,10] 帧内随机）。
// 轮转分配时余数自然落在靠后的区域，总数与请求数量严格一致。
type AmbushPattern struct {
	bounds utils.Bounds
	rng    utils.RNG
}

// NewAmbushPattern 创建伏击阵型生成器
func NewAmbushPattern(bounds utils.Bounds, rng utils.RNG) *AmbushPattern {
	return &AmbushPattern{bounds: bounds, rng: rng}
}

// Name 返回阵型名称
func (p *AmbushPattern) Name() types.PatternName {
	return types.PatternAmbush
}

// Generate 生成伏击阵型出生点
func (p *AmbushPattern) Generate(count int, enemyTypes []string) ([]Descriptor, error) {
	if err := validateRequest(p.Name(), count, enemyTypes); err != nil {
		return nil, err
	}

	center := p.bounds.Center()
	result := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		zone := ambushZone(i % ambushZoneCount)
		pos := p.zonePosition(zone)

		result = append(result, Descriptor{
			Position:        pos,
			Velocity:        center.Sub(pos).Normalize().Scale(ambushEntrySpeed),
			ActivationDelay: p.rng.Intn(ambushMaxDelay + 1),
			EnemyType:       pickType(p.rng, enemyTypes),
		})
	}

	return result, nil
}

// zonePosition 在指定区域内随机取一个屏幕外的出生点
func (p *AmbushPattern) zonePosition(zone ambushZone) utils.Vec2 {
	w, h := p.bounds.Width, p.bounds.Height
	switch zone {
	case zoneTop:
		return utils.V(p.rng.Float64()*w, -offscreenMargin)
	case zoneBottom:
		return utils.V(p.rng.Float64()*w, h+offscreenMargin)
	case zoneLeft:
		return utils.V(-offscreenMargin, p.rng.Float64()*h*ambushSideSpan)
	case zoneRight:
		return utils.V(w+offscreenMargin, p.rng.Float64()*h*ambushSideSpan)
	case zoneTopLeft:
		return utils.V(-offscreenMargin-p.rng.Float64()*ambushCornerSpread,
			-offscreenMargin-p.rng.Float64()*ambushCornerSpread)
	default:
		return utils.V(w+offscreenMargin+p.rng.Float64()*ambushCornerSpread,
			-offscreenMargin-p.rng.Float64()*ambushCornerSpread)
	}
}
