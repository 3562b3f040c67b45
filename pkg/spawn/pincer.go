package spawn

import (
	"math"

	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

const (
	pincerDelayStep  = 8
	pincerTopY       = 0.15 // 第一对出生点位于屏幕高度的 15% 处
	pincerSpan       = 0.5  // 两组最多占用屏幕一半高度
	pincerMaxSpacing = 60.0
	pincerDescent    = 0.3 // 入场时的下压分量
)

// PincerPattern 钳形阵型
//
// 敌人分为左右两组（数量相差不超过 1，奇数时左组多一个），
// 分别从左边缘外和右边缘外进入，同一组内序号相同的两侧出生点高度一致。
// 激活延迟按组内序号线性增加（8 帧）。
type PincerPattern struct {
	bounds utils.Bounds
	rng    utils.RNG
}

// NewPincerPattern 创建钳形阵型生成器
func NewPincerPattern(bounds utils.Bounds, rng utils.RNG) *PincerPattern {
	return &PincerPattern{bounds: bounds, rng: rng}
}

// Name 返回阵型名称
func (p *PincerPattern) Name() types.PatternName {
	return types.PatternPincer
}

// Generate 生成钳形阵型出生点（先左组，后右组）
func (p *PincerPattern) Generate(count int, enemyTypes []string) ([]Descriptor, error) {
	if err := validateRequest(p.Name(), count, enemyTypes); err != nil {
		return nil, err
	}

	leftCount := (count + 1) / 2
	rightCount := count / 2
	spacing := math.Min(pincerMaxSpacing, p.bounds.Height*pincerSpan/float64(leftCount))

	result := make([]Descriptor, 0, count)
	for i := 0; i < leftCount; i++ {
		result = append(result, Descriptor{
			Position:        utils.V(-offscreenMargin, p.rowY(i, spacing)),
			Velocity:        utils.V(entrySpeed, pincerDescent),
			ActivationDelay: i * pincerDelayStep,
			EnemyType:       pickType(p.rng, enemyTypes),
		})
	}
	for i := 0; i < rightCount; i++ {
		result = append(result, Descriptor{
			Position:        utils.V(p.bounds.Width+offscreenMargin, p.rowY(i, spacing)),
			Velocity:        utils.V(-entrySpeed, pincerDescent),
			ActivationDelay: i * pincerDelayStep,
			EnemyType:       pickType(p.rng, enemyTypes),
		})
	}

	return result, nil
}

func (p *PincerPattern) rowY(index int, spacing float64) float64 {
	return p.bounds.Height*pincerTopY + float64(index)*spacing
}
