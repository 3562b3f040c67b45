package spawn

import (
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// spawnEdge 直线阵型的入场边
type spawnEdge int

const (
	edgeTop spawnEdge = iota
	edgeLeft
	edgeRight
)

const (
	linearMinStep    = 5    // 相邻出生点最小间隔帧数
	linearMaxStep    = 8    // 相邻出生点最大间隔帧数
	linearMaxStagger = 20.0 // 垂直于边的随机错位
)

// LinearPattern 直线阵型
//
// 随机选择一条边（上、左、右），出生点沿边均匀分布并带少量错位，
// 激活延迟随序号线性增加（每次调用随机选定 5~8 帧间隔）。
type LinearPattern struct {
	bounds utils.Bounds
	rng    utils.RNG
}

// NewLinearPattern 创建直线阵型生成器
func NewLinearPattern(bounds utils.Bounds, rng utils.RNG) *LinearPattern {
	return &LinearPattern{bounds: bounds, rng: rng}
}

// Name 返回阵型名称
func (p *LinearPattern) Name() types.PatternName {
	return types.PatternLinear
}

// Generate 生成直线阵型出生点
// count 为 1 时出生点位于所选边的中点
func (p *LinearPattern) Generate(count int, enemyTypes []string) ([]Descriptor, error) {
	if err := validateRequest(p.Name(), count, enemyTypes); err != nil {
		return nil, err
	}

	edge := spawnEdge(p.rng.Intn(3))
	step := utils.RandIntRange(p.rng, linearMinStep, linearMaxStep)

	result := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		// 均匀分布：第 i 个点位于 (i+1)/(count+1) 处，count=1 时正好是中点
		t := float64(i+1) / float64(count+1)
		stagger := 0.0
		if count > 1 {
			stagger = p.rng.Float64() * linearMaxStagger
		}

		var pos, vel utils.Vec2
		switch edge {
		case edgeTop:
			pos = utils.V(p.bounds.Width*t, -offscreenMargin-stagger)
			vel = utils.V(0, entrySpeed)
		case edgeLeft:
			pos = utils.V(-offscreenMargin-stagger, p.bounds.Height*t)
			vel = utils.V(entrySpeed, 0)
		default:
			pos = utils.V(p.bounds.Width+offscreenMargin+stagger, p.bounds.Height*t)
			vel = utils.V(-entrySpeed, 0)
		}

		result = append(result, Descriptor{
			Position:        pos,
			Velocity:        vel,
			ActivationDelay: i * step,
			EnemyType:       pickType(p.rng, enemyTypes),
		})
	}

	return result, nil
}
