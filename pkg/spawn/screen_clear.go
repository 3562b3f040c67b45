package spawn

import (
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

const (
	screenClearMaxColumns = 8
	screenClearDelayStep  = 20 // 每行间隔帧数
	screenClearTopY       = 40.0
	screenClearRowSpacing = 50.0
	screenClearDescent    = 1.0
)

// ScreenClearPattern 清屏阵型
//
// 敌人排成网格铺满屏幕宽度（最多 8 列），第 0 行在最上方。
// 激活延迟按行增加（每行 20 帧），同一行同时激活。
//
// 只生成完整的行：请求数量无法被列数整除时，多出的部分被裁掉，
// 而不是生成一个残缺的行。列数在 [ceil(n/2), n]（n = min(8, count)）中选取
// 使裁掉数量最少的值，因此裁掉的数量总是小于实际列数。
type ScreenClearPattern struct {
	bounds utils.Bounds
	rng    utils.RNG
}

// NewScreenClearPattern 创建清屏阵型生成器
func NewScreenClearPattern(bounds utils.Bounds, rng utils.RNG) *ScreenClearPattern {
	return &ScreenClearPattern{bounds: bounds, rng: rng}
}

// Name 返回阵型名称
func (p *ScreenClearPattern) Name() types.PatternName {
	return types.PatternScreenClear
}

// GridShape 计算网格的列数和行数
//
// 返回：
//
//	columns - 实际使用的列数（1~8）
//	rows - 完整行数（rows*columns <= count）
func GridShape(count int) (columns, rows int) {
	if count <= 0 {
		return 0, 0
	}
	maxCols := count
	if maxCols > screenClearMaxColumns {
		maxCols = screenClearMaxColumns
	}
	minCols := (maxCols + 1) / 2

	best := maxCols
	bestFilled := (count / maxCols) * maxCols
	for c := maxCols - 1; c >= minCols; c-- {
		filled := (count / c) * c
		if filled > bestFilled {
			best = c
			bestFilled = filled
		}
	}
	return best, count / best
}

// Generate 生成清屏阵型出生点（按行优先顺序）
func (p *ScreenClearPattern) Generate(count int, enemyTypes []string) ([]Descriptor, error) {
	if err := validateRequest(p.Name(), count, enemyTypes); err != nil {
		return nil, err
	}

	columns, rows := GridShape(count)
	cellWidth := p.bounds.Width / float64(columns)

	result := make([]Descriptor, 0, columns*rows)
	for row := 0; row < rows; row++ {
		y := screenClearTopY + float64(row)*screenClearRowSpacing
		for col := 0; col < columns; col++ {
			result = append(result, Descriptor{
				Position:        utils.V(cellWidth*(float64(col)+0.5), y),
				Velocity:        utils.V(0, screenClearDescent),
				ActivationDelay: row * screenClearDelayStep,
				EnemyType:       pickType(p.rng, enemyTypes),
			})
		}
	}

	return result, nil
}
