package components

import "github.com/gonewx/abyssal/pkg/utils"

// PositionComponent 实体在世界坐标中的位置（像素，原点在屏幕左上角）
type PositionComponent struct {
	X float64
	Y float64
}

// Vec 以向量形式返回位置
func (p *PositionComponent) Vec() utils.Vec2 {
	return utils.V(p.X, p.Y)
}

// Set 设置位置
func (p *PositionComponent) Set(v utils.Vec2) {
	p.X, p.Y = v.X, v.Y
}
