package components

import "github.com/gonewx/abyssal/pkg/utils"

// VelocityComponent 实体速度（像素/帧），由 MovementSystem 每帧积分到位置上
type VelocityComponent struct {
	VX float64
	VY float64
}

// Vec 以向量形式返回速度
func (v *VelocityComponent) Vec() utils.Vec2 {
	return utils.V(v.VX, v.VY)
}

// Set 设置速度
func (v *VelocityComponent) Set(vel utils.Vec2) {
	v.VX, v.VY = vel.X, vel.Y
}
