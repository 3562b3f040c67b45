package components

// PlayerComponent 玩家飞船
type PlayerComponent struct {
	Speed             float64 // 移动速度（像素/帧）
	InvulnerableTimer float64 // 受伤后的无敌剩余时间（秒）
	Destroyed         bool    // 生命耗尽
}

// Invulnerable 是否处于无敌状态
func (p *PlayerComponent) Invulnerable() bool {
	return p.InvulnerableTimer > 0
}
