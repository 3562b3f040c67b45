package components

// LifetimeComponent 存在时间上限（子弹飞出射程前的兜底清理）
type LifetimeComponent struct {
	Remaining float64 // 剩余存在时间（秒）
	Expired   bool
}

// Tick 扣减剩余时间，本次调用导致到期时返回 true
func (l *LifetimeComponent) Tick(deltaTime float64) bool {
	if l.Expired {
		return false
	}
	l.Remaining -= deltaTime
	if l.Remaining <= 0 {
		l.Expired = true
		return true
	}
	return false
}
