package components

// WeaponComponent 武器冷却
//
// 冷却按 FireInterval / 开火频率修正 计算：修正大于 1 射速更快，等于 0 时永不开火。
type WeaponComponent struct {
	FireInterval float64 // 基础开火间隔（秒）
	Cooldown     float64 // 剩余冷却（秒）
	ShotSpeed    float64 // 子弹速度（像素/帧）
	Damage       int     // 子弹伤害
}

// Tick 推进冷却
func (w *WeaponComponent) Tick(deltaTime float64) {
	if w.Cooldown > 0 {
		w.Cooldown -= deltaTime
	}
}

// TryFire 冷却结束时开火并重置冷却
//
// 参数：
//   - modifier: 开火频率修正（行为给出的倍数，<= 0 表示禁止开火）
//
// 返回：本次是否开火
func (w *WeaponComponent) TryFire(modifier float64) bool {
	if modifier <= 0 || w.Cooldown > 0 {
		return false
	}
	w.Cooldown = w.FireInterval / modifier
	return true
}
