package components

// HealthComponent 存储实体的生命值信息
// 用于敌机和玩家；生命值降到 0 以下即被击毁
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// Damage 扣除生命值，返回是否被击毁
func (h *HealthComponent) Damage(amount int) bool {
	h.CurrentHealth -= amount
	return h.CurrentHealth <= 0
}

// IsDead 生命值是否耗尽
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}
