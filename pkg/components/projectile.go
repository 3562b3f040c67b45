package components

// ProjectileOwner 子弹归属
type ProjectileOwner int

const (
	OwnerPlayer ProjectileOwner = iota // 玩家子弹：可击中敌机，也是敌机闪避的威胁
	OwnerEnemy                         // 敌机子弹：只能击中玩家
)

// ProjectileComponent 子弹
type ProjectileComponent struct {
	Owner  ProjectileOwner
	Damage int
	Spent  bool // 已命中（同一帧内不再参与碰撞）
}
