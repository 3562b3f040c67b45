package components

// CollisionComponent 圆形碰撞体
// 用于碰撞系统检测子弹与敌机、敌机与玩家之间的接触
type CollisionComponent struct {
	Radius float64 // 碰撞半径（像素）
}
