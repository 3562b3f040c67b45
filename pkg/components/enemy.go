package components

// EnemyComponent 敌机数据（创建时从敌人属性表复制）
type EnemyComponent struct {
	EnemyType string  // 敌人类型，如 "rifter"
	BaseScore int     // 基础分
	Speed     float64 // 基础速度（像素/帧）
	Wave      int     // 所属波次（母舰释放的子机归属母舰的波次）
	Killed    bool    // 已被击毁（防止同一帧内重复计分）
	Entering  bool    // 入场中：进入屏幕之前保持出生点初速度，行为不接管
}
