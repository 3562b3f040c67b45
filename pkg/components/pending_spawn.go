package components

import "github.com/gonewx/abyssal/pkg/spawn"

// PendingSpawnComponent 尚未激活的出生点
// WaveSpawnSystem 每帧递减 RemainingFrames，归零时创建敌机并删除该实体
type PendingSpawnComponent struct {
	Descriptor      spawn.Descriptor
	RemainingFrames int // 剩余等待帧数
	Wave            int // 所属波次
}
