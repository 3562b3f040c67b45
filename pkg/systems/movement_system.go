package systems

import (
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
)

// MovementSystem 位置积分与越界清理
//
// 速度单位是像素/帧，每次 Update 积分一帧。
// 敌机和子弹飞出屏幕 CullMargin 以外时被移除（不计分）；玩家不受影响。
type MovementSystem struct {
	em    *ecs.EntityManager
	arena *config.ArenaConfig
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, arena *config.ArenaConfig) *MovementSystem {
	return &MovementSystem{em: em, arena: arena}
}

// Update 积分所有实体的位置，返回本帧移除的越界实体数量
func (s *MovementSystem) Update(deltaTime float64) int {
	bounds := s.arena.Bounds()
	culled := 0

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		pos.X += vel.VX
		pos.Y += vel.VY

		if ecs.HasComponent[*components.PlayerComponent](s.em, id) {
			continue
		}
		if !bounds.Expand(pos.Vec(), s.arena.CullMargin) {
			s.em.DestroyEntity(id)
			culled++
		}
	}

	return culled
}
