package systems

import (
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/ecs"
)

// LifetimeSystem 删除存在时间耗尽的实体
type LifetimeSystem struct {
	em *ecs.EntityManager
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{em: em}
}

// Update 推进计时，返回本帧到期并标记删除的实体数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.em) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.em, id)
		if lifetime.Tick(deltaTime) {
			s.em.DestroyEntity(id)
			expired++
		}
	}
	return expired
}
