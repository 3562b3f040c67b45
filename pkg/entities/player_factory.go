package entities

import (
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
)

// NewPlayer 创建玩家飞船实体（位于屏幕底部中央）
func NewPlayer(em *ecs.EntityManager, arena *config.ArenaConfig) ecs.EntityID {
	start := arena.PlayerStart()

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: start.X, Y: start.Y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: arena.PlayerSpeed})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: arena.PlayerHealth,
		MaxHealth:     arena.PlayerHealth,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: arena.PlayerRadius})
	ecs.AddComponent(em, id, &components.WeaponComponent{
		FireInterval: arena.PlayerFireInterval,
		ShotSpeed:    arena.PlayerShotSpeed,
		Damage:       1,
	})
	return id
}
