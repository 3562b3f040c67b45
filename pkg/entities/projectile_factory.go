package entities

import (
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/utils"
)

const (
	// ProjectileRadius 子弹碰撞半径
	ProjectileRadius = 4.0
	// ProjectileLifetime 子弹最长存在时间（秒），超时由 LifetimeSystem 清理
	ProjectileLifetime = 4.0
)

// NewProjectile 创建子弹实体
//
// 参数:
//   - em: 实体管理器
//   - owner: 子弹归属（玩家/敌机）
//   - pos: 发射位置
//   - vel: 速度（像素/帧）
//   - damage: 伤害
//
// 返回:
//   - ecs.EntityID: 创建的子弹实体ID
func NewProjectile(em *ecs.EntityManager, owner components.ProjectileOwner, pos, vel utils.Vec2, damage int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vel.X, VY: vel.Y})
	ecs.AddComponent(em, id, &components.ProjectileComponent{Owner: owner, Damage: damage})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: ProjectileRadius})
	ecs.AddComponent(em, id, &components.LifetimeComponent{Remaining: ProjectileLifetime})
	return id
}
