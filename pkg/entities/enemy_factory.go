package entities

import (
	"fmt"

	"github.com/gonewx/abyssal/pkg/ai"
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// defaultEnemyRadius 属性表未填写碰撞半径时使用
const defaultEnemyRadius = 16.0

// EnemyFactory 敌机工厂
//
// 根据敌人类型从属性表取数值，并在创建时解析一次行为实例。
// 每架敌机的行为拿到一个从工厂 RNG 派生的独立随机源，便于并行更新。
type EnemyFactory struct {
	stats     *config.EnemyStatsConfig
	resolver  *ai.Resolver
	rng       *utils.PRNG
	shotSpeed float64
}

// NewEnemyFactory 创建敌机工厂
//
// 参数:
//   - stats: 敌人属性表
//   - resolver: 行为解析器
//   - rng: 随机数来源（用于派生行为随机源和武器初始冷却）
//   - shotSpeed: 敌方子弹速度（像素/帧）
func NewEnemyFactory(stats *config.EnemyStatsConfig, resolver *ai.Resolver, rng *utils.PRNG, shotSpeed float64) *EnemyFactory {
	return &EnemyFactory{
		stats:     stats,
		resolver:  resolver,
		rng:       rng,
		shotSpeed: shotSpeed,
	}
}

// Create 创建敌机实体
//
// 参数:
//   - em: 实体管理器
//   - enemyType: 敌人类型（必须存在于属性表中）
//   - pos: 初始位置
//   - vel: 初速度（进入屏幕后由行为接管）
//   - wave: 所属波次
//
// 返回:
//   - ecs.EntityID: 创建的敌机实体ID
//   - error: 敌人类型不存在时返回 types.ErrInvalidArgument
func (f *EnemyFactory) Create(em *ecs.EntityManager, enemyType string, pos, vel utils.Vec2, wave int) (ecs.EntityID, error) {
	stats, ok := f.stats.GetEnemyStats(enemyType)
	if !ok {
		return 0, fmt.Errorf("unknown enemy type %q: %w", enemyType, types.ErrInvalidArgument)
	}

	radius := stats.Radius
	if radius <= 0 {
		radius = defaultEnemyRadius
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vel.X, VY: vel.Y})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		EnemyType: enemyType,
		BaseScore: stats.BaseScore,
		Speed:     stats.Speed,
		Wave:      wave,
		Entering:  true,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{Radius: radius})
	ecs.AddComponent(em, id, &components.BehaviorComponent{
		Behavior: f.resolver.NewBehavior(enemyType, f.rng.Fork()),
	})

	if stats.FireInterval > 0 {
		ecs.AddComponent(em, id, &components.WeaponComponent{
			FireInterval: stats.FireInterval,
			// 初始冷却随机，避免同一波敌机齐射
			Cooldown:  f.rng.Float64() * stats.FireInterval,
			ShotSpeed: f.shotSpeed,
			Damage:    1,
		})
	}

	return id, nil
}
