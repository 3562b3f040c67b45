package systems

import (
	"log"

	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/scoring"
	"github.com/gonewx/abyssal/pkg/utils"
)

// CollisionSystem 碰撞检测（圆形碰撞体）
//
// 处理三类接触：
//   - 玩家子弹 → 敌机：扣血；击毁时立即标记删除并登记一次击杀计分
//   - 敌方子弹 → 玩家：玩家受伤（无敌期间忽略），连击中断
//   - 敌机机体 → 玩家：玩家受伤，敌机撞毁（撞毁不计分）
//
// 被击毁的敌机和已命中的子弹在同一帧内不再参与后续碰撞，保证每次死亡只计分一次。
type CollisionSystem struct {
	em         *ecs.EntityManager
	scorer     *scoring.Engine
	arena      *config.ArenaConfig
	dispatcher *event.Dispatcher
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - em: 实体管理器
//   - scorer: 计分引擎
//   - arena: 战场配置（无敌时间）
//   - dispatcher: 事件分发器，可为 nil
func NewCollisionSystem(em *ecs.EntityManager, scorer *scoring.Engine, arena *config.ArenaConfig, dispatcher *event.Dispatcher) *CollisionSystem {
	return &CollisionSystem{
		em:         em,
		scorer:     scorer,
		arena:      arena,
		dispatcher: dispatcher,
	}
}

// circlesOverlap 两个圆形碰撞体是否接触
func circlesOverlap(a utils.Vec2, ra float64, b utils.Vec2, rb float64) bool {
	return utils.Distance(a, b) <= ra+rb
}

// Update 处理本帧所有碰撞，返回本帧击毁（计分）的敌机数量
func (s *CollisionSystem) Update(deltaTime float64) int {
	playerID, hasPlayer := s.findPlayer()

	enemies := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.CollisionComponent](s.em)
	projectiles := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.CollisionComponent](s.em)

	var playerPos utils.Vec2
	if hasPlayer {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, playerID)
		playerPos = pos.Vec()
	}

	kills := 0
	for _, projID := range projectiles {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, projID)
		if proj.Spent {
			continue
		}
		projPos, _ := ecs.GetComponent[*components.PositionComponent](s.em, projID)
		projCol, _ := ecs.GetComponent[*components.CollisionComponent](s.em, projID)

		switch proj.Owner {
		case components.OwnerPlayer:
			for _, enemyID := range enemies {
				enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, enemyID)
				if enemy.Killed {
					continue
				}
				enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.em, enemyID)
				enemyCol, _ := ecs.GetComponent[*components.CollisionComponent](s.em, enemyID)
				if !circlesOverlap(projPos.Vec(), projCol.Radius, enemyPos.Vec(), enemyCol.Radius) {
					continue
				}

				proj.Spent = true
				s.em.DestroyEntity(projID)
				if s.damageEnemy(enemyID, enemy, proj.Damage, playerPos, enemyPos.Vec()) {
					kills++
				}
				break
			}

		case components.OwnerEnemy:
			if !hasPlayer {
				continue
			}
			playerCol, _ := ecs.GetComponent[*components.CollisionComponent](s.em, playerID)
			if circlesOverlap(projPos.Vec(), projCol.Radius, playerPos, playerCol.Radius) {
				proj.Spent = true
				s.em.DestroyEntity(projID)
				s.damagePlayer(playerID, proj.Damage)
			}
		}
	}

	if hasPlayer {
		s.checkRamming(playerID, playerPos, enemies)
	}

	return kills
}

// damageEnemy 敌机受到伤害，被击毁时登记击杀并返回 true
func (s *CollisionSystem) damageEnemy(id ecs.EntityID, enemy *components.EnemyComponent, damage int, playerPos, enemyPos utils.Vec2) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.em, id)
	if ok && !health.Damage(damage) {
		return false
	}

	enemy.Killed = true
	s.em.DestroyEntity(id)

	result, err := s.scorer.RegisterKill(enemy.BaseScore, playerPos, enemyPos)
	if err != nil {
		log.Printf("[CollisionSystem] Warning: kill of %s not scored: %v", enemy.EnemyType, err)
		return true
	}
	if result.ComboBonus > 1 && result.Streak%10 == 0 {
		log.Printf("[CollisionSystem] Combo x%d (bonus %.1f)", result.Streak, result.ComboBonus)
	}
	return true
}

// checkRamming 敌机机体撞上玩家
func (s *CollisionSystem) checkRamming(playerID ecs.EntityID, playerPos utils.Vec2, enemies []ecs.EntityID) {
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.em, playerID)
	if player.Destroyed {
		return
	}
	playerCol, _ := ecs.GetComponent[*components.CollisionComponent](s.em, playerID)
	for _, enemyID := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, enemyID)
		if enemy.Killed {
			continue
		}
		enemyPos, _ := ecs.GetComponent[*components.PositionComponent](s.em, enemyID)
		enemyCol, _ := ecs.GetComponent[*components.CollisionComponent](s.em, enemyID)
		if !circlesOverlap(playerPos, playerCol.Radius, enemyPos.Vec(), enemyCol.Radius) {
			continue
		}

		enemy.Killed = true
		s.em.DestroyEntity(enemyID)
		s.damagePlayer(playerID, 1)
	}
}

// damagePlayer 玩家受伤：扣血、进入无敌、中断连击
func (s *CollisionSystem) damagePlayer(playerID ecs.EntityID, damage int) {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.em, playerID)
	if !ok || player.Invulnerable() || player.Destroyed {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.em, playerID)
	if !ok {
		return
	}

	player.Destroyed = health.Damage(damage)
	player.InvulnerableTimer = s.arena.InvulnerableTime
	s.scorer.TakeDamage()

	log.Printf("[CollisionSystem] Player hit: health=%d destroyed=%v", health.CurrentHealth, player.Destroyed)
	s.dispatcher.Dispatch(event.Event{
		Type: event.PlayerDamaged,
		Data: event.PlayerDamagedData{Health: health.CurrentHealth, Destroyed: player.Destroyed},
	})
}

// findPlayer 返回玩家实体（包括已被击毁的，击毁后残留子弹的击杀仍按玩家最后位置计分）
func (s *CollisionSystem) findPlayer() (ecs.EntityID, bool) {
	ids := ecs.GetEntitiesWith3[*components.PlayerComponent, *components.PositionComponent, *components.CollisionComponent](s.em)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
