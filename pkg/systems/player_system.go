package systems

import (
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/entities"
	"github.com/gonewx/abyssal/pkg/utils"
)

// InputSource 玩家输入来源（键盘、脚本、回放）
type InputSource interface {
	// Move 期望移动方向，长度大于 1 时会被归一化
	Move() utils.Vec2
	// Fire 是否按住开火
	Fire() bool
}

// PlayerSystem 玩家控制系统
//
// 把输入转换成速度（保证下一帧仍在屏幕内），推进无敌计时和武器冷却，按住开火时发射子弹。
type PlayerSystem struct {
	em    *ecs.EntityManager
	arena *config.ArenaConfig
	input InputSource
}

// NewPlayerSystem 创建玩家控制系统
// input 为 nil 时玩家静止且不开火
func NewPlayerSystem(em *ecs.EntityManager, arena *config.ArenaConfig, input InputSource) *PlayerSystem {
	return &PlayerSystem{em: em, arena: arena, input: input}
}

// SetInput 替换输入来源
func (s *PlayerSystem) SetInput(input InputSource) {
	s.input = input
}

// Update 处理玩家输入
func (s *PlayerSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith3[*components.PlayerComponent, *components.PositionComponent, *components.VelocityComponent](s.em)
	for _, id := range ids {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		if player.InvulnerableTimer > 0 {
			player.InvulnerableTimer -= deltaTime
		}
		if player.Destroyed {
			vel.Set(utils.Vec2{})
			continue
		}

		move, fire := utils.Vec2{}, false
		if s.input != nil {
			move, fire = s.input.Move(), s.input.Fire()
		}
		if move.Len() > 1 {
			move = move.Normalize()
		}

		// 限制速度使下一帧位置不超出屏幕
		margin := 0.0
		if col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id); ok {
			margin = col.Radius
		}
		current := pos.Vec()
		next := current.Add(move.Scale(player.Speed))
		next.X = utils.Clamp(next.X, margin, s.arena.Width-margin)
		next.Y = utils.Clamp(next.Y, margin, s.arena.Height-margin)
		vel.Set(next.Sub(current))

		weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.em, id)
		if !ok {
			continue
		}
		weapon.Tick(deltaTime)
		if fire && weapon.TryFire(1.0) {
			entities.NewProjectile(s.em, components.OwnerPlayer, current, utils.V(0, -weapon.ShotSpeed), weapon.Damage)
		}
	}
}
