package systems

import (
	"testing"

	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/entities"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/scoring"
	"github.com/gonewx/abyssal/pkg/utils"
)

func newTestCollision(w *testWorld, d *event.Dispatcher) (*CollisionSystem, *scoring.Engine) {
	scorer := scoring.NewEngine(nil, d)
	return NewCollisionSystem(w.em, scorer, w.arena, d), scorer
}

func TestCollisionKillScoredOnce(t *testing.T) {
	w := newTestWorld()
	d := event.NewDispatcher()
	scoredEvents := 0
	d.Subscribe(event.KillScored, event.ListenerFunc(func(event.Event) { scoredEvents++ }))

	w.spawnPlayer(utils.V(400, 500))
	enemyID := w.spawnEnemy("rifter", utils.V(400, 450))

	// 两颗子弹同一帧命中同一架 1 血敌机
	entities.NewProjectile(w.em, components.OwnerPlayer, utils.V(400, 452), utils.V(0, -10), 1)
	entities.NewProjectile(w.em, components.OwnerPlayer, utils.V(402, 455), utils.V(0, -10), 1)

	sys, scorer := newTestCollision(w, d)
	kills := sys.Update(frame)

	if kills != 1 || scoredEvents != 1 {
		t.Fatalf("kills=%d events=%d, want exactly one scored kill", kills, scoredEvents)
	}
	// 距离 50 < 80 → EXTREME ×5
	if got := scorer.Stats().SessionScore; got != 500 {
		t.Errorf("session score = %d, want 500", got)
	}
	if !w.em.IsMarkedForDestroy(enemyID) {
		t.Error("killed enemy should be marked for destroy")
	}

	// 第二颗子弹没有命中，仍然存在
	w.em.RemoveMarkedEntities()
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em)); n != 1 {
		t.Errorf("expected 1 surviving projectile, got %d", n)
	}

	// 下一帧不会再次计分
	if kills := sys.Update(frame); kills != 0 {
		t.Errorf("second update scored %d kills", kills)
	}
}

func TestCollisionMultiHitEnemy(t *testing.T) {
	w := newTestWorld()
	w.spawnPlayer(utils.V(400, 550))
	enemyID := w.spawnEnemy("dominix", utils.V(400, 100))
	sys, scorer := newTestCollision(w, nil)

	for i := 0; i < 2; i++ {
		entities.NewProjectile(w.em, components.OwnerPlayer, utils.V(400, 100), utils.V(0, -10), 1)
		if kills := sys.Update(frame); kills != 0 {
			t.Fatalf("hit %d should not kill a 3-health enemy", i+1)
		}
		w.em.RemoveMarkedEntities()
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](w.em, enemyID)
	if health.CurrentHealth != 1 {
		t.Errorf("health = %d, want 1", health.CurrentHealth)
	}

	entities.NewProjectile(w.em, components.OwnerPlayer, utils.V(400, 100), utils.V(0, -10), 1)
	if kills := sys.Update(frame); kills != 1 {
		t.Fatal("third hit should kill")
	}
	// 距离 450 → VERY_FAR ×0.5
	if got := scorer.Stats().SessionScore; got != 300 {
		t.Errorf("session score = %d, want 300", got)
	}
}

func TestCollisionPlayerDamage(t *testing.T) {
	tests := []struct {
		name         string
		invulnerable float64
		wantHealth   int
		wantStreak   int
	}{
		{name: "正常受伤中断连击", invulnerable: 0, wantHealth: 4, wantStreak: 0},
		{name: "无敌期间忽略伤害", invulnerable: 1, wantHealth: 5, wantStreak: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			playerID := w.spawnPlayer(utils.V(400, 500))
			player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, playerID)
			player.InvulnerableTimer = tt.invulnerable

			d := event.NewDispatcher()
			damaged := 0
			d.Subscribe(event.PlayerDamaged, event.ListenerFunc(func(event.Event) { damaged++ }))
			sys, scorer := newTestCollision(w, d)

			for i := 0; i < 2; i++ {
				if _, err := scorer.RegisterKill(100, utils.V(0, 0), utils.V(0, 10)); err != nil {
					t.Fatal(err)
				}
			}

			entities.NewProjectile(w.em, components.OwnerEnemy, utils.V(400, 505), utils.V(0, 5), 1)
			sys.Update(frame)

			health, _ := ecs.GetComponent[*components.HealthComponent](w.em, playerID)
			if health.CurrentHealth != tt.wantHealth {
				t.Errorf("health = %d, want %d", health.CurrentHealth, tt.wantHealth)
			}
			if scorer.Streak() != tt.wantStreak {
				t.Errorf("streak = %d, want %d", scorer.Streak(), tt.wantStreak)
			}
			wantEvents := 0
			if tt.invulnerable == 0 {
				wantEvents = 1
				if !player.Invulnerable() {
					t.Error("player should become invulnerable after a hit")
				}
			}
			if damaged != wantEvents {
				t.Errorf("PlayerDamaged events = %d, want %d", damaged, wantEvents)
			}
		})
	}
}

func TestCollisionRamming(t *testing.T) {
	w := newTestWorld()
	playerID := w.spawnPlayer(utils.V(400, 500))
	enemyID := w.spawnEnemy("claw", utils.V(405, 505))
	sys, scorer := newTestCollision(w, nil)

	if kills := sys.Update(frame); kills != 0 {
		t.Errorf("ramming should not count as a scored kill, got %d", kills)
	}
	if !w.em.IsMarkedForDestroy(enemyID) {
		t.Error("rammed enemy should be destroyed")
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](w.em, playerID)
	if health.CurrentHealth != w.arena.PlayerHealth-1 {
		t.Errorf("player health = %d, want %d", health.CurrentHealth, w.arena.PlayerHealth-1)
	}
	if scorer.Stats().SessionScore != 0 {
		t.Errorf("ramming scored %d", scorer.Stats().SessionScore)
	}
}

func TestCollisionPlayerDestroyed(t *testing.T) {
	w := newTestWorld()
	w.arena.PlayerHealth = 1
	playerID := w.spawnPlayer(utils.V(400, 500))
	sys, _ := newTestCollision(w, nil)

	entities.NewProjectile(w.em, components.OwnerEnemy, utils.V(400, 500), utils.V(0, 5), 1)
	sys.Update(frame)

	player, _ := ecs.GetComponent[*components.PlayerComponent](w.em, playerID)
	if !player.Destroyed {
		t.Fatal("player with 1 health should be destroyed by one hit")
	}

	// 击毁后的撞击不再处理
	enemyID := w.spawnEnemy("claw", utils.V(400, 500))
	player.InvulnerableTimer = 0
	sys.Update(frame)
	if w.em.IsMarkedForDestroy(enemyID) {
		t.Error("enemy should not ram a destroyed player")
	}
}
