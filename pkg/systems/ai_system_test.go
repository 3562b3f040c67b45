package systems

import (
	"testing"

	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/utils"
)

// runAIWorld 生成一批混合敌机并运行若干帧，返回所有实体的最终位置
func runAIWorld(workers, frames int) []utils.Vec2 {
	w := newTestWorld()
	w.spawnPlayer(utils.V(400, 550))
	enemyTypes := []string{"rifter", "claw", "dominix"}
	for i := 0; i < 48; i++ {
		w.spawnEnemy(enemyTypes[i%len(enemyTypes)], utils.V(float64(20+i*15), float64(40+(i%6)*20)))
	}

	aiSys := NewAISystem(w.em, w.factory, w.arena, workers)
	move := NewMovementSystem(w.em, w.arena)
	for i := 0; i < frames; i++ {
		aiSys.Update(frame)
		move.Update(frame)
		w.em.RemoveMarkedEntities()
	}

	var positions []utils.Vec2
	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](w.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
		positions = append(positions, pos.Vec())
	}
	return positions
}

func TestAISystemParallelMatchesSerial(t *testing.T) {
	serial := runAIWorld(1, 120)
	parallel := runAIWorld(4, 120)

	if len(serial) != len(parallel) {
		t.Fatalf("entity count differs: serial=%d parallel=%d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("entity %d diverged: serial=%v parallel=%v", i, serial[i], parallel[i])
		}
	}
}

func TestAISystemVelocityAndFire(t *testing.T) {
	w := newTestWorld()
	w.spawnPlayer(utils.V(400, 550))
	enemyID := w.spawnEnemy("rifter", utils.V(400, 100))
	weapon, _ := ecs.GetComponent[*components.WeaponComponent](w.em, enemyID)
	weapon.Cooldown = 0

	sys := NewAISystem(w.em, w.factory, w.arena, 1)
	sys.Update(frame)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, enemyID)
	if vel.VY <= 0 {
		t.Errorf("basic enemy should advance downward, vy=%v", vel.VY)
	}

	shots := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
		if proj.Owner != components.OwnerEnemy {
			t.Error("AI fired a projectile owned by the player")
		}
		pv, _ := ecs.GetComponent[*components.VelocityComponent](w.em, id)
		if pv.VY <= 0 {
			t.Errorf("shot should travel toward the player below, v=%v", pv.Vec())
		}
		shots++
	}
	if shots != 1 {
		t.Errorf("expected 1 shot from an aligned enemy, got %d", shots)
	}
}

func TestAISystemKamikazeNeverFires(t *testing.T) {
	w := newTestWorld()
	w.spawnPlayer(utils.V(400, 550))
	enemyID := w.spawnEnemy("claw", utils.V(400, 300))
	ecs.AddComponent(w.em, enemyID, &components.WeaponComponent{FireInterval: 0.1})

	sys := NewAISystem(w.em, w.factory, w.arena, 1)
	for i := 0; i < 60; i++ {
		sys.Update(frame)
	}
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em)); n != 0 {
		t.Errorf("kamikaze fired %d shots", n)
	}
}

func TestAISystemSpawnerChildren(t *testing.T) {
	w := newTestWorld()
	w.spawnPlayer(utils.V(400, 550))
	parentID := w.spawnEnemy("dominix", utils.V(400, 100))
	parent, _ := ecs.GetComponent[*components.EnemyComponent](w.em, parentID)
	parent.Wave = 7

	sys := NewAISystem(w.em, w.factory, w.arena, 1)
	for i := 0; i < 5; i++ {
		sys.Update(1.0)
	}

	children := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](w.em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.em, id)
		if enemy.EnemyType != "warrior_drone" {
			continue
		}
		children++
		if enemy.Wave != 7 {
			t.Errorf("child wave = %d, want parent's 7", enemy.Wave)
		}
		if enemy.Entering {
			t.Error("child should be under behavior control immediately")
		}
	}
	if children == 0 {
		t.Error("spawner should have released at least one child")
	}
}

func TestAISystemNoPlayer(t *testing.T) {
	w := newTestWorld()
	enemyID := w.spawnEnemy("rifter", utils.V(400, 100))
	sys := NewAISystem(w.em, w.factory, w.arena, 1)
	sys.Update(frame)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, enemyID)
	if vel.Vec() != (utils.Vec2{}) {
		t.Errorf("without a player the AI should not run, v=%v", vel.Vec())
	}
}

// TestAISystemEnteringKeepsSpawnVelocity 屏幕外入场的敌机保持初速度，进入屏幕后由行为接管
func TestAISystemEnteringKeepsSpawnVelocity(t *testing.T) {
	w := newTestWorld()
	w.spawnPlayer(utils.V(400, 550))
	// 从屏幕下方向上入场，基础行为会改为向下
	id, err := w.factory.Create(w.em, "rifter", utils.V(400, 604), utils.V(0, -2.2), 1)
	if err != nil {
		t.Fatal(err)
	}
	aiSys := NewAISystem(w.em, w.factory, w.arena, 1)
	move := NewMovementSystem(w.em, w.arena)

	aiSys.Update(frame)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.em, id)
	if vel.Vec() != utils.V(0, -2.2) {
		t.Fatalf("off-screen entering enemy velocity overwritten: %v", vel.Vec())
	}
	move.Update(frame)
	aiSys.Update(frame)
	move.Update(frame)

	enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	if !w.arena.Bounds().Contains(pos.Vec()) {
		t.Fatalf("enemy should be on screen after two ticks, at %v", pos.Vec())
	}
	aiSys.Update(frame)
	if enemy.Entering {
		t.Error("entering flag should clear once the enemy is on screen")
	}
	if vel.VY <= 0 {
		t.Errorf("basic behavior should take over and advance downward, vy=%v", vel.VY)
	}
}
