package entities

import (
	"errors"
	"testing"

	"github.com/gonewx/abyssal/pkg/ai"
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

func newTestEnemyFactory() *EnemyFactory {
	stats := &config.EnemyStatsConfig{Enemies: map[string]config.EnemyStats{
		"rifter":  {Behavior: "basic", Speed: 2, Health: 1, BaseScore: 100, FireInterval: 2, MinStage: 1, Radius: 14},
		"claw":    {Behavior: "kamikaze", Speed: 3, Health: 1, BaseScore: 150, MinStage: 1},
		"dominix": {Behavior: "spawner", Speed: 1, Health: 8, BaseScore: 600, FireInterval: 3, MinStage: 2, Radius: 30},
	}}
	resolver := ai.NewResolver(stats.BehaviorMapping(), nil, utils.Bounds{Width: 800, Height: 600})
	return NewEnemyFactory(stats, resolver, utils.NewPRNG(1), 5)
}

func TestEnemyFactoryCreate(t *testing.T) {
	f := newTestEnemyFactory()
	em := ecs.NewEntityManager()

	tests := []struct {
		name        string
		enemyType   string
		wantVariant types.BehaviorVariant
		wantWeapon  bool
		wantRadius  float64
	}{
		{"基础敌机带武器", "rifter", types.BehaviorBasic, true, 14},
		{"自杀机不带武器", "claw", types.BehaviorKamikaze, false, defaultEnemyRadius},
		{"母舰", "dominix", types.BehaviorSpawner, true, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.Create(em, tt.enemyType, utils.V(100, -40), utils.V(0, 2), 3)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", tt.enemyType, err)
			}

			enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, id)
			if !ok || enemy.EnemyType != tt.enemyType || enemy.Wave != 3 {
				t.Errorf("unexpected enemy component: %+v", enemy)
			}
			if !enemy.Entering {
				t.Error("new enemy should start in the entering state")
			}
			vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
			if vel.VX != 0 || vel.VY != 2 {
				t.Errorf("initial velocity = (%v, %v), want (0, 2)", vel.VX, vel.VY)
			}
			behavior, ok := ecs.GetComponent[*components.BehaviorComponent](em, id)
			if !ok || behavior.Behavior.Variant() != tt.wantVariant {
				t.Errorf("behavior variant mismatch for %s", tt.enemyType)
			}
			if got := ecs.HasComponent[*components.WeaponComponent](em, id); got != tt.wantWeapon {
				t.Errorf("has weapon = %v, want %v", got, tt.wantWeapon)
			}
			col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
			if col.Radius != tt.wantRadius {
				t.Errorf("radius = %v, want %v", col.Radius, tt.wantRadius)
			}
			if weapon, ok := ecs.GetComponent[*components.WeaponComponent](em, id); ok {
				if weapon.Cooldown < 0 || weapon.Cooldown >= weapon.FireInterval {
					t.Errorf("initial cooldown %v outside [0, %v)", weapon.Cooldown, weapon.FireInterval)
				}
			}
		})
	}
}

func TestEnemyFactoryUnknownType(t *testing.T) {
	f := newTestEnemyFactory()
	em := ecs.NewEntityManager()
	if _, err := f.Create(em, "titan", utils.V(0, 0), utils.V(0, 0), 1); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if em.EntityCount() != 0 {
		t.Error("failed creation should not leave an entity behind")
	}
}

// TestEnemyFactoryDistinctBehaviors 每架敌机持有独立的行为实例
func TestEnemyFactoryDistinctBehaviors(t *testing.T) {
	f := newTestEnemyFactory()
	em := ecs.NewEntityManager()
	a, _ := f.Create(em, "claw", utils.V(0, 0), utils.V(0, 0), 1)
	b, _ := f.Create(em, "claw", utils.V(0, 0), utils.V(0, 0), 1)
	ba, _ := ecs.GetComponent[*components.BehaviorComponent](em, a)
	bb, _ := ecs.GetComponent[*components.BehaviorComponent](em, b)
	if ba.Behavior == bb.Behavior {
		t.Error("two enemies share one behavior instance")
	}
}
