package systems

import (
	"github.com/gonewx/abyssal/pkg/ai"
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/entities"
	"github.com/gonewx/abyssal/pkg/utils"
)

const frame = 1.0 / 60.0

// testEnemyStats 测试用敌人属性表
func testEnemyStats() *config.EnemyStatsConfig {
	return &config.EnemyStatsConfig{Enemies: map[string]config.EnemyStats{
		"rifter":        {Behavior: "basic", Speed: 2, Health: 1, BaseScore: 100, FireInterval: 1, MinStage: 1, Radius: 14},
		"claw":          {Behavior: "kamikaze", Speed: 3, Health: 1, BaseScore: 150, MinStage: 1, Radius: 12},
		"warrior_drone": {Behavior: "kamikaze", Speed: 3, Health: 1, BaseScore: 50, MinStage: 99, Radius: 8},
		"dominix":       {Behavior: "spawner", Speed: 1, Health: 3, BaseScore: 600, FireInterval: 3, MinStage: 2, Radius: 30},
	}}
}

// testWorld 测试用的最小世界
type testWorld struct {
	em      *ecs.EntityManager
	arena   *config.ArenaConfig
	stats   *config.EnemyStatsConfig
	factory *entities.EnemyFactory
}

func newTestWorld() *testWorld {
	arena := config.DefaultArenaConfig()
	stats := testEnemyStats()
	resolver := ai.NewResolver(stats.BehaviorMapping(), nil, arena.Bounds())
	return &testWorld{
		em:      ecs.NewEntityManager(),
		arena:   arena,
		stats:   stats,
		factory: entities.NewEnemyFactory(stats, resolver, utils.NewPRNG(1), arena.EnemyShotSpeed),
	}
}

func (w *testWorld) spawnEnemy(enemyType string, pos utils.Vec2) ecs.EntityID {
	id, err := w.factory.Create(w.em, enemyType, pos, utils.V(0, 0), 1)
	if err != nil {
		panic(err)
	}
	return id
}

func (w *testWorld) spawnPlayer(pos utils.Vec2) ecs.EntityID {
	id := entities.NewPlayer(w.em, w.arena)
	p, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	p.Set(pos)
	return id
}

// scriptedInput 固定输入
type scriptedInput struct {
	move utils.Vec2
	fire bool
}

func (s scriptedInput) Move() utils.Vec2 { return s.move }
func (s scriptedInput) Fire() bool       { return s.fire }
