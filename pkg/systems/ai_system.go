package systems

import (
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/gonewx/abyssal/pkg/ai"
	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/entities"
	"github.com/gonewx/abyssal/pkg/utils"
)

// parallelThreshold 敌机数量达到此值才启用并行决策
const parallelThreshold = 32

// AISystem 敌机决策系统
//
// 每帧分三个阶段：
//  1. 收集：按实体ID顺序为每架敌机构造 ai.Input（威胁 = 扫描范围内的玩家子弹）；
//     入场中且尚未进入屏幕的敌机跳过，保持出生点初速度
//  2. 决策：调用各自的 Behavior.Update；workers > 1 且敌机足够多时用 errgroup 并行，
//     每个行为实例只由一个 worker 访问
//  3. 应用：按实体ID顺序写回速度、处理开火与武器冷却，然后依次取走母舰的子机队列
//
// 第 3 阶段始终串行，保证子弹和子机的创建顺序与并行与否无关。
type AISystem struct {
	em      *ecs.EntityManager
	factory *entities.EnemyFactory
	arena   *config.ArenaConfig
	workers int

	logFrameCounter int
}

// aiTask 单架敌机本帧的决策任务
type aiTask struct {
	id       ecs.EntityID
	behavior ai.Behavior
	input    ai.Input
	decision ai.Decision
}

// NewAISystem 创建敌机决策系统
//
// 参数:
//   - em: 实体管理器
//   - factory: 敌机工厂（母舰释放子机时使用）
//   - arena: 战场配置（威胁扫描范围、敌方子弹速度）
//   - workers: 决策阶段的并行 worker 数，<= 1 表示串行
func NewAISystem(em *ecs.EntityManager, factory *entities.EnemyFactory, arena *config.ArenaConfig, workers int) *AISystem {
	return &AISystem{
		em:      em,
		factory: factory,
		arena:   arena,
		workers: workers,
	}
}

// Update 为所有敌机计算并应用本帧决策
func (s *AISystem) Update(deltaTime float64) {
	s.logFrameCounter++

	player, hasPlayer := s.playerPosition()
	if !hasPlayer {
		return
	}

	tasks := s.collect(player, deltaTime)
	if len(tasks) == 0 {
		return
	}

	if err := s.decide(tasks); err != nil {
		log.Printf("[AISystem] Error: decision phase failed: %v", err)
		return
	}

	fired := s.apply(tasks, player, deltaTime)
	spawned := s.drainSpawnQueues(tasks)

	if s.logFrameCounter%LogOutputFrameInterval == 0 {
		log.Printf("[AISystem] enemies=%d fired=%d spawned=%d", len(tasks), fired, spawned)
	}
}

// playerPosition 返回玩家位置（玩家被击毁后返回 false）
func (s *AISystem) playerPosition() (utils.Vec2, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.em) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.em, id)
		if player.Destroyed {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		return pos.Vec(), true
	}
	return utils.Vec2{}, false
}

// collect 构造本帧所有敌机的决策输入
func (s *AISystem) collect(player utils.Vec2, deltaTime float64) []aiTask {
	threats := s.playerProjectiles()
	bounds := s.arena.Bounds()

	ids := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.BehaviorComponent, *components.PositionComponent](s.em)
	tasks := make([]aiTask, 0, len(ids))
	for _, id := range ids {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)
		behavior, _ := ecs.GetComponent[*components.BehaviorComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if behavior.Behavior == nil {
			continue
		}
		if enemy.Entering {
			if !bounds.Contains(pos.Vec()) {
				continue
			}
			enemy.Entering = false
		}

		tasks = append(tasks, aiTask{
			id:       id,
			behavior: behavior.Behavior,
			input: ai.Input{
				Position:  pos.Vec(),
				Speed:     enemy.Speed,
				Player:    player,
				Threats:   nearbyThreats(threats, pos.Vec(), s.arena.ThreatScanRange),
				DeltaTime: deltaTime,
			},
		})
	}
	return tasks
}

// playerProjectiles 收集所有玩家子弹作为潜在威胁
func (s *AISystem) playerProjectiles() []ai.Threat {
	var threats []ai.Threat
	ids := ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](s.em)
	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id)
		if proj.Owner != components.OwnerPlayer || proj.Spent {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)
		threats = append(threats, ai.Threat{Position: pos.Vec(), Velocity: vel.Vec()})
	}
	return threats
}

// nearbyThreats 过滤出扫描范围内的威胁，没有时返回 nil
func nearbyThreats(all []ai.Threat, pos utils.Vec2, scanRange float64) []ai.Threat {
	var nearby []ai.Threat
	for _, t := range all {
		if utils.Distance(t.Position, pos) <= scanRange {
			nearby = append(nearby, t)
		}
	}
	return nearby
}

// decide 计算所有决策，必要时并行
func (s *AISystem) decide(tasks []aiTask) error {
	if s.workers <= 1 || len(tasks) < parallelThreshold {
		for i := range tasks {
			tasks[i].decision = tasks[i].behavior.Update(tasks[i].input)
		}
		return nil
	}

	// 按 worker 数切分，每段只由一个 goroutine 写入
	var g errgroup.Group
	chunk := (len(tasks) + s.workers - 1) / s.workers
	for start := 0; start < len(tasks); start += chunk {
		end := start + chunk
		if end > len(tasks) {
			end = len(tasks)
		}
		part := tasks[start:end]
		g.Go(func() error {
			for i := range part {
				part[i].decision = part[i].behavior.Update(part[i].input)
			}
			return nil
		})
	}
	return g.Wait()
}

// apply 串行写回速度并处理开火，返回本帧开火次数
func (s *AISystem) apply(tasks []aiTask, player utils.Vec2, deltaTime float64) int {
	fired := 0
	for _, task := range tasks {
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.em, task.id); ok {
			vel.Set(task.decision.Velocity)
		}

		weapon, ok := ecs.GetComponent[*components.WeaponComponent](s.em, task.id)
		if !ok {
			continue
		}
		weapon.Tick(deltaTime)
		if !task.decision.Fire || !weapon.TryFire(task.behavior.FireRateModifier()) {
			continue
		}

		dir := player.Sub(task.input.Position).Normalize()
		if dir == (utils.Vec2{}) {
			dir = utils.V(0, 1)
		}
		entities.NewProjectile(s.em, components.OwnerEnemy, task.input.Position, dir.Scale(weapon.ShotSpeed), weapon.Damage)
		fired++
	}
	return fired
}

// drainSpawnQueues 按实体ID顺序取走母舰的子机请求并创建子机，返回创建数量
func (s *AISystem) drainSpawnQueues(tasks []aiTask) int {
	spawned := 0
	for _, task := range tasks {
		source, ok := task.behavior.(ai.SpawnSource)
		if !ok {
			continue
		}
		requests := source.DrainSpawnQueue()
		if len(requests) == 0 {
			continue
		}

		wave := 0
		if parent, ok := ecs.GetComponent[*components.EnemyComponent](s.em, task.id); ok {
			wave = parent.Wave
		}
		for _, req := range requests {
			childID, err := s.factory.Create(s.em, req.EnemyType, req.Position, utils.V(0, 0), wave)
			if err != nil {
				log.Printf("[AISystem] Warning: failed to spawn child %s: %v", req.EnemyType, err)
				continue
			}
			// 子机从母舰位置起飞，没有入场速度
			if child, ok := ecs.GetComponent[*components.EnemyComponent](s.em, childID); ok {
				child.Entering = false
			}
			spawned++
		}
	}
	return spawned
}
