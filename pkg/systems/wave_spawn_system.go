package systems

import (
	"log"
	"math"

	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/entities"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/spawn"
	"github.com/gonewx/abyssal/pkg/types"
)

// WaveSpawnSystem 波次生成系统
//
// 职责：
//   - 上一波清场并经过间隔后开始新的一波：选择阵型、计算数量、生成出生点
//   - 每帧递减出生点的激活延迟，归零时创建敌机
//   - 检测当前波次是否清空，每 WavesPerStage 波进入下一关
type WaveSpawnSystem struct {
	em         *ecs.EntityManager
	selector   *spawn.Selector
	factory    *entities.EnemyFactory
	enemyStats *config.EnemyStatsConfig
	arena      *config.ArenaConfig
	dispatcher *event.Dispatcher

	wave           int
	stage          int
	pattern        types.PatternName
	waveInProgress bool
	intermission   float64

	logFrameCounter int
}

// NewWaveSpawnSystem 创建波次生成系统
//
// 参数:
//   - em: 实体管理器
//   - selector: 阵型选择器
//   - factory: 敌机工厂
//   - enemyStats: 敌人属性表（决定每关可出现的敌人类型）
//   - arena: 战场配置（数量增长、波次间隔）
//   - dispatcher: 事件分发器，可为 nil
func NewWaveSpawnSystem(em *ecs.EntityManager, selector *spawn.Selector, factory *entities.EnemyFactory,
	enemyStats *config.EnemyStatsConfig, arena *config.ArenaConfig, dispatcher *event.Dispatcher) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		em:         em,
		selector:   selector,
		factory:    factory,
		enemyStats: enemyStats,
		arena:      arena,
		dispatcher: dispatcher,
		stage:      1,
	}
}

// Wave 当前波次（尚未开始第一波时为 0）
func (s *WaveSpawnSystem) Wave() int {
	return s.wave
}

// Stage 当前关卡（从1开始）
func (s *WaveSpawnSystem) Stage() int {
	return s.stage
}

// Pattern 当前波次使用的阵型
func (s *WaveSpawnSystem) Pattern() types.PatternName {
	return s.pattern
}

// WaveInProgress 当前是否有波次在进行
func (s *WaveSpawnSystem) WaveInProgress() bool {
	return s.waveInProgress
}

// Update 推进波次状态
func (s *WaveSpawnSystem) Update(deltaTime float64) {
	s.logFrameCounter++

	if !s.waveInProgress {
		s.intermission -= deltaTime
		if s.intermission > 0 {
			return
		}
		s.startNextWave()
	}

	s.activatePendingSpawns()

	if s.waveInProgress && s.isWaveCleared() {
		s.waveInProgress = false
		s.intermission = s.arena.WaveIntermission
		log.Printf("[WaveSpawnSystem] Wave %d cleared (stage %d)", s.wave, s.stage)
		s.dispatcher.Dispatch(event.Event{
			Type: event.WaveCleared,
			Data: event.WaveData{Wave: s.wave, Stage: s.stage, Pattern: s.pattern},
		})
	}

	if s.logFrameCounter%LogOutputFrameInterval == 0 {
		pending := len(ecs.GetEntitiesWith1[*components.PendingSpawnComponent](s.em))
		enemies := len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.em))
		log.Printf("[WaveSpawnSystem] wave=%d stage=%d pattern=%s pending=%d enemies=%d",
			s.wave, s.stage, s.pattern, pending, enemies)
	}
}

// startNextWave 开始新的一波：选择阵型并生成出生点实体
// 生成失败时波次和关卡保持不变，等待下一个间隔后重试
func (s *WaveSpawnSystem) startNextWave() {
	wave := s.wave + 1
	stage := s.stage
	if wave > 1 && (wave-1)%s.arena.WavesPerStage == 0 {
		stage++
	}

	pattern := s.selector.Select(wave, stage)
	count := s.arena.EnemyCountForWave(wave)

	enemyTypes := s.enemyStats.TypesForStage(stage)
	if len(enemyTypes) == 0 {
		log.Printf("[WaveSpawnSystem] Warning: no enemy types eligible for stage %d, using full roster", stage)
		enemyTypes = s.enemyStats.TypesForStage(math.MaxInt)
	}

	descriptors, err := s.selector.GenerateWave(pattern, count, enemyTypes)
	if err != nil {
		log.Printf("[WaveSpawnSystem] Error: failed to generate wave %d (%s): %v", wave, pattern, err)
		s.intermission = s.arena.WaveIntermission
		return
	}

	s.wave = wave
	s.pattern = pattern
	if stage != s.stage {
		s.stage = stage
		log.Printf("[WaveSpawnSystem] Advancing to stage %d", s.stage)
		s.dispatcher.Dispatch(event.Event{
			Type: event.StageAdvanced,
			Data: event.WaveData{Wave: s.wave, Stage: s.stage},
		})
	}

	for _, d := range descriptors {
		id := s.em.CreateEntity()
		ecs.AddComponent(s.em, id, &components.PendingSpawnComponent{
			Descriptor:      d,
			RemainingFrames: d.ActivationDelay,
			Wave:            s.wave,
		})
	}
	s.waveInProgress = true

	log.Printf("[WaveSpawnSystem] Wave %d started: stage=%d pattern=%s enemies=%d",
		s.wave, s.stage, s.pattern, len(descriptors))
	s.dispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveData{Wave: s.wave, Stage: s.stage, Pattern: s.pattern, EnemyCount: len(descriptors)},
	})
}

// activatePendingSpawns 递减激活延迟，到期的出生点转为敌机
func (s *WaveSpawnSystem) activatePendingSpawns() {
	for _, id := range ecs.GetEntitiesWith1[*components.PendingSpawnComponent](s.em) {
		pending, ok := ecs.GetComponent[*components.PendingSpawnComponent](s.em, id)
		if !ok {
			continue
		}
		if pending.RemainingFrames > 0 {
			pending.RemainingFrames--
			continue
		}

		d := pending.Descriptor
		if _, err := s.factory.Create(s.em, d.EnemyType, d.Position, d.Velocity, pending.Wave); err != nil {
			log.Printf("[WaveSpawnSystem] Warning: failed to spawn %s: %v", d.EnemyType, err)
		}
		s.em.DestroyEntity(id)
	}
}

// isWaveCleared 当前波次没有待激活的出生点，也没有存活的敌机
func (s *WaveSpawnSystem) isWaveCleared() bool {
	if len(ecs.GetEntitiesWith1[*components.PendingSpawnComponent](s.em)) > 0 {
		return false
	}
	return len(ecs.GetEntitiesWith1[*components.EnemyComponent](s.em)) == 0
}
