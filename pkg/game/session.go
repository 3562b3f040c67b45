package game

import (
	"fmt"
	"log"

	"github.com/gonewx/abyssal/pkg/ai"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/entities"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/scoring"
	"github.com/gonewx/abyssal/pkg/spawn"
	"github.com/gonewx/abyssal/pkg/systems"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// SessionOptions 创建对局的可选参数
type SessionOptions struct {
	Seed    int64               // 随机种子，0 表示使用当前时间
	Workers int                 // AI 决策并行 worker 数，<= 1 串行
	Input   systems.InputSource // 玩家输入，可为 nil
	Store   *StatsStore         // 跨局统计，可为 nil（不记录）
}

// Session 一局游戏
//
// 所有协作者（随机数、阵型选择器、行为解析器、计分引擎、事件分发器、ECS 和各系统）
// 都在这里显式创建并注入，不存在全局单例。
type Session struct {
	cfg        *config.GameConfig
	opts       SessionOptions
	rng        *utils.PRNG
	dispatcher *event.Dispatcher
	resolver   *ai.Resolver
	scorer     *scoring.Engine

	// 每次 Restart 重建
	em        *ecs.EntityManager
	selector  *spawn.Selector
	factory   *entities.EnemyFactory
	playerID  ecs.EntityID
	playerSys *systems.PlayerSystem
	waveSys   *systems.WaveSpawnSystem
	aiSys     *systems.AISystem
	moveSys   *systems.MovementSystem
	collSys   *systems.CollisionSystem
	lifeSys   *systems.LifetimeSystem

	tick     int
	gameOver bool
	ended    bool
}

// NewSession 根据配置创建一局游戏
//
// 参数：
//   - cfg: 游戏配置，EnemyStats 必须非空；其余为 nil 时使用默认值
//   - opts: 可选参数
//
// 返回：
//   - *Session: 对局实例（玩家已就位，第一波在第一次 Step 时开始）
//   - error: 配置缺失时返回 types.ErrInvalidArgument
func NewSession(cfg *config.GameConfig, opts SessionOptions) (*Session, error) {
	if cfg == nil || cfg.EnemyStats == nil || len(cfg.EnemyStats.Enemies) == 0 {
		return nil, fmt.Errorf("session requires enemy stats: %w", types.ErrInvalidArgument)
	}
	if cfg.Scoring == nil {
		cfg.Scoring = config.DefaultScoringConfig()
	}
	if cfg.AITuning == nil {
		cfg.AITuning = config.DefaultAITuning()
	}
	if cfg.Arena == nil {
		cfg.Arena = config.DefaultArenaConfig()
	}

	s := &Session{
		cfg:        cfg,
		opts:       opts,
		rng:        utils.NewPRNG(opts.Seed),
		dispatcher: event.NewDispatcher(),
	}
	s.resolver = ai.NewResolver(cfg.EnemyStats.BehaviorMapping(), cfg.AITuning, cfg.Arena.Bounds())
	s.scorer = scoring.NewEngine(cfg.Scoring, s.dispatcher)
	if opts.Store != nil {
		s.scorer.SetLifetimeScore(opts.Store.Stats().LifetimeScore)
	}

	s.dispatcher.Subscribe(event.PlayerDamaged, event.ListenerFunc(func(e event.Event) {
		if data, ok := e.Data.(event.PlayerDamagedData); ok && data.Destroyed {
			s.gameOver = true
			log.Printf("[Session] Game over at wave %d, score %d", s.waveSys.Wave(), s.scorer.Stats().SessionScore)
		}
	}))

	s.buildWorld()
	log.Printf("[Session] Session %s started (seed=%d, workers=%d)", s.scorer.SessionID(), opts.Seed, opts.Workers)
	return s, nil
}

// buildWorld 创建新的实体管理器、系统和玩家
func (s *Session) buildWorld() {
	arena := s.cfg.Arena
	bounds := arena.Bounds()

	s.em = ecs.NewEntityManager()
	s.selector = spawn.NewSelector(bounds, s.rng.Fork())
	s.factory = entities.NewEnemyFactory(s.cfg.EnemyStats, s.resolver, s.rng.Fork(), arena.EnemyShotSpeed)
	s.playerID = entities.NewPlayer(s.em, arena)

	s.playerSys = systems.NewPlayerSystem(s.em, arena, s.opts.Input)
	s.waveSys = systems.NewWaveSpawnSystem(s.em, s.selector, s.factory, s.cfg.EnemyStats, arena, s.dispatcher)
	s.aiSys = systems.NewAISystem(s.em, s.factory, arena, s.opts.Workers)
	s.moveSys = systems.NewMovementSystem(s.em, arena)
	s.collSys = systems.NewCollisionSystem(s.em, s.scorer, arena, s.dispatcher)
	s.lifeSys = systems.NewLifetimeSystem(s.em)

	s.tick = 0
	s.gameOver = false
	s.ended = false
}

// Step 推进一帧
//
// 顺序：玩家 → 波次生成 → AI → 移动 → 碰撞 → 连击计时 → 子弹寿命 → 清理已标记实体。
// 游戏结束后不再推进。
func (s *Session) Step(deltaTime float64) {
	if s.gameOver {
		return
	}
	s.tick++

	s.playerSys.Update(deltaTime)
	s.waveSys.Update(deltaTime)
	s.aiSys.Update(deltaTime)
	s.moveSys.Update(deltaTime)
	s.collSys.Update(deltaTime)
	s.scorer.Update(deltaTime)
	s.lifeSys.Update(deltaTime)
	s.em.RemoveMarkedEntities()
}

// End 结束对局，把本局统计累计到 StatsStore 并保存
// 重复调用只记录一次
func (s *Session) End() error {
	if s.ended {
		return nil
	}
	s.ended = true

	stats := s.scorer.Stats()
	log.Printf("[Session] Session %s ended: score=%d kills=%d bestStreak=%d wave=%d",
		stats.SessionID, stats.SessionScore, stats.Kills, stats.BestStreak, s.waveSys.Wave())

	if s.opts.Store == nil {
		return nil
	}
	s.opts.Store.Record(stats, s.waveSys.Wave(), s.waveSys.Stage())
	if err := s.opts.Store.Save(); err != nil {
		return fmt.Errorf("failed to save session stats: %w", err)
	}
	return nil
}

// Restart 结束当前对局（如尚未结束）并开始新的一局
func (s *Session) Restart() error {
	err := s.End()
	s.scorer.ResetSession()
	s.buildWorld()
	log.Printf("[Session] Session %s restarted", s.scorer.SessionID())
	return err
}

// SetInput 替换玩家输入
func (s *Session) SetInput(input systems.InputSource) {
	s.opts.Input = input
	s.playerSys.SetInput(input)
}

// EntityManager 当前世界的实体管理器（渲染使用）
func (s *Session) EntityManager() *ecs.EntityManager {
	return s.em
}

// Dispatcher 事件分发器（音效/界面订阅使用）
func (s *Session) Dispatcher() *event.Dispatcher {
	return s.dispatcher
}

// Scorer 计分引擎
func (s *Session) Scorer() *scoring.Engine {
	return s.scorer
}

// Config 对局配置
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}

// PlayerID 玩家实体ID
func (s *Session) PlayerID() ecs.EntityID {
	return s.playerID
}

// Wave 当前波次
func (s *Session) Wave() int {
	return s.waveSys.Wave()
}

// Stage 当前关卡
func (s *Session) Stage() int {
	return s.waveSys.Stage()
}

// Pattern 当前阵型
func (s *Session) Pattern() types.PatternName {
	return s.waveSys.Pattern()
}

// Tick 已推进的帧数
func (s *Session) Tick() int {
	return s.tick
}

// GameOver 玩家是否已被击毁
func (s *Session) GameOver() bool {
	return s.gameOver
}
