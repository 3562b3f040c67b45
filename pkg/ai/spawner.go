package ai

import (
	"math"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// SpawnerAI 母舰
//
// 下降到 StationY 后悬停并做轻微横向漂移。每隔 SpawnCooldown 秒向内部队列放入
// 一个子机请求，总数不超过 MaxSpawns；队列由游戏循环通过 DrainSpawnQueue 取走。
// 开火与释放子机无关：每帧以固定的低概率开火。
type SpawnerAI struct {
	tuning config.SpawnerTuning
	bounds utils.Bounds
	rng    utils.RNG

	elapsed  float64
	phase    float64
	cooldown float64
	spawned  int
	queue    []SpawnRequest
}

// NewSpawnerAI 创建母舰行为
func NewSpawnerAI(tuning config.SpawnerTuning, bounds utils.Bounds, rng utils.RNG) *SpawnerAI {
	return &SpawnerAI{
		tuning:   tuning,
		bounds:   bounds,
		rng:      rng,
		phase:    rng.Float64() * 2 * math.Pi,
		cooldown: tuning.SpawnCooldown,
	}
}

// SpawnedCount 已释放（已入队）的子机数量
func (s *SpawnerAI) SpawnedCount() int {
	return s.spawned
}

// PendingSpawns 队列中尚未取走的请求数量
func (s *SpawnerAI) PendingSpawns() int {
	return len(s.queue)
}

// Update 计算本帧决策
func (s *SpawnerAI) Update(in Input) Decision {
	s.elapsed += in.DeltaTime

	vy := 0.0
	if in.Position.Y < s.tuning.StationY {
		vy = math.Min(in.Speed*s.tuning.ApproachFactor, s.tuning.StationY-in.Position.Y)
	}

	vx := math.Sin(s.elapsed*s.tuning.DriftFrequency+s.phase) * in.Speed * s.tuning.DriftFactor
	vx = edgeClamp(in.Position.X, vx, s.tuning.EdgeMargin, s.bounds.Width)

	s.updateSpawning(in)

	return Decision{
		Velocity: utils.V(vx, vy),
		Fire:     s.rng.Float64() < s.tuning.FireChance,
	}
}

// updateSpawning 冷却结束且未达上限时入队一个子机请求（只在进入屏幕后释放）
func (s *SpawnerAI) updateSpawning(in Input) {
	if s.spawned >= s.tuning.MaxSpawns {
		return
	}
	s.cooldown -= in.DeltaTime
	if s.cooldown > 0 || in.Position.Y < 0 {
		return
	}

	offset := utils.RandRange(s.rng, -s.tuning.SpawnOffset, s.tuning.SpawnOffset)
	s.queue = append(s.queue, SpawnRequest{
		Position:  in.Position.Add(utils.V(offset, s.tuning.SpawnOffset)),
		EnemyType: s.tuning.ChildType,
	})
	s.spawned++
	s.cooldown = s.tuning.SpawnCooldown
}

// DrainSpawnQueue 取出并清空待处理的子机请求
func (s *SpawnerAI) DrainSpawnQueue() []SpawnRequest {
	if len(s.queue) == 0 {
		return nil
	}
	drained := s.queue
	s.queue = nil
	return drained
}

// FireRateModifier 开火频率修正
func (s *SpawnerAI) FireRateModifier() float64 {
	return s.tuning.FireRateFactor
}

// Variant 行为变体
func (s *SpawnerAI) Variant() types.BehaviorVariant {
	return types.BehaviorSpawner
}
