// Package scoring 近距离计分
//
// 击杀得分 = floor(基础分 × 距离倍率 × 连击奖励)。
// 距离越近倍率越高；连续击杀且未受伤会累积连击，达到阈值后获得额外奖励。
package scoring

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// scoreEpsilon 抵消浮点乘法误差（例如 100×5.0×1.2 得到 599.9999…）
const scoreEpsilon = 1e-9

// KillResult 单次击杀的计分结果
type KillResult struct {
	Tier           types.Tier
	Distance       float64
	TierMultiplier float64
	Streak         int     // 计入本次击杀后的连击数
	ComboBonus     float64 // 本次击杀使用的连击奖励倍率
	FinalScore     int
}

// Stats 计分统计快照
type Stats struct {
	SessionID     string
	SessionScore  int64
	LifetimeScore int64
	Kills         int
	TierKills     [types.TierCount]int
	BestStreak    int
	CurrentStreak int
}

// Engine 近距离计分引擎
//
// 每局游戏一个实例，由游戏循环单线程调用：
//   - 每次敌机死亡调用一次 RegisterKill
//   - 玩家受伤时调用 TakeDamage
//   - 每帧调用一次 Update 推进连击计时
//
// 连击奖励在达到阈值的那次击杀上立即生效（先增加连击数，再读取奖励倍率）。
type Engine struct {
	cfg        *config.ScoringConfig
	dispatcher *event.Dispatcher

	sessionID uuid.UUID

	streak      int
	streakTimer float64
	multiplier  float64

	sessionScore  int64
	lifetimeScore int64
	kills         int
	tierKills     [types.TierCount]int
	bestStreak    int
}

// NewEngine 创建计分引擎
//
// 参数：
//   - cfg: 计分配置，nil 或校验失败时使用默认配置
//   - dispatcher: 事件分发器，可为 nil（不发送事件）
func NewEngine(cfg *config.ScoringConfig, dispatcher *event.Dispatcher) *Engine {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	} else if err := cfg.Validate(); err != nil {
		log.Printf("[ScoringEngine] Warning: invalid scoring config: %v (using defaults)", err)
		cfg = config.DefaultScoringConfig()
	}
	return &Engine{
		cfg:        cfg,
		dispatcher: dispatcher,
		sessionID:  uuid.New(),
		multiplier: 1.0,
	}
}

// SessionID 本局游戏的唯一标识
func (e *Engine) SessionID() string {
	return e.sessionID.String()
}

// SetLifetimeScore 设置历史累计分（从持久化数据恢复）
func (e *Engine) SetLifetimeScore(score int64) {
	e.lifetimeScore = score
}

// TierFor 将击杀距离映射到档位
//
// 返回：
//   - types.Tier: 距离档位
//   - float64: 该档位的分数倍率
func (e *Engine) TierFor(distance float64) (types.Tier, float64) {
	last := len(e.cfg.Tiers) - 1
	for i, tier := range e.cfg.Tiers[:last] {
		if distance < tier.MaxDistance {
			return types.Tier(i), tier.Multiplier
		}
	}
	return types.Tier(last), e.cfg.Tiers[last].Multiplier
}

// ComboBonusFor 返回指定连击数对应的奖励倍率（取满足的最高阈值，不累乘）
func (e *Engine) ComboBonusFor(streak int) float64 {
	bonus := 1.0
	for _, th := range e.cfg.ComboThresholds {
		if streak >= th.Streak {
			bonus = th.Bonus
		}
	}
	return bonus
}

// RegisterKill 登记一次击杀并返回计分结果
//
// 参数：
//   - baseScore: 敌机基础分，必须为正
//   - player: 击杀瞬间玩家位置
//   - enemy: 击杀瞬间敌机位置
//
// 返回：
//   - KillResult: 档位、倍率、连击和最终得分
//   - error: baseScore <= 0 时返回 types.ErrInvalidArgument，状态不变
func (e *Engine) RegisterKill(baseScore int, player, enemy utils.Vec2) (KillResult, error) {
	if baseScore <= 0 {
		return KillResult{}, fmt.Errorf("base score must be positive, got %d: %w", baseScore, types.ErrInvalidArgument)
	}

	distance := utils.Distance(player, enemy)
	tier, tierMultiplier := e.TierFor(distance)

	e.streak++
	e.streakTimer = e.cfg.ComboWindow
	e.multiplier = e.ComboBonusFor(e.streak)
	if e.streak > e.bestStreak {
		e.bestStreak = e.streak
	}

	final := int(math.Floor(float64(baseScore)*tierMultiplier*e.multiplier + scoreEpsilon))

	e.sessionScore += int64(final)
	e.lifetimeScore += int64(final)
	e.kills++
	e.tierKills[tier]++

	result := KillResult{
		Tier:           tier,
		Distance:       distance,
		TierMultiplier: tierMultiplier,
		Streak:         e.streak,
		ComboBonus:     e.multiplier,
		FinalScore:     final,
	}

	e.dispatcher.Dispatch(event.Event{
		Type: event.KillScored,
		Data: event.KillScoredData{
			Tier:       tier,
			Distance:   distance,
			BaseScore:  baseScore,
			FinalScore: final,
			Streak:     e.streak,
			ComboBonus: e.multiplier,
			TotalScore: e.sessionScore,
		},
	})

	return result, nil
}

// TakeDamage 玩家受伤：立即清空连击，与连击计时无关
func (e *Engine) TakeDamage() {
	e.breakCombo(event.ComboBrokenByDamage)
}

// Update 推进连击计时
// 计时归零时连击中断，效果与受伤相同
func (e *Engine) Update(deltaTime float64) {
	if e.streak == 0 {
		return
	}
	e.streakTimer -= deltaTime
	if e.streakTimer <= 0 {
		e.breakCombo(event.ComboBrokenByTimeout)
	}
}

func (e *Engine) breakCombo(reason string) {
	previous := e.streak
	e.streak = 0
	e.streakTimer = 0
	e.multiplier = 1.0
	if previous > 0 {
		e.dispatcher.Dispatch(event.Event{
			Type: event.ComboBroken,
			Data: event.ComboBrokenData{Streak: previous, Reason: reason},
		})
	}
}

// ResetSession 开始新的一局：清空本局统计与连击，保留历史累计分
func (e *Engine) ResetSession() {
	e.sessionID = uuid.New()
	e.streak = 0
	e.streakTimer = 0
	e.multiplier = 1.0
	e.sessionScore = 0
	e.kills = 0
	e.tierKills = [types.TierCount]int{}
	e.bestStreak = 0
}

// Streak 当前连击数
func (e *Engine) Streak() int {
	return e.streak
}

// StreakTimer 连击剩余时间（秒）
func (e *Engine) StreakTimer() float64 {
	return e.streakTimer
}

// Multiplier 当前连击奖励倍率（无连击时为 1.0）
func (e *Engine) Multiplier() float64 {
	return e.multiplier
}

// Stats 返回统计快照
func (e *Engine) Stats() Stats {
	return Stats{
		SessionID:     e.SessionID(),
		SessionScore:  e.sessionScore,
		LifetimeScore: e.lifetimeScore,
		Kills:         e.kills,
		TierKills:     e.tierKills,
		BestStreak:    e.bestStreak,
		CurrentStreak: e.streak,
	}
}
