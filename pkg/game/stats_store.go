package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/abyssal/pkg/scoring"
	"github.com/gonewx/abyssal/pkg/types"
)

// maxRecentSessions 保留的最近对局记录数量
const maxRecentSessions = 10

// SessionRecord 单局游戏记录
type SessionRecord struct {
	ID         string `yaml:"id"`         // 对局ID（scoring.Engine 生成的 UUID）
	Score      int64  `yaml:"score"`      // 本局得分
	Kills      int    `yaml:"kills"`      // 击杀数
	BestStreak int    `yaml:"bestStreak"` // 本局最高连击
	Wave       int    `yaml:"wave"`       // 到达的波次
	Stage      int    `yaml:"stage"`      // 到达的关卡
}

// LifetimeStats 跨局累计统计
type LifetimeStats struct {
	LifetimeScore  int64           `yaml:"lifetimeScore"`  // 历史累计得分
	BestScore      int64           `yaml:"bestScore"`      // 单局最高分
	BestStreak     int             `yaml:"bestStreak"`     // 历史最高连击
	TotalKills     int             `yaml:"totalKills"`     // 累计击杀
	TierKills      map[string]int  `yaml:"tierKills"`      // 档位名 -> 累计击杀
	SessionsPlayed int             `yaml:"sessionsPlayed"` // 已完成对局数
	HighestWave    int             `yaml:"highestWave"`    // 到达过的最高波次
	RecentSessions []SessionRecord `yaml:"recentSessions"` // 最近对局（新的在前）
}

// newLifetimeStats 返回空统计
func newLifetimeStats() *LifetimeStats {
	return &LifetimeStats{TierKills: make(map[string]int, types.TierCount)}
}

// StatsStore 统计存储
// 负责跨局统计的加载、累计和保存
type StatsStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	stats        *LifetimeStats // 当前统计
}

// 存储路径常量
const (
	statsObject   = "stats"
	statsProperty = "lifetime"
)

// NewStatsStore 创建统计存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存统计）
//
// 返回：
//   - *StatsStore: 统计存储实例
//
// 加载失败不是致命错误，记录警告后从空统计开始。
func NewStatsStore(gdataManager *gdata.Manager) *StatsStore {
	ss := &StatsStore{
		gdataManager: gdataManager,
		stats:        newLifetimeStats(),
	}

	if err := ss.Load(); err != nil {
		log.Printf("[StatsStore] Warning: Failed to load stats: %v (starting fresh)", err)
	}

	return ss
}

// Load 从 gdata 加载统计
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误（此时统计被重置为空）
func (ss *StatsStore) Load() error {
	if ss.gdataManager == nil {
		return nil
	}

	if !ss.gdataManager.ObjectPropExists(statsObject, statsProperty) {
		ss.stats = newLifetimeStats()
		return nil
	}

	data, err := ss.gdataManager.LoadObjectProp(statsObject, statsProperty)
	if err != nil {
		ss.stats = newLifetimeStats()
		return fmt.Errorf("failed to load stats: %w", err)
	}

	loaded := newLifetimeStats()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		ss.stats = newLifetimeStats()
		return fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	if loaded.TierKills == nil {
		loaded.TierKills = make(map[string]int, types.TierCount)
	}

	ss.stats = loaded
	log.Printf("[StatsStore] Stats loaded: lifetime=%d sessions=%d", loaded.LifetimeScore, loaded.SessionsPlayed)
	return nil
}

// Save 保存统计到 gdata
// gdataManager 为 nil 时直接返回 nil
func (ss *StatsStore) Save() error {
	if ss.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(ss.stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := ss.gdataManager.SaveObjectProp(statsObject, statsProperty, data); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	log.Printf("[StatsStore] Stats saved")
	return nil
}

// Stats 当前统计
func (ss *StatsStore) Stats() *LifetimeStats {
	return ss.stats
}

// Persistent 是否能持久化（非降级模式）
func (ss *StatsStore) Persistent() bool {
	return ss.gdataManager != nil
}

// Record 将一局的计分统计累计到历史统计中
//
// 参数：
//   - session: 计分引擎在对局结束时的快照
//   - wave: 到达的波次
//   - stage: 到达的关卡
//
// 注意：仅修改内存中的统计，需调用 Save() 持久化
func (ss *StatsStore) Record(session scoring.Stats, wave, stage int) {
	s := ss.stats
	s.LifetimeScore += session.SessionScore
	s.TotalKills += session.Kills
	s.SessionsPlayed++
	if session.SessionScore > s.BestScore {
		s.BestScore = session.SessionScore
	}
	if session.BestStreak > s.BestStreak {
		s.BestStreak = session.BestStreak
	}
	if wave > s.HighestWave {
		s.HighestWave = wave
	}
	for _, tier := range types.AllTiers {
		if n := session.TierKills[tier]; n > 0 {
			s.TierKills[tier.String()] += n
		}
	}

	record := SessionRecord{
		ID:         session.SessionID,
		Score:      session.SessionScore,
		Kills:      session.Kills,
		BestStreak: session.BestStreak,
		Wave:       wave,
		Stage:      stage,
	}
	s.RecentSessions = append([]SessionRecord{record}, s.RecentSessions...)
	if len(s.RecentSessions) > maxRecentSessions {
		s.RecentSessions = s.RecentSessions[:maxRecentSessions]
	}
}
