package event

import "github.com/gonewx/abyssal/pkg/types"

const (
	KillScored    EventType = "KillScored"    // 击杀计分完成，Data: KillScoredData
	ComboBroken   EventType = "ComboBroken"   // 连击中断，Data: ComboBrokenData
	PlayerDamaged EventType = "PlayerDamaged" // 玩家受到伤害，Data: PlayerDamagedData
	WaveStarted   EventType = "WaveStarted"   // 新一波开始，Data: WaveData
	WaveCleared   EventType = "WaveCleared"   // 当前波次清空，Data: WaveData
	StageAdvanced EventType = "StageAdvanced" // 进入下一关，Data: WaveData
)

// KillScoredData 击杀计分结果
type KillScoredData struct {
	Tier       types.Tier
	Distance   float64
	BaseScore  int
	FinalScore int
	Streak     int
	ComboBonus float64
	TotalScore int64
}

// ComboBroken 的原因
const (
	ComboBrokenByDamage  = "damage"
	ComboBrokenByTimeout = "timeout"
)

// ComboBrokenData 连击中断信息
type ComboBrokenData struct {
	Streak int    // 中断前的连击数
	Reason string // ComboBrokenByDamage 或 ComboBrokenByTimeout
}

// PlayerDamagedData 玩家受伤信息
type PlayerDamagedData struct {
	Health    int // 受伤后的剩余生命
	Destroyed bool
}

// WaveData 波次信息
type WaveData struct {
	Wave       int
	Stage      int
	Pattern    types.PatternName
	EnemyCount int
}
