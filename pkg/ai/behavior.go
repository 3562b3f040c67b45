// Package ai 敌机行为状态机
//
// 每架敌机在创建时绑定一个 Behavior 实例，之后每帧调用一次 Update，
// 由调用方应用返回的速度与开火决策。Behavior 只读取 Input，不修改世界状态；
// 每个实例只属于一架敌机，不在 goroutine 之间共享。
package ai

import (
	"math"

	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// Threat 敌机附近的威胁（通常是玩家子弹）
type Threat struct {
	Position utils.Vec2
	Velocity utils.Vec2
}

// Input 单帧决策输入
type Input struct {
	Position  utils.Vec2 // 自身位置
	Speed     float64    // 自身基础速度（像素/帧）
	Player    utils.Vec2 // 玩家位置
	Threats   []Threat   // 附近威胁，nil 表示没有威胁
	DeltaTime float64    // 帧间隔（秒）
}

// Decision 单帧决策输出
type Decision struct {
	Velocity utils.Vec2 // 期望速度（像素/帧）
	Fire     bool       // 是否希望开火（是否真正开火由武器冷却决定）
}

// Behavior 敌机行为
type Behavior interface {
	// Update 计算本帧的速度与开火决策，不会阻塞，对任何合法输入都不会 panic
	Update(in Input) Decision
	// FireRateModifier 开火频率修正倍数，由武器冷却系统应用
	FireRateModifier() float64
	// Variant 行为变体
	Variant() types.BehaviorVariant
}

// SpawnRequest 母舰释放子机的请求
type SpawnRequest struct {
	Position  utils.Vec2
	EnemyType string
}

// SpawnSource 会产生子机请求的行为（目前只有母舰）
type SpawnSource interface {
	// DrainSpawnQueue 取出并清空待处理的子机请求
	DrainSpawnQueue() []SpawnRequest
}

// edgeClamp 靠近左右边缘时强制横向速度指向屏幕内侧
func edgeClamp(x, vx, margin, width float64) float64 {
	if x < margin {
		return math.Abs(vx)
	}
	if x > width-margin {
		return -math.Abs(vx)
	}
	return vx
}

// trackLateral 按增益朝目标横坐标修正，并限制最大横向速度
func trackLateral(fromX, toX, gain, maxSpeed float64) float64 {
	return utils.Clamp((toX-fromX)*gain, -maxSpeed, maxSpeed)
}
