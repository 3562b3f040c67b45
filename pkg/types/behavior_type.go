// Package types 定义共享的基础类型
package types

import (
	"fmt"
	"strings"
)

// BehaviorVariant 定义敌人 AI 行为变体
//
// 变体在敌人创建时确定一次，之后由具体的行为实例持有，
// 不会在每帧重新通过字符串查表分发。
type BehaviorVariant int

const (
	// BehaviorBasic 基础行为：缓慢下压并横向追踪玩家
	BehaviorBasic BehaviorVariant = iota
	// BehaviorKamikaze 自杀冲锋：接近 → 锁定 → 俯冲（单向状态机）
	BehaviorKamikaze
	// BehaviorWeaver 蛇形机动：正弦摆动，遇到来袭弹幕时闪避
	BehaviorWeaver
	// BehaviorSniper 狙击：保持距离，瞄准蓄力后开火
	BehaviorSniper
	// BehaviorSpawner 母舰：悬停在屏幕上方，周期性释放子机
	BehaviorSpawner
	// BehaviorTank 重装：缓慢推进，持续压制射击
	BehaviorTank
)

// behaviorNames 行为变体的配置名（与 data/enemy_stats.yaml 中的 behavior 字段对应）
var behaviorNames = map[BehaviorVariant]string{
	BehaviorBasic:    "basic",
	BehaviorKamikaze: "kamikaze",
	BehaviorWeaver:   "weaver",
	BehaviorSniper:   "sniper",
	BehaviorSpawner:  "spawner",
	BehaviorTank:     "tank",
}

// AllBehaviors 所有行为变体，按定义顺序排列
var AllBehaviors = []BehaviorVariant{
	BehaviorBasic,
	BehaviorKamikaze,
	BehaviorWeaver,
	BehaviorSniper,
	BehaviorSpawner,
	BehaviorTank,
}

// String 返回行为变体的配置名
func (b BehaviorVariant) String() string {
	if name, ok := behaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BehaviorVariant(%d)", int(b))
}

// ParseBehaviorVariant 将配置名解析为行为变体（不区分大小写）
func ParseBehaviorVariant(name string) (BehaviorVariant, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for variant, n := range behaviorNames {
		if n == normalized {
			return variant, nil
		}
	}
	return BehaviorBasic, fmt.Errorf("unknown behavior variant %q: %w", name, ErrInvalidArgument)
}
