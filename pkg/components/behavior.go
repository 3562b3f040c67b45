package components

import "github.com/gonewx/abyssal/pkg/ai"

// BehaviorComponent 敌机行为
//
// 行为实例在敌机创建时按类型解析一次，之后一直持有，不再按名称重新查找。
// 同一实例只属于一架敌机。
type BehaviorComponent struct {
	Behavior ai.Behavior
}
