package types

// PatternName 波次阵型名称
type PatternName string

const (
	PatternLinear      PatternName = "linear"
	PatternSine        PatternName = "sine"
	PatternSpiral      PatternName = "spiral"
	PatternAmbush      PatternName = "ambush"
	PatternPincer      PatternName = "pincer"
	PatternScreenClear PatternName = "screen_clear"
)

// AllPatterns 所有阵型，按复杂度从低到高排列
var AllPatterns = []PatternName{
	PatternLinear,
	PatternSine,
	PatternSpiral,
	PatternAmbush,
	PatternPincer,
	PatternScreenClear,
}

// IsValid 检查阵型名称是否已知
func (p PatternName) IsValid() bool {
	for _, known := range AllPatterns {
		if p == known {
			return true
		}
	}
	return false
}
