package types

// Tier 击杀距离档位
//
// 档位按距离从近到远排列，越近倍率越高。
type Tier int

const (
	TierExtreme Tier = iota // 贴脸击杀
	TierClose               // 近距离
	TierMedium              // 中距离
	TierFar                 // 远距离
	TierVeryFar             // 超远距离
)

// TierCount 档位总数
const TierCount = 5

var tierNames = [TierCount]string{"EXTREME", "CLOSE", "MEDIUM", "FAR", "VERY_FAR"}

// AllTiers 所有档位，按距离从近到远排列
var AllTiers = []Tier{TierExtreme, TierClose, TierMedium, TierFar, TierVeryFar}

// String 返回档位名称
func (t Tier) String() string {
	if t < 0 || int(t) >= TierCount {
		return "UNKNOWN"
	}
	return tierNames[t]
}
