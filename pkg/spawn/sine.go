package spawn

import (
	"math"

	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

const sineDelayStep = 10

// SinePattern 正弦阵型
//
// 出生点沿一个完整的正弦周期分布在屏幕上方：
// x = 中心 + A·sin(相位)，A 固定为屏幕宽度的 1/4；
// 初速度横向分量为 cos(相位)，纵向为入场速度。
type SinePattern struct {
	bounds utils.Bounds
	rng    utils.RNG
}

// NewSinePattern 创建正弦阵型生成器
func NewSinePattern(bounds utils.Bounds, rng utils.RNG) *SinePattern {
	return &SinePattern{bounds: bounds, rng: rng}
}

// Name 返回阵型名称
func (p *SinePattern) Name() types.PatternName {
	return types.PatternSine
}

// Amplitude 正弦振幅
func (p *SinePattern) Amplitude() float64 {
	return p.bounds.Width / 4
}

// Generate 生成正弦阵型出生点
func (p *SinePattern) Generate(count int, enemyTypes []string) ([]Descriptor, error) {
	if err := validateRequest(p.Name(), count, enemyTypes); err != nil {
		return nil, err
	}

	center := p.bounds.Width / 2
	amplitude := p.Amplitude()

	result := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		phase := 2 * math.Pi * float64(i) / float64(count)
		result = append(result, Descriptor{
			Position:        utils.V(center+amplitude*math.Sin(phase), -offscreenMargin),
			Velocity:        utils.V(math.Cos(phase), entrySpeed),
			ActivationDelay: i * sineDelayStep,
			EnemyType:       pickType(p.rng, enemyTypes),
		})
	}

	return result, nil
}
