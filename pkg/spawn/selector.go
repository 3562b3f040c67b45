package spawn

import (
	"fmt"
	"log"

	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// Selector 波次阵型选择器
//
// 职责：
//   - 根据波次号选择阵型（前期简单、后期复杂）
//   - 防重复：SelectRandom 不会给出被排除的阵型（唯一候选时放行）
//   - 将生成请求委托给对应的阵型生成器
//
// 非并发安全，由游戏循环单线程调用。
type Selector struct {
	rng        utils.RNG
	generators map[types.PatternName]Generator
	last       types.PatternName
}

// NewSelector 创建阵型选择器并注册全部 6 种阵型
//
// 参数：
//   - bounds: 屏幕尺寸
//   - rng: 随机数来源（选择器与所有生成器共用）
func NewSelector(bounds utils.Bounds, rng utils.RNG) *Selector {
	s := &Selector{
		rng:        rng,
		generators: make(map[types.PatternName]Generator, len(types.AllPatterns)),
	}
	s.Register(NewLinearPattern(bounds, rng))
	s.Register(NewSinePattern(bounds, rng))
	s.Register(NewSpiralPattern(bounds, rng))
	s.Register(NewAmbushPattern(bounds, rng))
	s.Register(NewPincerPattern(bounds, rng))
	s.Register(NewScreenClearPattern(bounds, rng))
	return s
}

// Register 注册（或替换）阵型生成器
func (s *Selector) Register(g Generator) {
	s.generators[g.Name()] = g
}

// Last 返回上一次选出的阵型（尚未选择时为空字符串）
func (s *Selector) Last() types.PatternName {
	return s.last
}

// Candidates 返回指定波次允许的阵型集合
//
// 规则：
//
//	wave < 3        → linear
//	3 <= wave < 5   → linear, sine
//	5 <= wave < 8   → sine, pincer, spiral
//	wave >= 8       → sine, spiral, ambush, pincer；wave 是 5 的倍数时追加 screen_clear
func Candidates(wave int) []types.PatternName {
	switch {
	case wave < 3:
		return []types.PatternName{types.PatternLinear}
	case wave < 5:
		return []types.PatternName{types.PatternLinear, types.PatternSine}
	case wave < 8:
		return []types.PatternName{types.PatternSine, types.PatternPincer, types.PatternSpiral}
	default:
		candidates := []types.PatternName{types.PatternSine, types.PatternSpiral, types.PatternAmbush, types.PatternPincer}
		if wave%5 == 0 {
			candidates = append(candidates, types.PatternScreenClear)
		}
		return candidates
	}
}

// Select 为指定波次和关卡选择阵型
//
// 参数：
//   - wave: 波次号（从1开始）
//   - stage: 关卡号（从1开始）
//
// 关卡号目前只用于日志；阵型复杂度完全由波次号决定。
// 非法参数（< 1）按 1 处理。在候选集合内均匀随机，不做防重复排除。
func (s *Selector) Select(wave, stage int) types.PatternName {
	if wave < 1 || stage < 1 {
		log.Printf("[WaveSelector] Warning: invalid wave/stage (%d/%d), clamping to 1", wave, stage)
		if wave < 1 {
			wave = 1
		}
		if stage < 1 {
			stage = 1
		}
	}

	candidates := Candidates(wave)
	pattern := candidates[s.rng.Intn(len(candidates))]
	s.last = pattern
	return pattern
}

// SelectRandom 从全部阵型中随机选择一个，且不等于 exclude
//
// exclude 为空时不做排除。排除后没有候选时忽略排除（放行而非失败）。
func (s *Selector) SelectRandom(exclude types.PatternName) types.PatternName {
	pattern := s.pick(types.AllPatterns, exclude)
	s.last = pattern
	return pattern
}

// pick 从候选中排除 exclude 后随机选择
func (s *Selector) pick(candidates []types.PatternName, exclude types.PatternName) types.PatternName {
	filtered := make([]types.PatternName, 0, len(candidates))
	for _, c := range candidates {
		if c != exclude {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		filtered = candidates
	}
	return filtered[s.rng.Intn(len(filtered))]
}

// GenerateWave 使用指定阵型生成出生点
//
// 返回：
//   - []Descriptor: 出生点列表
//   - error: 阵型未注册、count <= 0 或 enemyTypes 为空时返回 types.ErrInvalidArgument
func (s *Selector) GenerateWave(pattern types.PatternName, count int, enemyTypes []string) ([]Descriptor, error) {
	g, ok := s.generators[pattern]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q: %w", pattern, types.ErrInvalidArgument)
	}
	return g.Generate(count, enemyTypes)
}
