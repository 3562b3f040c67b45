package utils

import (
	"math/rand"
	"time"
)

// RNG 随机数来源
//
// 所有需要随机性的组件（阵型生成、AI 行为、选择器）都通过构造参数注入 RNG，
// 不直接使用 math/rand 的全局函数，便于测试时固定种子。
type RNG interface {
	// Float64 返回 [0.0, 1.0) 范围内的随机数
	Float64() float64
	// Intn 返回 [0, n) 范围内的随机整数，n <= 0 时 panic
	Intn(n int) int
}

// PRNG 可设定种子的伪随机数生成器
//
// 非并发安全：每个 PRNG 只能由一个 goroutine 使用。
// 需要在多个 worker 中使用时，先通过 Fork 派生独立实例。
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG 创建伪随机数生成器
// seed 为 0 时使用当前时间作为种子
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Float64 返回 [0.0, 1.0) 范围内的随机数
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// Intn 返回 [0, n) 范围内的随机整数
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// Fork 派生一个种子由当前序列决定的子生成器
// 相同种子的父生成器按相同顺序 Fork，得到的子序列也相同
func (p *PRNG) Fork() *PRNG {
	return NewPRNG(p.rng.Int63() | 1)
}

// RandRange 返回 [min, max) 范围内的随机浮点数
func RandRange(r RNG, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// RandIntRange 返回 [min, max] 闭区间内的随机整数
func RandIntRange(r RNG, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// RandSign 等概率返回 1 或 -1
func RandSign(r RNG) float64 {
	if r.Intn(2) == 0 {
		return -1
	}
	return 1
}
