// Package spawn 波次阵型生成
//
// 每种阵型是一个纯计算的生成器：给定数量和敌人类型列表，
// 返回出生点描述（位置、初速度、激活延迟、敌人类型）。
// 生成器本身不创建实体，由 systems.WaveSpawnSystem 按激活延迟逐帧实例化。
package spawn

import (
	"fmt"

	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

// Descriptor 出生点描述
//
// 生成后不再修改。位置可以在屏幕外（负坐标或超出屏幕尺寸）。
type Descriptor struct {
	Position        utils.Vec2 // 世界坐标
	Velocity        utils.Vec2 // 初速度（像素/帧）
	ActivationDelay int        // 激活前等待的帧数（>= 0）
	EnemyType       string     // 敌人类型，取自调用方提供的列表
}

// Generator 阵型生成器
type Generator interface {
	// Name 返回阵型名称
	Name() types.PatternName
	// Generate 生成 count 个出生点
	// count <= 0 或 enemyTypes 为空时返回 types.ErrInvalidArgument
	Generate(count int, enemyTypes []string) ([]Descriptor, error)
}

const (
	// offscreenMargin 屏幕外出生点与屏幕边缘的距离
	offscreenMargin = 40.0
	// entrySpeed 入场速度（像素/帧）
	entrySpeed = 2.0
)

// validateRequest 检查生成参数
func validateRequest(pattern types.PatternName, count int, enemyTypes []string) error {
	if count <= 0 {
		return fmt.Errorf("%s pattern: count must be positive, got %d: %w", pattern, count, types.ErrInvalidArgument)
	}
	if len(enemyTypes) == 0 {
		return fmt.Errorf("%s pattern: enemy type list is empty: %w", pattern, types.ErrInvalidArgument)
	}
	return nil
}

// pickType 从类型列表中随机选择一个
func pickType(rng utils.RNG, enemyTypes []string) string {
	return enemyTypes[rng.Intn(len(enemyTypes))]
}
