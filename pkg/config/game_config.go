package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
)

// 默认配置文件路径（相对于项目根目录，与 embed.go 中的嵌入路径一致）
const (
	DefaultEnemyStatsPath = "data/enemy_stats.yaml"
	DefaultScoringPath    = "data/scoring.yaml"
	DefaultAITuningPath   = "data/ai_tuning.yaml"
	DefaultArenaPath      = "data/arena.yaml"
)

// GameConfig 一局游戏所需的全部配置
//
// 由配置加载器在启动时构建一次，然后显式传给 game.Session，
// 不通过全局单例访问。
type GameConfig struct {
	EnemyStats *EnemyStatsConfig
	Scoring    *ScoringConfig
	AITuning   *AITuningConfig
	Arena      *ArenaConfig
}

// LoadGameConfig 从目录加载全部配置
//
// 参数：
//
//	dir - 配置根目录（通常为 "."，即包含 data/ 的目录）
//
// 返回：
//
//	*GameConfig - 配置集合
//	error - 敌人属性缺失或任何文件解析失败时返回错误
//
// scoring/ai_tuning/arena 三个文件是可选的，缺失时使用默认值；
// enemy_stats 是必需的（没有敌人类型无法生成波次）。
func LoadGameConfig(dir string) (*GameConfig, error) {
	enemyStats, err := LoadEnemyStats(filepath.Join(dir, DefaultEnemyStatsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load enemy stats: %w", err)
	}

	cfg := &GameConfig{
		EnemyStats: enemyStats,
		Scoring:    DefaultScoringConfig(),
		AITuning:   DefaultAITuning(),
		Arena:      DefaultArenaConfig(),
	}

	scoring, err := LoadScoringConfig(filepath.Join(dir, DefaultScoringPath))
	switch {
	case err == nil:
		cfg.Scoring = scoring
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Config] %s not found, using default scoring", DefaultScoringPath)
	default:
		return nil, fmt.Errorf("failed to load scoring config: %w", err)
	}

	tuning, err := LoadAITuning(filepath.Join(dir, DefaultAITuningPath))
	switch {
	case err == nil:
		cfg.AITuning = tuning
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Config] %s not found, using default AI tuning", DefaultAITuningPath)
	default:
		return nil, fmt.Errorf("failed to load AI tuning: %w", err)
	}

	arena, err := LoadArenaConfig(filepath.Join(dir, DefaultArenaPath))
	switch {
	case err == nil:
		cfg.Arena = arena
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Config] %s not found, using default arena", DefaultArenaPath)
	default:
		return nil, fmt.Errorf("failed to load arena config: %w", err)
	}

	log.Printf("[Config] Loaded %d enemy types, arena %.0fx%.0f", len(cfg.EnemyStats.Enemies), cfg.Arena.Width, cfg.Arena.Height)
	return cfg, nil
}

// DefaultGameConfig 返回只包含默认值的配置（敌人属性由调用方提供）
func DefaultGameConfig(enemyStats *EnemyStatsConfig) *GameConfig {
	return &GameConfig{
		EnemyStats: enemyStats,
		Scoring:    DefaultScoringConfig(),
		AITuning:   DefaultAITuning(),
		Arena:      DefaultArenaConfig(),
	}
}
