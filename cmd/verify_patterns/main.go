// verify_patterns 以 YAML 输出阵型生成的出生点，用于检查阵型参数
//
// 用法：
//
//	go run ./cmd/verify_patterns -pattern spiral -count 12
//	go run ./cmd/verify_patterns -pattern all -seed 7
//	go run ./cmd/verify_patterns -wave 10 -waves 20   # 模拟选择器连续选择
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/spawn"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

var (
	pattern   = flag.String("pattern", "all", "阵型名称（linear/sine/spiral/ambush/pincer/screen_clear/all）")
	count     = flag.Int("count", 8, "敌人数量")
	seed      = flag.Int64("seed", 1, "随机种子")
	enemyList = flag.String("types", "rifter", "敌人类型列表（逗号分隔）")
	arenaPath = flag.String("arena", config.DefaultArenaPath, "战场配置文件（不存在时使用默认值）")
	wave      = flag.Int("wave", 0, "大于 0 时改为输出选择器从该波开始的阵型序列")
	waves     = flag.Int("waves", 10, "与 -wave 配合：输出的波次数")
)

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type descriptorDoc struct {
	Position  point  `yaml:"position"`
	Velocity  point  `yaml:"velocity"`
	Delay     int    `yaml:"delay"`
	EnemyType string `yaml:"enemyType"`
}

type patternDoc struct {
	Pattern     types.PatternName `yaml:"pattern"`
	Count       int               `yaml:"count"`
	Descriptors []descriptorDoc   `yaml:"descriptors"`
}

type selectionDoc struct {
	Wave       int               `yaml:"wave"`
	Pattern    types.PatternName `yaml:"pattern"`
	Candidates []string          `yaml:"candidates"`
}

func main() {
	flag.Parse()

	arena, err := config.LoadArenaConfig(*arenaPath)
	if err != nil {
		log.Printf("Using default arena: %v", err)
		arena = config.DefaultArenaConfig()
	}
	selector := spawn.NewSelector(arena.Bounds(), utils.NewPRNG(*seed))

	var out interface{}
	if *wave > 0 {
		out = selectionSequence(selector, arena, *wave, *waves)
	} else {
		docs, err := generatePatterns(selector, *pattern, *count, strings.Split(*enemyList, ","))
		if err != nil {
			log.Fatalf("Failed to generate: %v", err)
		}
		out = docs
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode YAML: %v", err)
	}
}

// generatePatterns 生成一个或全部阵型的出生点
func generatePatterns(selector *spawn.Selector, name string, n int, enemyTypes []string) ([]patternDoc, error) {
	patterns := types.AllPatterns
	if name != "all" {
		p := types.PatternName(name)
		if !p.IsValid() {
			return nil, fmt.Errorf("unknown pattern %q: %w", name, types.ErrInvalidArgument)
		}
		patterns = []types.PatternName{p}
	}

	docs := make([]patternDoc, 0, len(patterns))
	for _, p := range patterns {
		descriptors, err := selector.GenerateWave(p, n, enemyTypes)
		if err != nil {
			return nil, err
		}
		doc := patternDoc{Pattern: p, Count: len(descriptors)}
		for _, d := range descriptors {
			doc.Descriptors = append(doc.Descriptors, descriptorDoc{
				Position:  point{X: d.Position.X, Y: d.Position.Y},
				Velocity:  point{X: d.Velocity.X, Y: d.Velocity.Y},
				Delay:     d.ActivationDelay,
				EnemyType: d.EnemyType,
			})
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// selectionSequence 连续调用选择器，输出每波的阵型和候选集
func selectionSequence(selector *spawn.Selector, arena *config.ArenaConfig, from, n int) []selectionDoc {
	docs := make([]selectionDoc, 0, n)
	for w := from; w < from+n; w++ {
		stage := (w-1)/arena.WavesPerStage + 1
		var candidates []string
		for _, c := range spawn.Candidates(w) {
			candidates = append(candidates, string(c))
		}
		docs = append(docs, selectionDoc{
			Wave:       w,
			Pattern:    selector.Select(w, stage),
			Candidates: candidates,
		})
	}
	return docs
}
