// simulate 无窗口运行一局游戏，输出波次与计分摘要
//
// 用法：
//
//	go run ./cmd/simulate -seed 42 -ticks 36000
//	go run ./cmd/simulate -seed 42 -workers 8 -verbose
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/game"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

var (
	seed    = flag.Int64("seed", 1, "随机种子")
	ticks   = flag.Int("ticks", 60*60*5, "最多运行的帧数（60 帧 = 1 秒）")
	workers = flag.Int("workers", 1, "AI 决策并行 worker 数")
	dataDir = flag.String("data", ".", "配置根目录（包含 data/）")
	persist = flag.Bool("persist", false, "把本局统计写入持久化存储")
	verbose = flag.Bool("verbose", false, "输出每次击杀与受伤")
)

// scriptedPilot 脚本化玩家：持续开火，左右巡航，偶尔上下移动
type scriptedPilot struct {
	tick int
}

func (p *scriptedPilot) Move() utils.Vec2 {
	p.tick++
	t := float64(p.tick)
	return utils.V(math.Sin(t/50), 0.4*math.Sin(t/170))
}

func (p *scriptedPilot) Fire() bool {
	return true
}

// waveLog 单波记录
type waveLog struct {
	wave    int
	pattern types.PatternName
	enemies int
	start   int
	end     int
}

func main() {
	flag.Parse()

	cfg, err := config.LoadGameConfig(*dataDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store *game.StatsStore
	if *persist {
		manager, err := gdata.Open(gdata.Config{AppName: "abyssal"})
		if err != nil {
			log.Printf("Warning: persistent storage unavailable: %v", err)
		}
		store = game.NewStatsStore(manager)
	}

	session, err := game.NewSession(cfg, game.SessionOptions{
		Seed:    *seed,
		Workers: *workers,
		Input:   &scriptedPilot{},
		Store:   store,
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	var waves []*waveLog
	d := session.Dispatcher()
	d.Subscribe(event.WaveStarted, event.ListenerFunc(func(e event.Event) {
		data := e.Data.(event.WaveData)
		waves = append(waves, &waveLog{wave: data.Wave, pattern: data.Pattern, enemies: data.EnemyCount, start: session.Tick()})
	}))
	d.Subscribe(event.WaveCleared, event.ListenerFunc(func(e event.Event) {
		if len(waves) > 0 {
			waves[len(waves)-1].end = session.Tick()
		}
	}))
	if *verbose {
		d.Subscribe(event.KillScored, event.ListenerFunc(func(e event.Event) {
			data := e.Data.(event.KillScoredData)
			log.Printf("[Simulate] tick %d: %s kill at %.0fpx +%d (streak %d, total %d)",
				session.Tick(), data.Tier, data.Distance, data.FinalScore, data.Streak, data.TotalScore)
		}))
		d.Subscribe(event.ComboBroken, event.ListenerFunc(func(e event.Event) {
			data := e.Data.(event.ComboBrokenData)
			log.Printf("[Simulate] tick %d: combo %d broken (%s)", session.Tick(), data.Streak, data.Reason)
		}))
	}

	started := time.Now()
	dt := 1.0 / 60.0
	for i := 0; i < *ticks && !session.GameOver(); i++ {
		session.Step(dt)
	}
	elapsed := time.Since(started)

	if err := session.End(); err != nil {
		log.Printf("Warning: %v", err)
	}

	stats := session.Scorer().Stats()
	fmt.Printf("session   %s\n", stats.SessionID)
	fmt.Printf("seed      %d\n", *seed)
	fmt.Printf("ticks     %d (%.1fs game time, %v wall)\n", session.Tick(), float64(session.Tick())*dt, elapsed.Round(time.Millisecond))
	fmt.Printf("result    stage %d wave %d, game over: %v\n", session.Stage(), session.Wave(), session.GameOver())
	fmt.Printf("score     %d (lifetime %d)\n", stats.SessionScore, stats.LifetimeScore)
	fmt.Printf("kills     %d, best streak %d\n", stats.Kills, stats.BestStreak)
	for _, tier := range types.AllTiers {
		fmt.Printf("  %-9s %d\n", tier, stats.TierKills[tier])
	}

	fmt.Println("waves:")
	for _, w := range waves {
		duration := "in progress"
		if w.end > 0 {
			duration = fmt.Sprintf("%.1fs", float64(w.end-w.start)*dt)
		}
		fmt.Printf("  %3d %-13s enemies=%-3d %s\n", w.wave, w.pattern, w.enemies, duration)
	}

	if session.GameOver() {
		os.Exit(1)
	}
}
