package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/embedded"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/game"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

const tickRate = 60

var (
	seed    = flag.Int64("seed", 0, "随机种子（0 使用当前时间）")
	workers = flag.Int("workers", runtime.NumCPU(), "AI 决策并行 worker 数")
	dataDir = flag.String("data", ".", "配置根目录（包含 data/）")
	debug   = flag.Bool("debug", false, "显示碰撞半径与实体数量")
)

// 各行为变体的显示颜色
var variantColors = map[types.BehaviorVariant]color.RGBA{
	types.BehaviorBasic:    {R: 200, G: 200, B: 200, A: 255},
	types.BehaviorKamikaze: {R: 255, G: 80, B: 60, A: 255},
	types.BehaviorWeaver:   {R: 80, G: 220, B: 120, A: 255},
	types.BehaviorSniper:   {R: 240, G: 220, B: 60, A: 255},
	types.BehaviorSpawner:  {R: 180, G: 90, B: 230, A: 255},
	types.BehaviorTank:     {R: 120, G: 140, B: 255, A: 255},
}

var (
	playerColor      = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	playerShotColor  = color.RGBA{R: 200, G: 255, B: 255, A: 255}
	enemyShotColor   = color.RGBA{R: 255, G: 150, B: 60, A: 255}
	backgroundColor  = color.RGBA{R: 8, G: 10, B: 24, A: 255}
	invulnerableTint = color.RGBA{R: 90, G: 200, B: 255, A: 90}
)

// keyboardInput 键盘输入：方向键/WASD 移动，空格或 Z 开火
type keyboardInput struct{}

func (keyboardInput) Move() utils.Vec2 {
	var v utils.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		v.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		v.Y++
	}
	return v
}

func (keyboardInput) Fire() bool {
	return ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyZ)
}

// Game 实现 ebiten.Game，按固定帧率推进 game.Session 并绘制调试图形
type Game struct {
	session   *game.Session
	showDebug bool

	// 最近一次击杀的提示
	lastKill      event.KillScoredData
	lastKillTimer float64
}

// NewGame 创建游戏并订阅计分事件
func NewGame(session *game.Session, showDebug bool) *Game {
	g := &Game{session: session, showDebug: showDebug}
	session.Dispatcher().Subscribe(event.KillScored, event.ListenerFunc(func(e event.Event) {
		if data, ok := e.Data.(event.KillScoredData); ok {
			g.lastKill = data
			g.lastKillTimer = 1.0
		}
	}))
	return g
}

// Update 每帧推进一次对局
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.session.Restart(); err != nil {
			log.Printf("[Main] Warning: %v", err)
		}
		g.lastKillTimer = 0
	}

	dt := 1.0 / float64(tickRate)
	g.session.Step(dt)
	if g.lastKillTimer > 0 {
		g.lastKillTimer -= dt
	}
	return nil
}

// Draw 绘制实体与 HUD
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	em := g.session.EntityManager()

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		clr := enemyShotColor
		if proj.Owner == components.OwnerPlayer {
			clr = playerShotColor
		}
		vector.DrawFilledRect(screen, float32(pos.X-2), float32(pos.Y-5), 4, 10, clr, false)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		radius := float32(16)
		if col, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
			radius = float32(col.Radius)
		}
		clr := variantColors[types.BehaviorBasic]
		if b, ok := ecs.GetComponent[*components.BehaviorComponent](em, id); ok && b.Behavior != nil {
			clr = variantColors[b.Behavior.Variant()]
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), radius, clr, true)
		if g.showDebug {
			if enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, id); ok {
				ebitenutil.DebugPrintAt(screen, enemy.EnemyType, int(pos.X)-20, int(pos.Y)+int(radius))
			}
		}
	}

	g.drawPlayer(screen, em)
	g.drawHUD(screen, em)
}

func (g *Game) drawPlayer(screen *ebiten.Image, em *ecs.EntityManager) {
	id := g.session.PlayerID()
	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !ok || player.Destroyed {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)

	x, y, r := float32(pos.X), float32(pos.Y), float32(col.Radius)
	vector.StrokeLine(screen, x, y-r, x-r, y+r, 2, playerColor, true)
	vector.StrokeLine(screen, x, y-r, x+r, y+r, 2, playerColor, true)
	vector.StrokeLine(screen, x-r, y+r, x+r, y+r, 2, playerColor, true)
	if player.Invulnerable() {
		vector.DrawFilledCircle(screen, x, y, r*1.5, invulnerableTint, true)
	}
	if g.showDebug {
		vector.StrokeCircle(screen, x, y, r, 1, color.White, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, em *ecs.EntityManager) {
	s := g.session
	stats := s.Scorer().Stats()

	health := 0
	if h, ok := ecs.GetComponent[*components.HealthComponent](em, s.PlayerID()); ok {
		health = h.CurrentHealth
	}

	hud := fmt.Sprintf("SCORE %d   HI %d\nSTAGE %d  WAVE %d  (%s)\nHP %d   COMBO x%d  bonus %.1f  %.1fs",
		stats.SessionScore, stats.LifetimeScore, s.Stage(), s.Wave(), s.Pattern(),
		health, s.Scorer().Streak(), s.Scorer().Multiplier(), s.Scorer().StreakTimer())
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)

	if g.lastKillTimer > 0 {
		msg := fmt.Sprintf("%s +%d", g.lastKill.Tier, g.lastKill.FinalScore)
		ebitenutil.DebugPrintAt(screen, msg, 8, 60)
	}

	if g.showDebug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("entities %d  tps %.0f  tick %d",
			em.EntityCount(), ebiten.ActualTPS(), s.Tick()), 8, screen.Bounds().Dy()-20)
	}

	if s.GameOver() {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R to restart", w/2-90, h/2)
	}
}

// Layout 返回逻辑屏幕尺寸（与战场尺寸一致）
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	arena := g.session.Config().Arena
	return int(arena.Width), int(arena.Height)
}

// openStatsStore 打开跨局统计存储，失败时降级为仅内存
func openStatsStore() *game.StatsStore {
	manager, err := gdata.Open(gdata.Config{AppName: "abyssal"})
	if err != nil {
		log.Printf("[Main] Warning: persistent storage unavailable: %v (stats will not be saved)", err)
		return game.NewStatsStore(nil)
	}
	return game.NewStatsStore(manager)
}

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg, err := config.LoadGameConfig(*dataDir)
	if err != nil {
		log.Fatalf("[Main] Failed to load config: %v", err)
	}

	store := openStatsStore()
	session, err := game.NewSession(cfg, game.SessionOptions{
		Seed:    *seed,
		Workers: *workers,
		Input:   keyboardInput{},
		Store:   store,
	})
	if err != nil {
		log.Fatalf("[Main] Failed to create session: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.Arena.Width), int(cfg.Arena.Height))
	ebiten.SetWindowTitle("Abyssal")
	ebiten.SetTPS(tickRate)

	runErr := ebiten.RunGame(NewGame(session, *debug))
	if err := session.End(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
