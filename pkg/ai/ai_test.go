package ai

import (
	"math"
	"testing"

	"github.com/gonewx/abyssal/pkg/config"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

const frame = 1.0 / 60.0

var testBounds = utils.Bounds{Width: 800, Height: 600}

var _ SpawnSource = (*SpawnerAI)(nil)

func input(pos, player utils.Vec2) Input {
	return Input{Position: pos, Speed: 3, Player: player, DeltaTime: frame}
}

func TestBasicAI(t *testing.T) {
	tuning := config.DefaultAITuning().Basic
	b := NewBasicAI(tuning, utils.NewPRNG(1))

	tests := []struct {
		name     string
		pos      utils.Vec2
		player   utils.Vec2
		wantFire bool
	}{
		{"玩家在下方且对齐", utils.V(400, 100), utils.V(420, 500), true},
		{"玩家在下方但横向太远", utils.V(400, 100), utils.V(700, 500), false},
		{"玩家在上方", utils.V(400, 300), utils.V(400, 100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := b.Update(input(tt.pos, tt.player))
			if d.Fire != tt.wantFire {
				t.Errorf("fire = %v, want %v", d.Fire, tt.wantFire)
			}
			if d.Velocity.Y != 3*tuning.AdvanceFactor {
				t.Errorf("vy = %v, want %v", d.Velocity.Y, 3*tuning.AdvanceFactor)
			}
			if math.Abs(d.Velocity.X) > 3*tuning.MaxLateralFactor+1e-9 {
				t.Errorf("|vx| = %v exceeds cap", d.Velocity.X)
			}
		})
	}

	t.Run("无噪声时朝玩家横向移动", func(t *testing.T) {
		quiet := tuning
		quiet.AimNoise = 0
		b := NewBasicAI(quiet, utils.NewPRNG(2))
		if d := b.Update(input(utils.V(400, 100), utils.V(500, 500))); d.Velocity.X <= 0 {
			t.Errorf("vx = %v, want positive", d.Velocity.X)
		}
		if d := b.Update(input(utils.V(400, 100), utils.V(300, 500))); d.Velocity.X >= 0 {
			t.Errorf("vx = %v, want negative", d.Velocity.X)
		}
	})

	if b.FireRateModifier() != 1.0 || b.Variant() != types.BehaviorBasic {
		t.Error("unexpected basic modifier or variant")
	}
}

// driveToDive 驱动自杀机进入俯冲阶段
func driveToDive(t *testing.T, k *KamikazeAI, player utils.Vec2) {
	t.Helper()
	pos := utils.V(400, 0)
	for i := 0; i < 1000 && k.Phase() != KamikazeDive; i++ {
		d := k.Update(input(pos, player))
		pos = pos.Add(d.Velocity)
	}
	if k.Phase() != KamikazeDive {
		t.Fatalf("kamikaze never reached dive, phase=%s", k.Phase())
	}
}

func TestKamikazePhases(t *testing.T) {
	tuning := config.DefaultAITuning().Kamikaze
	k := NewKamikazeAI(tuning)

	if k.Phase() != KamikazeApproach {
		t.Fatalf("initial phase = %s, want approach", k.Phase())
	}

	d := k.Update(input(utils.V(400, 50), utils.V(400, 500)))
	if k.Phase() != KamikazeApproach || d.Fire {
		t.Errorf("above threshold: phase=%s fire=%v", k.Phase(), d.Fire)
	}

	k.Update(input(utils.V(400, 160), utils.V(500, 500)))
	if k.Phase() != KamikazeLockOn {
		t.Fatalf("past threshold: phase = %s, want lock_on", k.Phase())
	}

	d = k.Update(input(utils.V(400, 160), utils.V(500, 500)))
	if k.Phase() != KamikazeDive {
		t.Fatalf("after lock tick: phase = %s, want dive", k.Phase())
	}
	if k.LockPoint() != utils.V(500, 500) {
		t.Errorf("lock point = %+v, want (500,500)", k.LockPoint())
	}
	want := utils.V(100, 340).Normalize()
	got := d.Velocity.Normalize()
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("dive heading = %+v, want %+v", got, want)
	}
}

// TestKamikazeOneWay 进入俯冲后无论输入如何都不会回到前两个阶段
func TestKamikazeOneWay(t *testing.T) {
	k := NewKamikazeAI(config.DefaultAITuning().Kamikaze)
	driveToDive(t, k, utils.V(400, 550))

	rng := utils.NewPRNG(3)
	prevSpeed := 0.0
	for i := 0; i < 1000; i++ {
		in := Input{
			Position:  utils.V(rng.Float64()*800, rng.Float64()*600-100),
			Speed:     3,
			Player:    utils.V(rng.Float64()*800, rng.Float64()*600),
			DeltaTime: frame,
		}
		if i%7 == 0 {
			in.Threats = []Threat{{Position: in.Position, Velocity: utils.V(0, -10)}}
		}
		d := k.Update(in)
		if k.Phase() != KamikazeDive {
			t.Fatalf("tick %d: phase regressed to %s", i, k.Phase())
		}
		if d.Fire {
			t.Fatalf("tick %d: kamikaze must never fire", i)
		}
		speed := d.Velocity.Len()
		if speed < prevSpeed-1e-9 {
			t.Fatalf("tick %d: dive speed decreased %v -> %v", i, prevSpeed, speed)
		}
		if speed > 3*config.DefaultAITuning().Kamikaze.DiveMaxFactor+1e-9 {
			t.Fatalf("tick %d: dive speed %v exceeds cap", i, speed)
		}
		prevSpeed = speed
	}
	if k.FireRateModifier() != 0 {
		t.Error("kamikaze fire-rate modifier should be 0")
	}
}

func TestKamikazeLockVersusHoming(t *testing.T) {
	tests := []struct {
		name       string
		homing     bool
		wantLocked bool
	}{
		{"锁定点", false, true},
		{"追踪", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := config.DefaultAITuning().Kamikaze
			tuning.Homing = tt.homing
			k := NewKamikazeAI(tuning)
			driveToDive(t, k, utils.V(400, 550))

			// 锁定后玩家移动到左侧
			pos := utils.V(400, 200)
			d := k.Update(input(pos, utils.V(0, 200)))
			locked := d.Velocity.X == 0 || math.Abs(d.Velocity.X) < math.Abs(d.Velocity.Y)
			if locked != tt.wantLocked {
				t.Errorf("velocity %+v: locked=%v, want %v", d.Velocity, locked, tt.wantLocked)
			}
		})
	}
}

func TestWeaverAI(t *testing.T) {
	tuning := config.DefaultAITuning().Weaver
	w := NewWeaverAI(tuning, testBounds, utils.NewPRNG(4))
	pos := utils.V(400, 200)

	t.Run("无威胁时摆动", func(t *testing.T) {
		d := w.Update(input(pos, utils.V(700, 500)))
		if w.Dodging() {
			t.Error("should not dodge without threats")
		}
		if d.Velocity.Y != 3*tuning.DriftFactor {
			t.Errorf("vy = %v, want %v", d.Velocity.Y, 3*tuning.DriftFactor)
		}
	})

	t.Run("下方来袭子弹触发闪避", func(t *testing.T) {
		in := input(pos, utils.V(400, 500))
		in.Threats = []Threat{{Position: utils.V(420, 260), Velocity: utils.V(0, -10)}}
		d := w.Update(in)
		if !w.Dodging() || d.Fire {
			t.Fatalf("dodging=%v fire=%v, want dodging without fire", w.Dodging(), d.Fire)
		}
		if d.Velocity.X != -3*tuning.DodgeFactor {
			t.Errorf("vx = %v, want %v (away from the threat)", d.Velocity.X, -3*tuning.DodgeFactor)
		}
	})

	t.Run("远离的子弹不触发闪避", func(t *testing.T) {
		in := input(pos, utils.V(700, 500))
		in.Threats = []Threat{{Position: utils.V(420, 260), Velocity: utils.V(0, 10)}}
		w.Update(in)
		if w.Dodging() {
			t.Error("receding threat should not trigger a dodge")
		}
	})

	t.Run("半径外的子弹不触发闪避", func(t *testing.T) {
		in := input(pos, utils.V(700, 500))
		in.Threats = []Threat{{Position: utils.V(400, 400), Velocity: utils.V(0, -10)}}
		w.Update(in)
		if w.Dodging() {
			t.Error("distant threat should not trigger a dodge")
		}
	})

	t.Run("对齐时开火", func(t *testing.T) {
		d := w.Update(input(pos, utils.V(410, 500)))
		if !d.Fire {
			t.Error("aligned weaver should fire")
		}
	})
}

func TestSniperAI(t *testing.T) {
	tuning := config.DefaultAITuning().Sniper

	t.Run("距离控制", func(t *testing.T) {
		s := NewSniperAI(tuning, testBounds, utils.NewPRNG(5))
		if d := s.Update(input(utils.V(400, 100), utils.V(400, 600))); d.Velocity.Y <= 0 {
			t.Errorf("too far: vy = %v, want approach", d.Velocity.Y)
		}
		if d := s.Update(input(utils.V(400, 100), utils.V(400, 200))); d.Velocity.Y >= 0 {
			t.Errorf("too close: vy = %v, want retreat", d.Velocity.Y)
		}
		d := s.Update(input(utils.V(400, 100), utils.V(400, 400)))
		if d.Velocity.Y != 0 || math.Abs(d.Velocity.X) != 3*tuning.StrafeFactor {
			t.Errorf("in band: velocity %+v, want pure strafe", d.Velocity)
		}
	})

	t.Run("边缘保护", func(t *testing.T) {
		s := NewSniperAI(tuning, testBounds, utils.NewPRNG(6))
		for i := 0; i < 10; i++ {
			if d := s.Update(input(utils.V(10, 100), utils.V(10, 400))); d.Velocity.X < 0 {
				t.Fatalf("near left edge vx = %v, want >= 0", d.Velocity.X)
			}
			if d := s.Update(input(utils.V(790, 100), utils.V(790, 400))); d.Velocity.X > 0 {
				t.Fatalf("near right edge vx = %v, want <= 0", d.Velocity.X)
			}
		}
	})

	t.Run("瞄准蓄力后开火一次", func(t *testing.T) {
		s := NewSniperAI(tuning, testBounds, utils.NewPRNG(7))
		in := input(utils.V(400, 100), utils.V(400, 400))
		in.DeltaTime = 0.25

		fires := []int{}
		for i := 0; i < 6; i++ {
			if s.Update(in).Fire {
				fires = append(fires, i)
			}
			if i == 0 && !s.Aiming() {
				t.Fatal("aligned sniper should start aiming")
			}
		}
		// 第0帧开始瞄准，第1~4帧累计 1.0 秒，第4帧开火，第5帧重新开始瞄准
		if len(fires) != 1 || fires[0] != 4 {
			t.Errorf("fired on ticks %v, want [4]", fires)
		}
	})

	t.Run("未对齐不瞄准", func(t *testing.T) {
		s := NewSniperAI(tuning, testBounds, utils.NewPRNG(8))
		s.Update(input(utils.V(100, 100), utils.V(500, 400)))
		if s.Aiming() || s.AimProgress() != 0 {
			t.Error("misaligned sniper should not aim")
		}
	})

	if NewSniperAI(tuning, testBounds, utils.NewPRNG(9)).FireRateModifier() >= 1 {
		t.Error("sniper fire-rate modifier should be < 1")
	}
}

func TestSpawnerAI(t *testing.T) {
	tuning := config.DefaultAITuning().Spawner

	t.Run("下降到悬停高度", func(t *testing.T) {
		s := NewSpawnerAI(tuning, testBounds, utils.NewPRNG(10))
		if d := s.Update(input(utils.V(400, 0), utils.V(400, 500))); d.Velocity.Y <= 0 {
			t.Errorf("above station: vy = %v, want descend", d.Velocity.Y)
		}
		if d := s.Update(input(utils.V(400, tuning.StationY), utils.V(400, 500))); d.Velocity.Y != 0 {
			t.Errorf("at station: vy = %v, want 0", d.Velocity.Y)
		}
	})

	t.Run("按冷却释放子机且不超过上限", func(t *testing.T) {
		s := NewSpawnerAI(tuning, testBounds, utils.NewPRNG(11))
		in := input(utils.V(400, tuning.StationY), utils.V(400, 500))
		in.DeltaTime = 1.0

		for i := 0; i < 3; i++ {
			s.Update(in)
		}
		if s.PendingSpawns() != 0 {
			t.Fatalf("spawned before cooldown: %d", s.PendingSpawns())
		}
		s.Update(in)
		if s.PendingSpawns() != 1 {
			t.Fatalf("expected 1 spawn after 4s, got %d", s.PendingSpawns())
		}

		for i := 0; i < 100; i++ {
			s.Update(in)
		}
		drained := s.DrainSpawnQueue()
		if len(drained) != tuning.MaxSpawns || s.SpawnedCount() != tuning.MaxSpawns {
			t.Errorf("drained %d / spawned %d, want %d", len(drained), s.SpawnedCount(), tuning.MaxSpawns)
		}
		for _, req := range drained {
			if req.EnemyType != tuning.ChildType {
				t.Errorf("child type = %q, want %q", req.EnemyType, tuning.ChildType)
			}
		}
		if s.DrainSpawnQueue() != nil {
			t.Error("queue should be empty after draining")
		}
	})

	t.Run("屏幕外不释放", func(t *testing.T) {
		s := NewSpawnerAI(tuning, testBounds, utils.NewPRNG(12))
		in := input(utils.V(400, -30), utils.V(400, 500))
		in.DeltaTime = 10
		s.Update(in)
		if s.PendingSpawns() != 0 {
			t.Error("spawner above the screen should not release children")
		}
	})

	t.Run("开火概率与释放无关", func(t *testing.T) {
		always := tuning
		always.FireChance = 1
		never := tuning
		never.FireChance = 0
		a := NewSpawnerAI(always, testBounds, utils.NewPRNG(13))
		n := NewSpawnerAI(never, testBounds, utils.NewPRNG(14))
		for i := 0; i < 50; i++ {
			in := input(utils.V(400, 90), utils.V(400, 500))
			if !a.Update(in).Fire || n.Update(in).Fire {
				t.Fatal("fire decision should follow FireChance only")
			}
		}
	})
}

func TestTankAI(t *testing.T) {
	tuning := config.DefaultAITuning().Tank
	tank := NewTankAI(tuning, testBounds)

	tests := []struct {
		name     string
		pos      utils.Vec2
		player   utils.Vec2
		wantFire bool
	}{
		{"玩家下方且越过开火线", utils.V(400, 100), utils.V(200, 500), true},
		{"未越过开火线", utils.V(400, 30), utils.V(200, 500), false},
		{"已在玩家下方", utils.V(400, 550), utils.V(200, 500), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tank.Update(input(tt.pos, tt.player))
			if d.Fire != tt.wantFire {
				t.Errorf("fire = %v, want %v", d.Fire, tt.wantFire)
			}
			if d.Velocity.Y != 3*tuning.AdvanceFactor {
				t.Errorf("vy = %v, want %v", d.Velocity.Y, 3*tuning.AdvanceFactor)
			}
		})
	}

	if d := tank.Update(input(utils.V(10, 100), utils.V(0, 500))); d.Velocity.X < 0 {
		t.Errorf("near left edge vx = %v, want >= 0", d.Velocity.X)
	}
	if tank.FireRateModifier() <= 1 {
		t.Error("tank fire-rate modifier should be > 1")
	}
}

func TestResolver(t *testing.T) {
	mapping := map[string]types.BehaviorVariant{
		"claw":      types.BehaviorKamikaze,
		"stiletto":  types.BehaviorWeaver,
		"cormorant": types.BehaviorSniper,
		"dominix":   types.BehaviorSpawner,
		"abaddon":   types.BehaviorTank,
	}
	r := NewResolver(mapping, nil, testBounds)

	tests := []struct {
		enemyType string
		want      types.BehaviorVariant
	}{
		{"claw", types.BehaviorKamikaze},
		{"stiletto", types.BehaviorWeaver},
		{"cormorant", types.BehaviorSniper},
		{"dominix", types.BehaviorSpawner},
		{"abaddon", types.BehaviorTank},
		{"unknown_ship", types.BehaviorBasic},
		{"", types.BehaviorBasic},
	}
	for _, tt := range tests {
		t.Run(tt.enemyType, func(t *testing.T) {
			if got := r.Variant(tt.enemyType); got != tt.want {
				t.Errorf("Variant(%q) = %s, want %s", tt.enemyType, got, tt.want)
			}
			b := r.NewBehavior(tt.enemyType, utils.NewPRNG(15))
			if b.Variant() != tt.want {
				t.Errorf("NewBehavior(%q).Variant() = %s, want %s", tt.enemyType, b.Variant(), tt.want)
			}
		})
	}

	// 修改原映射表不影响解析器
	mapping["claw"] = types.BehaviorTank
	if r.Variant("claw") != types.BehaviorKamikaze {
		t.Error("resolver should own a copy of the mapping")
	}

	// 每次创建独立实例
	if r.NewBehavior("claw", nil) == r.NewBehavior("claw", nil) {
		t.Error("each enemy should get its own behavior instance")
	}
}

// TestNilThreats 缺少威胁列表时所有变体都能正常更新
func TestNilThreats(t *testing.T) {
	for _, v := range types.AllBehaviors {
		b := New(v, config.DefaultAITuning(), testBounds, utils.NewPRNG(16))
		for i := 0; i < 120; i++ {
			d := b.Update(Input{Position: utils.V(400, float64(i)), Speed: 3, Player: utils.V(400, 500), DeltaTime: frame})
			if math.IsNaN(d.Velocity.X) || math.IsNaN(d.Velocity.Y) {
				t.Fatalf("%s produced NaN velocity", v)
			}
		}
	}
}
