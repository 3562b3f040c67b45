package systems

import (
	"testing"

	"github.com/gonewx/abyssal/pkg/components"
	"github.com/gonewx/abyssal/pkg/ecs"
	"github.com/gonewx/abyssal/pkg/event"
	"github.com/gonewx/abyssal/pkg/spawn"
	"github.com/gonewx/abyssal/pkg/types"
	"github.com/gonewx/abyssal/pkg/utils"
)

func newTestWaveSystem(w *testWorld, d *event.Dispatcher) *WaveSpawnSystem {
	selector := spawn.NewSelector(w.arena.Bounds(), utils.NewPRNG(2))
	return NewWaveSpawnSystem(w.em, selector, w.factory, w.stats, w.arena, d)
}

func TestWaveSpawnFirstWave(t *testing.T) {
	w := newTestWorld()
	d := event.NewDispatcher()
	var started []event.WaveData
	d.Subscribe(event.WaveStarted, event.ListenerFunc(func(e event.Event) {
		started = append(started, e.Data.(event.WaveData))
	}))

	s := newTestWaveSystem(w, d)
	s.Update(frame)

	if s.Wave() != 1 || s.Stage() != 1 || !s.WaveInProgress() {
		t.Fatalf("after first update: wave=%d stage=%d inProgress=%v", s.Wave(), s.Stage(), s.WaveInProgress())
	}
	if s.Pattern() != types.PatternLinear {
		t.Errorf("wave 1 pattern = %s, want linear", s.Pattern())
	}
	if len(started) != 1 || started[0].EnemyCount != w.arena.EnemyCountForWave(1) {
		t.Errorf("unexpected WaveStarted events: %+v", started)
	}

	// 第一个出生点延迟为 0，在同一帧内激活
	enemies := ecs.GetEntitiesWith1[*components.EnemyComponent](w.em)
	if len(enemies) != 1 {
		t.Errorf("expected 1 enemy activated on the first frame, got %d", len(enemies))
	}

	// 足够多的帧之后全部激活，且只使用第1关可出现的类型
	for i := 0; i < 200; i++ {
		s.Update(frame)
		w.em.RemoveMarkedEntities()
	}
	if pending := ecs.GetEntitiesWith1[*components.PendingSpawnComponent](w.em); len(pending) != 0 {
		t.Errorf("%d spawns still pending", len(pending))
	}
	enemies = ecs.GetEntitiesWith1[*components.EnemyComponent](w.em)
	if len(enemies) != w.arena.EnemyCountForWave(1) {
		t.Errorf("expected %d enemies, got %d", w.arena.EnemyCountForWave(1), len(enemies))
	}
	for _, id := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](w.em, id)
		if enemy.EnemyType != "rifter" && enemy.EnemyType != "claw" {
			t.Errorf("enemy type %q not eligible for stage 1", enemy.EnemyType)
		}
	}
}

func TestWaveSpawnClearAndAdvance(t *testing.T) {
	w := newTestWorld()
	w.arena.WavesPerStage = 2
	w.arena.WaveIntermission = 0.5

	d := event.NewDispatcher()
	cleared, stages := 0, 0
	d.Subscribe(event.WaveCleared, event.ListenerFunc(func(event.Event) { cleared++ }))
	d.Subscribe(event.StageAdvanced, event.ListenerFunc(func(event.Event) { stages++ }))

	s := newTestWaveSystem(w, d)

	// 每帧清除全部敌机，模拟玩家瞬间清场
	killAll := func() {
		for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](w.em) {
			w.em.DestroyEntity(id)
		}
		w.em.RemoveMarkedEntities()
	}

	for i := 0; i < 3000 && s.Wave() < 3; i++ {
		s.Update(frame)
		killAll()
	}

	if s.Wave() != 3 {
		t.Fatalf("expected to reach wave 3, got %d", s.Wave())
	}
	if s.Stage() != 2 || stages != 1 {
		t.Errorf("wave 3 with 2 waves per stage: stage=%d advances=%d, want 2/1", s.Stage(), stages)
	}
	if cleared != 2 {
		t.Errorf("expected 2 WaveCleared events, got %d", cleared)
	}
}

func TestWaveSpawnIntermission(t *testing.T) {
	w := newTestWorld()
	w.arena.WaveIntermission = 1.0
	s := newTestWaveSystem(w, nil)

	s.Update(frame)
	for i := 0; i < 100; i++ {
		for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](w.em) {
			w.em.DestroyEntity(id)
		}
		w.em.RemoveMarkedEntities()
		s.Update(frame)
		if !s.WaveInProgress() {
			break
		}
	}
	if s.WaveInProgress() {
		t.Fatal("wave 1 should be cleared")
	}

	// 间隔内不开始新波次
	for i := 0; i < 50; i++ {
		s.Update(frame)
	}
	if s.Wave() != 1 {
		t.Errorf("next wave started during intermission: wave=%d", s.Wave())
	}
	for i := 0; i < 20; i++ {
		s.Update(frame)
	}
	if s.Wave() != 2 {
		t.Errorf("wave 2 should start after the intermission, wave=%d", s.Wave())
	}
}
