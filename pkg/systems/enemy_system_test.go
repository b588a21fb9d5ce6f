package systems

import (
	"testing"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/types"
)

// runUntilFormation 推进到所有敌机进入编队，返回所用帧数
func runUntilFormation(t *testing.T, f *formationFixture, limit uint64) uint64 {
	t.Helper()
	for tick := uint64(0); tick < limit; tick++ {
		f.grid.UpdateGeometry(tick)
		if err := f.enemies.Update(tick); err != nil {
			t.Fatalf("tick %d: Update failed: %v", tick, err)
		}

		all := true
		for _, entity := range f.enemies.OrderedEnemies() {
			if f.enemyOf(entity).State != types.StateInFormation {
				all = false
				break
			}
		}
		if all {
			return tick
		}
	}
	t.Fatalf("enemies did not reach formation within %d ticks", limit)
	return 0
}

// TestEnemyLifecycle 敌机依次经历四个状态并停在编队格子上
func TestEnemyLifecycle(t *testing.T) {
	cfg := config.DefaultFormationConfig()
	cfg.Grid.Period = 450
	f := newFormationFixture(cfg, 11)
	entity := f.addEnemy(0, types.EnemyBee, types.EdgeBottom, types.LaneRight)

	seen := map[types.EnemyState]bool{}
	var tick uint64
	for tick = 0; tick < 5000; tick++ {
		f.grid.UpdateGeometry(tick)
		if err := f.enemies.Update(tick); err != nil {
			t.Fatalf("tick %d: Update failed: %v", tick, err)
		}
		enemy := f.enemyOf(entity)
		seen[enemy.State] = true
		if enemy.State == types.StateInFormation {
			break
		}
	}

	enemy := f.enemyOf(entity)
	if enemy.State != types.StateInFormation {
		t.Fatalf("state = %s, want in_formation", enemy.State)
	}
	for _, state := range []types.EnemyState{types.StateEntering, types.StateSlotPending, types.StateGliding} {
		if !seen[state] {
			t.Errorf("state %s was never observed", state)
		}
	}
	if enemy.SlotIndex < 30 || enemy.SlotIndex >= 50 {
		t.Errorf("bee slot = %d, want within [30, 50)", enemy.SlotIndex)
	}
	if state, _ := f.grid.SlotState(enemy.SlotIndex); state != components.SlotOccupied {
		t.Errorf("slot state = %v, want SlotOccupied", state)
	}

	// 入场结束点即滑行起点，位于画面内
	if enemy.SourceX < 0 || enemy.SourceX > config.ScreenWidth || enemy.SourceY < 0 || enemy.SourceY > config.ScreenHeight {
		t.Errorf("glide source (%.1f, %.1f) outside screen", enemy.SourceX, enemy.SourceY)
	}

	// 之后每帧都钉在格子的当前坐标上
	for next := tick + 1; next < tick+200; next++ {
		f.grid.UpdateGeometry(next)
		pos, err := f.enemies.UpdateEnemy(entity, next)
		if err != nil {
			t.Fatalf("UpdateEnemy failed: %v", err)
		}
		x, y := f.grid.SlotPosition(enemy.SlotCol, enemy.SlotRow)
		if pos.X != x || pos.Y != y {
			t.Fatalf("tick %d: position (%.2f, %.2f), want slot (%.2f, %.2f)", next, pos.X, pos.Y, x, y)
		}
	}
}

// TestEnemiesDistinctSlots 多架敌机分配到互不相同的格子
func TestEnemiesDistinctSlots(t *testing.T) {
	f := newFormationFixture(config.DefaultFormationConfig(), 5)
	lanes := []struct {
		edge types.EntryEdge
		lane types.Lane
	}{
		{types.EdgeBottom, types.LaneLeft},
		{types.EdgeBottom, types.LaneRight},
		{types.EdgeTop, types.LaneCenterLeft},
		{types.EdgeTop, types.LaneCenterRight},
	}
	for i := 0; i < 8; i++ {
		l := lanes[i%len(lanes)]
		f.addEnemy(i, types.EnemyBee, l.edge, l.lane)
	}

	runUntilFormation(t, f, 5000)

	slots := map[int]int{}
	for _, entity := range f.enemies.OrderedEnemies() {
		enemy := f.enemyOf(entity)
		if other, dup := slots[enemy.SlotIndex]; dup {
			t.Errorf("enemies %d and %d share slot %d", other, enemy.ID, enemy.SlotIndex)
		}
		slots[enemy.SlotIndex] = enemy.ID
	}
	if got := f.grid.CountSlots(0, config.FormationSize, components.SlotOccupied); got != 8 {
		t.Errorf("occupied slots = %d, want 8", got)
	}
}

// TestEnemyWaitsWhenExhausted 区域已满时原地等待，空出格子后继续
func TestEnemyWaitsWhenExhausted(t *testing.T) {
	f := newFormationFixture(config.DefaultFormationConfig(), 9)
	for i := 30; i < 50; i++ {
		if err := f.grid.Reserve(i); err != nil {
			t.Fatalf("Reserve(%d) failed: %v", i, err)
		}
	}

	entity := f.addEnemy(0, types.EnemyBee, types.EdgeBottom, types.LaneLeft)
	enemy := f.enemyOf(entity)
	enemy.State = types.StateSlotPending
	pos := f.positionOf(entity)
	pos.X, pos.Y = 250, 380

	for tick := uint64(0); tick < 10; tick++ {
		if err := f.enemies.Update(tick); err != nil {
			t.Fatalf("Update should not fail while waiting: %v", err)
		}
	}
	if enemy.State != types.StateSlotPending {
		t.Errorf("state = %s, want slot_pending", enemy.State)
	}
	if enemy.HasSlot() {
		t.Errorf("SlotIndex = %d, want none", enemy.SlotIndex)
	}
	if pos.X != 250 || pos.Y != 380 {
		t.Errorf("waiting enemy moved to (%.1f, %.1f)", pos.X, pos.Y)
	}

	_ = f.grid.Release(42)
	if err := f.enemies.Update(10); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if enemy.State != types.StateGliding {
		t.Errorf("state = %s, want gliding", enemy.State)
	}
	if enemy.SlotIndex != 42 || enemy.SlotCol != 2 || enemy.SlotRow != 4 {
		t.Errorf("slot = %d (%d, %d), want 42 (2, 4)", enemy.SlotIndex, enemy.SlotCol, enemy.SlotRow)
	}
	if enemy.SourceX != 250 || enemy.SourceY != 380 {
		t.Errorf("source = (%.1f, %.1f), want (250, 380)", enemy.SourceX, enemy.SourceY)
	}
}

// TestOrderedEnemies 按敌机编号排序，而非实体ID
func TestOrderedEnemies(t *testing.T) {
	f := newFormationFixture(config.DefaultFormationConfig(), 1)
	e5 := f.addEnemy(5, types.EnemyBee, types.EdgeBottom, types.LaneLeft)
	e1 := f.addEnemy(1, types.EnemyBee, types.EdgeBottom, types.LaneRight)
	e3 := f.addEnemy(3, types.EnemyBoss, types.EdgeTop, types.LaneCenterLeft)

	got := f.enemies.OrderedEnemies()
	want := []ecs.EntityID{e1, e3, e5}
	if len(got) != len(want) {
		t.Fatalf("got %d enemies, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: entity %d, want %d", i, got[i], want[i])
		}
	}
}

// TestUpdateEnemyMissingComponents 缺少组件返回错误
func TestUpdateEnemyMissingComponents(t *testing.T) {
	f := newFormationFixture(config.DefaultFormationConfig(), 1)
	entity := f.em.CreateEntity()
	ecs.AddComponent(f.em, entity, &components.EnemyComponent{ID: 0, SlotIndex: -1})

	if _, err := f.enemies.UpdateEnemy(entity, 0); err == nil {
		t.Error("UpdateEnemy should fail without EntranceComponent")
	}
}

// TestUnsupportedEntryPropagates 入场组合错误向上传递
func TestUnsupportedEntryPropagates(t *testing.T) {
	f := newFormationFixture(config.DefaultFormationConfig(), 1)
	f.addEnemy(0, types.EnemyBee, types.EdgeTop, types.LaneLeft)

	if err := f.enemies.Update(0); err == nil {
		t.Error("Update should fail for an unsupported entry")
	}
}
