package systems

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/types"
)

// TestClassSlotRange 测试各敌机类型的格子范围
func TestClassSlotRange(t *testing.T) {
	tests := []struct {
		name   string
		class  types.EnemyClass
		lo, hi int
	}{
		{"首领", types.EnemyBoss, 0, 10},
		{"蝴蝶", types.EnemyButterfly, 10, 30},
		{"蜜蜂", types.EnemyBee, 30, 50},
		{"未知类型", types.EnemyUnknown, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := ClassSlotRange(tt.class)
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("ClassSlotRange(%s) = [%d, %d), want [%d, %d)", tt.class, lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

// TestPickFormationPositionFillsBeeRows 20 次分配恰好填满蜜蜂区域
func TestPickFormationPositionFillsBeeRows(t *testing.T) {
	for _, seed := range []int64{1, 42, 20240101} {
		allocator := NewSlotAllocator(rand.New(rand.NewSource(seed)), 256)
		occupancy := make([]bool, config.FormationSize)

		picks := make([]int, 0, 20)
		for i := 0; i < 20; i++ {
			index, err := allocator.PickFormationPosition(types.EnemyBee, occupancy)
			if err != nil {
				t.Fatalf("seed %d pick %d failed: %v", seed, i, err)
			}
			picks = append(picks, index)
		}

		sort.Ints(picks)
		for i, index := range picks {
			if index != 30+i {
				t.Fatalf("seed %d: sorted picks = %v, want 30..49", seed, picks)
			}
		}
		for i := 0; i < 30; i++ {
			if occupancy[i] {
				t.Errorf("seed %d: slot %d outside bee rows was marked", seed, i)
			}
		}

		_, err := allocator.PickFormationPosition(types.EnemyBee, occupancy)
		if !errors.Is(err, ErrSlotsExhausted) {
			t.Errorf("seed %d: 21st pick error = %v, want ErrSlotsExhausted", seed, err)
		}
	}
}

// TestAllocateStaysInClassRange 各类型只分配到自己的行
func TestAllocateStaysInClassRange(t *testing.T) {
	for _, class := range []types.EnemyClass{types.EnemyBoss, types.EnemyButterfly, types.EnemyBee} {
		t.Run(class.String(), func(t *testing.T) {
			allocator := NewSlotAllocator(rand.New(rand.NewSource(7)), 256)
			grid := NewFormationGridSystem(ecs.NewEntityManager(), config.DefaultFormationConfig().Grid)
			lo, hi := ClassSlotRange(class)

			for i := lo; i < hi; i++ {
				index, err := allocator.Allocate(class, grid)
				if err != nil {
					t.Fatalf("allocation %d failed: %v", i-lo, err)
				}
				if index < lo || index >= hi {
					t.Errorf("index %d outside [%d, %d)", index, lo, hi)
				}
				if grid.IsFree(index) {
					t.Errorf("slot %d should be reserved", index)
				}
			}

			if _, err := allocator.Allocate(class, grid); !errors.Is(err, ErrSlotsExhausted) {
				t.Errorf("error = %v, want ErrSlotsExhausted", err)
			}
		})
	}
}

// TestAllocateScanFallback 随机重试未命中时顺序扫描到唯一空位
func TestAllocateScanFallback(t *testing.T) {
	allocator := NewSlotAllocator(rand.New(rand.NewSource(3)), 1)
	occupancy := make([]bool, config.FormationSize)
	for i := 30; i < 50; i++ {
		occupancy[i] = i != 44
	}

	index, err := allocator.PickFormationPosition(types.EnemyBee, occupancy)
	if err != nil {
		t.Fatalf("PickFormationPosition failed: %v", err)
	}
	if index != 44 {
		t.Errorf("index = %d, want 44", index)
	}
	if !occupancy[44] {
		t.Error("slot 44 should be marked")
	}
}

// TestAllocateErrors 测试错误输入
func TestAllocateErrors(t *testing.T) {
	allocator := NewSlotAllocator(rand.New(rand.NewSource(1)), 0)

	if _, err := allocator.PickFormationPosition(types.EnemyBee, make([]bool, 49)); err == nil {
		t.Error("short occupancy table should fail")
	}

	_, err := allocator.PickFormationPosition(types.EnemyUnknown, make([]bool, config.FormationSize))
	if err == nil {
		t.Error("unknown class should fail")
	}
	if errors.Is(err, ErrSlotsExhausted) {
		t.Error("unknown class should not report exhaustion")
	}
}
