package systems

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/types"
)

// ErrSlotsExhausted 该敌机类型的编队区域已无空位
var ErrSlotsExhausted = errors.New("formation slots exhausted")

// SlotTable 可分配的编队格子表
//
// FormationGridSystem 实现了该接口；PickFormationPosition 会把外部传入的布尔占用表包装成该接口
type SlotTable interface {
	// IsFree 格子是否可分配
	IsFree(index int) bool
	// Reserve 标记格子已分配
	Reserve(index int) error
}

// SlotAllocator 编队位置分配器
//
// 在敌机类型对应的行范围内随机抽取格子，抽到已占用的格子就重抽。
// 分配前先检查是否还有空位，没有空位时返回 ErrSlotsExhausted，不会无限重试；
// 随机重试达到上限后改为顺序扫描
type SlotAllocator struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewSlotAllocator 创建编队位置分配器
//
// 参数:
//   - rng: 随机数源（测试中传入固定种子）
//   - maxAttempts: 随机重试上限（至少为 1）
func NewSlotAllocator(rng *rand.Rand, maxAttempts int) *SlotAllocator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SlotAllocator{
		rng:         rng,
		maxAttempts: maxAttempts,
	}
}

// ClassSlotRange 返回敌机类型在编队中的格子索引范围 [lo, hi)
//
// 蜜蜂为 [30, 50)，蝴蝶为 [10, 30)，首领为 [0, 10)；未知类型返回空范围
func ClassSlotRange(class types.EnemyClass) (lo, hi int) {
	firstRow, rowCount := class.FormationRows()
	lo = firstRow * config.FormationColumns
	hi = lo + rowCount*config.FormationColumns
	return lo, hi
}

// Allocate 为指定类型的敌机分配一个空闲格子并标记为已分配
//
// 返回:
//   - 格子索引（col = index % 10, row = index / 10）
//   - error: 区域已满时返回包装了 ErrSlotsExhausted 的错误
func (a *SlotAllocator) Allocate(class types.EnemyClass, table SlotTable) (int, error) {
	lo, hi := ClassSlotRange(class)
	if hi <= lo {
		return -1, fmt.Errorf("enemy class %s has no formation rows", class)
	}

	free := 0
	for i := lo; i < hi; i++ {
		if table.IsFree(i) {
			free++
		}
	}
	if free == 0 {
		return -1, fmt.Errorf("%w: %s slots [%d, %d)", ErrSlotsExhausted, class, lo, hi)
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		i := lo + a.rng.Intn(hi-lo)
		if !table.IsFree(i) {
			continue
		}
		if err := table.Reserve(i); err != nil {
			return -1, fmt.Errorf("failed to reserve slot %d: %w", i, err)
		}
		return i, nil
	}

	// 随机重试未命中，顺序扫描（前面已确认至少有一个空位）
	log.Printf("[SlotAllocator] %d random attempts missed for %s (%d free), scanning", a.maxAttempts, class, free)
	for i := lo; i < hi; i++ {
		if !table.IsFree(i) {
			continue
		}
		if err := table.Reserve(i); err != nil {
			return -1, fmt.Errorf("failed to reserve slot %d: %w", i, err)
		}
		return i, nil
	}

	return -1, fmt.Errorf("%w: %s slots [%d, %d)", ErrSlotsExhausted, class, lo, hi)
}

// PickFormationPosition 在外部构造的布尔占用表上分配一个格子（自检入口）
//
// occupancy[i] 为 true 表示已占用；选中的格子会被置为 true。
// 占用表长度不足 config.FormationSize 时返回错误
func (a *SlotAllocator) PickFormationPosition(class types.EnemyClass, occupancy []bool) (int, error) {
	if len(occupancy) < config.FormationSize {
		return -1, fmt.Errorf("occupancy table has %d entries, need %d", len(occupancy), config.FormationSize)
	}
	return a.Allocate(class, boolSlotTable(occupancy))
}

// boolSlotTable 将布尔占用表适配为 SlotTable
type boolSlotTable []bool

func (t boolSlotTable) IsFree(index int) bool {
	return index >= 0 && index < len(t) && !t[index]
}

func (t boolSlotTable) Reserve(index int) error {
	if !t.IsFree(index) {
		return fmt.Errorf("slot %d is not free", index)
	}
	t[index] = true
	return nil
}
