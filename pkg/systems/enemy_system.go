package systems

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/types"
)

// EnemySystem 敌机状态机
//
// 每帧为每架敌机推进一个阶段：
//
//	Entering    → 推进入场曲线，曲线结束后进入 SlotPending
//	SlotPending → 分配编队位置、记录滑行起点，进入 Gliding；区域已满则原地等待下一帧重试
//	Gliding     → 推进滑行，到达后进入 InFormation
//	InFormation → 钉在格子的当前像素坐标上
//
// 敌机之间按编号升序更新，互不交错
type EnemySystem struct {
	entityManager *ecs.EntityManager
	grid          *FormationGridSystem
	entrance      *EntranceSystem
	allocator     *SlotAllocator
	glide         *GlideSystem

	// waitingForSlot 记录已经因区域已满而等待的敌机，避免每帧重复打日志
	waitingForSlot map[ecs.EntityID]bool
}

// NewEnemySystem 创建敌机状态机
func NewEnemySystem(
	em *ecs.EntityManager,
	grid *FormationGridSystem,
	entrance *EntranceSystem,
	allocator *SlotAllocator,
	glide *GlideSystem,
) *EnemySystem {
	return &EnemySystem{
		entityManager:  em,
		grid:           grid,
		entrance:       entrance,
		allocator:      allocator,
		glide:          glide,
		waitingForSlot: make(map[ecs.EntityID]bool),
	}
}

// Update 按敌机编号升序推进所有敌机
func (s *EnemySystem) Update(tick uint64) error {
	for _, entity := range s.OrderedEnemies() {
		if _, err := s.UpdateEnemy(entity, tick); err != nil {
			return err
		}
	}
	return nil
}

// OrderedEnemies 返回所有敌机实体，按敌机编号升序
func (s *EnemySystem) OrderedEnemies() []ecs.EntityID {
	entities := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.EntranceComponent,
		*components.PositionComponent,
	](s.entityManager)

	ids := make(map[ecs.EntityID]int, len(entities))
	for _, entity := range entities {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, entity)
		ids[entity] = enemy.ID
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return ids[entities[i]] < ids[entities[j]]
	})
	return entities
}

// UpdateEnemy 推进单架敌机一帧
//
// 参数:
//   - entity: 敌机实体
//   - tick: 当前逻辑帧
//
// 返回:
//   - 敌机本帧结束时的位置
//   - error: 实体缺少组件或入场组合不受支持
func (s *EnemySystem) UpdateEnemy(entity ecs.EntityID, tick uint64) (components.PositionComponent, error) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, entity)
	if !ok {
		return components.PositionComponent{}, fmt.Errorf("entity %d has no EnemyComponent", entity)
	}
	entrance, ok := ecs.GetComponent[*components.EntranceComponent](s.entityManager, entity)
	if !ok {
		return components.PositionComponent{}, fmt.Errorf("entity %d has no EntranceComponent", entity)
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entity)
	if !ok {
		return components.PositionComponent{}, fmt.Errorf("entity %d has no PositionComponent", entity)
	}

	switch enemy.State {
	case types.StateEntering:
		done, err := s.entrance.Step(tick, entrance, pos)
		if err != nil {
			return *pos, fmt.Errorf("enemy %d entrance %s/%s: %w", enemy.ID, entrance.Edge, entrance.Lane, err)
		}
		if done {
			s.transition(enemy, types.StateSlotPending)
		}

	case types.StateSlotPending:
		index, err := s.allocator.Allocate(enemy.Class, s.grid)
		if err != nil {
			if errors.Is(err, ErrSlotsExhausted) {
				if !s.waitingForSlot[entity] {
					log.Printf("[EnemySystem] Enemy %d waiting for a free slot: %v", enemy.ID, err)
					s.waitingForSlot[entity] = true
				}
				return *pos, nil
			}
			return *pos, fmt.Errorf("enemy %d slot allocation: %w", enemy.ID, err)
		}
		delete(s.waitingForSlot, entity)

		enemy.SlotIndex = index
		enemy.SlotCol, enemy.SlotRow = config.SlotCoords(index)
		enemy.SourceX, enemy.SourceY = pos.X, pos.Y
		log.Printf("[EnemySystem] Enemy %d (%s) assigned slot %d (col=%d, row=%d) from (%.1f, %.1f)",
			enemy.ID, enemy.Class, index, enemy.SlotCol, enemy.SlotRow, pos.X, pos.Y)
		s.transition(enemy, types.StateGliding)

	case types.StateGliding:
		if s.glide.Step(pos, enemy) {
			s.transition(enemy, types.StateInFormation)
		}

	case types.StateInFormation:
		s.glide.Pin(pos, enemy)
	}

	return *pos, nil
}

// Forget 清理敌机在本系统中的附加状态（敌机被移除时调用）
func (s *EnemySystem) Forget(entity ecs.EntityID) {
	delete(s.waitingForSlot, entity)
}

// transition 切换敌机状态
func (s *EnemySystem) transition(enemy *components.EnemyComponent, next types.EnemyState) {
	log.Printf("[EnemySystem] Enemy %d: %s -> %s", enemy.ID, enemy.State, next)
	enemy.State = next
}
