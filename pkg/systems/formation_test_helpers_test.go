package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/types"
)

// almostEqual 浮点比较
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// formationFixture 测试用的一组系统
type formationFixture struct {
	em        *ecs.EntityManager
	grid      *FormationGridSystem
	entrance  *EntranceSystem
	allocator *SlotAllocator
	glide     *GlideSystem
	enemies   *EnemySystem
}

// newFormationFixture 按配置创建全部系统，随机种子固定
func newFormationFixture(cfg *config.FormationConfig, seed int64) *formationFixture {
	em := ecs.NewEntityManager()
	grid := NewFormationGridSystem(em, cfg.Grid)
	entrance := NewEntranceSystem(cfg.Entrance)
	allocator := NewSlotAllocator(rand.New(rand.NewSource(seed)), cfg.Allocator.MaxAttempts)
	glide := NewGlideSystem(grid, cfg.Glide.Step)
	return &formationFixture{
		em:        em,
		grid:      grid,
		entrance:  entrance,
		allocator: allocator,
		glide:     glide,
		enemies:   NewEnemySystem(em, grid, entrance, allocator, glide),
	}
}

// addEnemy 直接组装一架处于入场阶段的敌机
func (f *formationFixture) addEnemy(id int, class types.EnemyClass, edge types.EntryEdge, lane types.Lane) ecs.EntityID {
	entity := f.em.CreateEntity()
	ecs.AddComponent(f.em, entity, &components.EnemyComponent{
		ID:        id,
		Class:     class,
		State:     types.StateEntering,
		SlotIndex: -1,
	})
	ecs.AddComponent(f.em, entity, &components.EntranceComponent{
		Edge: edge,
		Lane: lane,
		Init: true,
	})
	ecs.AddComponent(f.em, entity, &components.PositionComponent{})
	return entity
}

// enemyOf 读取敌机组件
func (f *formationFixture) enemyOf(entity ecs.EntityID) *components.EnemyComponent {
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](f.em, entity)
	return enemy
}

// positionOf 读取位置组件
func (f *formationFixture) positionOf(entity ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](f.em, entity)
	return pos
}
