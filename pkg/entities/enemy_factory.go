package entities

import (
	"fmt"
	"log"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/systems"
	"github.com/decker502/galaga/pkg/types"
)

// NewEnemyEntity 创建敌机实体
// 敌机在屏幕外的出生点生成，初始状态为 Entering
//
// 参数:
//   - em: 实体管理器
//   - id: 敌机编号（同时存在的敌机之间唯一）
//   - class: 敌机种类
//   - edge: 入场边缘
//   - lane: 入场航道
//
// 返回:
//   - ecs.EntityID: 创建的敌机实体ID，如果失败返回 0
//   - error: 如果入场组合不受支持或种类未知
func NewEnemyEntity(
	em *ecs.EntityManager,
	id int,
	class types.EnemyClass,
	edge types.EntryEdge,
	lane types.Lane,
) (ecs.EntityID, error) {
	if class == types.EnemyUnknown {
		return 0, fmt.Errorf("cannot create enemy %d of unknown class", id)
	}

	spawnX, spawnY, err := systems.SpawnPoint(edge, lane)
	if err != nil {
		return 0, fmt.Errorf("enemy %d entry %s/%s: %w", id, edge, lane, err)
	}

	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.EnemyComponent{
		ID:        id,
		Class:     class,
		State:     types.StateEntering,
		SlotIndex: -1,
	})

	// 出生点先写入位置，避免第一帧在 (0, 0) 处绘制
	ecs.AddComponent(em, entity, &components.PositionComponent{X: spawnX, Y: spawnY})

	ecs.AddComponent(em, entity, &components.EntranceComponent{
		Edge: edge,
		Lane: lane,
		Init: true,
	})

	log.Printf("[EnemyFactory] Created enemy %d (entity %d, %s) entering from %s/%s at (%.0f, %.0f)",
		id, entity, class, edge, lane, spawnX, spawnY)
	return entity, nil
}
