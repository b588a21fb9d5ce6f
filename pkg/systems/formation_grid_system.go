package systems

import (
	"fmt"
	"log"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/utils"
)

// FormationGridSystem 管理编队网格
//
// 职责：
//   - 每帧按逻辑帧刷新格距和锚点（呼吸动画），只依赖 tick，不依赖敌机状态
//   - 提供格子到像素坐标的换算
//   - 维护格子的占用状态（空闲 / 已分配 / 已到达）
type FormationGridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
	config        config.GridConfig
}

// NewFormationGridSystem 创建编队网格系统，并创建唯一的网格实体
//
// 参数:
//   - em: EntityManager 实例
//   - cfg: 网格呼吸参数
//
// 返回:
//   - *FormationGridSystem: 几何参数已按 tick=0 初始化
func NewFormationGridSystem(em *ecs.EntityManager, cfg config.GridConfig) *FormationGridSystem {
	s := &FormationGridSystem{
		entityManager: em,
		config:        cfg,
	}

	s.gridEntity = em.CreateEntity()
	ecs.AddComponent(em, s.gridEntity, &components.FormationGridComponent{})
	s.UpdateGeometry(0)

	log.Printf("[FormationGrid] Created grid entity %d (%dx%d, base spacing %.1f, period %d)",
		s.gridEntity, config.FormationColumns, config.FormationRows, cfg.BaseSpacing, cfg.Period)
	return s
}

// GridEntity 返回网格实体ID
func (s *FormationGridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

// Grid 返回网格组件
func (s *FormationGridSystem) Grid() *components.FormationGridComponent {
	grid, ok := ecs.GetComponent[*components.FormationGridComponent](s.entityManager, s.gridEntity)
	if !ok {
		// 网格实体由本系统创建且从不销毁
		panic(fmt.Sprintf("formation grid entity %d lost its component", s.gridEntity))
	}
	return grid
}

// UpdateGeometry 按逻辑帧重新计算格距和锚点
func (s *FormationGridSystem) UpdateGeometry(tick uint64) {
	grid := s.Grid()
	grid.Spacing = GridSpacingAt(s.config, tick)
	grid.OriginX, grid.OriginY = GridOrigin(grid.Spacing)
	grid.Tick = tick
}

// GridSpacingAt 计算指定逻辑帧的格距（纯函数）
func GridSpacingAt(cfg config.GridConfig, tick uint64) float64 {
	return utils.Oscillate(cfg.BaseSpacing, cfg.Amplitude, tick, cfg.Period)
}

// GridOrigin 根据格距计算网格锚点
//
// 网格总宽 = 列数 * 格距，水平居中；敌机方块在各自格子内水平居中。
// 纵向使用固定的顶部边距
func GridOrigin(spacing float64) (x, y float64) {
	width := spacing * config.FormationColumns
	x = (config.ScreenWidth-width)/2 + (spacing-config.EnemySize)/2
	y = config.FormationTopMargin
	return x, y
}

// SlotPosition 返回格子 (col, row) 当前的像素坐标（敌机方块左上角）
func (s *FormationGridSystem) SlotPosition(col, row int) (x, y float64) {
	return SlotPosition(s.Grid(), col, row)
}

// SlotPosition 返回网格组件中格子 (col, row) 的像素坐标
func SlotPosition(grid *components.FormationGridComponent, col, row int) (x, y float64) {
	return grid.OriginX + float64(col)*grid.Spacing, grid.OriginY + float64(row)*grid.Spacing
}

// IsFree 检查指定格子是否空闲
// 越界索引视为"非空闲"，防止被分配
func (s *FormationGridSystem) IsFree(index int) bool {
	if !isValidSlotIndex(index) {
		return false
	}
	return s.Grid().Slots[index] == components.SlotFree
}

// SlotState 返回指定格子的状态
func (s *FormationGridSystem) SlotState(index int) (components.SlotState, error) {
	if !isValidSlotIndex(index) {
		return components.SlotFree, fmt.Errorf("invalid slot index %d (valid range: 0-%d)", index, config.FormationSize-1)
	}
	return s.Grid().Slots[index], nil
}

// Reserve 将空闲格子标记为已分配
//
// 返回:
//   - error: 如果索引无效或格子非空闲
func (s *FormationGridSystem) Reserve(index int) error {
	if !isValidSlotIndex(index) {
		return fmt.Errorf("invalid slot index %d (valid range: 0-%d)", index, config.FormationSize-1)
	}
	grid := s.Grid()
	if grid.Slots[index] != components.SlotFree {
		return fmt.Errorf("slot %d is not free", index)
	}
	grid.Slots[index] = components.SlotReserved
	return nil
}

// Occupy 将格子标记为已到达
// 敌机到达格子的那一刻调用；允许从空闲或已分配状态直接标记
func (s *FormationGridSystem) Occupy(index int) error {
	if !isValidSlotIndex(index) {
		return fmt.Errorf("invalid slot index %d (valid range: 0-%d)", index, config.FormationSize-1)
	}
	grid := s.Grid()
	if grid.Slots[index] == components.SlotOccupied {
		return fmt.Errorf("slot %d is already occupied", index)
	}
	grid.Slots[index] = components.SlotOccupied
	return nil
}

// Release 清空格子的占用状态
func (s *FormationGridSystem) Release(index int) error {
	if !isValidSlotIndex(index) {
		return fmt.Errorf("invalid slot index %d (valid range: 0-%d)", index, config.FormationSize-1)
	}
	s.Grid().Slots[index] = components.SlotFree
	return nil
}

// CountSlots 统计 [lo, hi) 范围内处于指定状态的格子数
func (s *FormationGridSystem) CountSlots(lo, hi int, state components.SlotState) int {
	grid := s.Grid()
	count := 0
	for i := max(lo, 0); i < hi && i < config.FormationSize; i++ {
		if grid.Slots[i] == state {
			count++
		}
	}
	return count
}

// isValidSlotIndex 检查格子索引是否有效
func isValidSlotIndex(index int) bool {
	return index >= 0 && index < config.FormationSize
}
