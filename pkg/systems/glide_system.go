package systems

import (
	"log"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/utils"
)

// GlideSystem 敌机从入场结束点滑入编队格子
//
// 纵向每帧移动固定步长，横向坐标按 y 在"起点→目标"连线上插值。
// y 到达或越过目标后视为到达：格子标记为已到达，此后每帧钉在格子的当前像素坐标上，
// 随网格呼吸一起移动
type GlideSystem struct {
	grid *FormationGridSystem
	step float64
}

// NewGlideSystem 创建滑行系统
//
// 参数:
//   - grid: 编队网格（读取格子坐标，到达时写入占用状态）
//   - step: 每帧纵向移动距离（像素）
func NewGlideSystem(grid *FormationGridSystem, step float64) *GlideSystem {
	return &GlideSystem{
		grid: grid,
		step: step,
	}
}

// Interpolate 按 y 在 (sourceX, sourceY)→(targetX, targetY) 连线上插值 x
//
// 公式：x = sourceX + (targetX-sourceX)*(y-sourceY)/(targetY-sourceY)
// 纵向跨度为零时返回 x 不变
func Interpolate(x, y, sourceX, sourceY, targetX, targetY float64) float64 {
	t, ok := utils.InverseLerp(sourceY, targetY, y)
	if !ok {
		return x
	}
	return utils.Lerp(sourceX, targetX, t)
}

// Step 推进一帧滑行
//
// 参数:
//   - pos: 敌机位置（原地修改）
//   - enemy: 敌机记录（读取起点和目标格子）
//
// 返回:
//   - arrived: 本帧到达目标格子（位置已钉在格子上，格子已标记为已到达）
func (s *GlideSystem) Step(pos *components.PositionComponent, enemy *components.EnemyComponent) bool {
	targetX, targetY := s.grid.SlotPosition(enemy.SlotCol, enemy.SlotRow)

	pos.X = Interpolate(pos.X, pos.Y, enemy.SourceX, enemy.SourceY, targetX, targetY)

	arrived := false
	switch {
	case pos.Y > targetY:
		pos.Y -= s.step
		arrived = pos.Y <= targetY
	case pos.Y < targetY:
		pos.Y += s.step
		arrived = pos.Y >= targetY
	default:
		arrived = true
	}

	if !arrived {
		return false
	}

	if err := s.grid.Occupy(enemy.SlotIndex); err != nil {
		log.Printf("[GlideSystem] WARNING: enemy %d arrived at slot %d: %v", enemy.ID, enemy.SlotIndex, err)
	}
	pos.X, pos.Y = targetX, targetY
	return true
}

// Pin 将敌机钉在所属格子的当前像素坐标上
func (s *GlideSystem) Pin(pos *components.PositionComponent, enemy *components.EnemyComponent) {
	pos.X, pos.Y = s.grid.SlotPosition(enemy.SlotCol, enemy.SlotRow)
}
