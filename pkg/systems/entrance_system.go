package systems

import (
	"errors"
	"math"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/types"
)

// ErrUnsupportedEntry 入场边缘与航道的组合没有对应的入场曲线
var ErrUnsupportedEntry = errors.New("unsupported entry edge/lane combination")

// 入场曲线的航向阈值
const (
	// bottomEndRadians 下方入场：航向累加到 3π 时结束（π/2 起步，先缓转四分之一圈再绕一整圈）
	bottomEndRadians = 3 * math.Pi
	// topEndRadians 上方入场：航向递减到 -2π 时结束
	topEndRadians = -2 * math.Pi
	// bottomSlowSpan 下方入场缓转阶段的航向变化量
	bottomSlowSpan = math.Pi / 2
	// topSlowSpan 上方入场缓转阶段的航向变化量
	topSlowSpan = -math.Pi / 4
)

// EntranceSystem 入场曲线生成器
//
// 把敌机从屏幕外的出生点沿"回环"曲线带进画面：
// 每一步沿当前航向移动单位距离，然后转动航向。
// 先以慢速转向（下方 +0.003，上方 -0.002 弧度/步），
// 转过四分之一圈（上方为八分之一圈）后改用快速转向（±0.016）绕圈，
// 航向越过阈值即结束
type EntranceSystem struct {
	config config.EntranceConfig
}

// NewEntranceSystem 创建入场曲线生成器
func NewEntranceSystem(cfg config.EntranceConfig) *EntranceSystem {
	return &EntranceSystem{config: cfg}
}

// SpawnPoint 返回入场组合对应的出生点
//
// 参数:
//   - edge: 入场边缘
//   - lane: 入场航道
//
// 返回:
//   - x, y: 出生点坐标（屏幕外）
//   - error: 组合不受支持时返回 ErrUnsupportedEntry
func SpawnPoint(edge types.EntryEdge, lane types.Lane) (x, y float64, err error) {
	if !types.IsSupportedEntry(edge, lane) {
		return 0, 0, ErrUnsupportedEntry
	}

	switch {
	case edge == types.EdgeBottom && lane == types.LaneLeft:
		return -config.SpawnPadding - config.EnemySize, config.ScreenHeight - config.EnemySize - config.SpawnPadding, nil
	case edge == types.EdgeBottom && lane == types.LaneRight:
		return config.ScreenWidth + config.SpawnPadding, config.ScreenHeight - config.EnemySize - config.SpawnPadding, nil
	case edge == types.EdgeTop && lane == types.LaneCenterLeft:
		return config.ScreenWidth/2.0 - config.EnemySize - config.CenterLaneOffset, -config.SpawnPadding - config.EnemySize, nil
	default: // EdgeTop + LaneCenterRight
		return config.ScreenWidth/2.0 + config.CenterLaneOffset, -config.SpawnPadding - config.EnemySize, nil
	}
}

// initialHeading 入场的初始航向：下方 π/2，上方 0
func initialHeading(edge types.EntryEdge) float64 {
	if edge == types.EdgeBottom {
		return math.Pi / 2
	}
	return 0
}

// mirrorX 水平方向的镜像系数
// 右下入场和中线偏左入场向左飞，取 -1
func mirrorX(edge types.EntryEdge, lane types.Lane) float64 {
	if edge == types.EdgeBottom && lane == types.LaneRight {
		return -1
	}
	if edge == types.EdgeTop && lane == types.LaneCenterLeft {
		return -1
	}
	return 1
}

// Step 推进一步入场曲线
//
// Init 为 true 时先初始化出生点和航向（不受步进间隔限制）；
// 随后仅在 tick 是 StepInterval 的整数倍时移动
//
// 参数:
//   - tick: 当前逻辑帧
//   - entrance: 入场状态（原地修改）
//   - pos: 敌机位置（原地修改）
//
// 返回:
//   - done: 曲线已结束（此时 entrance.Init 已重置为 true）
//   - error: 入场组合不受支持
func (s *EntranceSystem) Step(tick uint64, entrance *components.EntranceComponent, pos *components.PositionComponent) (bool, error) {
	if entrance.Init {
		x, y, err := SpawnPoint(entrance.Edge, entrance.Lane)
		if err != nil {
			return false, err
		}
		pos.X, pos.Y = x, y
		entrance.Radians = initialHeading(entrance.Edge)
		entrance.StartRadians = entrance.Radians
		entrance.Steps = 0
		entrance.Init = false
	}

	if s.config.StepInterval > 1 && tick%s.config.StepInterval != 0 {
		return false, nil
	}

	// 沿当前航向移动单位距离
	pos.X += math.Sin(entrance.Radians) * mirrorX(entrance.Edge, entrance.Lane)
	pos.Y += math.Cos(entrance.Radians)
	entrance.Steps++

	// 转动航向
	turned := entrance.Radians - entrance.StartRadians
	switch entrance.Edge {
	case types.EdgeBottom:
		if turned < bottomSlowSpan {
			entrance.Radians += s.config.BottomSlowRate
			return false, nil
		}
		entrance.Radians += s.config.FastRate
		if entrance.Radians >= bottomEndRadians {
			entrance.Init = true
			return true, nil
		}
	case types.EdgeTop:
		if turned > topSlowSpan {
			entrance.Radians -= s.config.TopSlowRate
			return false, nil
		}
		entrance.Radians -= s.config.FastRate
		if entrance.Radians <= topEndRadians {
			entrance.Init = true
			return true, nil
		}
	}

	return false, nil
}
