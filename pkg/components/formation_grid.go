package components

import "github.com/decker502/galaga/pkg/config"

// SlotState 编队格子的占用状态
type SlotState uint8

const (
	// SlotFree 空闲
	SlotFree SlotState = iota
	// SlotReserved 已分配给某架敌机，敌机仍在滑行途中
	SlotReserved
	// SlotOccupied 敌机已到达该格子
	SlotOccupied
)

// FormationGridComponent 标识编队网格实体
// 每局游戏只有一个，由 FormationGridSystem 每帧刷新几何参数
//
// Slots 按行优先存储：索引 = row*10 + col
// 网格规格: 10列 x 5行
type FormationGridComponent struct {
	// Slots 存储每个格子的占用状态
	Slots [config.FormationSize]SlotState

	// Spacing 当前格距（像素），随时间正弦振荡
	Spacing float64

	// OriginX, OriginY 网格左上角锚点（像素）
	OriginX float64
	OriginY float64

	// Tick 最近一次刷新几何参数时的逻辑帧
	Tick uint64
}
