package components

import "github.com/decker502/galaga/pkg/types"

// EntranceComponent 入场曲线的状态
//
// Init 为 true 时，下一次推进会先把敌机放到出生点并重置航向；
// 曲线结束后 EntranceSystem 会把 Init 重新置为 true，以便复用
type EntranceComponent struct {
	Edge types.EntryEdge // 入场边缘
	Lane types.Lane      // 入场航道

	Init         bool    // 是否需要初始化出生点
	Radians      float64 // 当前航向（弧度，单调累加，不做归一化）
	StartRadians float64 // 初始航向
	Steps        int     // 已推进的步数
}
