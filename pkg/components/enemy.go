package components

import (
	"github.com/decker502/galaga/pkg/types"
)

// EnemyComponent 敌机记录
//
// 生命周期状态由 EnemySystem 驱动：
//
//	Entering → SlotPending → Gliding → InFormation
//
// SlotIndex 在分配编队位置之前为 -1
type EnemyComponent struct {
	ID    int              // 敌机编号（同时存在的敌机之间唯一）
	Class types.EnemyClass // 敌机种类
	State types.EnemyState // 当前生命周期状态

	// SourceX, SourceY 分配编队位置那一刻的坐标（滑行起点）
	SourceX float64
	SourceY float64

	// 分配到的编队格子
	SlotIndex int
	SlotCol   int
	SlotRow   int
}

// HasSlot 是否已分配编队位置
func (e *EnemyComponent) HasSlot() bool {
	return e.SlotIndex >= 0
}
