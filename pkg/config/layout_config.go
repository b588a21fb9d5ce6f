package config

// 布局配置常量
// 本文件定义了游戏画面的固定布局参数，包括屏幕、精灵尺寸和编队网格

// Screen Configuration (屏幕配置)
const (
	// ScreenWidth 是游戏逻辑画面宽度（像素）
	ScreenWidth = 600

	// ScreenHeight 是游戏逻辑画面高度（像素）
	ScreenHeight = 800
)

// Sprite Configuration (精灵尺寸)
const (
	// FighterWidth 玩家战机宽度
	FighterWidth = 45

	// FighterHeight 玩家战机高度
	FighterHeight = 58

	// FighterMargin 玩家战机距左下角的边距
	FighterMargin = 10

	// EnemySize 敌机方块边长
	EnemySize = 30
)

// Formation Grid Configuration (编队网格配置)
const (
	// FormationColumns 编队列数
	FormationColumns = 10

	// FormationRows 编队行数
	// 第 0 行首领，第 1-2 行蝴蝶，第 3-4 行蜜蜂
	FormationRows = 5

	// FormationSize 编队格子总数
	FormationSize = FormationColumns * FormationRows

	// FormationTopMargin 编队网格距屏幕顶部的固定边距
	FormationTopMargin = 10.0
)

// Entrance Configuration (入场配置)
const (
	// SpawnPadding 出生点距屏幕边缘的距离
	SpawnPadding = 50.0

	// CenterLaneOffset 中线航道距屏幕中线的水平偏移
	CenterLaneOffset = 30.0
)

// SlotIndex 将 (列, 行) 转换为编队格子索引
func SlotIndex(col, row int) int {
	return row*FormationColumns + col
}

// SlotCoords 将编队格子索引拆分为 (列, 行)
func SlotCoords(index int) (col, row int) {
	return index % FormationColumns, index / FormationColumns
}
