package components

// PositionComponent 实体在屏幕坐标系中的位置（左上角，像素）
type PositionComponent struct {
	X float64
	Y float64
}
