package components

// ExplosionPoint 爆炸中的一个噪点
type ExplosionPoint struct {
	X, Y float64
}

// ExplosionComponent 粒子式爆炸特效
//
// 半径每帧增长，每一圈随机撒若干噪点；达到最大半径后由 ExplosionSystem 销毁
type ExplosionComponent struct {
	CenterX, CenterY float64
	Radius           float64 // 当前半径
	MaxRadius        float64
	GrowthPerTick    float64
	PointsPerRing    int
	PointSize        float64

	// Points 本帧要绘制的噪点（每帧重新生成）
	Points []ExplosionPoint

	// Flash 为 true 时用红色绘制，否则白色
	Flash bool

	// Finished 特效已结束
	Finished bool
}
