package utils

import "math"

// 插值与振荡辅助函数
//
// 编队网格的呼吸动画和敌机滑入编队都基于这里的纯函数，便于单独测试

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp 反向线性插值，返回 v 在 [a, b] 上的比例 t
//
// 返回:
//   - t: 满足 Lerp(a, b, t) == v 的比例（不做截断）
//   - ok: a == b 时跨度为零，返回 false
func InverseLerp(a, b, v float64) (float64, bool) {
	if b-a == 0 {
		return 0, false
	}
	return (v - a) / (b - a), true
}

// Oscillate 正弦振荡
// 公式：base + amplitude * sin(2π * (tick mod period) / period)
// period 为 0 时返回 base
func Oscillate(base, amplitude float64, tick, period uint64) float64 {
	if period == 0 {
		return base
	}
	phase := float64(tick%period) / float64(period)
	return base + amplitude*math.Sin(phase*2*math.Pi)
}
