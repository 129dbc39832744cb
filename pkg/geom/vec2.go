// Package geom 提供闪电生成与渲染共用的 2D 向量工具
//
// 所有坐标都使用屏幕坐标系：X 向右，Y 向下。
package geom

import "math"

// Vec2 二维向量（屏幕坐标）
type Vec2 struct {
	X float64
	Y float64
}

// V 是 Vec2 的简写构造函数
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add 返回 v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 返回 v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len 返回向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize 返回单位向量
// 零向量返回零向量（不会产生 NaN）
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Perp 返回逆时针旋转 90° 的向量 (-y, x)
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Angle 返回向量方向角（弧度，atan2）
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Degrees 将弧度转换为角度
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// IsFinite 检查两个分量都不是 NaN/Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ApproxEqual 判断两个向量在 eps 误差内相等
func ApproxEqual(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
