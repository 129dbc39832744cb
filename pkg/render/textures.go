package render

import (
	"image"
	"image/color"
	"math"
)

// 程序生成的默认贴图。亮度从中心线向外衰减，颜色为白色，
// 实际颜色由绘制时的 ColorScale 决定。

// MiddleChunkImage 生成中段贴图：每列相同，沿垂直方向衰减
func MiddleChunkImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	half := float64(h) / 2
	for y := 0; y < h; y++ {
		// 像素中心到中心线的距离
		d := math.Abs(float64(y)+0.5-half) / half
		a := falloff(d)
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, white(a))
		}
	}
	return img
}

// CapImage 生成端帽贴图：以左边中点为圆心的半圆衰减
func CapImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	half := float64(h) / 2
	radius := math.Max(float64(w), half)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5) / radius
			dy := (float64(y) + 0.5 - half) / half
			img.SetRGBA(x, y, white(falloff(math.Hypot(dx, dy))))
		}
	}
	return img
}

// falloff 把归一化距离 [0, 1] 映射为亮度，超出 1 为 0
func falloff(d float64) uint8 {
	if d >= 1 {
		return 0
	}
	v := 1 - d
	return uint8(math.Round(255 * v * v))
}

// white 返回预乘 alpha 的白色
func white(a uint8) color.RGBA {
	return color.RGBA{R: a, G: a, B: a, A: a}
}
