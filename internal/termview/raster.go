// Package termview 在终端中预览闪电
//
// 屏幕坐标按固定的字符单元尺寸（cellW x cellH 像素）映射到字符网格，
// 每条线段用 Bresenham 算法逐格绘制，字符按线段方向选取。
package termview

import (
	"math"

	"github.com/decker502/lightning/pkg/geom"
)

// CellOf 返回屏幕坐标所在的字符单元
func CellOf(p geom.Vec2, cellW, cellH float64) (int, int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y / cellH))
}

// CellCenter 返回字符单元中心的屏幕坐标
func CellCenter(x, y int, cellW, cellH float64) geom.Vec2 {
	return geom.V((float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH)
}

// Rasterize 按 Bresenham 算法访问线段 a→b 经过的所有字符单元
// 两个端点所在的单元都会被访问，相邻两次访问的单元在各轴上最多相差 1
func Rasterize(a, b geom.Vec2, cellW, cellH float64, visit func(x, y int)) {
	x0, y0 := CellOf(a, cellW, cellH)
	x1, y1 := CellOf(b, cellW, cellH)

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	stepX, stepY := -1, -1
	if x0 < x1 {
		stepX = 1
	}
	if y0 < y1 {
		stepY = 1
	}
	err := dx - dy

	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += stepX
		}
		if e2 < dx {
			err += dx
			y0 += stepY
		}
	}
}

// Glyph 根据线段方向选取字符
// 方向先换算到字符网格空间（单元通常是高的），再按 45° 分区
func Glyph(dir geom.Vec2, cellW, cellH float64) rune {
	gx, gy := dir.X/cellW, dir.Y/cellH
	if gx == 0 && gy == 0 {
		return '*'
	}

	deg := geom.Degrees(math.Atan2(gy, gx))
	// 折叠到 [0, 180)：方向相反的线段用同一个字符
	if deg < 0 {
		deg += 180
	}
	if deg >= 180 {
		deg -= 180
	}

	switch {
	case deg < 22.5 || deg >= 157.5:
		return '-'
	case deg < 67.5:
		// Y 轴向下，右下方向
		return '\\'
	case deg < 112.5:
		return '|'
	default:
		return '/'
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
