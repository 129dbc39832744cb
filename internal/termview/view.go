package termview

import (
	"image/color"
	"iter"

	"github.com/decker502/lightning/pkg/lightning"
	"github.com/gdamore/tcell/v2"
)

// 常见终端字体的单元像素尺寸，用于把闪电参数（像素）映射到字符网格
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// View 把线段绘制到 tcell 屏幕
// 最后一行保留给状态栏
type View struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
}

// NewView 创建视图
func NewView(screen tcell.Screen, cellW, cellH float64) *View {
	return &View{screen: screen, cellW: cellW, cellH: cellH}
}

// CellSize 返回单元像素尺寸
func (v *View) CellSize() (float64, float64) {
	return v.cellW, v.cellH
}

// WorldSize 返回可绘制区域的像素尺寸（不含状态栏）
func (v *View) WorldSize() (float64, float64) {
	w, h := v.screen.Size()
	return float64(w) * v.cellW, float64(max(0, h-1)) * v.cellH
}

// Draw 清屏并绘制所有线段和状态栏
func (v *View) Draw(segs iter.Seq[*lightning.Segment], col color.RGBA, status string) {
	v.screen.Clear()

	w, h := v.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))

	for seg := range segs {
		data := seg.Data()
		glyph := Glyph(data.Vector(), v.cellW, v.cellH)
		Rasterize(data.Start, data.End, v.cellW, v.cellH, func(x, y int) {
			// 超出屏幕的部分直接裁掉
			if x < 0 || y < 0 || x >= w || y >= h-1 {
				return
			}
			v.screen.SetContent(x, y, glyph, nil, style)
		})
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		v.screen.SetContent(x, h-1, r, nil, statusStyle)
		x++
	}

	v.screen.Show()
}
