package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针输入
// 统一处理鼠标和触摸：有触摸时优先使用第一个触点
type PointerState struct {
	// X, Y 指针位置（逻辑屏幕坐标）
	X, Y int
	// IsTouching 是否有活动的触摸
	IsTouching bool
	// JustClicked 鼠标左键本帧刚按下（触摸不产生点击，触点只用于瞄准）
	JustClicked bool
}

// pointerInput 复用触点缓冲区，避免每帧分配
type pointerInput struct {
	touchIDs []ebiten.TouchID
}

// Read 读取当前帧的指针状态
func (p *pointerInput) Read() PointerState {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(p.touchIDs[0])
		return PointerState{X: x, Y: y, IsTouching: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:           x,
		Y:           y,
		JustClicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}
