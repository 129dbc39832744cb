// Package render 负责把线段池中的闪电线段绘制到屏幕上
//
// 每条线段由三个精灵组成：沿线段拉伸的中段、起点前翻转的端帽、终点后的端帽。
// 颜色由 ColorCycle 驱动的三相 RGB 渐变决定，并叠加一层加色混合的辉光。
package render

import "image/color"

// Phase 当前正在渐变的颜色通道
type Phase int

const (
	PhaseRed Phase = iota
	PhaseGreen
	PhaseBlue
)

// String 返回通道名称（日志用）
func (p Phase) String() string {
	switch p {
	case PhaseRed:
		return "Red"
	case PhaseGreen:
		return "Green"
	case PhaseBlue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// next 返回下一个通道（Red → Green → Blue → Red）
func (p Phase) next() Phase {
	return (p + 1) % 3
}

// Direction 当前通道的渐变方向
type Direction int

const (
	Down Direction = iota
	Up
)

const (
	// DefaultColorStep 每 tick 通道变化量
	DefaultColorStep = 5
	// DefaultColorFloor 通道最低亮度，避免闪电变成纯色
	DefaultColorFloor = 120
)

// ColorCycle 三相 RGB 渐变状态机
//
// 所有通道初始为 255（白色）。当前通道先降到 floor，再升回 255，
// 然后切换到下一个通道。同一时刻只有一个通道在变化。
type ColorCycle struct {
	R, G, B uint8

	phase     Phase
	direction Direction
	step      int
	floor     int
}

// NewColorCycle 创建颜色状态机
// step <= 0 时使用 DefaultColorStep；floor 被限制在 [0, 254]
func NewColorCycle(step, floor int) *ColorCycle {
	if step <= 0 {
		step = DefaultColorStep
	}
	floor = max(0, min(floor, 254))
	return &ColorCycle{
		R:         255,
		G:         255,
		B:         255,
		phase:     PhaseRed,
		direction: Down,
		step:      step,
		floor:     floor,
	}
}

// Phase 返回当前通道
func (c *ColorCycle) Phase() Phase {
	return c.phase
}

// Direction 返回当前渐变方向
func (c *ColorCycle) Direction() Direction {
	return c.direction
}

// channel 返回当前通道的指针
func (c *ColorCycle) channel() *uint8 {
	switch c.phase {
	case PhaseGreen:
		return &c.G
	case PhaseBlue:
		return &c.B
	default:
		return &c.R
	}
}

// Step 推进一个 tick
func (c *ColorCycle) Step() {
	ch := c.channel()
	v := int(*ch)

	switch c.direction {
	case Down:
		v -= c.step
		if v <= c.floor {
			v = c.floor
			c.direction = Up
		}
		*ch = uint8(v)
	case Up:
		v += c.step
		if v >= 255 {
			v = 255
			*ch = uint8(v)
			c.direction = Down
			c.phase = c.phase.next()
			return
		}
		*ch = uint8(v)
	}
}

// Color 返回当前颜色（不透明）
func (c *ColorCycle) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Pulse 返回当前通道归一化后的亮度 [0, 1]
// 通道在 floor 时为 0，在 255 时为 1；用于驱动辉光的大小和透明度
func (c *ColorCycle) Pulse() float64 {
	span := 255 - c.floor
	return float64(int(*c.channel())-c.floor) / float64(span)
}

// PhaseLength 返回一个通道完成一次下降+上升所需的 tick 数
func (c *ColorCycle) PhaseLength() int {
	span := 255 - c.floor
	ticks := (span + c.step - 1) / c.step
	return 2 * ticks
}
