package lightning

import (
	"fmt"
	"math"
)

// 默认生成参数
//
// 历史上出现过两组常量（密度 2/4，摆幅 80/100），这里固定为 4 和 80，
// 都可以通过配置覆盖。
const (
	// DefaultSway 内部采样点的最大横向偏移（像素）
	DefaultSway = 80.0

	// DefaultDensity 采样密度常数 k：采样数 = floor(length / (thickness * k))
	DefaultDensity = 4.0

	// DefaultTaperStart 收尾包络的起点横坐标，超过后横向偏移线性收敛到 0
	DefaultTaperStart = 0.95

	// DefaultThickness 默认线宽（也是贴图的基准高度）
	DefaultThickness = 8.0
)

// Params 闪电生成参数
type Params struct {
	// Sway 最大横向偏移；Jaggedness = 1 / Sway
	Sway float64
	// Density 采样密度常数 k
	Density float64
	// TaperStart 收尾包络起点，取值 [0, 1)
	TaperStart float64
}

// DefaultParams 返回默认参数
func DefaultParams() Params {
	return Params{
		Sway:       DefaultSway,
		Density:    DefaultDensity,
		TaperStart: DefaultTaperStart,
	}
}

// Validate 检查参数范围
func (p Params) Validate() error {
	if !(p.Sway > 0) || math.IsInf(p.Sway, 0) {
		return fmt.Errorf("sway must be a positive finite number, got %v", p.Sway)
	}
	if !(p.Density > 0) || math.IsInf(p.Density, 0) {
		return fmt.Errorf("density must be a positive finite number, got %v", p.Density)
	}
	if !(p.TaperStart >= 0 && p.TaperStart < 1) {
		return fmt.Errorf("taperStart must be in [0, 1), got %v", p.TaperStart)
	}
	return nil
}

// Jaggedness 相邻偏移的相关性衰减常数
func (p Params) Jaggedness() float64 {
	return 1 / p.Sway
}

// Envelope 返回横坐标 pos 处的收尾包络系数
//
// pos <= TaperStart 时为 1；之后线性下降，在 pos = 1 时为 0。
// TaperStart = 0.95 时即 20 * (1 - pos)。
func (p Params) Envelope(pos float64) float64 {
	if pos <= p.TaperStart {
		return 1
	}
	return (1 - pos) / (1 - p.TaperStart)
}

// SampleCount 返回给定长度和线宽下的内部采样点数量
func (p Params) SampleCount(length, thickness float64) int {
	return int(math.Floor(length / (thickness * p.Density)))
}
