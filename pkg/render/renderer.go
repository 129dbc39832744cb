package render

import (
	"iter"

	"github.com/decker502/lightning/pkg/lightning"
	"github.com/hajimehoshi/ebiten/v2"
)

// additiveBlend 加色混合，辉光叠加在底色上只会变亮
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// Options 渲染参数
type Options struct {
	ColorStep  int
	ColorFloor int
	// BloomScale 辉光线宽放大系数：辉光线宽 = 线宽 * (1 + BloomScale*Pulse)
	BloomScale float64
	// BloomAlpha 辉光最大不透明度：实际 alpha = BloomAlpha*Pulse
	BloomAlpha float64
}

// DefaultOptions 默认渲染参数
func DefaultOptions() Options {
	return Options{
		ColorStep:  DefaultColorStep,
		ColorFloor: DefaultColorFloor,
		BloomScale: 2.0,
		BloomAlpha: 0.6,
	}
}

// SegmentRenderer 把线段池中的线段绘制为精灵
//
// 颜色状态归渲染器所有，线段本身只是几何数据。
type SegmentRenderer struct {
	middle *ebiten.Image
	capImg *ebiten.Image
	sizes  TextureSizes
	cycle  *ColorCycle
	opts   Options

	// 复用的绘制参数，避免每个精灵分配一次
	op ebiten.DrawImageOptions
}

// NewSegmentRenderer 创建渲染器
// middle/capImg 为中段和端帽贴图，尺寸从贴图本身读取
func NewSegmentRenderer(middle, capImg *ebiten.Image, opts Options) *SegmentRenderer {
	mb := middle.Bounds()
	cb := capImg.Bounds()
	return &SegmentRenderer{
		middle: middle,
		capImg: capImg,
		sizes: TextureSizes{
			MiddleW: float64(mb.Dx()),
			MiddleH: float64(mb.Dy()),
			CapW:    float64(cb.Dx()),
			CapH:    float64(cb.Dy()),
		},
		cycle: NewColorCycle(opts.ColorStep, opts.ColorFloor),
		opts:  opts,
	}
}

// Cycle 返回颜色状态机（HUD 显示用）
func (r *SegmentRenderer) Cycle() *ColorCycle {
	return r.cycle
}

// Update 推进颜色状态机，每 tick 调用一次
func (r *SegmentRenderer) Update() {
	r.cycle.Step()
}

// Draw 绘制所有线段：先画底色，再叠加辉光
func (r *SegmentRenderer) Draw(dst *ebiten.Image, segs iter.Seq[*lightning.Segment]) {
	pulse := r.cycle.Pulse()

	for seg := range segs {
		r.drawSegment(dst, seg.Data(), 1, ebiten.Blend{})
	}

	alpha := float32(r.opts.BloomAlpha * pulse)
	if alpha <= 0 {
		return
	}
	widen := 1 + r.opts.BloomScale*pulse
	for seg := range segs {
		data := seg.Data()
		data.Thickness *= widen
		r.drawSegment(dst, data, alpha, additiveBlend)
	}
}

// drawSegment 按 Layout 绘制一条线段的三个精灵
func (r *SegmentRenderer) drawSegment(dst *ebiten.Image, data lightning.SegmentData, alpha float32, blend ebiten.Blend) {
	col := r.cycle.Color()
	for _, p := range Layout(data, r.sizes) {
		img := r.capImg
		if p.Kind == SpriteMiddle {
			img = r.middle
		}

		r.op = ebiten.DrawImageOptions{}
		r.op.GeoM = p.GeoM(r.sizes.TextureHeight(p.Kind))
		r.op.ColorScale.ScaleWithColor(col)
		r.op.ColorScale.ScaleAlpha(alpha)
		r.op.Blend = blend
		r.op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, &r.op)
	}
}
