package render

import (
	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
	"github.com/hajimehoshi/ebiten/v2"
)

// BaseThickness 贴图原始高度对应的线宽，线宽为 8 时精灵按 1:1 绘制
const BaseThickness = 8.0

// SpriteKind 精灵类型
type SpriteKind int

const (
	SpriteMiddle SpriteKind = iota
	SpriteStartCap
	SpriteEndCap
)

// TextureSizes 中段和端帽贴图的像素尺寸
type TextureSizes struct {
	MiddleW, MiddleH float64
	CapW, CapH       float64
}

// DefaultTextureSizes 中段 1x8，端帽 4x8
func DefaultTextureSizes() TextureSizes {
	return TextureSizes{MiddleW: 1, MiddleH: 8, CapW: 4, CapH: 8}
}

// SpritePlacement 一个精灵在屏幕上的摆放方式
//
// 贴图以左边中点为锚点：先缩放（FlipX 时水平镜像，贴图向锚点左侧延伸），
// 再绕锚点旋转 Angle，最后平移到 Anchor。
type SpritePlacement struct {
	Kind   SpriteKind
	Anchor geom.Vec2
	ScaleX float64
	ScaleY float64
	Angle  float64 // 弧度
	FlipX  bool
}

// Layout 计算一条线段的三个精灵
//
// 中段从 Start 开始沿线段拉伸到 len+1（多出的 1 像素盖住相邻线段的接缝），
// 起点端帽水平翻转后放在 Start 之前，终点端帽放在 End 之后。
func Layout(seg lightning.SegmentData, tex TextureSizes) []SpritePlacement {
	tangent := seg.Vector()
	angle := tangent.Angle()
	thick := seg.Thickness / BaseThickness

	return []SpritePlacement{
		{
			Kind:   SpriteMiddle,
			Anchor: seg.Start,
			ScaleX: (tangent.Len() + 1) / tex.MiddleW,
			ScaleY: thick * BaseThickness / tex.MiddleH,
			Angle:  angle,
		},
		{
			Kind:   SpriteStartCap,
			Anchor: seg.Start,
			ScaleX: thick,
			ScaleY: thick * BaseThickness / tex.CapH,
			Angle:  angle,
			FlipX:  true,
		},
		{
			Kind:   SpriteEndCap,
			Anchor: seg.End,
			ScaleX: thick,
			ScaleY: thick * BaseThickness / tex.CapH,
			Angle:  angle,
		},
	}
}

// GeoM 构建精灵的几何变换
// texH 为精灵所用贴图的高度，用于把锚点移到左边中点
func (p SpritePlacement) GeoM(texH float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(0, -texH/2)
	sx := p.ScaleX
	if p.FlipX {
		sx = -sx
	}
	m.Scale(sx, p.ScaleY)
	m.Rotate(p.Angle)
	m.Translate(p.Anchor.X, p.Anchor.Y)
	return m
}

// TextureHeight 返回该类型精灵使用的贴图高度
func (t TextureSizes) TextureHeight(kind SpriteKind) float64 {
	if kind == SpriteMiddle {
		return t.MiddleH
	}
	return t.CapH
}

// TextureWidth 返回该类型精灵使用的贴图宽度
func (t TextureSizes) TextureWidth(kind SpriteKind) float64 {
	if kind == SpriteMiddle {
		return t.MiddleW
	}
	return t.CapW
}
