package render

import (
	"math"
	"testing"

	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
)

func applyGeoM(t *testing.T, p SpritePlacement, tex TextureSizes, x, y float64) geom.Vec2 {
	t.Helper()
	m := p.GeoM(tex.TextureHeight(p.Kind))
	gx, gy := m.Apply(x, y)
	return geom.V(gx, gy)
}

func TestLayout_ThreeSprites(t *testing.T) {
	tex := DefaultTextureSizes()
	seg := lightning.SegmentData{Start: geom.V(10, 20), End: geom.V(40, 60), Thickness: 16}

	placements := Layout(seg, tex)
	if len(placements) != 3 {
		t.Fatalf("Layout returned %d placements, want 3", len(placements))
	}

	wantKinds := []SpriteKind{SpriteMiddle, SpriteStartCap, SpriteEndCap}
	for i, p := range placements {
		if p.Kind != wantKinds[i] {
			t.Errorf("placement %d kind = %v, want %v", i, p.Kind, wantKinds[i])
		}
		if math.Abs(p.Angle-math.Atan2(40, 30)) > 1e-12 {
			t.Errorf("placement %d angle = %f", i, p.Angle)
		}
	}

	mid := placements[0]
	if mid.ScaleX != 51 || mid.ScaleY != 2 || mid.FlipX {
		t.Errorf("middle placement = %+v, want scale 51x2 unflipped", mid)
	}
	if !placements[1].FlipX || placements[2].FlipX {
		t.Error("only the start cap should be flipped")
	}
}

func TestLayout_GeoMPlacesSpritesAlongSegment(t *testing.T) {
	tex := DefaultTextureSizes()
	seg := lightning.SegmentData{Start: geom.V(10, 20), End: geom.V(40, 60), Thickness: 16}
	p := Layout(seg, tex)

	tests := []struct {
		name   string
		sprite SpritePlacement
		x, y   float64
		want   geom.Vec2
	}{
		// 方向 (0.6, 0.8)，线宽 16 → 端帽长度 4*2 = 8
		{"middle anchor", p[0], 0, 4, geom.V(10, 20)},
		{"middle far edge", p[0], 1, 4, geom.V(40.6, 60.8)},
		{"middle top edge", p[0], 0, 0, geom.V(16.4, 15.2)},
		{"start cap anchor", p[1], 0, 4, geom.V(10, 20)},
		{"start cap tip", p[1], 4, 4, geom.V(5.2, 13.6)},
		{"end cap anchor", p[2], 0, 4, geom.V(40, 60)},
		{"end cap tip", p[2], 4, 4, geom.V(44.8, 66.4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyGeoM(t, tt.sprite, tex, tt.x, tt.y)
			if !geom.ApproxEqual(got, tt.want, 1e-9) {
				t.Errorf("texture (%v, %v) -> %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestLayout_ThicknessScalesVertically(t *testing.T) {
	tex := TextureSizes{MiddleW: 2, MiddleH: 16, CapW: 8, CapH: 16}

	tests := []struct {
		thickness  float64
		wantMidY   float64
		wantCapX   float64
		wantHeight float64
	}{
		{8, 0.5, 1, 8},
		{4, 0.25, 0.5, 4},
		{24, 1.5, 3, 24},
	}

	for _, tt := range tests {
		seg := lightning.SegmentData{Start: geom.V(0, 0), End: geom.V(100, 0), Thickness: tt.thickness}
		p := Layout(seg, tex)

		if p[0].ScaleY != tt.wantMidY || p[0].ScaleX != 50.5 {
			t.Errorf("thickness %v: middle scale %vx%v, want 50.5x%v", tt.thickness, p[0].ScaleX, p[0].ScaleY, tt.wantMidY)
		}
		if p[2].ScaleX != tt.wantCapX {
			t.Errorf("thickness %v: cap ScaleX = %v, want %v", tt.thickness, p[2].ScaleX, tt.wantCapX)
		}
		if h := p[0].ScaleY * tex.MiddleH; h != tt.wantHeight {
			t.Errorf("thickness %v: on-screen height %v, want %v", tt.thickness, h, tt.wantHeight)
		}
	}
}

func TestLayout_ZeroLengthSegment(t *testing.T) {
	seg := lightning.SegmentData{Start: geom.V(5, 5), End: geom.V(5, 5), Thickness: 8}
	p := Layout(seg, DefaultTextureSizes())

	if p[0].ScaleX != 1 || p[0].Angle != 0 {
		t.Errorf("zero-length middle = %+v, want 1px wide at angle 0", p[0])
	}
	for _, sp := range p {
		if math.IsNaN(sp.ScaleX) || math.IsNaN(sp.ScaleY) || math.IsNaN(sp.Angle) {
			t.Fatalf("NaN in placement %+v", sp)
		}
	}
}

func TestTextureSizes_Lookup(t *testing.T) {
	tex := DefaultTextureSizes()
	if tex.TextureWidth(SpriteMiddle) != 1 || tex.TextureHeight(SpriteMiddle) != 8 {
		t.Error("unexpected middle texture size")
	}
	if tex.TextureWidth(SpriteStartCap) != 4 || tex.TextureHeight(SpriteEndCap) != 8 {
		t.Error("unexpected cap texture size")
	}
}
