package render

import (
	"image/color"
	"math"
	"testing"
)

var whiteRGBA = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestNewColorCycle_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		step      int
		floor     int
		wantStep  int
		wantFloor int
	}{
		{"explicit", 10, 100, 10, 100},
		{"zero step falls back", 0, 100, DefaultColorStep, 100},
		{"negative floor clamped", 5, -20, 5, 0},
		{"floor above range clamped", 5, 300, 5, 254},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewColorCycle(tt.step, tt.floor)
			if c.step != tt.wantStep || c.floor != tt.wantFloor {
				t.Errorf("step/floor = %d/%d, want %d/%d", c.step, c.floor, tt.wantStep, tt.wantFloor)
			}
			if c.Color() != whiteRGBA {
				t.Errorf("initial color = %v, want white", c.Color())
			}
			if c.Phase() != PhaseRed || c.Direction() != Down {
				t.Errorf("initial state = %v/%v, want Red/Down", c.Phase(), c.Direction())
			}
		})
	}
}

func TestColorCycle_OnlyActiveChannelChanges(t *testing.T) {
	c := NewColorCycle(5, 120)

	for i := 0; i < 10; i++ {
		c.Step()
	}
	if c.R != 205 || c.G != 255 || c.B != 255 {
		t.Errorf("after 10 steps color = (%d,%d,%d), want (205,255,255)", c.R, c.G, c.B)
	}
}

func TestColorCycle_FullPhase(t *testing.T) {
	c := NewColorCycle(5, 120)
	n := c.PhaseLength()
	if n != 54 {
		t.Fatalf("PhaseLength() = %d, want 54", n)
	}

	// 下降段结束时触底并反向
	for i := 0; i < n/2; i++ {
		c.Step()
	}
	if c.R != 120 || c.Direction() != Up || c.Phase() != PhaseRed {
		t.Fatalf("mid-phase state R=%d dir=%v phase=%v, want 120/Up/Red", c.R, c.Direction(), c.Phase())
	}
	if c.Pulse() != 0 {
		t.Errorf("Pulse() at floor = %f, want 0", c.Pulse())
	}

	for i := 0; i < n/2; i++ {
		c.Step()
	}
	if c.R != 255 || c.Phase() != PhaseGreen || c.Direction() != Down {
		t.Errorf("end of phase R=%d phase=%v dir=%v, want 255/Green/Down", c.R, c.Phase(), c.Direction())
	}
}

func TestColorCycle_PhaseOrderWraps(t *testing.T) {
	// 步长不能整除区间时，触底和触顶都会被截断
	c := NewColorCycle(10, 120)
	n := c.PhaseLength()

	want := []Phase{PhaseGreen, PhaseBlue, PhaseRed, PhaseGreen}
	for i, p := range want {
		for s := 0; s < n; s++ {
			c.Step()
		}
		if c.Phase() != p {
			t.Fatalf("after %d phases got %v, want %v", i+1, c.Phase(), p)
		}
		if c.Color() != whiteRGBA {
			t.Errorf("after %d phases color = %v, want white", i+1, c.Color())
		}
	}
}

func TestColorCycle_PulseRange(t *testing.T) {
	c := NewColorCycle(7, 50)
	for i := 0; i < 3*c.PhaseLength(); i++ {
		c.Step()
		p := c.Pulse()
		if p < 0 || p > 1 || math.IsNaN(p) {
			t.Fatalf("step %d: Pulse() = %f out of [0, 1]", i, p)
		}
		if c.R < 50 || c.G < 50 || c.B < 50 {
			t.Fatalf("step %d: channel below floor: %v", i, c.Color())
		}
	}
}

func TestPhase_String(t *testing.T) {
	if PhaseRed.String() != "Red" || PhaseGreen.String() != "Green" || PhaseBlue.String() != "Blue" {
		t.Error("unexpected phase names")
	}
	if Phase(7).String() != "Unknown" {
		t.Errorf("Phase(7).String() = %q", Phase(7).String())
	}
}
