package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/lightning/pkg/config"
	"github.com/decker502/lightning/pkg/embedded"
	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
	"github.com/hajimehoshi/ebiten/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lightning.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "pool:\n  capacity: 77\n"))
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Pool.Capacity != 77 {
			t.Errorf("capacity = %d, want 77", cfg.Pool.Capacity)
		}
	})

	t.Run("embedded config", func(t *testing.T) {
		embedded.Init(fstest.MapFS{
			config.DefaultConfigPath: {Data: []byte("pool:\n  capacity: 33\n")},
		})
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Pool.Capacity != 33 {
			t.Errorf("capacity = %d, want 33", cfg.Pool.Capacity)
		}
	})

	t.Run("defaults when nothing embedded", func(t *testing.T) {
		embedded.Init(fstest.MapFS{})
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Pool.Capacity != config.DefaultLightningConfig().Pool.Capacity {
			t.Errorf("expected default capacity, got %d", cfg.Pool.Capacity)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "pool:\n  capacity: -1\n"))
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestNewApp(t *testing.T) {
	path := writeConfig(t, `
pool:
  capacity: 256
window:
  width: 640
  height: 480
loop:
  tps: 60
  thinkIntervalMs: 100
`)

	a, err := NewApp(Config{Verbose: true, ConfigPath: path, Seed: 7})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer a.Close()

	if w, h := a.Layout(1920, 1080); w != 640 || h != 480 {
		t.Errorf("Layout() = %dx%d, want 640x480", w, h)
	}
	if a.controller.Origin().X != 320 || a.controller.Origin().Y != 240 {
		t.Errorf("origin = %v, want window center", a.controller.Origin())
	}
	if a.controller.ThinkTicks() != 6 {
		t.Errorf("thinkTicks = %d, want 6", a.controller.ThinkTicks())
	}
	if a.pool.Cap() != 256 || !a.IsVerbose() {
		t.Errorf("unexpected app state: cap=%d verbose=%v", a.pool.Cap(), a.IsVerbose())
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "bolt:\n  density: 0\n")
	if _, err := NewApp(Config{Verbose: true, ConfigPath: path}); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestApp_CloseReleasesPool(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeConfig(t, "pool:\n  capacity: 8\n"), Seed: 1})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	a.Close()
	if a.pool.Initialized() {
		t.Error("pool should be closed")
	}
	if err := a.controller.Step(geom.V(0, 0)); !errors.Is(err, lightning.ErrPoolUninitialized) {
		t.Errorf("Step after Close = %v, want ErrPoolUninitialized", err)
	}
}

func TestNewApp_SeedAndHUD(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeConfig(t, "pool:\n  capacity: 8\n"), Seed: 5})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer a.Close()

	if a.Seed() != 5 {
		t.Errorf("Seed() = %d, want 5", a.Seed())
	}
	if !a.ShowHUD() {
		t.Error("HUD should be visible by default")
	}
}

func TestNewApp_TimeSeed(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeConfig(t, "pool:\n  capacity: 8\n")})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer a.Close()

	if a.Seed() == 0 {
		t.Error("seed 0 should be replaced by a time based seed")
	}
}

// TestApp_UpdateDraw 在主循环之外驱动一帧：没有输入时光标位于 (0, 0)，
// 第一次 Update 必然生成一道从窗口中心到光标的闪电
func TestApp_UpdateDraw(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeConfig(t, `
pool:
  capacity: 512
window:
  width: 320
  height: 240
`), Seed: 3})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	defer a.Close()

	if err := a.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.controller.Regenerations() != 1 {
		t.Errorf("Regenerations() = %d, want 1", a.controller.Regenerations())
	}
	if a.pool.InUse() == 0 || a.pool.InUse() != a.controller.LastCount() {
		t.Errorf("InUse() = %d, LastCount() = %d", a.pool.InUse(), a.controller.LastCount())
	}
	segs := a.pool.Snapshot()
	if last := segs[len(segs)-1].End; last != (geom.Vec2{}) {
		t.Errorf("bolt ends at %v, want the cursor at (0, 0)", last)
	}

	screen := ebiten.NewImage(320, 240)
	defer screen.Deallocate()
	a.Draw(screen)

	// HUD 隐藏时也只绘制闪电
	a.showHUD = false
	a.Draw(screen)

	// 后续 tick 在思考间隔内保持同一道闪电
	if err := a.Update(); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if a.controller.ThinkTicks() != 3 || a.controller.Regenerations() != 1 {
		t.Errorf("thinkTicks = %d, regenerations = %d; want 3 and 1",
			a.controller.ThinkTicks(), a.controller.Regenerations())
	}
}
