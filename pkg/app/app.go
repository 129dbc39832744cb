// Package app 提供闪电演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/lightning/pkg/config"
	"github.com/decker502/lightning/pkg/embedded"
	"github.com/decker502/lightning/pkg/game"
	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
	"github.com/decker502/lightning/pkg/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用嵌入的 data/lightning.yaml
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
}

// App 是闪电演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg        *config.LightningConfig
	pool       *lightning.SegmentPool
	controller *lightning.Controller
	renderer   *render.SegmentRenderer
	seed       uint64
	showHUD    bool
	verbose    bool
	pointer    pointerInput

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	lc, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	pool, err := lightning.NewSegmentPool(lc.Pool.Capacity)
	if err != nil {
		return nil, fmt.Errorf("线段池初始化失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[App] Random seed: %d", seed)
	gen := lightning.NewGenerator(pool, lightning.NewRand(seed), lc.BoltParams())

	// 贴图：配置了路径则加载，否则使用程序生成的贴图
	resourceManager := game.NewResourceManager()
	middle := resourceManager.LoadOrDefault(lc.Textures.Middle, render.MiddleChunkImage(1, 8))
	capImg := resourceManager.LoadOrDefault(lc.Textures.Cap, render.CapImage(4, 8))

	origin := geom.V(float64(lc.Window.Width)/2, float64(lc.Window.Height)/2)

	return &App{
		cfg:        lc,
		pool:       pool,
		controller: lightning.NewController(pool, gen, origin, lc.Bolt.Thickness, lc.ThinkTicks()),
		renderer:   render.NewSegmentRenderer(middle, capImg, lc.RenderOptions()),
		seed:       seed,
		showHUD:    true,
		verbose:    cfg.Verbose,
	}, nil
}

// LoadConfig 加载配置
//
// path 非空时从文件加载；否则依次尝试嵌入资源和内置默认值。
func LoadConfig(path string) (*config.LightningConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载配置文件: %s", path)
		return config.LoadLightningConfig(path)
	}

	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if err != nil {
		log.Printf("[Config] 嵌入配置不可用，使用默认值: %v", err)
		return config.DefaultLightningConfig(), nil
	}
	return config.ParseLightningConfig(data)
}

// Settings 返回生效的配置
func (a *App) Settings() *config.LightningConfig {
	return a.cfg
}

// ShowHUD 报告是否绘制 HUD
func (a *App) ShowHUD() bool {
	return a.showHUD
}

// Seed 返回本次运行使用的随机种子（用 --seed 复现）
func (a *App) Seed() uint64 {
	return a.seed
}

// Update 更新逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// H 切换 HUD
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.controller.TogglePause()
	}

	// 鼠标左键把闪电起点移到点击位置；移动端没有鼠标，触点只用于瞄准
	ptr := a.pointer.Read()
	target := geom.V(float64(ptr.X), float64(ptr.Y))
	if ptr.JustClicked {
		a.controller.SetOrigin(target)
		log.Printf("[App] Origin moved to (%d, %d)", ptr.X, ptr.Y)
	}

	a.renderer.Update()
	return a.controller.Step(target)
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.renderer.Draw(screen, a.pool.Segments())

	if !a.showHUD {
		return
	}
	status := ""
	if a.controller.Paused() {
		status = "  [PAUSED]"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Segments: %d/%d  TPS: %.0f  Phase: %s  Seed: %d%s\n%s",
		a.pool.InUse(), a.pool.Cap(), ebiten.ActualTPS(), a.renderer.Cycle().Phase(), a.seed, status, helpLine()))
}

// HUD 第二行的操作提示
const (
	desktopHelp = "Click: move origin  Space: pause  H: hide HUD  F11: fullscreen  Esc: quit"
	mobileHelp  = "Touch: aim"
)

func helpLine() string {
	if IsMobile() {
		return mobileHelp
	}
	return desktopHelp
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Close 释放线段池
func (a *App) Close() {
	a.pool.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
