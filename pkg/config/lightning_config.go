package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/decker502/lightning/pkg/lightning"
	"github.com/decker502/lightning/pkg/render"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内置配置文件路径（同时也是 embed 路径）
const DefaultConfigPath = "data/lightning.yaml"

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid lightning config")

// LightningConfig 闪电演示程序配置
//
// 配置文件位置: data/lightning.yaml
// 未出现在文件中的字段保留 DefaultLightningConfig 的默认值。
type LightningConfig struct {
	// Pool 线段池配置
	Pool PoolConfig `yaml:"pool"`

	// Bolt 闪电生成参数
	Bolt BoltConfig `yaml:"bolt"`

	// Loop 主循环配置
	Loop LoopConfig `yaml:"loop"`

	// Window 窗口配置
	Window WindowConfig `yaml:"window"`

	// Render 渲染参数
	Render RenderConfig `yaml:"render"`

	// Textures 可选的贴图文件路径，为空时使用程序生成的贴图
	Textures TexturesConfig `yaml:"textures"`
}

// PoolConfig 线段池配置
type PoolConfig struct {
	// Capacity 线段池容量，一道闪电最多占用 length/(thickness*density)+1 个
	Capacity int `yaml:"capacity"`
}

// BoltConfig 闪电生成参数
type BoltConfig struct {
	// Sway 最大横向偏移（像素）
	Sway float64 `yaml:"sway"`

	// Density 每个采样点对应的线宽倍数，越小采样越密
	Density float64 `yaml:"density"`

	// TaperStart 从该横坐标开始收尾（0~1）
	TaperStart float64 `yaml:"taperStart"`

	// Thickness 线宽（像素）
	Thickness float64 `yaml:"thickness"`
}

// LoopConfig 主循环配置
type LoopConfig struct {
	// TPS 每秒逻辑帧数
	TPS int `yaml:"tps"`

	// ThinkIntervalMs 重新生成闪电的间隔（毫秒）
	ThinkIntervalMs int `yaml:"thinkIntervalMs"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RenderConfig 渲染参数
type RenderConfig struct {
	// ColorStep 颜色通道每 tick 变化量
	ColorStep int `yaml:"colorStep"`

	// ColorFloor 颜色通道最低值
	ColorFloor int `yaml:"colorFloor"`

	// BloomScale 辉光线宽放大系数
	BloomScale float64 `yaml:"bloomScale"`

	// BloomAlpha 辉光最大不透明度（0~1）
	BloomAlpha float64 `yaml:"bloomAlpha"`
}

// TexturesConfig 贴图路径
type TexturesConfig struct {
	Middle string `yaml:"middle"`
	Cap    string `yaml:"cap"`
}

// DefaultLightningConfig 返回默认配置
func DefaultLightningConfig() *LightningConfig {
	params := lightning.DefaultParams()
	opts := render.DefaultOptions()
	return &LightningConfig{
		Pool: PoolConfig{Capacity: 10000},
		Bolt: BoltConfig{
			Sway:       params.Sway,
			Density:    params.Density,
			TaperStart: params.TaperStart,
			Thickness:  lightning.DefaultThickness,
		},
		Loop: LoopConfig{
			TPS:             60,
			ThinkIntervalMs: 50,
		},
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Lightning",
		},
		Render: RenderConfig{
			ColorStep:  opts.ColorStep,
			ColorFloor: opts.ColorFloor,
			BloomScale: opts.BloomScale,
			BloomAlpha: opts.BloomAlpha,
		},
	}
}

// LoadLightningConfig 加载闪电配置
//
// 参数:
//   - path: 配置文件路径（如 "data/lightning.yaml"）
//
// 返回:
//   - *LightningConfig: 合并默认值并校验后的配置
//   - error: 读取、解析或校验失败
func LoadLightningConfig(path string) (*LightningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lightning config: %w", err)
	}
	return ParseLightningConfig(data)
}

// ParseLightningConfig 从 YAML 内容解析配置（用于嵌入资源和测试）
func ParseLightningConfig(data []byte) (*LightningConfig, error) {
	config := DefaultLightningConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse lightning config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *LightningConfig) Validate() error {
	if c.Pool.Capacity <= 0 {
		return fmt.Errorf("%w: pool.capacity must be > 0, got %d", ErrInvalidConfig, c.Pool.Capacity)
	}

	if err := c.BoltParams().Validate(); err != nil {
		return fmt.Errorf("%w: bolt: %w", ErrInvalidConfig, err)
	}
	if !(c.Bolt.Thickness > 0) || math.IsInf(c.Bolt.Thickness, 0) {
		return fmt.Errorf("%w: bolt.thickness must be > 0, got %v", ErrInvalidConfig, c.Bolt.Thickness)
	}

	if c.Loop.TPS <= 0 {
		return fmt.Errorf("%w: loop.tps must be > 0, got %d", ErrInvalidConfig, c.Loop.TPS)
	}
	if c.Loop.ThinkIntervalMs < 0 {
		return fmt.Errorf("%w: loop.thinkIntervalMs must be >= 0, got %d", ErrInvalidConfig, c.Loop.ThinkIntervalMs)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	if c.Render.ColorStep <= 0 {
		return fmt.Errorf("%w: render.colorStep must be > 0, got %d", ErrInvalidConfig, c.Render.ColorStep)
	}
	if c.Render.ColorFloor < 0 || c.Render.ColorFloor > 254 {
		return fmt.Errorf("%w: render.colorFloor must be in [0, 254], got %d", ErrInvalidConfig, c.Render.ColorFloor)
	}
	if c.Render.BloomScale < 0 {
		return fmt.Errorf("%w: render.bloomScale must be >= 0, got %v", ErrInvalidConfig, c.Render.BloomScale)
	}
	if c.Render.BloomAlpha < 0 || c.Render.BloomAlpha > 1 {
		return fmt.Errorf("%w: render.bloomAlpha must be in [0, 1], got %v", ErrInvalidConfig, c.Render.BloomAlpha)
	}

	return nil
}

// BoltParams 转换为生成器参数
func (c *LightningConfig) BoltParams() lightning.Params {
	return lightning.Params{
		Sway:       c.Bolt.Sway,
		Density:    c.Bolt.Density,
		TaperStart: c.Bolt.TaperStart,
	}
}

// RenderOptions 转换为渲染参数
func (c *LightningConfig) RenderOptions() render.Options {
	return render.Options{
		ColorStep:  c.Render.ColorStep,
		ColorFloor: c.Render.ColorFloor,
		BloomScale: c.Render.BloomScale,
		BloomAlpha: c.Render.BloomAlpha,
	}
}

// ThinkTicks 把重新生成间隔换算为 tick 数，至少为 1（每 tick 都重新生成）
func (c *LightningConfig) ThinkTicks() int {
	ticks := c.Loop.ThinkIntervalMs * c.Loop.TPS / 1000
	return max(1, ticks)
}
