package lightning

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/decker502/lightning/pkg/geom"
)

// NewRand 创建可复现的随机数来源（PCG），相同种子产生相同的闪电序列
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
}

// Controller 每 tick 驱动闪电的重新生成
//
// 与具体的输入和绘制后端解耦，只依赖线段池和生成器。
// 每 thinkTicks 个 tick 清空线段池并从 origin 到 target 重新生成一道闪电；
// 两次生成之间线段池内容保持不变，渲染器每帧都绘制同一组线段。
type Controller struct {
	pool       *SegmentPool
	gen        *Generator
	origin     geom.Vec2
	thickness  float64
	thinkTicks int

	ticks         int
	paused        bool
	generated     bool
	regenerations int
	lastCount     int
}

// NewController 创建控制器
// thinkTicks < 1 时按 1 处理（每 tick 都重新生成）
func NewController(pool *SegmentPool, gen *Generator, origin geom.Vec2, thickness float64, thinkTicks int) *Controller {
	return &Controller{
		pool:       pool,
		gen:        gen,
		origin:     origin,
		thickness:  thickness,
		thinkTicks: max(1, thinkTicks),
	}
}

// Step 推进一个 tick，target 为闪电终点（通常是光标位置）
func (c *Controller) Step(target geom.Vec2) error {
	c.ticks++
	if c.paused {
		return nil
	}
	if c.generated && c.ticks < c.thinkTicks {
		return nil
	}
	c.ticks = 0

	c.pool.PurgeAll()
	n, err := c.gen.Generate(c.origin, target, c.thickness)
	if err != nil {
		return fmt.Errorf("failed to regenerate bolt: %w", err)
	}

	c.generated = true
	c.regenerations++
	c.lastCount = n
	return nil
}

// TogglePause 切换暂停状态，返回切换后的状态
// 暂停期间线段池保持最后一道闪电
func (c *Controller) TogglePause() bool {
	c.paused = !c.paused
	log.Printf("[Controller] Paused: %v", c.paused)
	return c.paused
}

// SetOrigin 设置闪电起点（窗口尺寸变化或点击时调用）
func (c *Controller) SetOrigin(p geom.Vec2) {
	c.origin = p
}

// Origin 返回闪电起点
func (c *Controller) Origin() geom.Vec2 {
	return c.origin
}

// ThinkTicks 返回重新生成间隔（tick 数）
func (c *Controller) ThinkTicks() int {
	return c.thinkTicks
}

// Paused 返回是否暂停
func (c *Controller) Paused() bool {
	return c.paused
}

// Regenerations 返回累计生成次数
func (c *Controller) Regenerations() int {
	return c.regenerations
}

// LastCount 返回最近一次生成的线段数
func (c *Controller) LastCount() int {
	return c.lastCount
}
