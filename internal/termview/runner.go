package termview

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
	"github.com/decker502/lightning/pkg/render"
	"github.com/gdamore/tcell/v2"
)

// sweepSpeed 没有鼠标输入时目标点绕中心旋转的角速度（弧度/tick）
const sweepSpeed = 0.03

// Runner 终端预览主循环
//
// 线段池和生成器只在 Run 所在的 goroutine 中访问；
// 输入事件由独立 goroutine 读取后通过 channel 转发。
type Runner struct {
	screen     tcell.Screen
	view       *View
	pool       *lightning.SegmentPool
	controller *lightning.Controller
	cycle      *render.ColorCycle
	interval   time.Duration

	target    geom.Vec2
	mouseSeen bool
	frame     int
}

// NewRunner 创建主循环
// interval 为每 tick 的时长（如 1s/60）
func NewRunner(screen tcell.Screen, view *View, pool *lightning.SegmentPool, controller *lightning.Controller, cycle *render.ColorCycle, interval time.Duration) *Runner {
	r := &Runner{
		screen:     screen,
		view:       view,
		pool:       pool,
		controller: controller,
		cycle:      cycle,
		interval:   interval,
	}
	r.recenter()
	return r
}

// Target 返回当前闪电终点
func (r *Runner) Target() geom.Vec2 {
	return r.target
}

// recenter 把闪电起点放到可绘制区域中心
func (r *Runner) recenter() {
	w, h := r.view.WorldSize()
	r.controller.SetOrigin(geom.V(w/2, h/2))
}

// SweepTarget 返回第 frame 个 tick 时绕 center 旋转的目标点
func SweepTarget(center geom.Vec2, radius float64, frame int) geom.Vec2 {
	angle := float64(frame) * sweepSpeed
	return center.Add(geom.V(math.Cos(angle), math.Sin(angle)).Scale(radius))
}

// HandleEvent 处理一个输入事件，返回 false 表示退出
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				r.controller.TogglePause()
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		cw, ch := r.view.CellSize()
		r.target = CellCenter(x, y, cw, ch)
		r.mouseSeen = true

	case *tcell.EventResize:
		r.screen.Sync()
		r.recenter()
		log.Printf("[Runner] Resize, origin now %v", r.controller.Origin())
	}
	return true
}

// Tick 推进一个 tick：更新目标点、按需重新生成闪电并重绘
func (r *Runner) Tick() error {
	r.frame++
	r.cycle.Step()

	if !r.mouseSeen {
		w, h := r.view.WorldSize()
		origin := r.controller.Origin()
		r.target = SweepTarget(origin, 0.45*math.Min(w, h), r.frame)
	}

	if err := r.controller.Step(r.target); err != nil {
		return err
	}

	status := fmt.Sprintf(" Segments: %d/%d  Phase: %s  q: quit  space: pause ",
		r.pool.InUse(), r.pool.Cap(), r.cycle.Phase())
	if r.controller.Paused() {
		status += "[PAUSED] "
	}
	r.view.Draw(r.pool.Segments(), r.cycle.Color(), status)
	return nil
}

// Run 运行主循环直到 ctx 取消、用户退出或生成失败
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := r.interval
	if interval <= 0 {
		interval = 16 * time.Millisecond // ~60 FPS
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				// 屏幕已 Fini
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if err := r.Tick(); err != nil {
				return err
			}
		}
	}
}
