// Package main 终端闪电预览
//
// 在没有图形环境的机器上（如 SSH 会话）预览闪电效果。
//
// Usage:
//
//	go run ./cmd/boltterm [flags]
//
// Flags:
//
//	--config <path>   配置文件路径（默认使用内置默认值）
//	--seed <n>        随机种子（0 = 使用当前时间）
//	--verbose         把日志写到 boltterm.log
//
// Controls:
//
//	Mouse     - 闪电劈向鼠标位置（没有鼠标输入时终点绕中心旋转）
//	Space     - 暂停/恢复
//	q/Escape  - 退出
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/decker502/lightning/internal/termview"
	"github.com/decker502/lightning/pkg/config"
	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
	"github.com/decker502/lightning/pkg/render"
	"github.com/gdamore/tcell/v2"
)

var (
	configFlag  = flag.String("config", "", "Path to lightning config YAML (default: built-in defaults)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	verboseFlag = flag.Bool("verbose", false, "Write logs to boltterm.log")
)

func main() {
	flag.Parse()

	// 终端被 tcell 接管，日志只能写文件
	log.SetOutput(io.Discard)
	if *verboseFlag {
		f, err := os.Create("boltterm.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "boltterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.DefaultLightningConfig()
	if *configFlag != "" {
		loaded, err := config.LoadLightningConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	pool, err := lightning.NewSegmentPool(cfg.Pool.Capacity)
	if err != nil {
		return err
	}
	defer pool.Close()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := lightning.NewGenerator(pool, lightning.NewRand(seed), cfg.BoltParams())
	controller := lightning.NewController(pool, gen, geom.Vec2{}, cfg.Bolt.Thickness, cfg.ThinkTicks())
	cycle := render.NewColorCycle(cfg.Render.ColorStep, cfg.Render.ColorFloor)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	view := termview.NewView(screen, termview.DefaultCellWidth, termview.DefaultCellHeight)
	runner := termview.NewRunner(screen, view, pool, controller, cycle, time.Second/time.Duration(cfg.Loop.TPS))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("[BoltTerm] Start, seed %d", seed)
	return runner.Run(ctx)
}
