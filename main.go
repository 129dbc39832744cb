// Package main 闪电演示程序入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>   配置文件路径（默认使用嵌入的 data/lightning.yaml）
//	--seed <n>        随机种子，相同种子生成相同的闪电序列（0 = 使用当前时间）
//	--verbose         启用详细日志输出
//
// Controls:
//
//	Mouse     - 闪电从起点（默认窗口中心）劈向光标
//	Click     - 把起点移到点击位置
//	Space     - 暂停/恢复重新生成
//	H         - 显示/隐藏 HUD
//	F11       - 切换全屏
//	Escape    - 退出
package main

import (
	"flag"
	"log"

	"github.com/decker502/lightning/pkg/app"
	"github.com/decker502/lightning/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configFlag  = flag.String("config", "", "Path to lightning config YAML (default: embedded data/lightning.yaml)")
	seedFlag    = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	cfg := gameApp.Settings()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Loop.TPS)

	// Start the loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
	log.Printf("[Main] Exit")
}
