// Package main 闪电线段导出工具
//
// 用固定种子离线生成一道闪电，把池中的线段以表格或 YAML 输出，
// 用于回归对比和调参；check 子命令校验配置文件。
//
// Usage:
//
//	go run ./cmd/boltgen dump --from 0,0 --to 400,0 --seed 42
//	go run ./cmd/boltgen dump --format yaml > bolt.yaml
//	go run ./cmd/boltgen check data/lightning.yaml
package main

import (
	"os"

	"github.com/decker502/lightning/cmd/boltgen/commands"
)

// 版本信息，构建时通过 -ldflags 注入
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// 错误已经由 printer 输出
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
