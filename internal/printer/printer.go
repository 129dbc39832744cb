// Package printer 命令行工具的彩色输出
//
// 所有输出都写到可替换的 writer（默认 stdout/stderr），
// 命令在执行前通过 SetOutput 接到 cobra 的输出上，方便测试捕获。
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// 非 TTY 下也保留颜色，设置 NO_COLOR 可关闭
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)

	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput 替换标准输出和错误输出，nil 表示恢复默认
func SetOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	out = stdout
	errOut = stderr
}

// DisableColor 关闭颜色输出（--no-color）
func DisableColor() {
	color.NoColor = true
}

// Success 绿色输出，自动加 ✓ 前缀
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(out, msg)
}

// Info 默认颜色输出
func Info(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// Warning 黄色输出，写到错误输出
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(errOut, msg)
}

// Step 青色的步骤提示
func Step(format string, a ...any) {
	cyan.Fprintf(out, format, a...)
}

// Error 输出带说明和建议的错误，返回给 cobra 的简短 error
//
// 标题红色加粗；建议只有一条时直接输出，多条时编号列出。
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(errOut, "%s\n\n", title)
	fmt.Fprintf(errOut, "%s\n", explanation)

	if len(suggestions) > 0 {
		fmt.Fprintln(errOut)
		if len(suggestions) == 1 {
			fmt.Fprintf(errOut, "%s\n", suggestions[0])
		} else {
			fmt.Fprintln(errOut, "Either:")
			for i, s := range suggestions {
				fmt.Fprintf(errOut, "  %d. %s\n", i+1, s)
			}
		}
	}

	return fmt.Errorf("%s", title)
}

// ErrorWithContext 同 Error，额外按给定顺序输出上下文字段
func ErrorWithContext(title string, explanation string, keys []string, context map[string]string, suggestions []string) error {
	red.Fprintf(errOut, "%s\n\n", title)
	fmt.Fprintf(errOut, "%s\n", explanation)

	if len(keys) > 0 {
		fmt.Fprintln(errOut)
		for _, k := range keys {
			fmt.Fprintf(errOut, "  %s: %s\n", k, context[k])
		}
	}

	if len(suggestions) > 0 {
		fmt.Fprintln(errOut)
		for _, s := range suggestions {
			fmt.Fprintf(errOut, "  - %s\n", s)
		}
	}

	return fmt.Errorf("%s", title)
}
