package commands

import (
	"fmt"
	"io"
	"log"

	"github.com/decker502/lightning/internal/printer"
	"github.com/spf13/cobra"
)

var versionString = "dev"

// NewRootCmd 构建命令树
//
// 每次调用都返回全新的命令和 flag 状态，测试可以并行构建互不影响的实例。
func NewRootCmd() *cobra.Command {
	var verbose, noColor bool

	root := &cobra.Command{
		Use:   "boltgen",
		Short: "boltgen - offline lightning bolt generator",
		Long: `boltgen generates lightning bolts outside the render loop.

With a fixed seed the output is deterministic, which makes it useful for
regression diffs and for tuning sway/density/taper parameters.`,
		Version: versionString,
		// 不带子命令时显示帮助，而不是静默成功
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			printer.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if noColor {
				printer.DisableColor()
			}
			log.SetFlags(0)
			if verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newDumpCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// Execute 执行根命令，由 main.main 调用
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersionInfo 设置 --version 输出
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
