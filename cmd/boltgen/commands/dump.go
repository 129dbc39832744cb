package commands

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/lightning/internal/printer"
	"github.com/decker502/lightning/pkg/config"
	"github.com/decker502/lightning/pkg/geom"
	"github.com/decker502/lightning/pkg/lightning"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// 输出格式
const (
	formatTable = "table"
	formatYAML  = "yaml"
)

var errBadPoint = errors.New("point must be formatted as x,y")

type dumpOptions struct {
	from       string
	to         string
	thickness  float64
	seed       uint64
	format     string
	configPath string
	trace      bool
}

// dumpDocument YAML 输出的顶层结构
type dumpDocument struct {
	Seed     uint64                  `yaml:"seed"`
	From     geom.Vec2               `yaml:"from"`
	To       geom.Vec2               `yaml:"to"`
	Bolt     config.BoltConfig       `yaml:"bolt"`
	Segments []lightning.SegmentData `yaml:"segments"`
}

func newDumpCmd() *cobra.Command {
	opts := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Generate one bolt and print its segments",
		Long: `Generate a single bolt between two points and print the resulting
segments in pool slot order.

The same seed, endpoints and config always produce identical output.

Output Formats:
  table - Fixed-width table, one segment per line
  yaml  - YAML document with the request, bolt parameters and segments

Examples:
  # Horizontal bolt with the default parameters
  boltgen dump --from 0,0 --to 400,0 --seed 42

  # Thicker bolt, YAML output for diffing
  boltgen dump --to 300,400 --thickness 5 --format yaml

  # Print every interior vertex to stderr while generating
  boltgen dump --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "0,0", "Bolt start point (x,y)")
	cmd.Flags().StringVar(&opts.to, "to", "400,0", "Bolt end point (x,y)")
	cmd.Flags().Float64Var(&opts.thickness, "thickness", 0, "Line thickness (0 = bolt.thickness from config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatTable, "Output format: table or yaml")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Lightning config YAML (default: built-in defaults)")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print interior vertices to stderr")

	return cmd
}

func runDump(out, errOut io.Writer, opts *dumpOptions) error {
	if opts.format != formatTable && opts.format != formatYAML {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", opts.format),
			[]string{"Valid formats: table, yaml"},
		)
	}

	from, err := parsePoint(opts.from)
	if err != nil {
		return printer.Error("invalid --from", err.Error(), []string{"Example: --from 0,0"})
	}
	to, err := parsePoint(opts.to)
	if err != nil {
		return printer.Error("invalid --to", err.Error(), []string{"Example: --to 400,0"})
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return printer.Error("failed to load config", err.Error(), []string{
			fmt.Sprintf("Run 'boltgen check %s' for details", opts.configPath),
		})
	}

	thickness := opts.thickness
	if thickness == 0 {
		thickness = cfg.Bolt.Thickness
	}
	params := cfg.BoltParams()

	// 先按浮点数估算所需槽位，避免池耗尽走到致命路径
	need := from.Sub(to).Len()/(thickness*params.Density) + 1
	if thickness > 0 && need > float64(cfg.Pool.Capacity) {
		return printer.ErrorWithContext(
			"segment pool too small",
			"The requested bolt needs more segments than the pool can hold.",
			[]string{"Needed", "Capacity"},
			map[string]string{
				"Needed":   strconv.FormatFloat(math.Floor(need), 'g', -1, 64),
				"Capacity": strconv.Itoa(cfg.Pool.Capacity),
			},
			[]string{"Increase pool.capacity in the config", "Use a larger --thickness"},
		)
	}

	pool, err := lightning.NewSegmentPool(cfg.Pool.Capacity)
	if err != nil {
		return err
	}
	defer pool.Close()
	pool.SetFatalHandler(func(format string, args ...any) {
		panic(fmt.Sprintf(format, args...))
	})

	gen := lightning.NewGenerator(pool, lightning.NewRand(opts.seed), params)
	if opts.trace {
		gen.SetTracer(func(v lightning.PathVertex) {
			fmt.Fprintf(errOut, "vertex %-4d pos=%.4f scale=%.4f envelope=%.3f offset=%8.3f point=%s\n",
				v.Index, v.Pos, v.Scale, v.Envelope, v.Displacement, formatPoint(v.Point))
		})
	}

	if _, err := gen.Generate(from, to, thickness); err != nil {
		return printer.Error("failed to generate bolt", err.Error(), []string{"--thickness must be positive"})
	}

	segments := pool.Snapshot()
	if opts.format == formatYAML {
		bolt := cfg.Bolt
		bolt.Thickness = thickness
		return writeYAML(out, dumpDocument{
			Seed:     opts.seed,
			From:     from,
			To:       to,
			Bolt:     bolt,
			Segments: segments,
		})
	}

	writeTable(out, from, to, opts.seed, segments)
	return nil
}

// loadConfig 空路径返回默认配置
func loadConfig(path string) (*config.LightningConfig, error) {
	if path == "" {
		return config.DefaultLightningConfig(), nil
	}
	return config.LoadLightningConfig(path)
}

// parsePoint 解析 "x,y"
func parsePoint(s string) (geom.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Vec2{}, fmt.Errorf("%w, got %q", errBadPoint, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("%w, got %q: %w", errBadPoint, s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("%w, got %q: %w", errBadPoint, s, err)
	}
	p := geom.V(x, y)
	if !p.IsFinite() {
		return geom.Vec2{}, fmt.Errorf("%w, got non-finite %q", errBadPoint, s)
	}
	return p, nil
}

func formatPoint(p geom.Vec2) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

func writeTable(w io.Writer, from, to geom.Vec2, seed uint64, segments []lightning.SegmentData) {
	fmt.Fprintf(w, "Bolt %s -> %s, seed %d\n\n", formatPoint(from), formatPoint(to), seed)
	fmt.Fprintf(w, "%-5s %-22s %-22s %s\n", "#", "START", "END", "THICKNESS")
	fmt.Fprintf(w, "%-5s %-22s %-22s %s\n", "-----", "-----", "---", "---------")
	for i, seg := range segments {
		fmt.Fprintf(w, "%-5d %-22s %-22s %.2f\n", i, formatPoint(seg.Start), formatPoint(seg.End), seg.Thickness)
	}

	countMsg := "segments"
	if len(segments) == 1 {
		countMsg = "segment"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(segments), countMsg)
}

func writeYAML(w io.Writer, doc dumpDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
