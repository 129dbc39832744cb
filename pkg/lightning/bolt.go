package lightning

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/lightning/pkg/geom"
)

// ErrInvalidRequest 线宽非正或坐标不是有限数
var ErrInvalidRequest = errors.New("lightning: invalid bolt request")

// degenerateLength 主轴长度低于该值视为起点与终点重合
const degenerateLength = 1e-9

// RandomSource 生成器需要的随机数来源，Float64 返回 [0, 1) 均匀分布
//
// *rand.Rand（math/rand/v2）直接满足该接口。
type RandomSource interface {
	Float64() float64
}

// BoltRequest 一次生成调用的输入
type BoltRequest struct {
	Start     geom.Vec2
	End       geom.Vec2
	Thickness float64
}

// PathVertex 生成过程中一个内部顶点的诊断信息
type PathVertex struct {
	Index        int       // 内部顶点序号（从 0 开始）
	Pos          float64   // 主轴横坐标 [0, 1)
	Scale        float64   // 与上一采样点的相关性尺度
	Envelope     float64   // 收尾包络系数
	Blended      float64   // 平滑后、乘包络前的偏移
	Displacement float64   // 最终横向偏移
	Point        geom.Vec2 // 输出点
}

// Generator 闪电折线生成器
//
// 在 start 与 end 之间随机采样若干横坐标，排序后逐点沿法线方向偏移，
// 偏移量与上一点按间距做指数平滑：间距小则平滑，间距大则锯齿。
// 每条折线边从池中分配一个 Segment，最后一段精确结束于 end。
type Generator struct {
	pool   *SegmentPool
	rng    RandomSource
	params Params
	tracer func(PathVertex)
}

// NewGenerator 创建生成器
//
// 参数：
//   - pool: 线段池，生成器只向其中 Acquire，从不清空
//   - rng: 随机数来源
//   - params: 生成参数（调用方负责 Validate）
func NewGenerator(pool *SegmentPool, rng RandomSource, params Params) *Generator {
	return &Generator{
		pool:   pool,
		rng:    rng,
		params: params,
	}
}

// Params 返回当前参数
func (g *Generator) Params() Params {
	return g.params
}

// SetParams 替换生成参数，下一次 Generate 生效
func (g *Generator) SetParams(p Params) {
	g.params = p
}

// SetRandomSource 替换随机数来源
func (g *Generator) SetRandomSource(rng RandomSource) {
	g.rng = rng
}

// SetTracer 设置内部顶点回调（nil 关闭）
func (g *Generator) SetTracer(fn func(PathVertex)) {
	g.tracer = fn
}

// GenerateRequest 是 Generate 的结构体参数版本
func (g *Generator) GenerateRequest(req BoltRequest) (int, error) {
	return g.Generate(req.Start, req.End, req.Thickness)
}

// Generate 在 start 与 end 之间生成一道闪电，返回分配的线段数
//
// 对有效请求，线段数恰好为 SampleCount(length, thickness) + 1：
// 每个内部采样点一段，外加一段精确连到 end 的收尾线段。
//
// 边界情况：
//   - start == end（长度 < 1e-9）：不生成任何线段，返回 (0, nil)
//   - thickness <= 0、坐标非有限数、主轴长度溢出为 Inf 或参数非法：返回 ErrInvalidRequest
//   - 池未初始化：返回 ErrPoolUninitialized
//   - 池容量不足：致命错误（见 SegmentPool.Acquire）
//
// 生成器不会清空池；每 tick 重新生成前由调用方 PurgeAll。
func (g *Generator) Generate(start, end geom.Vec2, thickness float64) (int, error) {
	if !g.pool.Initialized() {
		return 0, ErrPoolUninitialized
	}
	if !start.IsFinite() || !end.IsFinite() {
		return 0, fmt.Errorf("%w: non-finite endpoint %v -> %v", ErrInvalidRequest, start, end)
	}
	if !(thickness > 0) || math.IsInf(thickness, 0) {
		return 0, fmt.Errorf("%w: thickness must be positive, got %v", ErrInvalidRequest, thickness)
	}
	// 零密度或零摆幅会让采样数除以零
	if err := g.params.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	tangent := end.Sub(start)
	length := tangent.Len()
	// 端点都有限，但两者之差仍可能溢出
	if math.IsInf(length, 0) {
		return 0, fmt.Errorf("%w: bolt length overflows %v -> %v", ErrInvalidRequest, start, end)
	}
	if length < degenerateLength {
		log.Printf("[BoltGenerator] Degenerate bolt at (%.1f, %.1f), nothing generated", start.X, start.Y)
		return 0, nil
	}
	normal := tangent.Perp().Scale(1 / length)

	// 先用浮点数比较，超长主轴转换成 int 会溢出
	samples := math.Floor(length / (thickness * g.params.Density))
	if samples+1 > float64(g.pool.Free()) {
		// 与逐段 Acquire 时耗尽的结果一致，但避免为超大请求分配采样缓冲区
		g.pool.exhausted(g.pool.InUse() + int(math.Min(samples+1, math.MaxInt32)))
	}
	count := int(samples)

	// 采样点缓冲区只在本次调用内存活
	positions := make([]float64, count)
	for i := range positions {
		positions[i] = g.rng.Float64()
	}
	SortPositions(positions)

	sway := g.params.Sway
	jaggedness := g.params.Jaggedness()

	prevPoint := start
	prevPos := 0.0
	prevDisplacement := 0.0
	emitted := 0

	for i, pos := range positions {
		scale := length * jaggedness * (pos - prevPos)
		envelope := g.params.Envelope(pos)

		displacement := (g.rng.Float64()*2 - 1) * sway
		displacement -= (displacement - prevDisplacement) * (1 - scale)
		blended := displacement
		displacement *= envelope

		point := start.Add(tangent.Scale(pos)).Add(normal.Scale(displacement))
		g.emit(prevPoint, point, thickness)
		emitted++

		if g.tracer != nil {
			g.tracer(PathVertex{
				Index:        i,
				Pos:          pos,
				Scale:        scale,
				Envelope:     envelope,
				Blended:      blended,
				Displacement: displacement,
				Point:        point,
			})
		}

		prevPoint = point
		prevPos = pos
		prevDisplacement = displacement
	}

	// 收尾线段保证折线精确结束于 end
	g.emit(prevPoint, end, thickness)
	emitted++

	return emitted, nil
}

// emit 从池中分配一段并写入几何数据
func (g *Generator) emit(from, to geom.Vec2, thickness float64) {
	seg := g.pool.Acquire()
	seg.Start = from
	seg.End = to
	seg.Thickness = thickness
}
