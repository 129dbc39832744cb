package lightning

import (
	"errors"
	"fmt"
	"iter"
	"log"
)

var (
	// ErrInvalidCapacity 池容量必须为正数
	ErrInvalidCapacity = errors.New("lightning: segment pool capacity must be positive")

	// ErrPoolUninitialized 池尚未 Init（或已 Close）
	ErrPoolUninitialized = errors.New("lightning: segment pool not initialized")
)

// FatalHandler 处理池耗尽这一致命条件
//
// 默认实现是 log.Fatalf（进程退出）。处理器不应正常返回；
// 如果返回了，Acquire 会以 panic 终止当前调用，避免继续写入越界状态。
type FatalHandler func(format string, args ...any)

// SegmentPool 定长线段池
//
// 容量在 Init 时确定，之后不会扩容。Acquire 线性扫描第一个空闲槽位，
// 复杂度 O(capacity)；对于 ~10000 的容量，这点扫描开销相对渲染可以忽略，
// 换来的是无碎片、占用情况可直接检查。
//
// 池不是并发安全的，只能由渲染循环所在的 goroutine 使用。
type SegmentPool struct {
	segments []Segment
	inUse    int
	fatal    FatalHandler
}

// NewSegmentPool 创建并初始化线段池
//
// 参数：
//   - capacity: 槽位数量，必须 > 0
//
// 返回：
//   - *SegmentPool: 始终非 nil；容量非法时返回一个未初始化（惰性）的池
//   - error: 容量非法时返回 ErrInvalidCapacity
func NewSegmentPool(capacity int) (*SegmentPool, error) {
	p := &SegmentPool{}
	if err := p.Init(capacity); err != nil {
		return p, err
	}
	return p, nil
}

// Init 分配 capacity 个清零的槽位
//
// 如果池已经初始化过，旧的槽位会先被丢弃（等价于 Close 后再 Init）。
// capacity <= 0 属于调用方配置错误：记录日志并返回 ErrInvalidCapacity，池保持未初始化。
func (p *SegmentPool) Init(capacity int) error {
	if capacity <= 0 {
		log.Printf("[SegmentPool] Invalid capacity %d, pool stays uninitialized", capacity)
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if p.segments != nil {
		log.Printf("[SegmentPool] Re-initializing pool (old capacity %d, new capacity %d)", len(p.segments), capacity)
	}

	p.segments = make([]Segment, capacity)
	for i := range p.segments {
		p.segments[i].index = i
	}
	p.inUse = 0
	log.Printf("[SegmentPool] Initialized with capacity %d", capacity)
	return nil
}

// SetFatalHandler 替换池耗尽时的处理器（nil 恢复默认的 log.Fatalf）
func (p *SegmentPool) SetFatalHandler(h FatalHandler) {
	p.fatal = h
}

// Initialized 报告池是否可用
func (p *SegmentPool) Initialized() bool {
	return p.segments != nil
}

// Cap 返回池容量（未初始化时为 0）
func (p *SegmentPool) Cap() int {
	return len(p.segments)
}

// InUse 返回已分配的槽位数
func (p *SegmentPool) InUse() int {
	return p.inUse
}

// Free 返回空闲槽位数
func (p *SegmentPool) Free() int {
	return len(p.segments) - p.inUse
}

// Acquire 分配第一个空闲槽位
//
// 返回的 Segment 几何字段已清零、InUse() 为 true。
// 未初始化的池记录日志并返回 nil。
// 池已满是致命错误：调用 FatalHandler，不会返回。
func (p *SegmentPool) Acquire() *Segment {
	if p.segments == nil {
		log.Printf("[SegmentPool] Acquire called on uninitialized pool")
		return nil
	}
	if p.inUse >= len(p.segments) {
		p.exhausted(p.inUse + 1)
	}

	for i := range p.segments {
		s := &p.segments[i]
		if s.inUse {
			continue
		}
		*s = Segment{index: i, inUse: true}
		p.inUse++
		return s
	}

	// inUse 计数与槽位状态不一致，说明有人绕过 API 修改了槽位
	panic(fmt.Sprintf("lightning: pool bookkeeping corrupted (inUse=%d, cap=%d)", p.inUse, len(p.segments)))
}

// Release 释放一个槽位并把调用方的句柄置为 nil
//
// seg 为 nil、*seg 为 nil、槽位已空闲或不属于本池时都是 no-op。
// 注意：如果调用方保留了句柄的副本，并且该槽位已被重新分配，
// 用旧副本释放会释放掉新的占用者；只应通过唯一的句柄释放。
func (p *SegmentPool) Release(seg **Segment) {
	if seg == nil || *seg == nil {
		return
	}
	s := *seg
	*seg = nil

	if !p.owns(s) || !s.inUse {
		return
	}
	s.inUse = false
	p.inUse--
}

// PurgeAll 释放所有已分配的槽位
//
// 每个动画 tick 调用一次，丢弃上一 tick 的闪电。对未初始化的池是 no-op。
func (p *SegmentPool) PurgeAll() {
	for i := range p.segments {
		p.segments[i].inUse = false
	}
	p.inUse = 0
}

// Close 释放所有存储，池回到未初始化状态，直到再次 Init
func (p *SegmentPool) Close() {
	if p.segments == nil {
		return
	}
	log.Printf("[SegmentPool] Closing pool (capacity %d, %d in use)", len(p.segments), p.inUse)
	p.segments = nil
	p.inUse = 0
}

// Segments 以槽位顺序惰性遍历所有已分配的线段
//
// 顺序在同一 tick 内稳定（池只在 PurgeAll/Generate 时变化）。
// 遍历期间不要 Acquire/Release。
func (p *SegmentPool) Segments() iter.Seq[*Segment] {
	segments := p.segments
	return func(yield func(*Segment) bool) {
		for i := range segments {
			s := &segments[i]
			if !s.inUse {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Snapshot 复制当前所有已分配线段的几何数据（槽位顺序）
func (p *SegmentPool) Snapshot() []SegmentData {
	out := make([]SegmentData, 0, p.inUse)
	for s := range p.Segments() {
		out = append(out, s.SegmentData)
	}
	return out
}

// owns 判断 s 是否指向本池的槽位
func (p *SegmentPool) owns(s *Segment) bool {
	if s.index < 0 || s.index >= len(p.segments) {
		return false
	}
	return &p.segments[s.index] == s
}

// exhausted 报告池耗尽，need 为调用方需要的占用数
func (p *SegmentPool) exhausted(need int) {
	fatal := p.fatal
	if fatal == nil {
		fatal = log.Fatalf
	}
	fatal("[SegmentPool] Maximum segments reached: need %d, capacity %d", need, len(p.segments))

	// 处理器不应返回
	panic(fmt.Sprintf("lightning: segment pool exhausted (need %d, capacity %d)", need, len(p.segments)))
}
