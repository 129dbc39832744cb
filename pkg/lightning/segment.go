// Package lightning 实现闪电折线的程序化生成以及承载线段的定长对象池
//
// 两个核心组件：
//   - SegmentPool: 定长线段池，线性扫描分配，支持整池清空
//   - Generator: 在两点之间生成锯齿状折线，每条边占用池中的一个 Segment
//
// 典型的每 tick 流程：
//
//	pool.PurgeAll()
//	gen.Generate(start, cursor, thickness)
//	for seg := range pool.Segments() {
//	    renderer.DrawSegment(seg)
//	}
//
// 本包不做任何同步，池与生成器只能由同一个 goroutine（渲染循环）访问。
package lightning

import "github.com/decker502/lightning/pkg/geom"

// SegmentData 线段的几何数据（纯数据，无行为）
type SegmentData struct {
	Start     geom.Vec2 `yaml:"start"`
	End       geom.Vec2 `yaml:"end"`
	Thickness float64   `yaml:"thickness"`
}

// Vector 返回 End - Start
func (d SegmentData) Vector() geom.Vec2 {
	return d.End.Sub(d.Start)
}

// Length 返回线段长度
func (d SegmentData) Length() float64 {
	return d.Vector().Len()
}

// Segment 池中的一个槽位
//
// 身份即槽位索引：从 Acquire 返回到被 Release/PurgeAll 之间，指针始终指向同一槽位。
// 几何字段只在分配时写入，渲染方只读。
type Segment struct {
	SegmentData

	index int
	inUse bool
}

// Index 返回槽位索引
func (s *Segment) Index() int {
	return s.index
}

// InUse 报告槽位是否已分配
func (s *Segment) InUse() bool {
	return s.inUse
}

// Data 返回几何数据的副本
func (s *Segment) Data() SegmentData {
	return s.SegmentData
}
