package lightning

import "slices"

// SortPositions 将采样横坐标原地升序排序，返回同一个切片
//
// 生成器要求线段沿主轴单调发射，因为每段的偏移依赖上一段。
// 空切片和单元素切片是合法输入，原样返回。
func SortPositions(positions []float64) []float64 {
	if len(positions) < 2 {
		return positions
	}
	slices.Sort(positions)
	return positions
}
