package algo

import "errors"

const (
	// 不存在的边/点
	NO_EDGE   = -1
	NO_VERTEX = -1
)

var (
	// 错误：边的端点超出点的范围
	ErrVertexOutOfRange = errors.New("vertex out of range")
	// 错误：边权为负，Dijkstra不能处理
	ErrNegativeWeight = errors.New("negative edge weight")
)
