package algo

// 可用作边权的数值类型，需要支持加法与全序比较
type Weight interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// 带权有向边
type IEdge[W Weight] interface {
	From() int
	To() int
	Weight() W
}

// 最短路结果：按顺序经过的边id与总边权
type Path[W Weight] struct {
	Edges  []int
	Weight W
}
