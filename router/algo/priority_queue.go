package algo

// 堆中元素
type Item[W Weight] struct {
	Value    int // 点id
	Priority W   // 当前最短距离
	Index    int // 在堆中的下标，由heap.Interface维护
}

// 最小堆，实现heap.Interface
type PriorityQueue[W Weight] []*Item[W]

func (pq PriorityQueue[W]) Len() int { return len(pq) }

func (pq PriorityQueue[W]) Less(i, j int) bool {
	if pq[i].Priority == pq[j].Priority {
		// 距离相同时按点id，保证结果确定
		return pq[i].Value < pq[j].Value
	}
	return pq[i].Priority < pq[j].Priority
}

func (pq PriorityQueue[W]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue[W]) Push(x any) {
	item := x.(*Item[W])
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *PriorityQueue[W]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[:n-1]
	return item
}
