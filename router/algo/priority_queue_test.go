package algo_test

import (
	"container/heap"
	"testing"

	"git.fiblab.net/sim/transit/router/algo"
	"github.com/stretchr/testify/assert"
)

func TestPriorityQueue(t *testing.T) {
	pq := make(algo.PriorityQueue[float64], 0)
	pq.Push(&algo.Item[float64]{Value: 4, Priority: 4})
	pq.Push(&algo.Item[float64]{Value: 2, Priority: 2})
	pq.Push(&algo.Item[float64]{Value: 1, Priority: 1})
	pq.Push(&algo.Item[float64]{Value: 3, Priority: 3})

	// 建堆
	heap.Init(&pq)

	// 弹出
	item := heap.Pop(&pq).(*algo.Item[float64])
	assert.Equal(t, 1, item.Value)
	assert.Equal(t, 1.0, item.Priority)
	item = heap.Pop(&pq).(*algo.Item[float64])
	assert.Equal(t, 2, item.Value)
	assert.Equal(t, 2.0, item.Priority)
}

func TestPriorityQueueChangePriority(t *testing.T) {
	pq := make(algo.PriorityQueue[int], 0)
	pq.Push(&algo.Item[int]{Value: 4, Priority: 4})
	pq.Push(&algo.Item[int]{Value: 2, Priority: 2})
	pq.Push(&algo.Item[int]{Value: 1, Priority: 1})
	pq.Push(&algo.Item[int]{Value: 3, Priority: 3})

	// 建堆
	heap.Init(&pq)

	// 修改优先级（将Value==3的优先级改为0）
	for _, item := range pq {
		if item.Value == 3 {
			item.Priority = 0
			heap.Fix(&pq, item.Index)
		}
	}

	for _, want := range []int{3, 1, 2, 4} {
		item := heap.Pop(&pq).(*algo.Item[int])
		assert.Equal(t, want, item.Value)
	}
	// 空堆
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueueTieByValue(t *testing.T) {
	pq := make(algo.PriorityQueue[int], 0)
	heap.Push(&pq, &algo.Item[int]{Value: 7, Priority: 1})
	heap.Push(&pq, &algo.Item[int]{Value: 5, Priority: 1})
	heap.Push(&pq, &algo.Item[int]{Value: 6, Priority: 1})

	assert.Equal(t, 5, heap.Pop(&pq).(*algo.Item[int]).Value)
	assert.Equal(t, 6, heap.Pop(&pq).(*algo.Item[int]).Value)
	assert.Equal(t, 7, heap.Pop(&pq).(*algo.Item[int]).Value)
}
