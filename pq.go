package astar

import (
	"container/heap"
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrEmptyQueue is returned when dequeuing from an empty queue.
var ErrEmptyQueue = errors.New("priority queue is empty")

type PriorityQueueItem[ItemType comparable, PriorityType constraints.Ordered] struct {
	Item         ItemType
	Priority     PriorityType
	IndexInQueue int
}

type queueEntries[ItemType comparable, PriorityType constraints.Ordered] []*PriorityQueueItem[ItemType, PriorityType]

func (queue queueEntries[ItemType, PriorityType]) Len() int { return len(queue) }
func (queue queueEntries[ItemType, PriorityType]) Less(i, j int) bool {
	return queue[i].Priority < queue[j].Priority
}
func (queue queueEntries[ItemType, PriorityType]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *queueEntries[ItemType, PriorityType]) Push(x any) {
	item := x.(*PriorityQueueItem[ItemType, PriorityType])
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *queueEntries[ItemType, PriorityType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// PriorityQueue is a binary min-heap of items keyed by priority.
// The same item may be queued more than once; ties come out in no
// particular order.
type PriorityQueue[ItemType comparable, PriorityType constraints.Ordered] struct {
	entries queueEntries[ItemType, PriorityType]
}

// NewPriorityQueue returns an empty queue.
func NewPriorityQueue[ItemType comparable, PriorityType constraints.Ordered]() *PriorityQueue[ItemType, PriorityType] {
	return &PriorityQueue[ItemType, PriorityType]{
		entries: make(queueEntries[ItemType, PriorityType], 0),
	}
}

// Enqueue inserts item with the given priority.
func (pq *PriorityQueue[ItemType, PriorityType]) Enqueue(item ItemType, priority PriorityType) {
	heap.Push(&pq.entries, &PriorityQueueItem[ItemType, PriorityType]{Item: item, Priority: priority})
}

// Dequeue removes and returns the item with the lowest priority.
func (pq *PriorityQueue[ItemType, PriorityType]) Dequeue() (ItemType, PriorityType, error) {
	if pq.entries.Len() == 0 {
		var (
			zeroItem     ItemType
			zeroPriority PriorityType
		)
		return zeroItem, zeroPriority, ErrEmptyQueue
	}
	entry := heap.Pop(&pq.entries).(*PriorityQueueItem[ItemType, PriorityType])
	return entry.Item, entry.Priority, nil
}

// Peek returns the lowest priority item without removing it.
func (pq *PriorityQueue[ItemType, PriorityType]) Peek() (ItemType, PriorityType, error) {
	if pq.entries.Len() == 0 {
		var (
			zeroItem     ItemType
			zeroPriority PriorityType
		)
		return zeroItem, zeroPriority, ErrEmptyQueue
	}
	entry := pq.entries[0]
	return entry.Item, entry.Priority, nil
}

// Contains reports whether item is queued. It scans the whole heap.
func (pq *PriorityQueue[ItemType, PriorityType]) Contains(item ItemType) bool {
	return pq.find(item) >= 0
}

// Update changes the priority of the first queued entry equal to item and
// restores heap order. It returns false if item is not queued.
func (pq *PriorityQueue[ItemType, PriorityType]) Update(item ItemType, priority PriorityType) bool {
	index := pq.find(item)
	if index < 0 {
		return false
	}
	pq.entries[index].Priority = priority
	heap.Fix(&pq.entries, index)
	return true
}

// Len returns the number of queued entries.
func (pq *PriorityQueue[ItemType, PriorityType]) Len() int { return pq.entries.Len() }

func (pq *PriorityQueue[ItemType, PriorityType]) find(item ItemType) int {
	for i, entry := range pq.entries {
		if entry.Item == item {
			return i
		}
	}
	return -1
}

// items returns the queued items in heap order.
func (pq *PriorityQueue[ItemType, PriorityType]) items() []ItemType {
	out := make([]ItemType, 0, len(pq.entries))
	for _, entry := range pq.entries {
		out = append(out, entry.Item)
	}
	return out
}
