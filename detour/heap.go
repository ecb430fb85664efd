package detour

// heapNode is one open-list entry of the corridor search.
type heapNode struct {
	poly   int32
	fScore float32
	index  int
}

// polyHeap is the open list of the corridor search.
type polyHeap []*heapNode

func (h polyHeap) Len() int           { return len(h) }
func (h polyHeap) Less(i, j int) bool { return h[i].fScore < h[j].fScore }
func (h polyHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

// Push pushes a new node to the heap
func (h *polyHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*heapNode)
	item.index = n
	*h = append(*h, item)
}

// Pop pops a node from the heap
func (h *polyHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[0 : n-1]
	return item
}
