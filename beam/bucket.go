package beam

// Bucket is the bounded frontier for one search level: a multiset of
// nodes indexed by bin. Adds are O(1) list pushes; RemoveMax scans down
// from the worst occupied bin, so it is O(kNumBins) worst case. The
// bucket holds back references only — it never frees nodes.
type Bucket struct {
	bins   []*Node
	size   int
	maxBin int
	// lower is the smallest bin ever added; children below it are
	// pruned by the intake path to enforce monotone progress within a
	// level. -1 until the first add.
	lower int
}

func NewBucket(numBins int) *Bucket {
	return &Bucket{bins: make([]*Node, numBins), maxBin: -1, lower: -1}
}

func (b *Bucket) Size() int   { return b.size }
func (b *Bucket) Empty() bool { return b.size == 0 }

// Lowerbound is the monotone floor: the smallest bin seen in this
// bucket, or 0 if nothing has been added yet.
func (b *Bucket) Lowerbound() int {
	if b.lower < 0 {
		return 0
	}
	return b.lower
}

// Add files the node under the given bin. The bin must be within the
// bucket's range; the caller's pruning against upperbound guarantees it.
func (b *Bucket) Add(n *Node, bin int) {
	n.link = b.bins[bin]
	b.bins[bin] = n
	b.size++
	if bin > b.maxBin {
		b.maxBin = bin
	}
	if b.lower < 0 || bin < b.lower {
		b.lower = bin
	}
}

// Max returns the worst occupied bin, or -1 if the bucket is empty.
func (b *Bucket) Max() int {
	for b.maxBin >= 0 && b.bins[b.maxBin] == nil {
		b.maxBin--
	}
	return b.maxBin
}

// RemoveMax pops a node from the worst occupied bin. Returns nil when
// empty.
func (b *Bucket) RemoveMax() *Node {
	m := b.Max()
	if m < 0 {
		return nil
	}
	n := b.bins[m]
	b.bins[m] = n.link
	n.link = nil
	b.size--
	return n
}

// Iterate visits all nodes in bin order (ascending), chains in
// insertion-reversed order: deterministic for a given fill sequence. fn
// may free the visited node; the next pointer is read first.
func (b *Bucket) Iterate(fn func(*Node)) {
	for bin := 0; bin <= b.maxBin; bin++ {
		n := b.bins[bin]
		for n != nil {
			next := n.link
			fn(n)
			n = next
		}
	}
}

// Clear empties the bucket without freeing nodes.
func (b *Bucket) Clear() {
	for i := range b.bins {
		b.bins[i] = nil
	}
	b.size = 0
	b.maxBin = -1
	b.lower = -1
}
