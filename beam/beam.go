package beam

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/stats"
)

const (
	// MaxMoves bounds the search depth; upperbound starts here.
	MaxMoves = 200
	// MinMoves anchors the bin range.
	MinMoves = 0
	// NumBins is the bucket range per level.
	NumBins = (MaxMoves - MinMoves) * 2
	// preservedLevels: how many finished levels stay resident behind
	// the active one before being swept back to the pool.
	preservedLevels = 1
	// flushInterval: expansions between partition flushes to the peer
	// queues.
	flushInterval = 100
)

// Worker is one beam of the partitioned parallel search. It owns its
// pool, transposition table, and level buckets; the only state other
// goroutines touch are the mutex-guarded work queue and the barrier
// cell.
type Worker struct {
	id         int
	numWorkers int
	beamSize   int

	solver     *Solver
	levels     []*Bucket
	ht         *HashTable
	pool       Pool
	upperbound int

	seq  int32
	cell atomic.Int32

	mu   sync.Mutex
	work []*Node

	partitions [][]*Node
	moveBuf    []move.Move
	childBuf   []*Node

	best    *Node
	metrics stats.Collector
}

func newWorker(id int, s *Solver) *Worker {
	w := &Worker{
		id:         id,
		numWorkers: s.numWorkers,
		beamSize:   s.beamSize,
		solver:     s,
		ht:         NewHashTable(s.beamSize * 2),
		partitions: make([][]*Node, s.numWorkers),
		metrics:    s.metrics,
	}
	w.levels = make([]*Bucket, MaxMoves+1)
	for i := range w.levels {
		w.levels[i] = NewBucket(NumBins)
	}
	return w
}

// targetWorker is the partition function. The shifted high bits keep the
// low bits (which also index the hash tables) better distributed.
func (w *Worker) targetWorker(hash uint64) int {
	return int((hash + (hash >> 24)) % uint64(w.numWorkers))
}

// submitWork splices nodes onto the worker's queue. Ownership of the
// nodes transfers to this worker.
func (w *Worker) submitWork(nodes []*Node) {
	if len(nodes) == 0 {
		return
	}
	w.mu.Lock()
	w.work = append(w.work, nodes...)
	w.mu.Unlock()
}

func (w *Worker) getWork() []*Node {
	w.mu.Lock()
	nodes := w.work
	w.work = nil
	w.mu.Unlock()
	return nodes
}

// queueLen is only meaningful after a barrier, when all peers are
// quiesced.
func (w *Worker) queueLen() int {
	w.mu.Lock()
	n := len(w.work)
	w.mu.Unlock()
	return n
}

// Two-phase toggle barrier. Non-leader workers publish their toggled
// sequence into their cell; the leader waits for all peers, then flips
// its own cell, which the peers observe to proceed.

func (w *Worker) enterBarrier() {
	w.seq ^= 1
	if w.id != 0 {
		w.cell.Store(w.seq)
	}
}

func (w *Worker) barrierDone() bool {
	workers := w.solver.workers
	if w.id == 0 {
		for i := 1; i < w.numWorkers; i++ {
			if workers[i].cell.Load() != w.seq {
				return false
			}
		}
		workers[0].cell.Store(w.seq)
		return true
	}
	return workers[0].cell.Load() == w.seq
}

func (w *Worker) barrier() {
	w.enterBarrier()
	for !w.barrierDone() {
		runtime.Gosched()
	}
}

// allWorkersEmpty reads peer level sizes; safe only between the two
// barriers of the level loop, when every peer has quiesced.
func (w *Worker) allWorkersEmpty(level int) bool {
	for _, peer := range w.solver.workers {
		if peer.levels[level].Size() > 0 {
			return false
		}
	}
	return true
}

// processNewNodes drains a batch of freshly minted (or received)
// children into the next-level bucket, applying the intake rules in
// order: move limit, bound pruning, goal detection, dedup, then bounded
// admission with worst-bin eviction. Returns the best solving node seen
// in the batch, already recorded against upperbound; ownership of the
// returned node is the caller's.
func (w *Worker) processNewNodes(nodes []*Node, next *Bucket) *Node {
	var solution *Node
	ch := w.solver.challenge
	for _, n := range nodes {
		w.metrics.IncCounter(stats.MetricIntake, 1)
		if w.solver.moveLimit > 0 && n.MovesPerformed() > w.solver.moveLimit {
			w.pool.Put(n)
			continue
		}
		if n.Bin() >= w.upperbound || n.Bin() < next.Lowerbound() {
			w.metrics.IncCounter(stats.MetricPruned, 1)
			w.pool.Put(n)
			continue
		}
		if !ch.FullSolve() {
			if ch.Met(&n.layout) && n.MovesPerformed() < w.upperbound {
				if solution != nil {
					w.pool.Put(solution)
				}
				solution = n
				w.lowerUpperbound(n.MovesPerformed())
				continue
			}
		} else if n.layout.Solved() && n.MovesPerformed() < w.upperbound {
			if solution != nil {
				w.pool.Put(solution)
			}
			solution = n
			w.lowerUpperbound(n.MovesPerformed())
			continue
		}
		if w.ht.Find(n) != nil {
			w.metrics.IncCounter(stats.MetricDuplicates, 1)
			w.pool.Put(n)
			continue
		}
		if next.Size() < w.beamSize {
			next.Add(n, n.Bin())
			w.ht.Add(n)
			continue
		}
		if n.Bin() >= next.Max() {
			w.pool.Put(n)
			continue
		}
		evicted := next.RemoveMax()
		w.ht.Remove(evicted)
		w.pool.Put(evicted)
		w.metrics.IncCounter(stats.MetricEvictions, 1)
		next.Add(n, n.Bin())
		w.ht.Add(n)
	}
	return solution
}

// createNewLevel expands every node of cur into next. In multi-worker
// mode children are hash-partitioned to their owning workers; partition
// batches are flushed every flushInterval expansions and the worker
// drains its own queue in the same stride. The trailing two-phase
// barrier rounds drain the broadcast clones a peer's solution may have
// queued. Returns the best solution observed.
func (w *Worker) createNewLevel(cur, next *Bucket) *Node {
	var solution *Node

	processSolution := func(s *Node) {
		if s == nil {
			return
		}
		if solution != nil {
			w.pool.Put(solution)
		}
		solution = s
		if w.numWorkers == 1 {
			return
		}
		// Broadcast so peers can lower their upperbounds promptly. Only
		// the partition owner of the solving state broadcasts, to avoid
		// every worker republishing the same solution.
		if w.targetWorker(solution.hash) == w.id {
			for i := range w.partitions {
				if i == w.id {
					continue
				}
				w.partitions[i] = append(w.partitions[i], w.pool.Clone(solution))
			}
		}
	}

	expandCount := 0
	cur.Iterate(func(n *Node) {
		if n.MovesPerformed() >= w.upperbound-1 {
			return
		}
		w.childBuf = w.childBuf[:0]
		w.childBuf, w.moveBuf = n.Expand(&w.pool, w.moveBuf, w.childBuf)
		w.metrics.IncCounter(stats.MetricExpanded, 1)
		if len(w.childBuf) == 0 {
			return
		}
		if w.numWorkers == 1 {
			processSolution(w.processNewNodes(w.childBuf, next))
			return
		}
		for _, c := range w.childBuf {
			w.partitions[w.targetWorker(c.hash)] = append(w.partitions[w.targetWorker(c.hash)], c)
		}
		expandCount++
		if expandCount < flushInterval {
			return
		}
		expandCount = 0
		w.flushPartitions()
		processSolution(w.processNewNodes(w.getWork(), next))
	})

	if w.numWorkers > 1 {
		w.flushPartitions()
		w.enterBarrier()
		for !w.barrierDone() {
			processSolution(w.processNewNodes(w.getWork(), next))
		}
		for round := 0; round < 2; round++ {
			w.flushPartitions()
			w.barrier()
			processSolution(w.processNewNodes(w.getWork(), next))
		}
		if n := w.queueLen(); n != 0 {
			log.Error().Int("worker", w.id).Int("queued", n).Msg("work queue not drained after quiesce")
		}
		w.barrier()
	}
	return solution
}

// lowerUpperbound advances upperbound monotonically downward on a
// confirmed solving node.
func (w *Worker) lowerUpperbound(cost int) {
	if cost < w.upperbound {
		w.upperbound = cost
	}
	w.metrics.IncCounter(stats.MetricSolutions, 1)
	w.metrics.SetGauge(stats.MetricUpperbound, int64(w.upperbound))
}

func (w *Worker) flushPartitions() {
	for i, p := range w.partitions {
		w.solver.workers[i].submitWork(p)
		w.partitions[i] = p[:0]
	}
}

// beamSearch runs the level loop to exhaustion or MaxMoves, sweeping
// finished levels back to the pool: the level behind the expanded one
// is swept once the next level is built, so two levels are resident
// between iterations and three while a level is being filled. Returns
// this worker's best solving node, or nil.
func (w *Worker) beamSearch(layout game.Layout) *Node {
	w.upperbound = MaxMoves
	root := w.pool.NewRoot(layout)
	w.levels[0].Add(root, root.Bin())
	w.ht.Add(root)

	var solution *Node
	for i := 0; i < MaxMoves; i++ {
		if w.numWorkers == 1 {
			if w.levels[i].Empty() {
				break
			}
		} else {
			w.barrier()
			empty := w.allWorkersEmpty(i)
			w.barrier()
			if empty {
				break
			}
		}
		if w.id == 0 {
			w.metrics.SetGauge(stats.MetricLevelSize, int64(w.levels[i].Size()))
			log.Debug().Int("level", i).Int("size", w.levels[i].Size()).Msg("expanding level")
		}
		if s := w.createNewLevel(w.levels[i], w.levels[i+1]); s != nil {
			if solution != nil {
				w.pool.Put(solution)
			}
			solution = s
		}
		if i >= preservedLevels {
			w.sweepLevel(i - preservedLevels)
		}
	}
	for i := range w.levels {
		w.sweepLevel(i)
	}
	return solution
}

func (w *Worker) sweepLevel(i int) {
	w.levels[i].Iterate(func(n *Node) {
		w.ht.Remove(n)
		w.pool.Put(n)
	})
	w.levels[i].Clear()
}
