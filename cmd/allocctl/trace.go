package main

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/internal/logger"
)

// traceConfig is the arena setup shared by simulate and layout.
type traceConfig struct {
	capacity int
	backing  string
	sizes    []int
	fallback bool
	free     bool
}

var defaultSizes = []int{8, 16, 24, 100, 256}

// step is the outcome of one allocation in a trace.
type step struct {
	Index  int    `json:"index"`
	Size   int    `json:"size"`
	OK     bool   `json:"ok"`
	Source string `json:"source,omitempty"`
	Offset int    `json:"offset"`
	Error  string `json:"error,omitempty"`
}

// trace holds the allocators built for a run and the steps taken.
type trace struct {
	arena    *alloc.Arena
	fallback *alloc.Fallback
	steps    []step
	live     [][]byte
}

func newTrace(cfg traceConfig) (*trace, error) {
	backing, ok := alloc.ParseBacking(cfg.backing)
	if !ok {
		return nil, errors.Newf("unknown backing %q (want heap or pages)", cfg.backing)
	}
	arena, err := alloc.NewArena(cfg.capacity, &alloc.Options{Backing: backing})
	if err != nil {
		return nil, err
	}
	logger.Debug("arena created", "capacity", cfg.capacity, "backing", backing)
	tr := &trace{arena: arena}
	if cfg.fallback {
		tr.fallback = alloc.NewFallback(arena, alloc.DefaultHeap, nil)
	}
	return tr, nil
}

func (tr *trace) allocator() alloc.Allocator {
	if tr.fallback != nil {
		return tr.fallback
	}
	return tr.arena
}

// run performs one allocation per size. Failed allocations are recorded and
// the trace continues.
func (tr *trace) run(sizes []int) {
	a := tr.allocator()
	for i, size := range sizes {
		st := step{Index: i, Size: size, Offset: -1}
		b, err := a.Allocate(size)
		if err != nil {
			logger.Warn("allocation failed", "index", i, "size", size, "err", err)
			st.Error = describe(err)
			tr.steps = append(tr.steps, st)
			continue
		}
		st.OK = true
		st.Offset = tr.arena.Offset(b)
		st.Source = alloc.SourcePrimary.String()
		if tr.fallback != nil {
			src, _ := tr.fallback.Owner(b)
			st.Source = src.String()
		}
		tr.steps = append(tr.steps, st)
		tr.live = append(tr.live, b)
	}
}

// deallocateAll hands every live block back in allocation order.
func (tr *trace) deallocateAll() error {
	a := tr.allocator()
	for _, b := range tr.live {
		if err := a.Deallocate(b); err != nil {
			logger.Error("deallocate failed", "err", err)
			return err
		}
	}
	tr.live = nil
	return nil
}

func (tr *trace) close() {
	_ = tr.arena.Release()
}

func (tr *trace) failures() int {
	n := 0
	for _, st := range tr.steps {
		if !st.OK {
			n++
		}
	}
	return n
}

func describe(err error) string {
	switch {
	case errors.Is(err, alloc.ErrNoSpace):
		return "no space"
	case errors.Is(err, alloc.ErrOutOfMemory):
		return "out of memory"
	case errors.Is(err, alloc.ErrBadSize):
		return "bad size"
	default:
		return err.Error()
	}
}
