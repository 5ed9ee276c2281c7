package alloc

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/allockit/internal/buf"
	"github.com/joshuapare/allockit/internal/format"
	"github.com/joshuapare/allockit/internal/logger"
)

// ArenaStats is a snapshot of arena usage.
type ArenaStats struct {
	Capacity    int     // Buffer size in bytes
	FreeBytes   int     // Usable bytes left in free blocks
	FreeBlocks  int     // Nodes on the free list
	LargestFree int     // Largest single free block
	InUse       int     // Bytes no longer reachable through the free list
	HeaderBytes int     // Bytes spent on headers since the last reset
	Allocs      int     // Successful Allocate calls
	Deallocs    int     // Deallocate calls accepted (and ignored)
	Splits      int     // Allocations that split a block
	Failures    int     // Allocate calls that returned ErrNoSpace
	Resets      int     // Reset calls
	Utilization float64 // InUse / Capacity (0.0-1.0)
}

// Block describes one free-list node.
type Block struct {
	Offset int // header offset
	Data   int // first usable byte
	Size   int // usable bytes
	Next   int // next header offset, or -1 for the tail
}

// Blocks returns the free list in list order.
func (a *Arena) Blocks() []Block {
	var out []Block
	a.walk(func(off int, h format.Header) {
		out = append(out, Block{Offset: off, Data: h.Data, Size: h.Size, Next: h.Next})
	})
	return out
}

// FreeBytes returns the usable bytes left on the free list. It never grows
// between resets, whatever is deallocated.
func (a *Arena) FreeBytes() int {
	total := 0
	a.walk(func(_ int, h format.Header) {
		total += h.Size
	})
	return total
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 for a released arena.
func (a *Arena) Utilization() float64 {
	return a.Stats().Utilization
}

// Stats returns a snapshot of arena statistics.
func (a *Arena) Stats() ArenaStats {
	s := ArenaStats{
		Capacity:    len(a.buf),
		HeaderBytes: a.stats.headers * format.HeaderSize,
		Allocs:      a.stats.allocs,
		Deallocs:    a.stats.deallocs,
		Splits:      a.stats.splits,
		Failures:    a.stats.failures,
		Resets:      a.stats.resets,
	}
	a.walk(func(_ int, h format.Header) {
		s.FreeBytes += h.Size
		s.FreeBlocks++
		s.LargestFree = max(s.LargestFree, h.Size)
	})
	if s.Capacity > 0 {
		s.InUse = s.Capacity - s.FreeBytes - s.FreeBlocks*format.HeaderSize
		s.Utilization = float64(s.InUse) / float64(s.Capacity)
	}
	return s
}

// walk visits every free-list node. It stops early on a corrupt list;
// Validate reports why.
func (a *Arena) walk(fn func(off int, h format.Header)) {
	if a.buf == nil {
		return
	}
	for off, steps := a.head, 0; off != format.NoBlock; steps++ {
		h, err := format.ParseHeader(a.buf, off)
		if err != nil || steps > len(a.buf)/format.HeaderSize {
			return
		}
		fn(off, h)
		off = h.Next
	}
}

// Validate checks the free list:
//   - every header lies inside the buffer, 8-byte aligned
//   - data starts right after its header and the region fits the buffer
//   - sizes are multiples of 8
//   - nodes are sorted by position and do not overlap (which also rules out cycles)
func (a *Arena) Validate() error {
	if a.buf == nil {
		return ErrReleased
	}
	prevEnd := 0
	for off := a.head; off != format.NoBlock; {
		if off < prevEnd {
			return errors.Newf("free block at %d overlaps or precedes the previous block ending at %d", off, prevEnd)
		}
		h, err := format.ParseHeader(a.buf, off)
		if err != nil {
			return errors.Wrapf(err, "free block at %d", off)
		}
		if h.Data != off+format.HeaderSize {
			return errors.Newf("free block at %d has data offset %d, want %d", off, h.Data, off+format.HeaderSize)
		}
		end, err := buf.CheckRange(len(a.buf), h.Data, h.Size)
		if err != nil {
			return errors.Wrapf(err, "free block at %d", off)
		}
		prevEnd = end
		off = h.Next
	}
	return nil
}

// LogFreeList writes one debug record per free block to l, or to the
// arena's logger when l is nil.
func (a *Arena) LogFreeList(l *slog.Logger) {
	if l == nil {
		l = logger.Or(a.log)
	}
	for i, b := range a.Blocks() {
		l.Debug("arena free block", "index", i, "offset", b.Offset, "data", b.Data, "size", b.Size, "next", b.Next)
	}
}
