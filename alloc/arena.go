package alloc

import (
	"log/slog"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/allockit/internal/buf"
	"github.com/joshuapare/allockit/internal/format"
	"github.com/joshuapare/allockit/internal/logger"
	"github.com/joshuapare/allockit/internal/pages"
)

// MinArenaCapacity is the smallest arena: one header plus the minimum payload.
const MinArenaCapacity = format.HeaderSize + format.MinPayload

// Arena is a fixed-capacity allocator over one pre-reserved byte buffer.
//
// Free space is tracked by a singly linked list of block headers stored inside
// the buffer itself (see internal/format). Allocation is first-fit with
// in-place splitting. Deallocate is a no-op: handed-out blocks never return to
// the free list and nothing is coalesced, so the arena depletes monotonically
// until Reset or Release.
//
// Key characteristics:
//   - O(1) construction: one header written at offset 0
//   - Sizes rounded up to 8 bytes; every data offset is 8-byte aligned
//   - A block is split only if the leftover fits a header plus 8 bytes
//   - No header is ever allocated outside the buffer
//
// An Arena is not safe for concurrent use.
type Arena struct {
	buf     []byte
	head    int // offset of the first free header, or format.NoBlock
	backing Backing
	release func() error
	log     *slog.Logger
	stats   arenaStats
}

// arenaStats holds counters for Stats().
type arenaStats struct {
	allocs   int
	deallocs int
	splits   int
	failures int
	resets   int
	headers  int // headers written since the last reset, including the initial one
}

// NewArena reserves capacity bytes and builds the initial free block.
// capacity must be a multiple of 8 and at least MinArenaCapacity.
func NewArena(capacity int, opts *Options) (*Arena, error) {
	opts = opts.orDefault()
	if capacity < MinArenaCapacity || !format.IsAligned8(capacity) {
		return nil, errors.Wrapf(ErrBadCapacity,
			"capacity %d (need a multiple of %d, at least %d)", capacity, format.Alignment, MinArenaCapacity)
	}

	a := &Arena{
		backing: opts.Backing,
		log:     logger.Or(opts.Logger),
	}

	switch opts.Backing {
	case BackingPages:
		mem, release, err := pages.Reserve(capacity)
		if err != nil {
			return nil, errors.Wrap(err, "arena: reserve pages")
		}
		a.buf, a.release = mem, release
	default:
		a.buf = make([]byte, capacity)
	}

	a.reset()
	return a, nil
}

// Allocate carves size bytes out of the first free block large enough.
//
//  1. Round size up to a multiple of 8
//  2. Walk the free list from the head, first fit
//  3. Split the block if the leftover holds a header plus 8 bytes
//  4. Retire the handed-out block from the free list
//
// Returns ErrNoSpace, with no state change, when no block fits.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if a.buf == nil {
		return nil, ErrReleased
	}
	if size < 0 {
		return nil, errors.Wrapf(ErrBadSize, "arena: allocate %d bytes", size)
	}
	if size > len(a.buf) {
		// Also keeps the rounding below from overflowing.
		return nil, a.exhausted(size)
	}

	need := format.Align8(size)

	prev, cur := format.NoBlock, a.head
	var blk format.Header
	for cur != format.NoBlock {
		blk = format.DecodeHeader(a.buf, cur)
		if blk.Size >= need {
			break
		}
		prev, cur = cur, blk.Next
	}
	if cur == format.NoBlock {
		return nil, a.exhausted(need)
	}

	succ := blk.Next
	if blk.Size-need >= format.MinSplitRemainder {
		rest := blk.Data + need
		format.PutHeader(a.buf, rest, format.Header{
			Data: rest + format.HeaderSize,
			Size: blk.Size - need - format.HeaderSize,
			Next: blk.Next,
		})
		blk.Size = need
		blk.Next = rest
		format.PutHeader(a.buf, cur, blk)
		succ = rest

		a.stats.splits++
		a.stats.headers++
		a.log.Debug("arena split", "block", cur, "need", need, "remainder", rest)
	}

	// The block is handed out: whatever follows it takes its place.
	if prev == format.NoBlock {
		a.head = succ
	} else {
		format.PutNext(a.buf, prev, succ)
	}

	a.stats.allocs++
	return unsafe.Slice(&a.buf[blk.Data], size), nil
}

// Deallocate accepts b back without reclaiming it. Blocks are never returned
// to the free list; the space comes back only through Reset.
// A slice that does not lie inside this arena is reported as a contract
// violation.
func (a *Arena) Deallocate(b []byte) error {
	if a.buf == nil {
		return ErrReleased
	}
	if !a.Owns(b) {
		err := errors.AssertionFailedf("arena: deallocate of %d bytes at %p not owned by this arena",
			len(b), unsafe.SliceData(b))
		a.log.Warn("arena contract violation", "err", err)
		return err
	}
	a.stats.deallocs++
	return nil
}

// MaxSize returns the arena capacity in bytes. It ignores header overhead and
// depletion, so Allocate may fail for smaller sizes.
func (a *Arena) MaxSize() int {
	return len(a.buf)
}

// Capacity returns the size of the arena buffer.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Backing returns where the buffer came from.
func (a *Arena) Backing() Backing {
	return a.backing
}

// Owns reports whether b lies inside the usable part of the arena buffer.
func (a *Arena) Owns(b []byte) bool {
	if len(a.buf) == 0 {
		return false
	}
	p := unsafe.SliceData(b)
	if p == nil {
		return false
	}
	off := a.offsetOf(p)
	return off >= format.HeaderSize && buf.Has(len(a.buf), off, len(b))
}

// Offset returns the buffer offset of b's first byte, or -1 if b is not
// owned by the arena.
func (a *Arena) Offset(b []byte) int {
	if !a.Owns(b) {
		return -1
	}
	return a.offsetOf(unsafe.SliceData(b))
}

func (a *Arena) offsetOf(p *byte) int {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	addr := uintptr(unsafe.Pointer(p))
	if addr < base {
		return -1
	}
	return int(addr - base)
}

// Reset rebuilds the initial free block in place. It is equivalent to
// destroying the arena and creating a new one over the same buffer: every
// slice handed out before Reset is invalid afterwards.
func (a *Arena) Reset() error {
	if a.buf == nil {
		return ErrReleased
	}
	a.reset()
	a.stats.resets++
	return nil
}

func (a *Arena) reset() {
	format.PutHeader(a.buf, 0, format.InitialHeader(len(a.buf)))
	a.head = 0
	a.stats.headers = 1
}

// Release drops the buffer, unmapping it for BackingPages. Any subsequent
// operation fails with ErrReleased. Calling Release twice is a no-op.
func (a *Arena) Release() error {
	a.buf = nil
	a.head = format.NoBlock
	if a.release == nil {
		return nil
	}
	release := a.release
	a.release = nil
	return release()
}

func (a *Arena) exhausted(need int) error {
	a.stats.failures++
	a.log.Debug("arena exhausted", "need", need, "capacity", len(a.buf))
	return ErrNoSpace
}
