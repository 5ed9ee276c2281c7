package alloc

import (
	"log/slog"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/allockit/internal/logger"
)

// Fallback presents one allocator backed by two delegates: a fast, limited
// primary that is always tried first and a secondary that serves whatever the
// primary cannot. It records which delegate produced each outstanding block so
// Deallocate can route the release back to it.
//
// The Fallback takes ownership of both delegates; they must not be used
// directly while it is alive. It is not safe for concurrent use.
type Fallback struct {
	primary   Allocator
	secondary Allocator
	owners    map[*byte]ownership
	log       *slog.Logger
	stats     FallbackStats
}

// ownership is the tracking entry for one outstanding allocation.
type ownership struct {
	src  Source
	size int
}

// FallbackStats counts where allocations were served from.
type FallbackStats struct {
	PrimaryHits   int // Allocations served by the primary
	SecondaryHits int // Allocations served by the secondary
	Failures      int // Allocations neither delegate could serve
	Deallocs      int // Successful, routed deallocations
	Outstanding   int // Tracked allocations not yet deallocated
}

// NewFallback composes primary and secondary. Only opts.Logger is used.
func NewFallback(primary, secondary Allocator, opts *Options) *Fallback {
	opts = opts.orDefault()
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		owners:    make(map[*byte]ownership),
		log:       logger.Or(opts.Logger),
	}
}

// Allocate tries the primary, then the secondary when the primary is
// exhausted. Errors other than ErrNoSpace from the primary (for example a
// Heap's ErrOutOfMemory) are returned unchanged without trying the secondary.
// When both fail, the secondary's error is returned and nothing is tracked.
func (f *Fallback) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrBadSize, "fallback: allocate %d bytes", size)
	}

	b, err := f.primary.Allocate(size)
	if err == nil {
		f.track(b, SourcePrimary)
		return b, nil
	}
	if !errors.Is(err, ErrNoSpace) {
		f.stats.Failures++
		return nil, err
	}

	f.log.Debug("fallback primary exhausted", "size", size)
	b, err = f.secondary.Allocate(size)
	if err != nil {
		f.stats.Failures++
		f.log.Debug("fallback secondary failed", "size", size, "err", err)
		return nil, err
	}
	f.track(b, SourceSecondary)
	return b, nil
}

func (f *Fallback) track(b []byte, src Source) {
	f.owners[unsafe.SliceData(b)] = ownership{src: src, size: len(b)}
	if src == SourcePrimary {
		f.stats.PrimaryHits++
	} else {
		f.stats.SecondaryHits++
	}
}

// Deallocate routes b to the delegate that produced it and forgets it.
// Untracked slices, double deallocation and length mismatches are contract
// violations: they return an assertion failure and change nothing.
func (f *Fallback) Deallocate(b []byte) error {
	p := unsafe.SliceData(b)
	own, ok := f.owners[p]
	if !ok {
		err := errors.AssertionFailedf("fallback: deallocate of untracked block %p (%d bytes)", p, len(b))
		f.log.Warn("fallback contract violation", "err", err)
		return err
	}
	if own.size != len(b) {
		err := errors.AssertionFailedf("fallback: deallocate of %p with %d bytes, allocated with %d",
			p, len(b), own.size)
		f.log.Warn("fallback contract violation", "err", err)
		return err
	}

	if err := f.delegate(own.src).Deallocate(b); err != nil {
		return errors.Wrapf(err, "fallback: %s deallocate", own.src)
	}
	delete(f.owners, p)
	f.stats.Deallocs++
	return nil
}

// MaxSize returns the larger of the delegates' bounds, since either may
// serve a request.
func (f *Fallback) MaxSize() int {
	return max(f.primary.MaxSize(), f.secondary.MaxSize())
}

// Owner reports which delegate served b, if b is outstanding.
func (f *Fallback) Owner(b []byte) (Source, bool) {
	own, ok := f.owners[unsafe.SliceData(b)]
	return own.src, ok
}

// Outstanding returns the number of tracked allocations.
func (f *Fallback) Outstanding() int {
	return len(f.owners)
}

// Primary returns the primary delegate.
func (f *Fallback) Primary() Allocator { return f.primary }

// Secondary returns the secondary delegate.
func (f *Fallback) Secondary() Allocator { return f.secondary }

// Stats returns a snapshot of routing statistics.
func (f *Fallback) Stats() FallbackStats {
	s := f.stats
	s.Outstanding = len(f.owners)
	return s
}

func (f *Fallback) delegate(src Source) Allocator {
	if src == SourcePrimary {
		return f.primary
	}
	return f.secondary
}
