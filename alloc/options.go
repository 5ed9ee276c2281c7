package alloc

import "log/slog"

// Backing selects where an arena's buffer comes from.
type Backing int

const (
	// BackingHeap allocates the buffer as a Go byte slice.
	BackingHeap Backing = iota

	// BackingPages reserves the buffer as an anonymous memory mapping where
	// the platform supports it, falling back to BackingHeap elsewhere.
	// Release returns the pages to the operating system.
	BackingPages
)

// String returns the backing name used by allocctl flags.
func (b Backing) String() string {
	switch b {
	case BackingHeap:
		return "heap"
	case BackingPages:
		return "pages"
	default:
		return "unknown"
	}
}

// ParseBacking is the inverse of Backing.String.
func ParseBacking(s string) (Backing, bool) {
	switch s {
	case "heap", "":
		return BackingHeap, true
	case "pages":
		return BackingPages, true
	default:
		return BackingHeap, false
	}
}

// Options configures arena and fallback construction.
//
// Use DefaultOptions() for defaults; a nil *Options means the same.
type Options struct {
	// Backing selects the arena buffer source.
	// Default: BackingHeap
	Backing Backing

	// Logger receives debug records for splits, exhaustion and contract
	// violations.
	// Default: the process-wide logger (internal/logger), which discards
	// unless ALLOCKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{
		Backing: BackingHeap,
	}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}
