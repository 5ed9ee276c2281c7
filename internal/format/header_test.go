package format

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestHeaderRoundTrip(t *testing.T) {
	b := make([]byte, 64)
	want := Header{Data: 24, Size: 40, Next: NoBlock}
	PutHeader(b, 0, want)

	got := DecodeHeader(b, 0)
	if got != want {
		t.Fatalf("DecodeHeader = %+v, want %+v", got, want)
	}
}

func TestHeaderNilOffsetEncoding(t *testing.T) {
	b := make([]byte, HeaderSize)
	PutHeader(b, 0, Header{Data: HeaderSize, Size: 0, Next: NoBlock})
	if v := ReadU64(b, NextFieldOffset); v != NilOffset {
		t.Fatalf("next word = %#x, want %#x", v, NilOffset)
	}
}

func TestPutNext(t *testing.T) {
	b := make([]byte, 64)
	PutHeader(b, 0, Header{Data: 24, Size: 8, Next: NoBlock})
	PutNext(b, 0, 32)

	h := DecodeHeader(b, 0)
	if h.Next != 32 || h.Size != 8 || h.Data != 24 {
		t.Fatalf("PutNext changed more than next: %+v", h)
	}
}

func TestInitialHeader(t *testing.T) {
	h := InitialHeader(64)
	if h.Data != HeaderSize || h.Size != 64-HeaderSize || h.Next != NoBlock {
		t.Fatalf("InitialHeader(64) = %+v", h)
	}
}

func TestParseHeader(t *testing.T) {
	b := make([]byte, 64)
	PutHeader(b, 0, Header{Data: 24, Size: 40, Next: NoBlock})

	if _, err := ParseHeader(b, 0); err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if _, err := ParseHeader(b, 48); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := ParseHeader(b, -8); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for negative offset, got %v", err)
	}
	if _, err := ParseHeader(b, 4); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned for odd offset, got %v", err)
	}

	PutHeader(b, 0, Header{Data: 24, Size: 13, Next: NoBlock})
	if _, err := ParseHeader(b, 0); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned for odd size, got %v", err)
	}
}

func TestAlign8(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0}, {1, 8}, {3, 8}, {5, 8}, {8, 8}, {9, 16}, {16, 16}, {17, 24},
	}
	for _, tt := range tests {
		if got := Align8(tt.in); got != tt.want {
			t.Fatalf("Align8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if AlignDown8(23) != 16 {
		t.Fatalf("AlignDown8(23) = %d, want 16", AlignDown8(23))
	}
	if !IsAligned8(24) || IsAligned8(20) {
		t.Fatalf("IsAligned8 mismatch")
	}
}
