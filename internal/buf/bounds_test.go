package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	tests := []struct {
		a, b   int
		want   int
		wantOK bool
	}{
		{a: 100, b: 4, want: 400, wantOK: true},
		{a: 0, b: math.MaxInt, want: 0, wantOK: true},
		{a: math.MaxInt, b: 0, want: 0, wantOK: true},
		{a: math.MaxInt/2 + 1, b: 2, wantOK: false},
		{a: -1, b: 8, wantOK: false},
		{a: 8, b: -1, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := MulOverflowSafe(tt.a, tt.b)
		if ok != tt.wantOK {
			t.Fatalf("MulOverflowSafe(%d,%d) ok=%v want %v", tt.a, tt.b, ok, tt.wantOK)
		}
		if ok && got != tt.want {
			t.Fatalf("MulOverflowSafe(%d,%d)=%d want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSaturatingMul(t *testing.T) {
	if got := SaturatingMul(3, 8); got != 24 {
		t.Fatalf("SaturatingMul(3,8)=%d want 24", got)
	}
	if got := SaturatingMul(math.MaxInt, 8); got != math.MaxInt {
		t.Fatalf("SaturatingMul should clamp to MaxInt, got %d", got)
	}
}

func TestCheckRange(t *testing.T) {
	end, err := CheckRange(64, 24, 40)
	if err != nil || end != 64 {
		t.Fatalf("CheckRange(64,24,40)=%d,%v want 64,nil", end, err)
	}
	if _, err := CheckRange(64, 24, 41); err == nil {
		t.Fatalf("expected out-of-bounds error")
	}
	if _, err := CheckRange(64, -1, 1); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckRange(64, 1, -1); err == nil {
		t.Fatalf("expected negative size error")
	}
	if _, err := CheckRange(math.MaxInt, math.MaxInt, 1); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestHas(t *testing.T) {
	if !Has(32, 24, 8) {
		t.Fatalf("Has should be true for valid range")
	}
	if Has(32, 24, 9) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(32, 32, 0) {
		t.Fatalf("empty range at end should be in bounds")
	}
}
