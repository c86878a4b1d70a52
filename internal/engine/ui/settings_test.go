package ui

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.123, 0.12},
		{0.126, 0.13},
		{-0.126, -0.13},
		{5, 2},
		{-5, -2},
		{2, 2},
	}
	for _, tt := range tests {
		if got := Snap(tt.in, -2, 2, 0.01); math32.Abs(got-tt.want) > 1e-5 {
			t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Snap(0.333, -2, 2, 0); got != 0.333 {
		t.Errorf("zero step should not round, got %v", got)
	}
}

func TestHexToFloats(t *testing.T) {
	r, g, b := hexToFloats(0xeeeeee)
	if r != g || g != b || math32.Abs(r-float32(0xee)/255) > 1e-6 {
		t.Errorf("got %v %v %v", r, g, b)
	}
}
