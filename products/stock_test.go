package products

import "testing"

func TestOutOfStockFor(t *testing.T) {
	tests := []struct {
		quantity int
		want     bool
	}{
		{0, true},
		{-1, true},
		{1, false},
		{5, false},
	}
	for _, tt := range tests {
		if got := OutOfStockFor(tt.quantity); got != tt.want {
			t.Errorf("OutOfStockFor(%d) = %v, want %v", tt.quantity, got, tt.want)
		}
	}
}
