package orders

import (
	"testing"

	"krishi/models"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.OrderPending, models.OrderShipped, models.OrderDelivered, models.OrderCancelled,
	} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("returned") {
		t.Error("ValidStatus accepted a status outside the enum")
	}
	if ValidStatus("") {
		t.Error("ValidStatus accepted the empty string")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderPending, models.OrderShipped, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderShipped, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderShipped, false},
		{models.OrderCancelled, models.OrderDelivered, false},
		{models.OrderDelivered, models.OrderPending, false},
		{models.OrderPending, models.OrderPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
