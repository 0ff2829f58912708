package orders

import (
	"strings"
	"testing"
	"time"

	"krishi/models"
)

func validInput() createInput {
	return createInput{
		PaymentID: "pay_abc123",
		Products: []models.OrderLine{
			{ProductID: "p1", Quantity: 2, Price: 120},
		},
		TotalAmount:     240,
		DeliveryAddress: "12 Market Road, Pune, Maharashtra",
	}
}

func TestValidateCreateOK(t *testing.T) {
	in := validInput()
	if err := validateCreate(&in, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCreateRejections(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*createInput)
		substr string
	}{
		{"missing payment id", func(in *createInput) { in.PaymentID = "" }, "order ID"},
		{"no products", func(in *createInput) { in.Products = nil }, "at least one product"},
		{"zero quantity", func(in *createInput) { in.Products[0].Quantity = 0 }, "quantity"},
		{"negative price", func(in *createInput) { in.Products[0].Price = -1 }, "price"},
		{"short address", func(in *createInput) { in.DeliveryAddress = "nowhere" }, "address"},
		{"past delivery date", func(in *createInput) {
			in.ExpectedDeliveryDate = now.Add(-24 * time.Hour)
		}, "future"},
		{"delivery date exactly now", func(in *createInput) {
			in.ExpectedDeliveryDate = now
		}, "future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := validateCreate(&in, now)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q does not mention %q", err, tt.substr)
			}
		})
	}
}

func TestValidateCreateFutureDateAccepted(t *testing.T) {
	in := validInput()
	in.ExpectedDeliveryDate = time.Now().AddDate(0, 0, 3)
	if err := validateCreate(&in, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineTotal(t *testing.T) {
	lines := []models.OrderLine{
		{ProductID: "p1", Quantity: 2, Price: 99.50},
		{ProductID: "p2", Quantity: 1, Price: 45},
	}
	if got, want := lineTotal(lines), 2*99.50+45; got != want {
		t.Errorf("lineTotal = %v, want %v", got, want)
	}
}

func TestTotalsMatch(t *testing.T) {
	if !totalsMatch(100.00, 100.009) {
		t.Error("totals within epsilon rejected")
	}
	if totalsMatch(100.00, 100.02) {
		t.Error("totals outside epsilon accepted")
	}
}
