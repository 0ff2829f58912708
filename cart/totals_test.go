package cart

import (
	"testing"

	"krishi/models"
)

func item(id string, price float64, qty int, offer float64) models.CartItem {
	return models.CartItem{ProductID: id, Name: id, Price: price, Quantity: qty, OfferPercentage: offer}
}

func TestRecalculateTotals(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{
		item("p1", 100, 2, 10),
		item("p2", 49.50, 3, 0),
	}}

	Recalculate(&c)

	if c.TotalQuantity != 5 {
		t.Errorf("totalQuantity = %d, want 5", c.TotalQuantity)
	}
	if want := 100*2 + 49.50*3; c.TotalPrice != want {
		t.Errorf("totalPrice = %v, want %v", c.TotalPrice, want)
	}
	if want := 100 * 0.10 * 2; c.TotalDiscount != want {
		t.Errorf("totalDiscount = %v, want %v", c.TotalDiscount, want)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{item("p1", 250, 4, 25)}}

	Recalculate(&c)
	price, discount, qty := c.TotalPrice, c.TotalDiscount, c.TotalQuantity
	Recalculate(&c)

	if c.TotalPrice != price || c.TotalDiscount != discount || c.TotalQuantity != qty {
		t.Errorf("second recalculation changed totals: %v/%v/%d vs %v/%v/%d",
			c.TotalPrice, c.TotalDiscount, c.TotalQuantity, price, discount, qty)
	}
}

func TestRecalculateEmptyCart(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{}}
	Recalculate(&c)
	if c.TotalQuantity != 0 || c.TotalPrice != 0 || c.TotalDiscount != 0 {
		t.Errorf("empty cart totals not zeroed: %+v", c)
	}
}

func TestShippingFeeTiers(t *testing.T) {
	tests := []struct {
		net  float64
		want float64
	}{
		{0, 50},
		{499.99, 50},
		{500, 30},
		{998.99, 30},
		{999, 0},
		{5000, 0},
	}
	for _, tt := range tests {
		if got := ShippingFee(tt.net); got != tt.want {
			t.Errorf("ShippingFee(%v) = %v, want %v", tt.net, got, tt.want)
		}
	}
}

func TestGrandTotalRounding(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{item("p1", 333.335, 1, 0)}}
	Recalculate(&c)

	// net 333.335 -> fee 50 -> 383.335 rounds to 383.34
	if got := GrandTotal(&c); got != 383.34 {
		t.Errorf("GrandTotal = %v, want 383.34", got)
	}
}

func TestAddAccumulatesExistingLine(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{item("p1", 10, 2, 0)}}

	// simulate AddToCart's accumulate branch
	for i := range c.Items {
		if c.Items[i].ProductID == "p1" {
			c.Items[i].Quantity += 2
		}
	}
	Recalculate(&c)

	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", c.Items[0].Quantity)
	}
	if c.TotalPrice != 40 {
		t.Errorf("totalPrice = %v, want 40", c.TotalPrice)
	}
}

func TestRequestedQuantity(t *testing.T) {
	intp := func(v int) *int { return &v }

	cases := []struct {
		name    string
		in      *int
		want    int
		wantErr bool
	}{
		{"absent defaults to one", nil, 1, false},
		{"explicit zero rejected", intp(0), 0, true},
		{"negative rejected", intp(-3), 0, true},
		{"positive passes through", intp(4), 4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := requestedQuantity(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got quantity %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("quantity = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSetQuantityMissingItem(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{item("p1", 10, 1, 0)}}
	if err := setQuantity(&c, "p2", 3); err == nil {
		t.Fatal("expected error for missing item")
	}
	if c.Items[0].Quantity != 1 {
		t.Errorf("cart mutated on failed update: %+v", c.Items[0])
	}
}

func TestRemoveItemMissingLeavesCartUnchanged(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{item("p1", 10, 1, 0), item("p2", 20, 2, 0)}}
	Recalculate(&c)
	before := c.TotalPrice

	if err := removeItem(&c, "p3"); err == nil {
		t.Fatal("expected error for missing item")
	}
	if len(c.Items) != 2 || c.TotalPrice != before {
		t.Errorf("cart changed after failed remove: %+v", c)
	}
}

func TestRemoveItemRecalculates(t *testing.T) {
	c := models.Cart{Items: []models.CartItem{item("p1", 10, 1, 0), item("p2", 20, 2, 0)}}
	Recalculate(&c)

	if err := removeItem(&c, "p2"); err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}
	if c.TotalPrice != 10 || c.TotalQuantity != 1 {
		t.Errorf("totals not recomputed: price=%v qty=%d", c.TotalPrice, c.TotalQuantity)
	}
}
