package cart

import (
	"math"
	"time"

	"krishi/models"
)

// Recalculate rewrites every aggregate field of the cart from its items.
// Totals are always recomputed from scratch, never patched, so repeated
// calls are idempotent and order of mutations cannot cause drift.
func Recalculate(c *models.Cart) {
	var quantity int
	var price, discount float64

	for _, item := range c.Items {
		price += item.Price * float64(item.Quantity)
		discount += item.Price * item.OfferPercentage / 100 * float64(item.Quantity)
		quantity += item.Quantity
	}

	c.TotalQuantity = quantity
	c.TotalPrice = price
	c.TotalDiscount = discount
	c.UpdatedAt = time.Now()
}

// ShippingFee is a pure function of the net price (subtotal minus discount):
// below 500 the fee is 50, from 500 up to (but excluding) 999 it is 30, and
// from 999 on delivery is free.
func ShippingFee(netPrice float64) float64 {
	switch {
	case netPrice < 500:
		return 50
	case netPrice < 999:
		return 30
	default:
		return 0
	}
}

// NetPrice is the cart subtotal after discounts, before shipping.
func NetPrice(c *models.Cart) float64 {
	return c.TotalPrice - c.TotalDiscount
}

// GrandTotal is net price plus shipping, rounded to two decimals.
func GrandTotal(c *models.Cart) float64 {
	net := NetPrice(c)
	return Round2(net + ShippingFee(net))
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
