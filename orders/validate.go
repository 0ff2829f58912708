package orders

import (
	"errors"
	"fmt"
	"math"
	"time"

	"krishi/models"
)

const minAddressLength = 10

// totalEpsilon is the rounding slack allowed between the client-submitted
// total and the server-side recomputation.
const totalEpsilon = 0.01

var (
	errNoProducts = errors.New("order must contain at least one product")
	errAddress    = fmt.Errorf("delivery address must be at least %d characters", minAddressLength)
)

type createInput struct {
	PaymentID            string             `json:"orderId"`
	Products             []models.OrderLine `json:"products"`
	TotalAmount          float64            `json:"totalAmount"`
	DeliveryAddress      string             `json:"deliveryAddress"`
	ExpectedDeliveryDate time.Time          `json:"expectedDeliveryDate"`
	Notes                string             `json:"notes"`
	PaymentMethod        string             `json:"paymentMethod"`
}

// validateCreate checks everything about the request that does not need the
// database: line shape, address length, delivery date in the future.
func validateCreate(in *createInput, now time.Time) error {
	if in.PaymentID == "" {
		return errors.New("order ID is required")
	}
	if len(in.Products) == 0 {
		return errNoProducts
	}
	for _, line := range in.Products {
		if line.ProductID == "" {
			return errors.New("every order line needs a productId")
		}
		if line.Quantity < 1 {
			return fmt.Errorf("product %s: quantity must be at least 1", line.ProductID)
		}
		if line.Price < 0 {
			return fmt.Errorf("product %s: price must not be negative", line.ProductID)
		}
	}
	if len(in.DeliveryAddress) < minAddressLength {
		return errAddress
	}
	if !in.ExpectedDeliveryDate.IsZero() && !in.ExpectedDeliveryDate.After(now) {
		return errors.New("expected delivery date must be in the future")
	}
	return nil
}

// lineTotal is the sum of unit price times quantity over all lines.
func lineTotal(lines []models.OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// totalsMatch compares two money figures within the rounding epsilon.
func totalsMatch(a, b float64) bool {
	return math.Abs(a-b) <= totalEpsilon
}
