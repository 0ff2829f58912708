package models

import "time"

const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

const (
	PaymentStatusCreated = "created"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// OrderPayment records one gateway transaction attempt. For the online path
// it is written only after the signature verifies; cash-on-delivery records
// are written immediately with status pending.
type OrderPayment struct {
	PaymentID         string    `json:"paymentid" bson:"paymentid"`
	PaymentMethod     string    `json:"paymentMethod" bson:"paymentMethod"`
	OrderID           string    `json:"orderId" bson:"orderId"` // internal correlation id
	RazorpayOrderID   string    `json:"razorpayOrderId,omitempty" bson:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string    `json:"razorpayPaymentId,omitempty" bson:"razorpayPaymentId,omitempty"`
	Signature         string    `json:"signature,omitempty" bson:"signature,omitempty"`
	Amount            int64     `json:"amount" bson:"amount"` // minor currency units
	Currency          string    `json:"currency" bson:"currency"`
	Status            string    `json:"status" bson:"status"`
	UserID            string    `json:"user,omitempty" bson:"user,omitempty"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderLine struct {
	ProductID string  `json:"productId" bson:"productId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"` // unit price snapshot
}

type OrderDetails struct {
	OrderDetailsID       string      `json:"orderDetailsId" bson:"orderDetailsId"`
	CustomerID           string      `json:"customer" bson:"customer"`
	PaymentID            string      `json:"order" bson:"order"` // OrderPayment ref, one-to-one
	Products             []OrderLine `json:"products" bson:"products"`
	TotalAmount          float64     `json:"totalAmount" bson:"totalAmount"`
	OrderStatus          OrderStatus `json:"orderStatus" bson:"orderStatus"`
	PaymentMethod        string      `json:"paymentMethod" bson:"paymentMethod"`
	DeliveryAddress      string      `json:"deliveryAddress" bson:"deliveryAddress"`
	ExpectedDeliveryDate time.Time   `json:"expectedDeliveryDate" bson:"expectedDeliveryDate"`
	Notes                string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt            time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at" bson:"updated_at"`
}
