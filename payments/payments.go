package payments

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/razorpay"
	"krishi/rdx"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
)

// lockTTL bounds how long a per-user verify lock is held.
const lockTTL = 5 * time.Second

// PaymentService owns the gateway client and the payment handlers.
type PaymentService struct {
	gateway *razorpay.Client
}

func NewPaymentService(gateway *razorpay.Client) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// GetRazorpayKey hands the publishable key id to the frontend.
func (p *PaymentService) GetRazorpayKey(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.SendResponse(w, http.StatusOK, utils.M{"key": p.gateway.KeyID}, "Razorpay key id")
}

// CreateOrder is phase one of the online flow: ask the gateway for a remote
// order covering amount*100 minor units and hand the ids back to the client.
// No local record is written until the payment verifies.
func (p *PaymentService) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var body struct {
		Amount float64 `json:"amount"` // major currency units
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Amount <= 0 {
		utils.SendError(w, http.StatusBadRequest, "A positive amount is required")
		return
	}

	orderID := "ord_" + strconv.FormatInt(time.Now().UnixNano(), 36) + utils.GenerateRandomDigitString(4)
	receipt := "receipt_order_" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	gatewayOrder, err := p.gateway.CreateOrder(ctx, int64(body.Amount*100), "INR", receipt)
	if err != nil {
		log.Println("CreateOrder gateway error:", err)
		utils.SendError(w, http.StatusBadGateway, "Order creation failed")
		return
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{
		"orderId":         orderID,
		"razorpayOrderId": gatewayOrder.ID,
		"currency":        gatewayOrder.Currency,
		"amount":          gatewayOrder.Amount,
	}, "Order created successfully")
}

// VerifyPayment is phase two: recompute the HMAC over the gateway ids and
// compare against the client-submitted signature. Only a match persists an
// OrderPayment record.
func (p *PaymentService) VerifyPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		RazorpayOrderID   string `json:"razorpayOrderId"`
		RazorpayPaymentID string `json:"razorpayPaymentId"`
		Signature         string `json:"signature"`
		Amount            int64  `json:"amount"` // minor units
		OrderID           string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.RazorpayOrderID == "" || body.RazorpayPaymentID == "" || body.Signature == "" {
		utils.SendError(w, http.StatusBadRequest, "Missing payment identifiers")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	// Serialize concurrent verify attempts per user.
	if userID != "" {
		acquired, err := rdx.RdxSetNX("payment_verify_lock:"+userID, "1", lockTTL)
		if err == nil && !acquired {
			utils.SendError(w, http.StatusTooManyRequests, "Verification already in progress, please retry")
			return
		}
		defer rdx.RdxDel("payment_verify_lock:" + userID)
	}

	secret := os.Getenv("RAZORPAY_SECRET")
	if !VerifySignature(secret, body.RazorpayOrderID, body.RazorpayPaymentID, body.Signature) {
		utils.SendError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	payment := models.OrderPayment{
		PaymentID:         "pay" + utils.GenerateRandomString(10),
		PaymentMethod:     models.PaymentMethodOnline,
		OrderID:           body.OrderID,
		RazorpayOrderID:   body.RazorpayOrderID,
		RazorpayPaymentID: body.RazorpayPaymentID,
		Signature:         body.Signature,
		Amount:            body.Amount,
		Currency:          "INR",
		Status:            models.PaymentStatusPaid,
		UserID:            userID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if _, err := db.OrderPaymentCollection.InsertOne(ctx, payment); err != nil {
		// Funds have already moved; surface the gap loudly so the record can
		// be reconciled instead of silently lost.
		log.Printf("VerifyPayment: verified payment not persisted! gatewayOrder=%s gatewayPayment=%s user=%s err=%v",
			body.RazorpayOrderID, body.RazorpayPaymentID, userID, err)
		utils.SendError(w, http.StatusInternalServerError, "Payment verified but record not saved; please contact support")
		return
	}

	utils.SendResponse(w, http.StatusOK, payment, "Payment verified successfully")
}

// CreateCODPayment records a cash-on-delivery payment immediately with
// status pending; there is no gateway round-trip to wait for.
func (p *PaymentService) CreateCODPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Amount int64 `json:"amount"` // minor units
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Amount <= 0 {
		utils.SendError(w, http.StatusBadRequest, "A positive amount is required")
		return
	}

	payment := models.OrderPayment{
		PaymentID:     "pay" + utils.GenerateRandomString(10),
		PaymentMethod: models.PaymentMethodCash,
		OrderID:       "ord_" + strconv.FormatInt(time.Now().UnixNano(), 36) + utils.GenerateRandomDigitString(4),
		Amount:        body.Amount,
		Currency:      "INR",
		Status:        models.PaymentStatusPending,
		UserID:        utils.GetUserIDFromRequest(r),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := db.OrderPaymentCollection.InsertOne(ctx, payment); err != nil {
		log.Println("CreateCODPayment insert error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to record cash order")
		return
	}

	utils.SendResponse(w, http.StatusCreated, payment, "Cash order recorded")
}
