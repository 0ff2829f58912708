package payments

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// BuySubscription creates a gateway subscription for the caller's store and
// stores its id so the verify step can check the signature against it.
func (p *PaymentService) BuySubscription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	planID := os.Getenv("RAZORPAY_PLAN_ID")
	if planID == "" {
		utils.SendError(w, http.StatusInternalServerError, "Plan id is missing")
		return
	}

	var store models.Store
	if err := db.StoreCollection.FindOne(ctx, bson.M{"owner": userID}).Decode(&store); err != nil {
		utils.SendError(w, http.StatusNotFound, "Store not found")
		return
	}

	sub, err := p.gateway.CreateSubscription(ctx, planID, 12)
	if err != nil {
		log.Println("BuySubscription gateway error:", err)
		utils.SendError(w, http.StatusBadGateway, "Failed to create the subscription")
		return
	}

	if _, err := db.StoreCollection.UpdateOne(ctx,
		bson.M{"storeid": store.StoreID},
		bson.M{"$set": bson.M{
			"subscription.id":     sub.ID,
			"subscription.status": sub.Status,
			"updated_at":          time.Now(),
		}},
	); err != nil {
		log.Println("BuySubscription store update error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"subscription_id": sub.ID,
	}, "Subscribed successfully")
}

// VerifySubscription checks the gateway signature over paymentId|subscriptionId
// and on success marks the store's subscription active.
func (p *PaymentService) VerifySubscription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		RazorpayPaymentID string `json:"razorpayPaymentId"`
		Signature         string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.RazorpayPaymentID == "" || body.Signature == "" {
		utils.SendError(w, http.StatusBadRequest, "Missing payment identifiers")
		return
	}

	var store models.Store
	if err := db.StoreCollection.FindOne(ctx, bson.M{"owner": userID}).Decode(&store); err != nil {
		utils.SendError(w, http.StatusNotFound, "Store not found")
		return
	}
	if store.Subscription.ID == "" {
		utils.SendError(w, http.StatusBadRequest, "No subscription to verify")
		return
	}

	secret := os.Getenv("RAZORPAY_SECRET")
	if !VerifySubscriptionSignature(secret, body.RazorpayPaymentID, store.Subscription.ID, body.Signature) {
		utils.SendError(w, http.StatusBadRequest, "Payment not verified, please try again")
		return
	}

	payment := models.OrderPayment{
		PaymentID:         "pay" + utils.GenerateRandomString(10),
		PaymentMethod:     models.PaymentMethodOnline,
		RazorpayPaymentID: body.RazorpayPaymentID,
		Signature:         body.Signature,
		Currency:          "INR",
		Status:            models.PaymentStatusPaid,
		UserID:            userID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if _, err := db.OrderPaymentCollection.InsertOne(ctx, payment); err != nil {
		log.Printf("VerifySubscription: verified payment not persisted! gatewayPayment=%s subscription=%s err=%v",
			body.RazorpayPaymentID, store.Subscription.ID, err)
		utils.SendError(w, http.StatusInternalServerError, "Payment verified but record not saved; please contact support")
		return
	}

	if _, err := db.StoreCollection.UpdateOne(ctx,
		bson.M{"storeid": store.StoreID},
		bson.M{"$set": bson.M{
			"subscription.status": models.SubscriptionActive,
			"updated_at":          time.Now(),
		}},
	); err != nil {
		log.Println("VerifySubscription store update error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to activate subscription")
		return
	}

	store.Subscription.Status = models.SubscriptionActive
	utils.SendResponse(w, http.StatusOK, store, "Payment verified successfully")
}
