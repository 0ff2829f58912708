package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/mq"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateOrderDetails turns a verified payment plus a product snapshot into a
// persisted order record. The total is recomputed from the catalog's current
// discounted prices and must agree with the client figure within the rounding
// epsilon.
func CreateOrderDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in createInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := validateCreate(&in, time.Now()); err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error())
		return
	}

	// One payment backs at most one order.
	count, err := db.OrderDetailsCollection.CountDocuments(ctx, bson.M{"order": in.PaymentID})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to check existing orders")
		return
	}
	if count > 0 {
		utils.SendError(w, http.StatusConflict, "An order already exists for this payment")
		return
	}

	// Recompute the total from persisted product prices; the client-supplied
	// figure is never trusted on its own.
	var serverTotal float64
	for i, line := range in.Products {
		var product models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&product); err != nil {
			utils.SendError(w, http.StatusNotFound, "Product not found: "+line.ProductID)
			return
		}
		discounted := product.Price * (1 - product.OfferPercentage/100)
		in.Products[i].Price = discounted
		serverTotal += discounted * float64(line.Quantity)
	}
	if !totalsMatch(serverTotal, in.TotalAmount) {
		utils.SendError(w, http.StatusBadRequest, "totalAmount does not match catalog prices")
		return
	}

	expected := in.ExpectedDeliveryDate
	if expected.IsZero() {
		expected = time.Now().AddDate(0, 0, 5)
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCash
	}

	order := models.OrderDetails{
		OrderDetailsID:       "od" + utils.GenerateRandomString(10),
		CustomerID:           userID,
		PaymentID:            in.PaymentID,
		Products:             in.Products,
		TotalAmount:          serverTotal,
		OrderStatus:          models.OrderPending,
		PaymentMethod:        method,
		DeliveryAddress:      in.DeliveryAddress,
		ExpectedDeliveryDate: expected,
		Notes:                in.Notes,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}

	if _, err := db.OrderDetailsCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrderDetails insert error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create the order details")
		return
	}

	// Back-reference on the user document
	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$push": bson.M{"orders": order.OrderDetailsID}},
	); err != nil {
		log.Println("CreateOrderDetails user update error:", err)
	}

	go mq.Emit(ctx, "order-created", models.Index{
		EntityType: "order", EntityId: order.OrderDetailsID, Method: "POST",
	})
	utils.SendResponse(w, http.StatusCreated, order, "Order created successfully")
}

func GetAllOrderDetails(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.OrderDetailsCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.OrderDetails
	if err := cursor.All(ctx, &orders); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to decode orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.OrderDetails{}
	}

	utils.SendResponse(w, http.StatusOK, orders, "Fetched all orders")
}

func GetOrderDetailsByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.OrderDetails
	err := db.OrderDetailsCollection.FindOne(ctx, bson.M{"orderDetailsId": ps.ByName("orderId")}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.SendError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	utils.SendResponse(w, http.StatusOK, order, "Order fetched successfully")
}

// UpdateOrderStatus validates both enum membership and the transition table
// before persisting.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	var body struct {
		OrderStatus models.OrderStatus `json:"orderStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !ValidStatus(body.OrderStatus) {
		utils.SendError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	var order models.OrderDetails
	if err := db.OrderDetailsCollection.FindOne(ctx, bson.M{"orderDetailsId": orderID}).Decode(&order); err != nil {
		utils.SendError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !CanTransition(order.OrderStatus, body.OrderStatus) {
		utils.SendError(w, http.StatusBadRequest,
			"Cannot move order from "+string(order.OrderStatus)+" to "+string(body.OrderStatus))
		return
	}

	if _, err := db.OrderDetailsCollection.UpdateOne(ctx,
		bson.M{"orderDetailsId": orderID},
		bson.M{"$set": bson.M{"orderStatus": body.OrderStatus, "updated_at": time.Now()}},
	); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	order.OrderStatus = body.OrderStatus
	utils.SendResponse(w, http.StatusOK, order, "Order updated successfully")
}

func DeleteOrderDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	res, err := db.OrderDetailsCollection.DeleteOne(ctx, bson.M{"orderDetailsId": orderID})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if res.DeletedCount == 0 {
		utils.SendError(w, http.StatusNotFound, "Order not found")
		return
	}

	go mq.Emit(ctx, "order-deleted", models.Index{
		EntityType: "order", EntityId: orderID, Method: "DELETE",
	})
	utils.SendResponse(w, http.StatusOK, nil, "Order deleted successfully")
}
