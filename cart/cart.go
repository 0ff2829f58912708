package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	errItemNotFound    = errors.New("item not found in cart")
	errInvalidQuantity = errors.New("Quantity must be at least 1")
)

// requestedQuantity resolves the add-to-cart quantity: an absent field means
// one unit, but an explicit value below 1 is a client error, not a default.
func requestedQuantity(q *int) (int, error) {
	if q == nil {
		return 1, nil
	}
	if *q < 1 {
		return 0, errInvalidQuantity
	}
	return *q, nil
}

func loadUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func saveCart(ctx context.Context, userID string, c *models.Cart) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"cart": c, "updated_at": time.Now()}},
	)
	return err
}

// AddToCart appends a new line with a price/discount snapshot, or accumulates
// quantity when the product is already in the cart.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		ProductID string `json:"productId"`
		Quantity  *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.ProductID == "" {
		utils.SendError(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	quantity, err := requestedQuantity(body.Quantity)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": body.ProductID}).Decode(&product); err != nil {
		utils.SendError(w, http.StatusNotFound, "Product not found")
		return
	}

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	found := false
	for i := range user.Cart.Items {
		if user.Cart.Items[i].ProductID == body.ProductID {
			user.Cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		user.Cart.Items = append(user.Cart.Items, models.CartItem{
			ProductID:       product.ProductID,
			Name:            product.Name,
			Price:           product.Price,
			Quantity:        quantity,
			OfferPercentage: product.OfferPercentage,
			AddedAt:         time.Now(),
		})
	}

	Recalculate(&user.Cart)

	if err := saveCart(ctx, userID, &user.Cart); err != nil {
		log.Println("AddToCart save error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"cart": user.Cart}, "Item added to cart successfully")
}

// UpdateCartItem replaces the quantity of an existing line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Quantity < 1 {
		utils.SendError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := setQuantity(&user.Cart, productID, body.Quantity); err != nil {
		utils.SendError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := saveCart(ctx, userID, &user.Cart); err != nil {
		log.Println("UpdateCartItem save error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"cart": user.Cart}, "Cart item updated successfully")
}

func setQuantity(c *models.Cart, productID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			Recalculate(c)
			return nil
		}
	}
	return errItemNotFound
}

// RemoveFromCart drops a line; missing lines are a 404, not a no-op.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := removeItem(&user.Cart, productID); err != nil {
		utils.SendError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := saveCart(ctx, userID, &user.Cart); err != nil {
		log.Println("RemoveFromCart save error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to remove item from cart")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"cart": user.Cart}, "Item removed from cart successfully")
}

func removeItem(c *models.Cart, productID string) error {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(c.Items) {
		return errItemNotFound
	}
	c.Items = kept
	Recalculate(c)
	return nil
}

// ClearCart resets items and every aggregate field to zero.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cleared := models.Cart{Items: []models.CartItem{}, UpdatedAt: time.Now()}
	if err := saveCart(ctx, userID, &cleared); err != nil {
		log.Println("ClearCart save error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"cart": cleared}, "Cart cleared successfully")
}

// enrichedItem is a cart line joined against the live catalog for display.
type enrichedItem struct {
	models.CartItem
	Company         string  `json:"company,omitempty"`
	Description     string  `json:"description,omitempty"`
	Img             string  `json:"img,omitempty"`
	Category        string  `json:"category,omitempty"`
	OutOfStock      bool    `json:"outOfStock"`
	StockQuantity   int     `json:"stockQuantity"`
	DiscountedPrice float64 `json:"discountedPrice"`
	LineTotal       float64 `json:"totalPrice"`
	LineDiscount    float64 `json:"totalDiscount"`
	IsDeleted       bool    `json:"isDeleted,omitempty"`
}

// GetCart returns the cart with each line joined against the current catalog.
// Lines whose product has since been deleted come back flagged isDeleted with
// their last known snapshot instead of failing the whole request.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "User not found")
		return
	}

	items := make([]enrichedItem, 0, len(user.Cart.Items))
	for _, item := range user.Cart.Items {
		enriched := enrichedItem{CartItem: item}

		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": item.ProductID}).Decode(&product)
		switch {
		case err == nil:
			enriched.Company = product.Company
			enriched.Description = product.Description
			enriched.Img = product.Img
			enriched.Category = product.Category
			enriched.OutOfStock = product.OutOfStock
			enriched.StockQuantity = product.Quantity
			enriched.Price = product.Price
			enriched.OfferPercentage = product.OfferPercentage
		case errors.Is(err, mongo.ErrNoDocuments):
			enriched.IsDeleted = true
		default:
			log.Println("GetCart product lookup error:", err)
			enriched.IsDeleted = true
		}

		enriched.DiscountedPrice = enriched.Price * (1 - enriched.OfferPercentage/100)
		enriched.LineTotal = enriched.Price * float64(item.Quantity)
		enriched.LineDiscount = enriched.Price * enriched.OfferPercentage / 100 * float64(item.Quantity)
		items = append(items, enriched)
	}

	net := NetPrice(&user.Cart)
	utils.SendResponse(w, http.StatusOK, utils.M{
		"cart": utils.M{
			"items": items,
			"summary": utils.M{
				"totalQuantity": user.Cart.TotalQuantity,
				"totalPrice":    user.Cart.TotalPrice,
				"totalDiscount": Round2(user.Cart.TotalDiscount),
				"netPrice":      net,
				"shippingFee":   ShippingFee(net),
				"grandTotal":    GrandTotal(&user.Cart),
				"updatedAt":     user.Cart.UpdatedAt,
			},
		},
	}, "Cart retrieved successfully")
}
