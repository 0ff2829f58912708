package products

import (
	"context"
	"encoding/json"
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

func GetAllProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to decode products")
		return
	}
	if len(items) == 0 {
		items = []models.Product{}
	}

	utils.SendResponse(w, http.StatusOK, items, "Product data")
}

func GetProductByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, product, "Product data")
}

// CreateProduct inserts the product and appends its id to the owning store's
// product list inside one transaction.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Name            string                `json:"name"`
		Company         string                `json:"company"`
		Description     string                `json:"description"`
		Category        string                `json:"category"`
		Quantity        int                   `json:"quantity"`
		Price           float64               `json:"price"`
		OfferPercentage float64               `json:"offerPercentage"`
		StoreID         string                `json:"storeId"`
		Content         models.ProductContent `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Name == "" || body.Company == "" || body.Description == "" || body.StoreID == "" {
		utils.SendError(w, http.StatusBadRequest, "Name, company, description and storeId are required")
		return
	}
	if body.OfferPercentage < 0 || body.OfferPercentage > 100 {
		utils.SendError(w, http.StatusBadRequest, "offerPercentage must be between 0 and 100")
		return
	}

	product := models.Product{
		ProductID:       "p" + utils.GenerateRandomString(10),
		Name:            body.Name,
		Company:         body.Company,
		Description:     body.Description,
		Category:        body.Category,
		Quantity:        body.Quantity,
		Price:           body.Price,
		OfferPercentage: body.OfferPercentage,
		OutOfStock:      OutOfStockFor(body.Quantity),
		StoreID:         body.StoreID,
		Content:         body.Content,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	_, err := db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := db.StoreCollection.UpdateOne(sc,
			bson.M{"storeid": body.StoreID},
			bson.M{"$push": bson.M{"products": product.ProductID}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return db.ProductCollection.InsertOne(sc, product)
	})
	if err == mongo.ErrNoDocuments {
		utils.SendError(w, http.StatusNotFound, "Store not found")
		return
	}
	if err != nil {
		log.Println("CreateProduct txn error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	go mq.Emit(ctx, "product-created", models.Index{
		EntityType: "product", EntityId: product.ProductID, Method: "POST",
	})
	utils.SendResponse(w, http.StatusOK, product, "Product created and added to store successfully")
}

// UpdateProduct applies a partial update; absent fields keep their previous
// value. Moving the product to another store rewrites both stores' product
// lists in the same transaction.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var body struct {
		Name            *string                `json:"name"`
		Company         *string                `json:"company"`
		Description     *string                `json:"description"`
		Category        *string                `json:"category"`
		Price           *float64               `json:"price"`
		OfferPercentage *float64               `json:"offerPercentage"`
		Quantity        *int                   `json:"quantity"`
		StoreID         *string                `json:"storeId"`
		Content         *models.ProductContent `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.OfferPercentage != nil && (*body.OfferPercentage < 0 || *body.OfferPercentage > 100) {
		utils.SendError(w, http.StatusBadRequest, "offerPercentage must be between 0 and 100")
		return
	}

	var existing models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing); err != nil {
		utils.SendError(w, http.StatusNotFound, "Product not found")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.Company != nil {
		set["company"] = *body.Company
	}
	if body.Description != nil {
		set["description"] = *body.Description
	}
	if body.Category != nil {
		set["category"] = *body.Category
	}
	if body.Price != nil {
		set["price"] = *body.Price
	}
	if body.OfferPercentage != nil {
		set["offerPercentage"] = *body.OfferPercentage
	}
	if body.Quantity != nil {
		set["quantity"] = *body.Quantity
		set["outOfStock"] = OutOfStockFor(*body.Quantity)
	}
	if body.Content != nil {
		set["content"] = *body.Content
	}

	moving := body.StoreID != nil && *body.StoreID != existing.StoreID
	if moving {
		set["storeid"] = *body.StoreID
	}

	_, err := db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if moving {
			if _, err := db.StoreCollection.UpdateOne(sc,
				bson.M{"storeid": existing.StoreID},
				bson.M{"$pull": bson.M{"products": productID}},
			); err != nil {
				return nil, err
			}
			res, err := db.StoreCollection.UpdateOne(sc,
				bson.M{"storeid": *body.StoreID},
				bson.M{"$push": bson.M{"products": productID}},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, mongo.ErrNoDocuments
			}
		}
		return db.ProductCollection.UpdateOne(sc, bson.M{"productid": productID}, bson.M{"$set": set})
	})
	if err == mongo.ErrNoDocuments {
		utils.SendError(w, http.StatusNotFound, "New store not found")
		return
	}
	if err != nil {
		log.Println("UpdateProduct txn error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	var updated models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&updated); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to load updated product")
		return
	}

	go mq.Emit(ctx, "product-updated", models.Index{
		EntityType: "product", EntityId: productID, Method: "PUT",
	})
	utils.SendResponse(w, http.StatusOK, updated, "Product updated successfully")
}

// DeleteProduct removes the document and pulls its id from the owning store's
// product list in the same transaction.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.SendError(w, http.StatusNotFound, "Product not found")
		return
	}

	_, err := db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if product.StoreID != "" {
			if _, err := db.StoreCollection.UpdateOne(sc,
				bson.M{"storeid": product.StoreID},
				bson.M{"$pull": bson.M{"products": productID}},
			); err != nil {
				return nil, err
			}
		}
		return db.ProductCollection.DeleteOne(sc, bson.M{"productid": productID})
	})
	if err != nil {
		log.Println("DeleteProduct txn error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	go mq.Emit(ctx, "product-deleted", models.Index{
		EntityType: "product", EntityId: productID, Method: "DELETE",
	})
	utils.SendResponse(w, http.StatusOK, nil, "Product deleted successfully")
}

// ChangeStockStatus toggles the flag directly. Switching to out-of-stock
// forces quantity to zero; restocking must go through UpdateQuantity.
func ChangeStockStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var body struct {
		OutOfStock bool `json:"outOfStock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"outOfStock": body.OutOfStock, "updated_at": time.Now()}
	if body.OutOfStock {
		set["quantity"] = 0
	}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{"$set": set})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to change stock status")
		return
	}
	if res.MatchedCount == 0 {
		utils.SendError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"outOfStock": body.OutOfStock}, "Stock status updated")
}

// UpdateQuantity sets the stock count and derives outOfStock from it.
func UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Quantity < 0 {
		utils.SendError(w, http.StatusBadRequest, "Quantity must not be negative")
		return
	}

	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{
			"quantity":   body.Quantity,
			"outOfStock": OutOfStockFor(body.Quantity),
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to update quantity")
		return
	}
	if res.MatchedCount == 0 {
		utils.SendError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"quantity":   body.Quantity,
		"outOfStock": OutOfStockFor(body.Quantity),
	}, "Quantity updated")
}
