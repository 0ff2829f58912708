package stores

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

func GetAllStores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.StoreCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to fetch stores")
		return
	}
	defer cursor.Close(ctx)

	var stores []models.Store
	if err := cursor.All(ctx, &stores); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to decode stores")
		return
	}
	if len(stores) == 0 {
		stores = []models.Store{}
	}

	utils.SendResponse(w, http.StatusOK, stores, "Store data")
}

// GetStoreByID returns the store with its product list resolved to full
// product documents.
func GetStoreByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var store models.Store
	if err := db.StoreCollection.FindOne(ctx, bson.M{"storeid": ps.ByName("id")}).Decode(&store); err != nil {
		utils.SendError(w, http.StatusNotFound, "Store not found")
		return
	}

	products := []models.Product{}
	if len(store.Products) > 0 {
		cursor, err := db.ProductCollection.Find(ctx, bson.M{"productid": bson.M{"$in": store.Products}})
		if err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Failed to load store products")
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &products); err != nil {
			utils.SendError(w, http.StatusInternalServerError, "Failed to decode store products")
			return
		}
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"store":    store,
		"products": products,
	}, "Store data")
}

func CreateStore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Contact string `json:"contact"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Name == "" || body.Email == "" || body.Contact == "" || body.Address == "" {
		utils.SendError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ownerID := utils.GetUserIDFromRequest(r)
	if ownerID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	store := models.Store{
		StoreID:      "s" + utils.GenerateRandomString(10),
		Name:         body.Name,
		Email:        body.Email,
		Contact:      body.Contact,
		Address:      body.Address,
		OwnerID:      ownerID,
		Products:     []string{},
		Subscription: models.Subscription{Status: models.SubscriptionInactive},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := db.StoreCollection.InsertOne(ctx, store); err != nil {
		log.Println("CreateStore insert error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to create the store")
		return
	}

	go mq.Emit(ctx, "store-created", models.Index{
		EntityType: "store", EntityId: store.StoreID, Method: "POST",
	})
	utils.SendResponse(w, http.StatusOK, store, "Store created successfully")
}

// UpdateStore applies a partial update; fields not supplied keep their value.
func UpdateStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	storeID := ps.ByName("id")

	var body struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Contact *string `json:"contact"`
		Address *string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.Email != nil {
		set["email"] = *body.Email
	}
	if body.Contact != nil {
		set["contact"] = *body.Contact
	}
	if body.Address != nil {
		set["address"] = *body.Address
	}

	res, err := db.StoreCollection.UpdateOne(ctx, bson.M{"storeid": storeID}, bson.M{"$set": set})
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to update the store")
		return
	}
	if res.MatchedCount == 0 {
		utils.SendError(w, http.StatusNotFound, "Store not found")
		return
	}

	var updated models.Store
	if err := db.StoreCollection.FindOne(ctx, bson.M{"storeid": storeID}).Decode(&updated); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to load updated store")
		return
	}

	utils.SendResponse(w, http.StatusOK, updated, "Store updated successfully")
}

// DeleteStore removes the store and detaches its products in the same
// transaction so no product keeps a dangling store reference.
func DeleteStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	storeID := ps.ByName("id")

	var store models.Store
	if err := db.StoreCollection.FindOne(ctx, bson.M{"storeid": storeID}).Decode(&store); err != nil {
		utils.SendError(w, http.StatusNotFound, "Store not found")
		return
	}

	_, err := db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := db.ProductCollection.UpdateMany(sc,
			bson.M{"storeid": storeID},
			bson.M{"$unset": bson.M{"storeid": ""}},
		); err != nil {
			return nil, err
		}
		return db.StoreCollection.DeleteOne(sc, bson.M{"storeid": storeID})
	})
	if err != nil {
		log.Println("DeleteStore txn error:", err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to delete the store")
		return
	}

	go mq.Emit(ctx, "store-deleted", models.Index{
		EntityType: "store", EntityId: storeID, Method: "DELETE",
	})
	utils.SendResponse(w, http.StatusOK, nil, "Store deleted successfully")
}
