package products

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchProducts lists products filtered by category or by case-insensitive
// substring match on the target-pest list, with skip/limit paging. The total
// match count rides along for client-side paging.
func SearchProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")
	pest := r.URL.Query().Get("pest")

	limit := int64(10)
	skip := int64(0)
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 50 {
		limit = int64(l)
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && s >= 0 {
		skip = int64(s)
	}

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if pest != "" {
		filter["content.targetPests"] = bson.M{
			"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(pest), Options: "i"},
		}
	}

	findOptions := options.Find().
		SetLimit(limit).
		SetSkip(skip).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := db.ProductCollection.Find(ctx, filter, findOptions)
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

	count, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to count products")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"items": items,
		"total": count,
	}, "Product search results")
}
