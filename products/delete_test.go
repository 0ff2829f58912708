package products

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"krishi/db"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// Deleting a product must pull its id from the owning store's product list
// before the product document itself is removed.
func TestDeleteProductPullsFromStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("store back-reference removed with product", func(mt *mtest.T) {
		origClient := db.Client
		origProducts := db.ProductCollection
		origStores := db.StoreCollection
		db.Client = mt.Client
		db.ProductCollection = mt.Client.Database("krishidb").Collection("products")
		db.StoreCollection = mt.Client.Database("krishidb").Collection("stores")
		defer func() {
			db.Client = origClient
			db.ProductCollection = origProducts
			db.StoreCollection = origStores
		}()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "krishidb.products", mtest.FirstBatch, bson.D{
				{Key: "productid", Value: "p1"},
				{Key: "name", Value: "Tomato Seeds"},
				{Key: "storeid", Value: "s1"},
			}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/v1/products/p1", nil)
		DeleteProduct(w, r, httprouter.Params{{Key: "id", Value: "p1"}})

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			mt.Fatalf("first command = %+v, want find", evt)
		}

		evt = mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "update" {
			mt.Fatalf("second command = %+v, want update preceding the delete", evt)
		}
		if coll := evt.Command.Lookup("update").StringValue(); coll != "stores" {
			mt.Errorf("update targeted %q, want stores", coll)
		}
		pulled := evt.Command.Lookup("updates").Array().Index(0).Value().Document().
			Lookup("u").Document().Lookup("$pull").Document().Lookup("products").StringValue()
		if pulled != "p1" {
			mt.Errorf("$pull products = %q, want p1", pulled)
		}

		evt = mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "delete" {
			mt.Fatalf("third command = %+v, want delete", evt)
		}
		if coll := evt.Command.Lookup("delete").StringValue(); coll != "products" {
			mt.Errorf("delete targeted %q, want products", coll)
		}
	})
}
