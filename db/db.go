package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	ProductCollection      *mongo.Collection
	StoreCollection        *mongo.Collection
	OrderPaymentCollection *mongo.Collection
	OrderDetailsCollection *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "krishidb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ProductCollection = Client.Database(dbName).Collection("products")
	StoreCollection = Client.Database(dbName).Collection("stores")
	OrderPaymentCollection = Client.Database(dbName).Collection("orderpayments")
	OrderDetailsCollection = Client.Database(dbName).Collection("orderdetails")
}
