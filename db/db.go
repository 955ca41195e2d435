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
	ProductsCollection         *mongo.Collection
	ReviewsCollection          *mongo.Collection
	OrdersCollection           *mongo.Collection
	CartsCollection            *mongo.Collection
	UsersCollection            *mongo.Collection
	CustomCategoriesCollection *mongo.Collection
	Client                     *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "novashop"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(dbName)
	ProductsCollection = database.Collection("products")
	ReviewsCollection = database.Collection("reviews")
	OrdersCollection = database.Collection("orders")
	CartsCollection = database.Collection("carts")
	UsersCollection = database.Collection("users")
	CustomCategoriesCollection = database.Collection("custom_categories")
}
