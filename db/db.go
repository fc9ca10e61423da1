package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the local store.
const (
	CustomersCollection = "customers"
	OrdersCollection    = "orders"
	SalesCollection     = "sales_records"
)

var (
	Client   *mongo.Client
	Database *mongo.Database
)

// Connect dials MongoDB using MONGODB_URI / MONGODB_DB and keeps the client in
// package vars for the store layer.
func Connect(ctx context.Context) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	name := os.Getenv("MONGODB_DB")
	if name == "" {
		name = "goldenwine"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	Database = client.Database(name)
	log.Println("✅ Connected to MongoDB:", name)
	return nil
}

func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
}
