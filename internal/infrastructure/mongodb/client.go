// Package mongodb implementa los repositorios sobre MongoDB (STORAGE_DRIVER=mongo).
// Las unidades de trabajo usan transacciones multi-documento, que requieren un replica set.
package mongodb

import (
	"context"
	"fmt"

	"github.com/npochettino/sales-management-api/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Nombres de colecciones.
const (
	colProducts     = "products"
	colClients      = "clients"
	colSales        = "sales"
	colPriceHistory = "price_history"
	colCategories   = "categories"
	colUsers        = "users"
)

// Connect abre el cliente, verifica la conexión y devuelve la base configurada.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices únicos y de consulta. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "emailLower", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colClients: {
			{Keys: bson.D{{Key: "emailLower", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		colProducts: {
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		colSales: {
			{Keys: bson.D{{Key: "clientId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		colPriceHistory: {
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "date", Value: -1}}},
		},
	}
	for col, models := range indexes {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes %s: %w", col, err)
		}
	}
	return nil
}

// Pinger adapta el cliente al health check.
type Pinger struct {
	Client *mongo.Client
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
