package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados del dashboard con pipelines de aggregation.
type DashboardRepo struct {
	products *ProductRepo
	clients  *mongo.Collection
	sales    *mongo.Collection
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(db *mongo.Database) *DashboardRepo {
	return &DashboardRepo{
		products: &ProductRepo{col: db.Collection(colProducts)},
		clients:  db.Collection(colClients),
		sales:    db.Collection(colSales),
	}
}

func (r *DashboardRepo) CountProducts(ctx context.Context) (int, error) {
	n, err := r.products.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return int(n), nil
}

func (r *DashboardRepo) CountClients(ctx context.Context) (int, error) {
	n, err := r.clients.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return int(n), nil
}

func (r *DashboardRepo) LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	sort := bson.D{{Key: "stock", Value: 1}, {Key: "name", Value: 1}}
	cur, err := r.products.col.Find(ctx, bson.M{"stock": bson.M{"$lt": threshold}}, findOpts(sort, limit, 0))
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	return r.products.decodeAll(ctx, cur)
}

// countedSales filtro de ventas que suman a las métricas.
func countedSales(from, to time.Time) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{
		"status":    bson.M{"$ne": string(entity.SaleStatusCancelled)},
		"createdAt": bson.M{"$gte": from, "$lt": to},
	}}}
}

func (r *DashboardRepo) SalesMetrics(ctx context.Context, from, to time.Time) (repository.SalesMetrics, error) {
	pipeline := mongo.Pipeline{
		countedSales(from, to),
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}}},
	}
	cur, err := r.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("sales metrics: %w", err)
	}
	defer cur.Close(ctx)

	m := repository.SalesMetrics{Revenue: decimal.Zero}
	if cur.Next(ctx) {
		var row struct {
			Count   int                  `bson:"count"`
			Revenue primitive.Decimal128 `bson:"revenue"`
		}
		if err := cur.Decode(&row); err != nil {
			return repository.SalesMetrics{}, fmt.Errorf("decode sales metrics: %w", err)
		}
		m.Count = row.Count
		if m.Revenue, err = fromD128(row.Revenue); err != nil {
			return repository.SalesMetrics{}, err
		}
	}
	return m, cur.Err()
}

// TopProducts el nombre es el de la venta más reciente: se ordena por fecha antes de $unwind y se toma $first.
func (r *DashboardRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	pipeline := mongo.Pipeline{
		countedSales(from, to),
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$items.productId",
			"productName": bson.M{"$first": "$items.productName"},
			"quantity":    bson.M{"$sum": "$items.quantity"},
			"revenue":     bson.M{"$sum": "$items.subtotal"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cur, err := r.sales.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer cur.Close(ctx)

	results := []repository.TopProduct{}
	for cur.Next(ctx) {
		var row struct {
			ProductID   string               `bson:"_id"`
			ProductName string               `bson:"productName"`
			Quantity    int                  `bson:"quantity"`
			Revenue     primitive.Decimal128 `bson:"revenue"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode top product: %w", err)
		}
		revenue, err := fromD128(row.Revenue)
		if err != nil {
			return nil, err
		}
		results = append(results, repository.TopProduct{
			ProductID: row.ProductID, ProductName: row.ProductName, Quantity: row.Quantity, Revenue: revenue,
		})
	}
	return results, cur.Err()
}
