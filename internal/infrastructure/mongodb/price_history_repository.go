package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

type priceHistoryDoc struct {
	ID          string                `bson:"_id"`
	ProductID   string                `bson:"productId"`
	Date        time.Time             `bson:"date"`
	CostBefore  *primitive.Decimal128 `bson:"costBefore"`
	CostAfter   primitive.Decimal128  `bson:"costAfter"`
	PriceBefore *primitive.Decimal128 `bson:"priceBefore"`
	PriceAfter  primitive.Decimal128  `bson:"priceAfter"`
	Reason      string                `bson:"reason"`
	UserID      string                `bson:"userId"`
}

func (d priceHistoryDoc) entity() (*entity.PriceHistory, error) {
	e := &entity.PriceHistory{ID: d.ID, ProductID: d.ProductID, Date: d.Date.UTC(), Reason: d.Reason, UserID: d.UserID}
	var err error
	if e.CostBefore, err = fromD128Ptr(d.CostBefore); err != nil {
		return nil, err
	}
	if e.PriceBefore, err = fromD128Ptr(d.PriceBefore); err != nil {
		return nil, err
	}
	if e.CostAfter, err = fromD128(d.CostAfter); err != nil {
		return nil, err
	}
	if e.PriceAfter, err = fromD128(d.PriceAfter); err != nil {
		return nil, err
	}
	return e, nil
}

type PriceHistoryRepo struct {
	col *mongo.Collection
}

func (r *PriceHistoryRepo) Create(ctx context.Context, e *entity.PriceHistory) error {
	_, err := r.col.InsertOne(ctx, priceHistoryDoc{
		ID: e.ID, ProductID: e.ProductID, Date: e.Date,
		CostBefore: toD128Ptr(e.CostBefore), CostAfter: toD128(e.CostAfter),
		PriceBefore: toD128Ptr(e.PriceBefore), PriceAfter: toD128(e.PriceAfter),
		Reason: e.Reason, UserID: e.UserID,
	})
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.PriceHistory, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}
	cur, err := r.col.Find(ctx, bson.M{"productId": productID}, findOpts(sort, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.PriceHistory
	for cur.Next(ctx) {
		var d priceHistoryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode price history: %w", err)
		}
		e, err := d.entity()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, cur.Err()
}
