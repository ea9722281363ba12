package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Los montos se guardan como Decimal128 para no perder precisión.

func toD128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// shopspring siempre produce una representación decimal válida
		panic(fmt.Sprintf("decimal128: %v", err))
	}
	return v
}

func fromD128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}

func toD128Ptr(d *decimal.Decimal) *primitive.Decimal128 {
	if d == nil {
		return nil
	}
	v := toD128(*d)
	return &v
}

func fromD128Ptr(v *primitive.Decimal128) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d, err := fromD128(*v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// findOne decodifica el primer documento o devuelve (false, nil) si no hay.
func findOne(ctx context.Context, col *mongo.Collection, filter any, out any, opts ...*options.FindOneOptions) (bool, error) {
	err := col.FindOne(ctx, filter, opts...).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func findOpts(sort any, limit, offset int) *options.FindOptions {
	o := options.Find().SetSort(sort)
	if limit > 0 {
		o.SetLimit(int64(limit))
	}
	if offset > 0 {
		o.SetSkip(int64(offset))
	}
	return o
}
