package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productDoc struct {
	ID           string               `bson:"_id"`
	Name         string               `bson:"name"`
	Description  string               `bson:"description"`
	Cost         primitive.Decimal128 `bson:"cost"`
	Price        primitive.Decimal128 `bson:"price"`
	Stock        int                  `bson:"stock"`
	CategoryID   string               `bson:"categoryId"`
	CategoryName string               `bson:"categoryName"`
	ImageURL     string               `bson:"imageUrl"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func newProductDoc(p *entity.Product) productDoc {
	return productDoc{
		ID: p.ID, Name: p.Name, Description: p.Description,
		Cost: toD128(p.Cost), Price: toD128(p.Price), Stock: p.Stock,
		CategoryID: p.CategoryID, CategoryName: p.CategoryName, ImageURL: p.ImageURL,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (d productDoc) entity() (*entity.Product, error) {
	cost, err := fromD128(d.Cost)
	if err != nil {
		return nil, err
	}
	price, err := fromD128(d.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID: d.ID, Name: d.Name, Description: d.Description,
		Cost: cost, Price: price, Stock: d.Stock,
		CategoryID: d.CategoryID, CategoryName: d.CategoryName, ImageURL: d.ImageURL,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

// ProductRepo productos sobre MongoDB.
type ProductRepo struct {
	col *mongo.Collection
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if _, err := r.col.InsertOne(ctx, newProductDoc(product)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var d productDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity()
}

func (r *ProductRepo) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*entity.Product, error) {
	defer cur.Close(ctx)
	var list []*entity.Product
	for cur.Next(ctx) {
		var d productDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p, err := d.entity()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, cur.Err()
}

// GetManyForUpdate lee dentro de la transacción de sesión. Dos ventas sobre el mismo producto
// chocan en DecrementStock con un WriteConflict y WithTransaction reintenta la perdedora.
func (r *ProductRepo) GetManyForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	list, err := r.decodeAll(ctx, cur)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, newProductDoc(product))
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stock": -quantity}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, id string, quantity int) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": quantity}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("increment stock: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	q := bson.M{}
	if filter.CategoryID != "" {
		q["categoryId"] = filter.CategoryID
	}
	if filter.InStock {
		q["stock"] = bson.M{"$gt": 0}
	}
	sort := bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
	cur, err := r.col.Find(ctx, q, findOpts(sort, filter.Limit, filter.Offset))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return r.decodeAll(ctx, cur)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return int(n), nil
}

func (r *ProductRepo) UpdateCategoryName(ctx context.Context, categoryID, name string) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"categoryId": categoryID}, bson.M{"$set": bson.M{"categoryName": name}})
	if err != nil {
		return fmt.Errorf("update category name: %w", err)
	}
	return nil
}
