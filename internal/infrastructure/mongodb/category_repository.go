package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Color       string    `bson:"color"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newCategoryDoc(c *entity.Category) categoryDoc {
	return categoryDoc{ID: c.ID, Name: c.Name, Description: c.Description, Color: c.Color, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (d categoryDoc) entity() *entity.Category {
	return &entity.Category{ID: d.ID, Name: d.Name, Description: d.Description, Color: d.Color, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC()}
}

type CategoryRepo struct {
	col *mongo.Collection
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if _, err := r.col.InsertOne(ctx, newCategoryDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) CreateMany(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}
	docs := make([]any, len(categories))
	for i, c := range categories {
		docs[i] = newCategoryDoc(c)
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var d categoryDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, findOpts(bson.D{{Key: "name", Value: 1}}, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	list := make([]*entity.Category, len(docs))
	for i, d := range docs {
		list[i] = d.entity()
	}
	return list, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, newCategoryDoc(c))
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *CategoryRepo) Count(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return int(n), nil
}
