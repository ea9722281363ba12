package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// clientDoc guarda el email en minúsculas aparte para el índice único.
type clientDoc struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	EmailLower string    `bson:"emailLower"`
	Phone      string    `bson:"phone"`
	Address    string    `bson:"address"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func newClientDoc(c *entity.Client) clientDoc {
	return clientDoc{
		ID: c.ID, Name: c.Name, Email: c.Email, EmailLower: strings.ToLower(c.Email),
		Phone: c.Phone, Address: c.Address, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (d clientDoc) entity() *entity.Client {
	return &entity.Client{
		ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone, Address: d.Address,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type ClientRepo struct {
	col *mongo.Collection
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if _, err := r.col.InsertOne(ctx, newClientDoc(client)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) get(ctx context.Context, filter bson.M) (*entity.Client, error) {
	var d clientDoc
	ok, err := findOne(ctx, r.col, filter, &d)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.get(ctx, bson.M{"_id": id})
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.get(ctx, bson.M{"emailLower": strings.ToLower(email)})
}

func (r *ClientRepo) List(ctx context.Context, filter entity.ClientFilter) ([]*entity.Client, error) {
	q := bson.M{}
	if s := strings.TrimSpace(filter.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		q["$or"] = bson.A{bson.M{"name": re}, bson.M{"email": re}}
	}
	sort := bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}
	cur, err := r.col.Find(ctx, q, findOpts(sort, filter.Limit, filter.Offset))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Client
	for cur.Next(ctx) {
		var d clientDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		list = append(list, d.entity())
	}
	return list, cur.Err()
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": client.ID}, newClientDoc(client))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return res.DeletedCount == 1, nil
}
