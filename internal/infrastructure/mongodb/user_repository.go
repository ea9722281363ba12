package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	EmailLower   string    `bson:"emailLower"`
	PasswordHash string    `bson:"passwordHash"`
	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type UserRepo struct {
	col *mongo.Collection
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.col.InsertOne(ctx, userDoc{
		ID: u.ID, Email: u.Email, EmailLower: strings.ToLower(u.Email), PasswordHash: u.PasswordHash,
		Name: u.Name, Role: u.Role, Status: u.Status, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) find(ctx context.Context, filter bson.M) (*entity.User, error) {
	var d userDoc
	ok, err := findOne(ctx, r.col, filter, &d)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &entity.User{
		ID: d.ID, Email: d.Email, PasswordHash: d.PasswordHash, Name: d.Name, Role: d.Role,
		Status: d.Status, CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(ctx, bson.M{"_id": id})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(ctx, bson.M{"emailLower": strings.ToLower(email)})
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return int(n), nil
}
