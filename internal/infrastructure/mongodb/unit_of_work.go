package mongodb

import (
	"context"

	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork corre fn dentro de una transacción de sesión.
// WithTransaction reintenta fn ante errores transitorios (p. ej. conflicto de escritura entre dos ventas
// que tocan el mismo producto), por eso fn debe releer todo lo que decide.
type UnitOfWork struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewUnitOfWork(client *mongo.Client, db *mongo.Database) *UnitOfWork {
	return &UnitOfWork{client: client, db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	sess, err := u.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, NewRepos(u.db))
	})
	return err
}

// NewRepos repos sobre db. Dentro de Do, el SessionContext recibido los ata a la transacción.
func NewRepos(db *mongo.Database) repository.Repos {
	return repository.Repos{
		Products:     &ProductRepo{col: db.Collection(colProducts)},
		Clients:      &ClientRepo{col: db.Collection(colClients)},
		Sales:        &SaleRepo{col: db.Collection(colSales)},
		PriceHistory: &PriceHistoryRepo{col: db.Collection(colPriceHistory)},
		Categories:   &CategoryRepo{col: db.Collection(colCategories)},
	}
}

// NewUserRepository usuarios fuera de la unidad de trabajo.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(colUsers)}
}
