package main

import (
	"context"
	"fmt"

	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/npochettino/sales-management-api/internal/infrastructure/memory"
	"github.com/npochettino/sales-management-api/internal/infrastructure/mongodb"
	"github.com/npochettino/sales-management-api/internal/infrastructure/postgres"
	httpRouter "github.com/npochettino/sales-management-api/internal/interfaces/http"
	"github.com/npochettino/sales-management-api/pkg/config"
	"github.com/npochettino/sales-management-api/pkg/logger"
)

// backend es el almacenamiento elegido por STORAGE_DRIVER, ya conectado.
type backend struct {
	uow    repository.UnitOfWork
	repos  repository.Repos
	users  repository.UserRepository
	dash   repository.DashboardRepository
	pinger httpRouter.Pinger
	close  func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migración: %w", err)
			}
			log.Info().Msg("esquema PostgreSQL aplicado")
		}
		return &backend{
			uow:    postgres.NewTxRunner(pool),
			repos:  postgres.NewRepos(pool),
			users:  postgres.NewUserRepository(pool),
			dash:   postgres.NewDashboardRepository(pool),
			pinger: pool,
			close:  pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("índices MongoDB: %w", err)
		}
		return &backend{
			uow:    mongodb.NewUnitOfWork(client, db),
			repos:  mongodb.NewRepos(db),
			users:  mongodb.NewUserRepository(db),
			dash:   mongodb.NewDashboardRepository(db),
			pinger: mongodb.Pinger{Client: client},
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					log.Error().Err(err).Msg("desconexión de MongoDB")
				}
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.New()
		return &backend{
			uow:    store,
			repos:  store.Repos(),
			users:  store.Users(),
			dash:   store.Dashboard(),
			pinger: store,
			close:  func() {},
		}, nil
	}
	return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
}
