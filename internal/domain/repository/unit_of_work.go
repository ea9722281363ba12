package repository

import "context"

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products     ProductRepository
	Clients      ClientRepository
	Sales        SaleRepository
	PriceHistory PriceHistoryRepository
	Categories   CategoryRepository
}

// UnitOfWork ejecuta fn dentro de una transacción del almacenamiento.
// Si fn devuelve error no queda ningún efecto persistido; si no, se confirma todo junto.
// Los repos recibidos solo son válidos durante fn y deben usarse con el ctx recibido.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
