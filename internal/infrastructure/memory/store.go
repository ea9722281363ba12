// Package memory implementa los repositorios sobre mapas en proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo, demos) y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*Store)(nil)

// Store guarda todas las colecciones detrás de un único RWMutex.
// Una unidad de trabajo toma el lock de escritura durante todo fn, por lo que las transacciones se serializan.
type Store struct {
	mu         sync.RWMutex
	products   map[string]entity.Product
	clients    map[string]entity.Client
	sales      map[string]entity.Sale
	history    map[string][]entity.PriceHistory
	categories map[string]entity.Category
	users      map[string]entity.User
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		clients:    make(map[string]entity.Client),
		sales:      make(map[string]entity.Sale),
		history:    make(map[string][]entity.PriceHistory),
		categories: make(map[string]entity.Category),
		users:      make(map[string]entity.User),
	}
}

// Repos devuelve los repositorios fuera de transacción (cada llamada toma su propio lock).
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

// Users repositorio de usuarios (no participa de la unidad de trabajo).
func (s *Store) Users() repository.UserRepository {
	return &UserRepo{view{s: s}}
}

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) repos(inTx bool) repository.Repos {
	return repository.Repos{
		Products:     &ProductRepo{view{s: s, inTx: inTx}},
		Clients:      &ClientRepo{view{s: s, inTx: inTx}},
		Sales:        &SaleRepo{view{s: s, inTx: inTx}},
		PriceHistory: &PriceHistoryRepo{view{s: s, inTx: inTx}},
		Categories:   &CategoryRepo{view{s: s, inTx: inTx}},
	}
}

// Do ejecuta fn con el lock de escritura tomado. Si fn falla (o entra en pánico) se restaura la foto previa.
// Un ctx cancelado antes del commit también descarta los cambios y devuelve ctx.Err().
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()
	if err := fn(ctx, s.repos(true)); err != nil {
		return err
	}
	return ctx.Err()
}

type snapshot struct {
	products   map[string]entity.Product
	clients    map[string]entity.Client
	sales      map[string]entity.Sale
	history    map[string][]entity.PriceHistory
	categories map[string]entity.Category
}

// snapshot copia superficial de los mapas. Las ventas se reemplazan enteras al mutarse,
// así que compartir sus slices con la foto es seguro.
func (s *Store) snapshot() snapshot {
	h := make(map[string][]entity.PriceHistory, len(s.history))
	for k, v := range s.history {
		h[k] = append([]entity.PriceHistory(nil), v...)
	}
	return snapshot{
		products:   maps.Clone(s.products),
		clients:    maps.Clone(s.clients),
		sales:      maps.Clone(s.sales),
		history:    h,
		categories: maps.Clone(s.categories),
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.clients = snap.clients
	s.sales = snap.sales
	s.history = snap.history
	s.categories = snap.categories
}

// view encapsula el lock: dentro de una unidad de trabajo el lock ya lo tiene Do.
type view struct {
	s    *Store
	inTx bool
}

func (v view) read(fn func()) {
	if !v.inTx {
		v.s.mu.RLock()
		defer v.s.mu.RUnlock()
	}
	fn()
}

func (v view) write(fn func()) {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	fn()
}

// paginate aplica offset/limit sobre una lista ya ordenada. limit <= 0 significa sin límite.
func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
