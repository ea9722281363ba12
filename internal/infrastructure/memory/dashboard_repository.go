package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados del dashboard recorriendo los mapas del store.
type DashboardRepo struct{ view }

// Dashboard repositorio de solo lectura para el resumen del dashboard.
func (s *Store) Dashboard() *DashboardRepo {
	return &DashboardRepo{view{s: s}}
}

func (r *DashboardRepo) CountProducts(_ context.Context) (int, error) {
	var n int
	r.read(func() { n = len(r.s.products) })
	return n, nil
}

func (r *DashboardRepo) CountClients(_ context.Context) (int, error) {
	var n int
	r.read(func() { n = len(r.s.clients) })
	return n, nil
}

func (r *DashboardRepo) LowStockProducts(_ context.Context, threshold, limit int) ([]*entity.Product, error) {
	var list []*entity.Product
	r.read(func() {
		for _, p := range r.s.products {
			if p.Stock < threshold {
				list = append(list, &p)
			}
		}
	})
	slices.SortFunc(list, func(a, b *entity.Product) int {
		return cmp.Or(cmp.Compare(a.Stock, b.Stock), cmp.Compare(a.Name, b.Name))
	})
	return paginate(list, limit, 0), nil
}

// counted ventas que suman a las métricas: no canceladas y dentro de [from, to).
func counted(s entity.Sale, from, to time.Time) bool {
	return s.Status != entity.SaleStatusCancelled && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to)
}

func (r *DashboardRepo) SalesMetrics(_ context.Context, from, to time.Time) (repository.SalesMetrics, error) {
	m := repository.SalesMetrics{Revenue: decimal.Zero}
	r.read(func() {
		for _, s := range r.s.sales {
			if counted(s, from, to) {
				m.Count++
				m.Revenue = m.Revenue.Add(s.Total)
			}
		}
	})
	return m, nil
}

func (r *DashboardRepo) TopProducts(_ context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	type acc struct {
		repository.TopProduct
		lastSold time.Time
	}
	byID := make(map[string]*acc)
	r.read(func() {
		for _, s := range r.s.sales {
			if !counted(s, from, to) {
				continue
			}
			for _, it := range s.Items {
				a, ok := byID[it.ProductID]
				if !ok {
					a = &acc{TopProduct: repository.TopProduct{ProductID: it.ProductID, Revenue: decimal.Zero}}
					byID[it.ProductID] = a
				}
				a.Quantity += it.Quantity
				a.Revenue = a.Revenue.Add(it.Subtotal)
				if !s.CreatedAt.Before(a.lastSold) {
					a.ProductName, a.lastSold = it.ProductName, s.CreatedAt
				}
			}
		}
	})
	list := make([]repository.TopProduct, 0, len(byID))
	for _, a := range byID {
		list = append(list, a.TopProduct)
	}
	slices.SortFunc(list, func(a, b repository.TopProduct) int {
		return cmp.Or(b.Revenue.Cmp(a.Revenue), cmp.Compare(a.ProductID, b.ProductID))
	})
	return paginate(list, limit, 0), nil
}
