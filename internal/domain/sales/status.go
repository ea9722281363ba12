package sales

import "github.com/npochettino/sales-management-api/internal/domain/entity"

// transitions cambios de estado permitidos además de mantener el mismo estado.
// pending -> completed siempre debe estar permitido. Ninguna venta vuelve a pending y
// cancelled es terminal: cancelar no repone stock, así que reactivar dejaría el stock descontado dos veces.
var transitions = map[entity.SaleStatus][]entity.SaleStatus{
	entity.SaleStatusPending:   {entity.SaleStatusCompleted, entity.SaleStatusCancelled},
	entity.SaleStatusCompleted: {entity.SaleStatusCancelled},
	entity.SaleStatusCancelled: nil,
}

// CanTransition indica si una venta en from puede pasar a to.
func CanTransition(from, to entity.SaleStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanDelete solo las ventas pendientes se pueden eliminar (con reposición de stock).
func CanDelete(s *entity.Sale) bool {
	return s.Status == entity.SaleStatusPending
}
