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

var _ repository.SaleRepository = (*SaleRepo)(nil)

type saleItemDoc struct {
	ProductID   string               `bson:"productId"`
	ProductName string               `bson:"productName"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unitPrice"`
	Subtotal    primitive.Decimal128 `bson:"subtotal"`
}

type paymentDoc struct {
	Type      string               `bson:"type"`
	Amount    primitive.Decimal128 `bson:"amount"`
	Reference string               `bson:"reference,omitempty"`
}

// saleDoc la venta es un único documento con líneas y pagos embebidos.
type saleDoc struct {
	ID             string               `bson:"_id"`
	ClientID       string               `bson:"clientId"`
	Items          []saleItemDoc        `bson:"items"`
	PaymentMethods []paymentDoc         `bson:"paymentMethods"`
	Total          primitive.Decimal128 `bson:"total"`
	Status         string               `bson:"status"`
	CreatedAt      time.Time            `bson:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt"`
}

func newSaleDoc(s *entity.Sale) saleDoc {
	d := saleDoc{
		ID: s.ID, ClientID: s.ClientID, Total: toD128(s.Total), Status: string(s.Status),
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
		Items:          make([]saleItemDoc, len(s.Items)),
		PaymentMethods: make([]paymentDoc, len(s.PaymentMethods)),
	}
	for i, it := range s.Items {
		d.Items[i] = saleItemDoc{
			ProductID: it.ProductID, ProductName: it.ProductName, Quantity: it.Quantity,
			UnitPrice: toD128(it.UnitPrice), Subtotal: toD128(it.Subtotal),
		}
	}
	for i, pm := range s.PaymentMethods {
		d.PaymentMethods[i] = paymentDoc{Type: string(pm.Type), Amount: toD128(pm.Amount), Reference: pm.Reference}
	}
	return d
}

func (d saleDoc) entity() (*entity.Sale, error) {
	total, err := fromD128(d.Total)
	if err != nil {
		return nil, err
	}
	s := &entity.Sale{
		ID: d.ID, ClientID: d.ClientID, Total: total, Status: entity.SaleStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
		Items:          make([]entity.SaleItem, len(d.Items)),
		PaymentMethods: make([]entity.PaymentMethod, len(d.PaymentMethods)),
	}
	for i, it := range d.Items {
		unit, err := fromD128(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		sub, err := fromD128(it.Subtotal)
		if err != nil {
			return nil, err
		}
		s.Items[i] = entity.SaleItem{
			ProductID: it.ProductID, ProductName: it.ProductName, Quantity: it.Quantity,
			UnitPrice: unit, Subtotal: sub,
		}
	}
	for i, pm := range d.PaymentMethods {
		amount, err := fromD128(pm.Amount)
		if err != nil {
			return nil, err
		}
		s.PaymentMethods[i] = entity.PaymentMethod{Type: entity.PaymentType(pm.Type), Amount: amount, Reference: pm.Reference}
	}
	return s, nil
}

type SaleRepo struct {
	col *mongo.Collection
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if _, err := r.col.InsertOne(ctx, newSaleDoc(sale)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var d saleDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity()
}

// GetForUpdate la exclusión la da el conflicto de escritura al modificar el documento en la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context, filter entity.SaleFilter) ([]*entity.Sale, error) {
	q := bson.M{}
	if filter.ClientID != "" {
		q["clientId"] = filter.ClientID
	}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		rng := bson.M{}
		if filter.StartDate != nil {
			rng["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			rng["$lte"] = *filter.EndDate
		}
		q["createdAt"] = rng
	}
	sort := bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
	cur, err := r.col.Find(ctx, q, findOpts(sort, filter.Limit, filter.Offset))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Sale
	for cur.Next(ctx) {
		var d saleDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode sale: %w", err)
		}
		s, err := d.entity()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, cur.Err()
}

func (r *SaleRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"clientId": clientID})
	if err != nil {
		return 0, fmt.Errorf("count sales by client: %w", err)
	}
	return int(n), nil
}
