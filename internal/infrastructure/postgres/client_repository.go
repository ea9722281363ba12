package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, email, phone, address, created_at, updated_at`

// ClientRepo clientes sobre PostgreSQL. El índice único sobre lower(email) garantiza la unicidad.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) get(ctx context.Context, where string, arg any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.get(ctx, "lower(email) = lower($1)", email)
}

// List ordena por nombre; Search filtra por nombre o email sin distinguir mayúsculas.
func (r *ClientRepo) List(ctx context.Context, filter entity.ClientFilter) ([]*entity.Client, error) {
	var w whereBuilder
	if s := strings.TrimSpace(filter.Search); s != "" {
		w.add("(name ILIKE ? OR email ILIKE ?)", "%"+escapeLike(s)+"%")
	}
	query := `SELECT ` + clientColumns + ` FROM clients` + w.String() + ` ORDER BY name, id` + w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE clients SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6 WHERE id = $1`,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
