package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria. El email es único sin distinguir mayúsculas.
type ClientRepo struct{ view }

func (r *ClientRepo) emailTaken(email, exceptID string) bool {
	for id, c := range r.s.clients {
		if id != exceptID && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	var err error
	r.write(func() {
		if r.emailTaken(client.Email, client.ID) {
			err = domain.ErrDuplicate
			return
		}
		r.s.clients[client.ID] = *client
	})
	return err
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	r.read(func() {
		if c, ok := r.s.clients[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	var out *entity.Client
	r.read(func() {
		for _, c := range r.s.clients {
			if strings.EqualFold(c.Email, email) {
				out = &c
				return
			}
		}
	})
	return out, nil
}

// List ordena por nombre.
func (r *ClientRepo) List(_ context.Context, filter entity.ClientFilter) ([]*entity.Client, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	var list []*entity.Client
	r.read(func() {
		for _, c := range r.s.clients {
			if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
				continue
			}
			list = append(list, &c)
		}
	})
	slices.SortFunc(list, func(a, b *entity.Client) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

func (r *ClientRepo) Update(_ context.Context, client *entity.Client) error {
	var err error
	r.write(func() {
		if _, ok := r.s.clients[client.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if r.emailTaken(client.Email, client.ID) {
			err = domain.ErrDuplicate
			return
		}
		r.s.clients[client.ID] = *client
	})
	return err
}

func (r *ClientRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	r.write(func() {
		if _, ok = r.s.clients[id]; ok {
			delete(r.s.clients, id)
		}
	})
	return ok, nil
}
